package domain

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// instance scopes address identities to this process. Heap addresses repeat
// across runs of the same binary, so they must never match a key written elsewhere.
var instance = uuid.NewString()

// State is the capability every automaton state implements.
//
// I is the input type consumed by Invoke and O is the tracer type a state uses
// to carry transition-decision information to listeners. The engine never
// inspects the tracer, it only forwards the state to listeners.
type State[I, O any] interface {
	// OnStart is called right before Invoke.
	OnStart()

	// Invoke acts on the input. A non-nil error aborts the transition before OnFinish.
	Invoke(input I) error

	// OnFinish is called after Invoke and after the listener, on the normal path only.
	OnFinish()

	Input() I
	SetInput(input I)

	// Tracer returns the state's output value.
	Tracer() O
}

// Identifiable lets a state override reference identity.
// Deterministic fingerprints use Identity() instead of the state's address when present.
type Identifiable interface {
	Identity() string
}

// CloneMode selects how Clone treats the original state.
type CloneMode int

const (
	// CloneShallow returns the same instance.
	CloneShallow CloneMode = iota
	// CloneDeep returns a Proxy sharing the original as its substrate.
	CloneDeep
)

func (m CloneMode) String() string {
	switch m {
	case CloneShallow:
		return "shallow"
	case CloneDeep:
		return "deep"
	default:
		return fmt.Sprintf("CloneMode(%d)", int(m))
	}
}

// Clone clones a state according to mode.
//
// A deep clone does not copy fields: the returned Proxy forwards every operation
// to the original, so both observe the same mutations. The caller may drop its
// reference to the original, the proxy keeps it reachable through Substrate.
func Clone[I, O any](state State[I, O], mode CloneMode) State[I, O] {
	if mode != CloneDeep || state == nil {
		return state
	}
	return &Proxy[I, O]{substrate: state}
}

// Proxy is the deep-clone variant of a State. It owns no state of its own.
type Proxy[I, O any] struct {
	substrate State[I, O]
}

// NewProxy wraps substrate in a forwarding proxy.
func NewProxy[I, O any](substrate State[I, O]) *Proxy[I, O] {
	return &Proxy[I, O]{substrate: substrate}
}

// Substrate returns the state every call is forwarded to.
func (p *Proxy[I, O]) Substrate() State[I, O] {
	return p.substrate
}

func (p *Proxy[I, O]) OnStart()             { p.substrate.OnStart() }
func (p *Proxy[I, O]) Invoke(input I) error { return p.substrate.Invoke(input) }
func (p *Proxy[I, O]) OnFinish()            { p.substrate.OnFinish() }
func (p *Proxy[I, O]) Input() I             { return p.substrate.Input() }
func (p *Proxy[I, O]) SetInput(input I)     { p.substrate.SetInput(input) }
func (p *Proxy[I, O]) Tracer() O            { return p.substrate.Tracer() }

func (p *Proxy[I, O]) String() string {
	return fmt.Sprintf("proxy(%s)", Describe(p.substrate))
}

// Describe returns a short human readable label for a state, used in logs and events.
func Describe(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	if id, ok := v.(Identifiable); ok {
		return id.Identity()
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// IdentityKey returns a string that is equal for two values exactly when the
// engine considers them the same identity.
//
// Identifiable values use their Identity. Pointers, maps, slices, channels and
// funcs compare by address within this process only. An address key is valid
// only while the value is alive, so holders of a key must keep the value
// reachable. Every other value compares by its formatted content, so
// two equal strings share an identity.
func IdentityKey(v any) string {
	if v == nil {
		return "nil"
	}
	if id, ok := v.(Identifiable); ok {
		return "id:" + id.Identity()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return fmt.Sprintf("%T:nil", v)
		}
		return fmt.Sprintf("%T@%s/%x", v, instance, rv.Pointer())
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// IsNil reports whether v is nil, including typed nil pointers held in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
