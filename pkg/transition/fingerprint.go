package transition

import (
	"strconv"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Fingerprint is the replay key of a transition path.
//
// Route is the unique identity a path receives at construction. Present, Next
// and Input hold domain.IdentityKey values. Address keys stay valid only while
// the fingerprint that carries them is kept: it holds the states it was built
// from, so a registry that stores the value keeps those addresses reserved.
type Fingerprint struct {
	Name    string `json:"name"`
	Route   string `json:"route"`
	Present string `json:"present"`
	Next    string `json:"next"`
	Input   string `json:"input"`

	refs []any
}

// NewFingerprint builds the fingerprint of the route identified by routeID,
// named name, with the given present and next states. The input key is taken
// from next's current input.
func NewFingerprint[I, O any](name, routeID string, present, next domain.State[I, O]) Fingerprint {
	fp := Fingerprint{
		Name:    name,
		Route:   "route:" + routeID,
		Present: identityOf(present),
		Next:    identityOf(next),
		Input:   domain.IdentityKey(nil),
	}
	if present != nil {
		fp.refs = append(fp.refs, present)
	}
	if next != nil {
		input := next.Input()
		fp.Input = domain.IdentityKey(input)
		fp.refs = append(fp.refs, next, input)
	}
	return fp
}

func newRouteID() string {
	return uuid.NewString()
}

func identityOf[I, O any](state domain.State[I, O]) string {
	if state == nil {
		return domain.IdentityKey(nil)
	}
	return domain.IdentityKey(state)
}

// Matches reports whether other replays fp: same name and either the same route
// instance or the same present, next and next-input identities.
func (fp Fingerprint) Matches(other Fingerprint) bool {
	if fp.Name != other.Name {
		return false
	}
	if fp.Route != "" && fp.Route == other.Route {
		return true
	}
	return fp.Present == other.Present &&
		fp.Next == other.Next &&
		fp.Input == other.Input
}

// Sum digests the content identities (present, next, input), excluding the route.
func (fp Fingerprint) Sum() uint64 {
	d := xxhash.New()
	for _, part := range []string{fp.Name, fp.Present, fp.Next, fp.Input} {
		_, _ = d.WriteString(strconv.Itoa(len(part)))
		_, _ = d.WriteString(":")
		_, _ = d.WriteString(part)
	}
	return d.Sum64()
}
