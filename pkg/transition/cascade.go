package transition

import (
	"fmt"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Backing selects the queue implementation of a CascadingPath.
type Backing string

const (
	// BackingRing is a circular-buffer deque.
	BackingRing Backing = "ring"
	// BackingLinked is a doubly-linked-list deque.
	BackingLinked Backing = "linked"
	// BackingFIFO is a single-ended queue. Head insertion and tail removal are unsupported.
	BackingFIFO Backing = "fifo"
)

// ParseBacking converts a configuration string into a Backing.
func ParseBacking(s string) (Backing, error) {
	switch b := Backing(s); b {
	case BackingRing, BackingLinked, BackingFIFO:
		return b, nil
	case "":
		return BackingRing, nil
	default:
		return "", fmt.Errorf("%w: unknown queue backing %q", domain.ErrInvalidArgument, s)
	}
}

// NewQueue creates an empty queue of the given backing.
func NewQueue[T any](b Backing, limit int) (Queue[T], error) {
	switch b {
	case BackingRing, "":
		return NewRingDeque[T](limit), nil
	case BackingLinked:
		return NewLinkedDeque[T](limit), nil
	case BackingFIFO:
		return NewFIFO[T](limit), nil
	default:
		return nil, fmt.Errorf("%w: unknown queue backing %q", domain.ErrInvalidArgument, b)
	}
}

// CascadeOption configures a CascadingPath.
type CascadeOption func(*cascadeConfig)

type cascadeConfig struct {
	backing Backing
	limit   int
	queue   any
}

// WithBacking selects the queue implementation (default BackingRing).
func WithBacking(b Backing) CascadeOption {
	return func(c *cascadeConfig) {
		c.backing = b
	}
}

// WithCapacity bounds the number of queued states (0 for no limit).
func WithCapacity(n int) CascadeOption {
	return func(c *cascadeConfig) {
		c.limit = n
	}
}

// WithQueue injects a custom queue, overriding WithBacking and WithCapacity.
// The element type must be the path's domain.State[I, O].
func WithQueue[T any](q Queue[T]) CascadeOption {
	return func(c *cascadeConfig) {
		c.queue = q
	}
}

// CascadingPath is a transition path whose present and next states come from a queue.
//
// AssignNextState enqueues at the tail. PresentState and NextState both dequeue
// from the head: they behave identically and exist separately because engines
// call both. The states returned last are remembered until removed.
type CascadingPath[I, O any] struct {
	id      string
	name    string
	cascade Queue[domain.State[I, O]]
	present domain.State[I, O]
	next    domain.State[I, O]
}

var _ Route[any, any] = (*CascadingPath[any, any])(nil)

// NewCascadingPath creates an empty cascading path.
func NewCascadingPath[I, O any](name string, opts ...CascadeOption) (*CascadingPath[I, O], error) {
	cfg := cascadeConfig{backing: BackingRing}
	for _, opt := range opts {
		opt(&cfg)
	}

	var q Queue[domain.State[I, O]]
	if cfg.queue != nil {
		custom, ok := cfg.queue.(Queue[domain.State[I, O]])
		if !ok {
			return nil, fmt.Errorf("%w: queue of %T cannot hold the path's states", domain.ErrInvalidArgument, cfg.queue)
		}
		q = custom
	} else {
		var err error
		q, err = NewQueue[domain.State[I, O]](cfg.backing, cfg.limit)
		if err != nil {
			return nil, err
		}
	}
	return &CascadingPath[I, O]{id: newRouteID(), name: name, cascade: q}, nil
}

func (c *CascadingPath[I, O]) Name() string        { return c.name }
func (c *CascadingPath[I, O]) SetName(name string) { c.name = name }

// Queue returns the backing queue.
func (c *CascadingPath[I, O]) Queue() Queue[domain.State[I, O]] { return c.cascade }

// Len returns the number of queued states.
func (c *CascadingPath[I, O]) Len() int { return c.cascade.Len() }

// AssignNextState enqueues state at the tail.
func (c *CascadingPath[I, O]) AssignNextState(state domain.State[I, O]) error {
	if state == nil {
		return fmt.Errorf("%w: cannot cascade a nil state", domain.ErrInvalidArgument)
	}
	if !c.cascade.Offer(state) {
		return fmt.Errorf("cascade %q: %w", c.name, domain.ErrQueueFull)
	}
	c.next = state
	return nil
}

// AssignPresentState enqueues state at the head. It requires a double-ended backing.
func (c *CascadingPath[I, O]) AssignPresentState(state domain.State[I, O]) error {
	deque, err := c.deque()
	if err != nil {
		return err
	}
	if state == nil {
		return fmt.Errorf("%w: cannot cascade a nil state", domain.ErrInvalidArgument)
	}
	if !deque.OfferFirst(state) {
		return fmt.Errorf("cascade %q: %w", c.name, domain.ErrQueueFull)
	}
	c.present = state
	return nil
}

// PresentState dequeues the head, or returns nil if the queue is empty.
func (c *CascadingPath[I, O]) PresentState() domain.State[I, O] {
	c.present = c.poll()
	return c.present
}

// NextState dequeues the head, or returns nil if the queue is empty.
func (c *CascadingPath[I, O]) NextState() domain.State[I, O] {
	c.next = c.poll()
	return c.next
}

// LastState dequeues the tail. It requires a double-ended backing and fails
// with ErrNoNextState when the queue is empty.
func (c *CascadingPath[I, O]) LastState() (domain.State[I, O], error) {
	deque, err := c.deque()
	if err != nil {
		return nil, err
	}
	state, ok := deque.PollLast()
	if !ok {
		return nil, fmt.Errorf("cascade %q: failed to poll the last state: %w", c.name, domain.ErrNoNextState)
	}
	return state, nil
}

func (c *CascadingPath[I, O]) HasPresentState() bool { return c.cascade.Len() > 0 }
func (c *CascadingPath[I, O]) HasNextState() bool    { return c.cascade.Len() > 0 }

// RemovePresentState forgets the last dequeued present state. The queue is untouched.
func (c *CascadingPath[I, O]) RemovePresentState() { c.present = nil }

// RemoveNextState forgets the last dequeued next state. The queue is untouched.
func (c *CascadingPath[I, O]) RemoveNextState() { c.next = nil }

// Fingerprint keys the path by the two states at the head of the queue.
func (c *CascadingPath[I, O]) Fingerprint() Fingerprint {
	present, _ := c.cascade.PeekAt(0)
	next, _ := c.cascade.PeekAt(1)
	return NewFingerprint[I, O](c.name, c.id, present, next)
}

func (c *CascadingPath[I, O]) poll() domain.State[I, O] {
	state, ok := c.cascade.Poll()
	if !ok {
		return nil
	}
	return state
}

func (c *CascadingPath[I, O]) deque() (Deque[domain.State[I, O]], error) {
	deque, ok := c.cascade.(Deque[domain.State[I, O]])
	if !ok {
		return nil, fmt.Errorf("cascade %q: the backing queue isn't double-ended: %w", c.name, domain.ErrUnsupportedOperation)
	}
	return deque, nil
}

// ConcurrentCascadingPath is a CascadingPath whose AssignNextState and NextState
// are serialized under a per-instance mutex.
//
// Head access (AssignPresentState, PresentState, LastState) is not guarded:
// callers mixing head and tail access from several goroutines must coordinate.
type ConcurrentCascadingPath[I, O any] struct {
	*CascadingPath[I, O]
	mu sync.Mutex
}

var _ Route[any, any] = (*ConcurrentCascadingPath[any, any])(nil)

// NewConcurrentCascadingPath creates an empty concurrent cascading path.
func NewConcurrentCascadingPath[I, O any](name string, opts ...CascadeOption) (*ConcurrentCascadingPath[I, O], error) {
	path, err := NewCascadingPath[I, O](name, opts...)
	if err != nil {
		return nil, err
	}
	return &ConcurrentCascadingPath[I, O]{CascadingPath: path}, nil
}

func (c *ConcurrentCascadingPath[I, O]) AssignNextState(state domain.State[I, O]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CascadingPath.AssignNextState(state)
}

func (c *ConcurrentCascadingPath[I, O]) NextState() domain.State[I, O] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CascadingPath.NextState()
}
