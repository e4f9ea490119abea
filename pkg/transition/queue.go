package transition

import "container/list"

// Queue is a single-ended queue: offers go to the tail, polls come from the head.
type Queue[T any] interface {
	// Offer appends v at the tail. It returns false if the queue rejects v.
	Offer(v T) bool
	// Poll removes and returns the head.
	Poll() (T, bool)
	// PeekAt returns the element at position i from the head without removing it.
	PeekAt(i int) (T, bool)
	Len() int
}

// Deque is a double-ended Queue.
type Deque[T any] interface {
	Queue[T]
	// OfferFirst inserts v at the head. It returns false if the deque rejects v.
	OfferFirst(v T) bool
	// PollLast removes and returns the tail.
	PollLast() (T, bool)
}

// RingDeque is a deque maintained over a ring buffer backed by a slice.
// A positive limit bounds the number of elements; zero means unbounded.
type RingDeque[T any] struct {
	buffer []T
	head   int // index of the front of the buffer
	tail   int // index of the first position after the end of the buffer
	// Distinguishes an empty buffer from one using all of its capacity.
	nonEmpty bool
	limit    int
}

// NewRingDeque creates a RingDeque holding at most limit elements (0 for no limit).
func NewRingDeque[T any](limit int) *RingDeque[T] {
	return &RingDeque[T]{limit: limit}
}

// Len returns the number of elements in the deque.
func (r *RingDeque[T]) Len() int {
	if !r.nonEmpty {
		return 0
	}
	switch {
	case r.head < r.tail:
		return r.tail - r.head
	case r.head == r.tail:
		return cap(r.buffer)
	default:
		return cap(r.buffer) + r.tail - r.head
	}
}

func (r *RingDeque[T]) full() bool {
	return r.limit > 0 && r.Len() >= r.limit
}

func (r *RingDeque[T]) grow(n int) {
	newBuffer := make([]T, n)
	length := r.Len()
	if length > 0 {
		if r.head < r.tail {
			copy(newBuffer[:length], r.buffer[r.head:r.tail])
		} else {
			copy(newBuffer[:cap(r.buffer)-r.head], r.buffer[r.head:])
			copy(newBuffer[cap(r.buffer)-r.head:length], r.buffer[:r.tail])
		}
	}
	r.head = 0
	r.tail = length % n
	r.buffer = newBuffer
}

func (r *RingDeque[T]) maybeGrow() {
	if r.Len() != cap(r.buffer) {
		return
	}
	n := 2 * cap(r.buffer)
	if n == 0 {
		n = 1
	}
	r.grow(n)
}

// Offer adds v to the end of the deque.
func (r *RingDeque[T]) Offer(v T) bool {
	if r.full() {
		return false
	}
	r.maybeGrow()
	r.buffer[r.tail] = v
	r.tail = (r.tail + 1) % cap(r.buffer)
	r.nonEmpty = true
	return true
}

// OfferFirst adds v to the front of the deque.
func (r *RingDeque[T]) OfferFirst(v T) bool {
	if r.full() {
		return false
	}
	r.maybeGrow()
	r.head = (cap(r.buffer) + r.head - 1) % cap(r.buffer)
	r.buffer[r.head] = v
	r.nonEmpty = true
	return true
}

// Poll removes the front of the deque.
func (r *RingDeque[T]) Poll() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	v := r.buffer[r.head]
	r.buffer[r.head] = zero
	r.head = (r.head + 1) % cap(r.buffer)
	if r.head == r.tail {
		r.nonEmpty = false
	}
	return v, true
}

// PollLast removes the end of the deque.
func (r *RingDeque[T]) PollLast() (T, bool) {
	var zero T
	if r.Len() == 0 {
		return zero, false
	}
	lastPos := (cap(r.buffer) + r.tail - 1) % cap(r.buffer)
	v := r.buffer[lastPos]
	r.buffer[lastPos] = zero
	r.tail = lastPos
	if r.tail == r.head {
		r.nonEmpty = false
	}
	return v, true
}

// PeekAt returns the element at position i (zero-based from the front).
func (r *RingDeque[T]) PeekAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= r.Len() {
		return zero, false
	}
	return r.buffer[(i+r.head)%cap(r.buffer)], true
}

// LinkedDeque is a deque over a doubly-linked list.
// A positive limit bounds the number of elements; zero means unbounded.
type LinkedDeque[T any] struct {
	l     *list.List
	limit int
}

// NewLinkedDeque creates a LinkedDeque holding at most limit elements (0 for no limit).
func NewLinkedDeque[T any](limit int) *LinkedDeque[T] {
	return &LinkedDeque[T]{l: list.New(), limit: limit}
}

func (d *LinkedDeque[T]) Len() int { return d.l.Len() }

func (d *LinkedDeque[T]) full() bool {
	return d.limit > 0 && d.l.Len() >= d.limit
}

func (d *LinkedDeque[T]) Offer(v T) bool {
	if d.full() {
		return false
	}
	d.l.PushBack(v)
	return true
}

func (d *LinkedDeque[T]) OfferFirst(v T) bool {
	if d.full() {
		return false
	}
	d.l.PushFront(v)
	return true
}

func (d *LinkedDeque[T]) Poll() (T, bool) {
	return d.remove(d.l.Front())
}

func (d *LinkedDeque[T]) PollLast() (T, bool) {
	return d.remove(d.l.Back())
}

func (d *LinkedDeque[T]) remove(e *list.Element) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	return d.l.Remove(e).(T), true
}

func (d *LinkedDeque[T]) PeekAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= d.l.Len() {
		return zero, false
	}
	e := d.l.Front()
	for ; i > 0; i-- {
		e = e.Next()
	}
	return e.Value.(T), true
}

// FIFO is a single-ended queue. It deliberately does not implement Deque.
type FIFO[T any] struct {
	ring *RingDeque[T]
}

// NewFIFO creates a FIFO holding at most limit elements (0 for no limit).
func NewFIFO[T any](limit int) *FIFO[T] {
	return &FIFO[T]{ring: NewRingDeque[T](limit)}
}

func (q *FIFO[T]) Offer(v T) bool         { return q.ring.Offer(v) }
func (q *FIFO[T]) Poll() (T, bool)        { return q.ring.Poll() }
func (q *FIFO[T]) PeekAt(i int) (T, bool) { return q.ring.PeekAt(i) }
func (q *FIFO[T]) Len() int               { return q.ring.Len() }
