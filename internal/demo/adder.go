package demo

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Bits is one column of a serial addition: two input bits and the output bit.
type Bits struct {
	X, Y int
	Z    int
}

func (b *Bits) String() string {
	return fmt.Sprintf("%d+%d=%d", b.X, b.Y, b.Z)
}

// NonCarry adds a column with no incoming carry.
// Its tracer is 1 when the column produces a carry.
type NonCarry struct {
	bits  *Bits
	carry int
}

func (s *NonCarry) OnStart() {}

func (s *NonCarry) Invoke(b *Bits) error {
	if b == nil {
		return fmt.Errorf("%w: no bits to add", domain.ErrInvalidArgument)
	}
	s.bits = b
	b.Z = b.X + b.Y
	if b.Z == 2 {
		b.Z = 0
		s.carry = 1
	}
	return nil
}

// OnFinish resets the carry for the next column.
func (s *NonCarry) OnFinish() {
	s.carry = 0
	s.bits = nil
}

func (s *NonCarry) Input() *Bits     { return s.bits }
func (s *NonCarry) SetInput(b *Bits) { s.bits = b }
func (s *NonCarry) Tracer() int      { return s.carry }
func (s *NonCarry) String() string   { return "NonCarry" }

// Carry adds a column with an incoming carry.
// Its tracer is 1 while the carry propagates.
type Carry struct {
	bits  *Bits
	carry int
}

func (s *Carry) OnStart() { s.carry = 1 }

func (s *Carry) Invoke(b *Bits) error {
	if b == nil {
		return fmt.Errorf("%w: no bits to add", domain.ErrInvalidArgument)
	}
	s.bits = b
	b.Z = b.X + b.Y + 1
	if b.Z >= 2 {
		b.Z -= 2
	} else {
		s.carry = 0
	}
	return nil
}

func (s *Carry) OnFinish()        { s.bits = nil }
func (s *Carry) Input() *Bits     { return s.bits }
func (s *Carry) SetInput(b *Bits) { s.bits = b }
func (s *Carry) Tracer() int      { return s.carry }
func (s *Carry) String() string   { return "Carry" }

// SerialAdder adds two numbers one bit column at a time, least significant first.
// The carry decides the next state after every column.
type SerialAdder struct {
	eng      ports.Transiter[*Bits, int]
	nonCarry domain.State[*Bits, int]
	carry    domain.State[*Bits, int]
	delay    time.Duration
	onColumn func(state string, b Bits)
}

// AdderOption configures a SerialAdder.
type AdderOption func(*SerialAdder)

// WithColumnDelay waits before every column.
func WithColumnDelay(d time.Duration) AdderOption {
	return func(a *SerialAdder) {
		a.delay = d
	}
}

// WithColumnHook calls fn after every column with the state that added it.
func WithColumnHook(fn func(state string, b Bits)) AdderOption {
	return func(a *SerialAdder) {
		a.onColumn = fn
	}
}

// NewSerialAdder assigns the adder's entry state on eng.
//
// The non-carry state is held through a deep clone only: the original is
// dropped right away and lives on as the proxy's substrate.
func NewSerialAdder(eng ports.Transiter[*Bits, int], opts ...AdderOption) *SerialAdder {
	a := &SerialAdder{
		eng:      eng,
		nonCarry: domain.Clone[*Bits, int](&NonCarry{}, domain.CloneDeep),
		carry:    &Carry{},
	}
	for _, opt := range opts {
		opt(a)
	}
	eng.AssignNext(a.nonCarry)
	return a
}

// OnTransition picks the state of the next column from the present state's carry.
func (a *SerialAdder) OnTransition(_ context.Context, present domain.State[*Bits, int]) error {
	if a.onColumn != nil {
		a.onColumn(domain.Describe(present), *present.Input())
	}
	if present.Tracer() == 1 {
		a.eng.AssignNext(a.carry)
	} else {
		a.eng.AssignNext(a.nonCarry)
	}
	return nil
}

// Run feeds columns through the engine. Each column's Z is filled in place.
// It reports whether a carry is pending after the last column.
func (a *SerialAdder) Run(ctx context.Context, columns []*Bits) (bool, error) {
	for _, b := range columns {
		if err := a.eng.TransitInputAfter(ctx, a.delay, b, a); err != nil {
			return false, err
		}
	}
	pending, err := a.eng.Slot().Next()
	if err != nil {
		return false, err
	}
	return pending == a.carry, nil
}

// Add sums x and y through the automaton.
func (a *SerialAdder) Add(ctx context.Context, x, y uint64) (uint64, error) {
	columns := Columns(x, y)
	carry, err := a.Run(ctx, columns)
	if err != nil {
		return 0, err
	}
	var sum uint64
	for i, b := range columns {
		sum |= uint64(b.Z) << i
	}
	if carry {
		sum |= 1 << len(columns)
	}
	// Leave the machine ready for the next addition.
	a.eng.AssignNext(a.nonCarry)
	return sum, nil
}

// Columns splits x and y into bit columns, least significant first.
func Columns(x, y uint64) []*Bits {
	var columns []*Bits
	for x > 0 || y > 0 {
		columns = append(columns, &Bits{X: int(x & 1), Y: int(y & 1)})
		x >>= 1
		y >>= 1
	}
	if len(columns) == 0 {
		columns = append(columns, &Bits{})
	}
	return columns
}

// SampleColumns is the fixed bit stream of the adder demo.
func SampleColumns() []*Bits {
	return []*Bits{
		{X: 0, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 0},
		{X: 0, Y: 0},
	}
}
