package domain

import (
	"errors"
	"fmt"
)

// ErrNoNextState is returned when a transition is requested with nothing assigned.
var ErrNoNextState = errors.New("no next state assigned")

// ErrDuplicatePath is matched by DuplicatePathError when a deterministic engine detects a replay.
var ErrDuplicatePath = errors.New("transition path is not unique")

// ErrUnsupportedOperation is returned when head insertion or tail removal is
// attempted on a single-ended queue backing.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrInvalidArgument is returned when a required argument is nil.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrTransitionCanceled is returned when a timed transition is interrupted before its delay elapses.
var ErrTransitionCanceled = errors.New("transition canceled")

// ErrQueueFull is returned when a cascading path's backing queue rejects an offer.
var ErrQueueFull = errors.New("state queue is full")

// ErrStepLimit is returned when a walk exceeds its configured number of steps.
var ErrStepLimit = errors.New("step limit reached")

// DuplicatePathError names the transition path rejected by a deterministic engine.
type DuplicatePathError struct {
	Name string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("transition path `%s` is not unique", e.Name)
}

// Is reports whether target is ErrDuplicatePath.
func (e *DuplicatePathError) Is(target error) bool {
	return target == ErrDuplicatePath
}
