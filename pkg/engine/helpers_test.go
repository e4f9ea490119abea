package engine_test

import (
	"errors"
	"fmt"
)

// recorder collects protocol calls from every state sharing it.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type probeState struct {
	name   string
	input  string
	tracer string
	rec    *recorder
	fail   bool
}

func newProbe(name string, rec *recorder) *probeState {
	return &probeState{name: name, input: name, rec: rec}
}

func (s *probeState) OnStart() { s.rec.add("%s.start", s.name) }

func (s *probeState) Invoke(input string) error {
	s.rec.add("%s.invoke(%s)", s.name, input)
	if s.fail {
		return errors.New("boom")
	}
	s.tracer = s.name + ":" + input
	return nil
}

func (s *probeState) OnFinish()             { s.rec.add("%s.finish", s.name) }
func (s *probeState) Input() string         { return s.input }
func (s *probeState) SetInput(input string) { s.input = input }
func (s *probeState) Tracer() string        { return s.tracer }
func (s *probeState) String() string        { return s.name }
