package transition_test

type textState struct {
	name  string
	input string
}

func (s *textState) OnStart()                  {}
func (s *textState) Invoke(input string) error { return nil }
func (s *textState) OnFinish()                 {}
func (s *textState) Input() string             { return s.input }
func (s *textState) SetInput(input string)     { s.input = input }
func (s *textState) Tracer() string            { return s.name }
func (s *textState) String() string            { return s.name }

func newState(name string) *textState {
	return &textState{name: name, input: name}
}
