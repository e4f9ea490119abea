/*
Package domain contains the core contracts of the automata engine.

It defines what a state is, how a state is observed while it runs, and the errors
the engine surfaces. This package is kept pure and free of I/O, persistence or
scheduling concerns, so every other package can depend on it.

# Key Entities

  - State: A unit implementing the start/act/finish protocol with its own input and tracer.
  - Proxy: A deep clone of a State that forwards every call to its substrate.
  - Listener: A synchronous callback fired between Invoke and OnFinish.
  - LifecycleHooks: Observability callbacks fired around every transition.
*/
package domain
