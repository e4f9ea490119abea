/*
Package automata is a finite-state-automaton execution engine.

Applications implement domain.State for each state of their automaton and let
an engine drive them: the engine holds the pending state in a slot, runs it on
an input through a fixed protocol (SetInput, OnStart, Invoke, listener,
OnFinish) and lets the listener decide what comes next.

# Concept

A transition path names a present state and a next state. Running a path runs
its present state and schedules its next one. Cascading paths queue an
arbitrary number of states and hand them out in order, and a deterministic
engine refuses to run the same path twice.

# Usage

	eng, err := automata.New[string, string](automata.WithDeterministic(true))
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	path := transition.NewPath[string, string]("Armature-Mover-Map", idle, walking)
	if _, err := eng.Walk(ctx, path, nil); err != nil {
		log.Fatal(err)
	}

	// Running the same path again fails with domain.ErrDuplicatePath.

# Logging

Engines log through a process-wide sink that is off by default. Turn it on once
at startup:

	automata.InitLogging(automata.LogConfig{Enabled: true, Level: slog.LevelDebug})
*/
package automata
