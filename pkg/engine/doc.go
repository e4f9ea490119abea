/*
Package engine executes the transition protocol.

Manager runs one state per call: it reads the pending state from its slot, sets
the input, then calls OnStart, Invoke, the listener and OnFinish, in that order.
The engine holds no loop. Multi-step walks are expressed by a listener that
assigns the next state and transits again, or by pkg/runner.

Deterministic additionally rejects a transition path whose fingerprint was
already accepted under the same name.
*/
package engine
