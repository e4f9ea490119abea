/*
Package lock provides keyed mutual exclusion for callers sharing an engine.

Keyed hands out one in-process mutex per key, reference counted so unused keys
are garbage collected, and optionally layers a ports.DistributedLocker on top so
several processes sharing a registry serialize the same keys.
*/
package lock
