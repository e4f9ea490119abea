/*
Package transition holds the data structures a transition engine consumes.

  - Slot: a single-owner holder of the next state to run.
  - Path: a named pair of present and next states, the unit of replay tracking.
  - CascadingPath: a Path whose present/next access is backed by a queue, so a
    caller can walk an arbitrary chain of states one at a time.

Queues are pluggable. RingDeque (circular buffer) and LinkedDeque (doubly-linked
list) are double-ended; FIFO is single-ended and refuses head insertion and tail
removal.
*/
package transition
