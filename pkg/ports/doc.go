/*
Package ports defines the driven ports (interfaces) of the automata engine.

These interfaces decouple the engines from external implementations, allowing the
deterministic bookkeeping and its coordination to live in memory or in a shared
backend such as Redis.

# Key Interfaces

  - PathRegistry: Records the fingerprint of every accepted transition path, keyed by name.
  - DistributedLocker: Provides distributed locking around check-and-record sequences.
  - Transiter: The engine surface consumed by runners and hosts.
*/
package ports
