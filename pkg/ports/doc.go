/*
Package ports defines the driven ports (interfaces) of the Compass engine.

These interfaces decouple the turn engine from external implementations,
allowing it to run against various session backends and menu sources.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading a conversation Session.
  - DistributedLocker: Provides distributed locking so overlapping webhook
    retries for one call never interleave across replicas.
  - MenuLoader: Responsible for producing the restaurant menu (file or memory).
*/
package ports
