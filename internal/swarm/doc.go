// Package swarm implements the membership registry and the task
// coordinator of the swarm coordination layer.
//
// A Member is a single worker record: identity, capability sectors,
// capacity, current load, reputation and lifecycle state. The Membership
// registry keys members by id and answers capability-filtered lookups.
// The Coordinator composes a Membership with a taskqueue.Queue and
// implements task distribution (highest-priority task to the most
// reputable capable member), completion recording with reputation
// adjustment, an idle-fraction consensus predicate, and status
// snapshotting.
//
// The Coordinator serializes every operation behind a single mutex; the
// nested registry and queue are plain structs with no locking of their
// own. Task execution itself happens outside this package; the
// coordinator only tracks intent and outcome.
package swarm
