// Package taskqueue implements the priority-ordered task backlog and the
// append-only receipt log of the swarm coordination layer.
//
// The queue holds TaskRequest values sorted descending by priority with a
// stable sort, so equal-priority tasks keep FIFO order. Dequeue removes the
// head; there is no removal by id. Completed work is reported back as an
// immutable TaskReceipt carrying a result integrity digest; receipts are
// only ever appended.
//
// The queue is a plain in-memory structure with no internal locking.
// Callers that share a queue across goroutines must serialize access
// externally (the Coordinator does this with a single mutex spanning each
// whole operation).
package taskqueue
