package taskqueue

import (
	"time"

	"github.com/google/uuid"

	"github.com/hivegrid/hivegrid/internal/integrity"
)

// TaskStatus represents the reported outcome state of a task.
type TaskStatus string

const (
	// StatusQueued indicates the task is waiting in the backlog.
	StatusQueued TaskStatus = "queued"

	// StatusExecuting indicates the task has been assigned and is running.
	StatusExecuting TaskStatus = "executing"

	// StatusCompleted indicates the task finished successfully.
	StatusCompleted TaskStatus = "completed"

	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "failed"

	// StatusCancelled indicates the task was cancelled before completion.
	// Nothing in this core produces it; the value is reserved for a
	// caller-supplied scheduler.
	StatusCancelled TaskStatus = "cancelled"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// TaskRequest describes a unit of work to be routed to a swarm member.
// The operation and input are opaque to the coordination layer; execution
// happens externally. Requests are immutable once enqueued; WithPriority
// and AddSector are builder-style mutators used before enqueue.
type TaskRequest struct {
	// ID uniquely identifies the task.
	ID string `json:"id"`

	// Sectors lists the capability domains the task requires, in
	// insertion order. The first entry is the primary sector.
	Sectors []string `json:"sectors"`

	// Operation is the opaque operation name (e.g., "desk-review").
	Operation string `json:"operation"`

	// Input is the opaque operation input.
	Input string `json:"input"`

	// Priority orders the backlog; higher runs first. No enforced bound.
	Priority int `json:"priority"`

	// Deadline is reserved for caller-side schedulers; the coordination
	// layer never compares it against the clock.
	Deadline time.Time `json:"deadline"`
}

// NewTaskRequest creates a TaskRequest with a generated id and zero
// priority.
func NewTaskRequest(operation, input string) *TaskRequest {
	return &TaskRequest{
		ID:        uuid.NewString(),
		Sectors:   []string{},
		Operation: operation,
		Input:     input,
	}
}

// WithPriority sets the task priority and returns the request for
// chaining.
func (t *TaskRequest) WithPriority(priority int) *TaskRequest {
	t.Priority = priority
	return t
}

// WithDeadline sets the task deadline and returns the request for
// chaining.
func (t *TaskRequest) WithDeadline(deadline time.Time) *TaskRequest {
	t.Deadline = deadline
	return t
}

// AddSector appends a required sector, ignoring duplicates. Insertion
// order is preserved; the first sector added is the primary one.
func (t *TaskRequest) AddSector(sector string) *TaskRequest {
	for _, s := range t.Sectors {
		if s == sector {
			return t
		}
	}
	t.Sectors = append(t.Sectors, sector)
	return t
}

// PrimarySector returns the first required sector, or "" if none is set.
func (t *TaskRequest) PrimarySector() string {
	if len(t.Sectors) == 0 {
		return ""
	}
	return t.Sectors[0]
}

// TaskReceipt is the immutable record of a task's outcome. It is produced
// exactly once per completion and appended to the queue's receipt log.
type TaskReceipt struct {
	// TaskID identifies the task this receipt proves.
	TaskID string `json:"task_id"`

	// AgentID is the member that executed the task.
	AgentID string `json:"agent_id"`

	// Sectors are the capability domains the task required.
	Sectors []string `json:"sectors"`

	// Status is the reported outcome.
	Status TaskStatus `json:"status"`

	// Result is the opaque operation output.
	Result string `json:"result"`

	// ExecutionTimeMs is the reported wall-clock execution time.
	ExecutionTimeMs int64 `json:"execution_time_ms"`

	// Timestamp is when the receipt was created.
	Timestamp time.Time `json:"timestamp"`

	// ResultIntegrityHash is the SHA-256 digest of Result.
	ResultIntegrityHash string `json:"result_integrity_hash"`

	// Metadata carries caller-defined annotations.
	Metadata map[string]string `json:"metadata"`
}

// NewReceipt creates a TaskReceipt for the given task outcome. The result
// integrity digest is computed at construction so the receipt is complete
// and immutable from the start.
func NewReceipt(task *TaskRequest, agentID string, status TaskStatus, result string, executionTimeMs int64) *TaskReceipt {
	sectors := append([]string(nil), task.Sectors...)
	return &TaskReceipt{
		TaskID:              task.ID,
		AgentID:             agentID,
		Sectors:             sectors,
		Status:              status,
		Result:              result,
		ExecutionTimeMs:     executionTimeMs,
		Timestamp:           time.Now(),
		ResultIntegrityHash: integrity.HashString(result),
		Metadata:            make(map[string]string),
	}
}

// WithMetadata sets a metadata key and returns the receipt for chaining.
// Intended for use during construction only.
func (r *TaskReceipt) WithMetadata(key, value string) *TaskReceipt {
	r.Metadata[key] = value
	return r
}

// IsSuccess returns true only for completed receipts. Failed and
// cancelled receipts, and receipts still marked queued or executing, all
// report false.
func (r *TaskReceipt) IsSuccess() bool {
	return r.Status == StatusCompleted
}
