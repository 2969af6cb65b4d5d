// Package event defines the swarm event types and a synchronous pub-sub
// bus for decoupling components. The coordinator publishes lifecycle
// events here so that observers (CLI output, dashboard, logs) can react
// without a direct dependency on the coordination internals.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "task.assigned", "member.registered")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers published by the coordination layer.
const (
	TypeMemberRegistered = "member.registered"
	TypeMemberRemoved    = "member.removed"
	TypeTaskSubmitted    = "task.submitted"
	TypeTaskAssigned     = "task.assigned"
	TypeTaskCompleted    = "task.completed"
	TypeConsensusChecked = "consensus.checked"
	TypeChainAdvanced    = "chain.advanced"
	TypeChainCompleted   = "chain.completed"
)

// MemberRegisteredEvent is emitted when a member joins the swarm.
type MemberRegisteredEvent struct {
	baseEvent
	MemberID string   // Member identifier
	Name     string   // Display name
	Sectors  []string // Capability sectors the member serves
	Capacity int      // Concurrent task capacity
}

// NewMemberRegisteredEvent creates a MemberRegisteredEvent.
func NewMemberRegisteredEvent(memberID, name string, sectors []string, capacity int) MemberRegisteredEvent {
	return MemberRegisteredEvent{
		baseEvent: newBaseEvent(TypeMemberRegistered),
		MemberID:  memberID,
		Name:      name,
		Sectors:   sectors,
		Capacity:  capacity,
	}
}

// MemberRemovedEvent is emitted when a member leaves the registry.
type MemberRemovedEvent struct {
	baseEvent
	MemberID string
}

// NewMemberRemovedEvent creates a MemberRemovedEvent.
func NewMemberRemovedEvent(memberID string) MemberRemovedEvent {
	return MemberRemovedEvent{
		baseEvent: newBaseEvent(TypeMemberRemoved),
		MemberID:  memberID,
	}
}

// TaskSubmittedEvent is emitted when a task request enters the backlog.
type TaskSubmittedEvent struct {
	baseEvent
	TaskID    string
	Operation string
	Priority  int
	Sectors   []string
}

// NewTaskSubmittedEvent creates a TaskSubmittedEvent.
func NewTaskSubmittedEvent(taskID, operation string, priority int, sectors []string) TaskSubmittedEvent {
	return TaskSubmittedEvent{
		baseEvent: newBaseEvent(TypeTaskSubmitted),
		TaskID:    taskID,
		Operation: operation,
		Priority:  priority,
		Sectors:   sectors,
	}
}

// TaskAssignedEvent is emitted when a task is routed to a member.
type TaskAssignedEvent struct {
	baseEvent
	TaskID     string
	MemberID   string
	Candidates int // Size of the candidate set considered for this task
}

// NewTaskAssignedEvent creates a TaskAssignedEvent.
func NewTaskAssignedEvent(taskID, memberID string, candidates int) TaskAssignedEvent {
	return TaskAssignedEvent{
		baseEvent:  newBaseEvent(TypeTaskAssigned),
		TaskID:     taskID,
		MemberID:   memberID,
		Candidates: candidates,
	}
}

// TaskCompletedEvent is emitted when a completion receipt is recorded.
type TaskCompletedEvent struct {
	baseEvent
	TaskID   string
	MemberID string
	Success  bool
}

// NewTaskCompletedEvent creates a TaskCompletedEvent.
func NewTaskCompletedEvent(taskID, memberID string, success bool) TaskCompletedEvent {
	return TaskCompletedEvent{
		baseEvent: newBaseEvent(TypeTaskCompleted),
		TaskID:    taskID,
		MemberID:  memberID,
		Success:   success,
	}
}

// ConsensusCheckedEvent is emitted after a consensus evaluation.
type ConsensusCheckedEvent struct {
	baseEvent
	Sector  string
	Idle    int  // Members of the sector with zero load
	Total   int  // All members serving the sector
	Reached bool // Whether the idle fraction met the threshold
}

// NewConsensusCheckedEvent creates a ConsensusCheckedEvent.
func NewConsensusCheckedEvent(sector string, idle, total int, reached bool) ConsensusCheckedEvent {
	return ConsensusCheckedEvent{
		baseEvent: newBaseEvent(TypeConsensusChecked),
		Sector:    sector,
		Idle:      idle,
		Total:     total,
		Reached:   reached,
	}
}

// ChainAdvancedEvent is emitted when an operation chain moves to its
// next step.
type ChainAdvancedEvent struct {
	baseEvent
	ChainID string
	StepID  string
	Index   int
}

// NewChainAdvancedEvent creates a ChainAdvancedEvent.
func NewChainAdvancedEvent(chainID, stepID string, index int) ChainAdvancedEvent {
	return ChainAdvancedEvent{
		baseEvent: newBaseEvent(TypeChainAdvanced),
		ChainID:   chainID,
		StepID:    stepID,
		Index:     index,
	}
}

// ChainCompletedEvent is emitted when an operation chain finishes.
type ChainCompletedEvent struct {
	baseEvent
	ChainID string
	Success bool
}

// NewChainCompletedEvent creates a ChainCompletedEvent.
func NewChainCompletedEvent(chainID string, success bool) ChainCompletedEvent {
	return ChainCompletedEvent{
		baseEvent: newBaseEvent(TypeChainCompleted),
		ChainID:   chainID,
		Success:   success,
	}
}
