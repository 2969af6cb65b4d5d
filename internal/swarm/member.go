package swarm

import (
	"time"

	"github.com/hivegrid/hivegrid/internal/errors"
)

// Default values for newly registered members.
const (
	// DefaultCapacity is the concurrent-task capacity of a new member.
	DefaultCapacity = 10

	// DefaultReputation is the starting reputation of a new member.
	DefaultReputation = 100

	// MinReputation and MaxReputation bound every reputation update.
	MinReputation = 0
	MaxReputation = 100
)

// MemberState represents the lifecycle state of a member.
type MemberState string

const (
	// StateAlive indicates the member is available for assignments.
	StateAlive MemberState = "alive"

	// StateBusy indicates the member's load has reached its capacity.
	StateBusy MemberState = "busy"

	// StateOffline indicates the member was externally marked offline.
	// A heartbeat is the only path back to alive.
	StateOffline MemberState = "offline"

	// StateFailed indicates the member was externally marked failed.
	// Nothing in this core produces or recovers from it; the value is
	// reserved for caller-supplied fault detection.
	StateFailed MemberState = "failed"
)

// String returns the string representation of the member state.
func (s MemberState) String() string {
	return string(s)
}

// Member is a single worker record. Invariant: 0 <= CurrentLoad <=
// Capacity at all times, and State is busy exactly when load has reached
// capacity (unless the member was externally forced offline or failed).
//
// Members are mutated only through AssignTask, CompleteTask, Heartbeat,
// UpdateReputation and the registration setters; they are never destroyed
// here (removal is a registry operation).
type Member struct {
	// ID uniquely identifies the member.
	ID string `json:"id"`

	// DisplayName is the human-readable member name.
	DisplayName string `json:"display_name"`

	// Sectors is the set of capability domains the member serves, in
	// registration order with duplicates ignored.
	Sectors []string `json:"sectors"`

	// State is the current lifecycle state.
	State MemberState `json:"state"`

	// Capacity is the number of tasks the member can hold at once.
	Capacity int `json:"capacity"`

	// CurrentLoad is the number of tasks currently assigned.
	CurrentLoad int `json:"current_load"`

	// Reputation is the member's standing, clamped to [0, 100].
	Reputation int `json:"reputation"`

	// LastHeartbeat is the last time the member reported in.
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// NewMember creates a Member with default capacity and reputation in the
// alive state.
func NewMember(id, displayName string) *Member {
	return &Member{
		ID:            id,
		DisplayName:   displayName,
		Sectors:       []string{},
		State:         StateAlive,
		Capacity:      DefaultCapacity,
		Reputation:    DefaultReputation,
		LastHeartbeat: time.Now(),
	}
}

// RegisterSector adds a capability sector. Duplicates are ignored, so
// registration is idempotent. Returns the member for chaining.
func (m *Member) RegisterSector(sector string) *Member {
	for _, s := range m.Sectors {
		if s == sector {
			return m
		}
	}
	m.Sectors = append(m.Sectors, sector)
	return m
}

// RegisterSectors adds multiple capability sectors, ignoring duplicates.
func (m *Member) RegisterSectors(sectors ...string) *Member {
	for _, s := range sectors {
		m.RegisterSector(s)
	}
	return m
}

// SetCapacity sets the member's concurrent-task capacity and returns the
// member for chaining.
func (m *Member) SetCapacity(capacity int) *Member {
	m.Capacity = capacity
	return m
}

// CanHandle reports whether the member serves the given sector.
func (m *Member) CanHandle(sector string) bool {
	for _, s := range m.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

// HasCapacity reports whether the member can take another task.
func (m *Member) HasCapacity() bool {
	return m.CurrentLoad < m.Capacity
}

// AssignTask accepts one task's worth of load. It fails with
// ErrMemberAtCapacity when the member is full and with
// ErrMemberUnavailable when the member is not alive. Reaching capacity
// transitions the member to busy.
func (m *Member) AssignTask() error {
	if !m.HasCapacity() {
		return errors.NewCoordinationError("cannot accept task", errors.ErrMemberAtCapacity).
			WithMemberID(m.ID)
	}
	if m.State != StateAlive {
		return errors.NewCoordinationError("cannot accept task", errors.ErrMemberUnavailable).
			WithMemberID(m.ID).
			WithMemberState(m.State.String())
	}

	m.CurrentLoad++
	if m.CurrentLoad >= m.Capacity {
		m.State = StateBusy
	}
	return nil
}

// CompleteTask releases one task's worth of load (floor zero), returns
// the member to alive when load drops below capacity, and refreshes the
// heartbeat.
func (m *Member) CompleteTask() {
	if m.CurrentLoad > 0 {
		m.CurrentLoad--
	}
	if m.CurrentLoad < m.Capacity {
		m.State = StateAlive
	}
	m.LastHeartbeat = time.Now()
}

// Heartbeat refreshes the member's liveness timestamp. An offline member
// comes back alive; this is the only path out of offline.
func (m *Member) Heartbeat() {
	m.LastHeartbeat = time.Now()
	if m.State == StateOffline {
		m.State = StateAlive
	}
}

// UpdateReputation applies a signed delta, clamping the result to
// [MinReputation, MaxReputation].
func (m *Member) UpdateReputation(delta int) {
	m.Reputation += delta
	if m.Reputation > MaxReputation {
		m.Reputation = MaxReputation
	}
	if m.Reputation < MinReputation {
		m.Reputation = MinReputation
	}
}

// SetState forces a lifecycle state. Intended for external fault
// detection marking members offline or failed; the coordinator itself
// never calls it.
func (m *Member) SetState(state MemberState) {
	m.State = state
}
