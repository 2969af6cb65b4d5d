package swarm

import (
	"testing"
	"time"

	"github.com/hivegrid/hivegrid/internal/errors"
)

func TestNewMember_Defaults(t *testing.T) {
	m := NewMember("m-1", "desk reviewer")

	if m.State != StateAlive {
		t.Errorf("state = %s, want alive", m.State)
	}
	if m.Capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", m.Capacity, DefaultCapacity)
	}
	if m.Reputation != DefaultReputation {
		t.Errorf("reputation = %d, want %d", m.Reputation, DefaultReputation)
	}
	if m.CurrentLoad != 0 {
		t.Errorf("load = %d, want 0", m.CurrentLoad)
	}
	if m.LastHeartbeat.IsZero() {
		t.Error("last heartbeat should be set")
	}
}

func TestMember_RegisterSector_Idempotent(t *testing.T) {
	m := NewMember("m-1", "reviewer").
		RegisterSector("Academic").
		RegisterSector("Academic").
		RegisterSectors("Enterprise Claims", "Academic")

	if len(m.Sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %v", m.Sectors)
	}
	if !m.CanHandle("Academic") || !m.CanHandle("Enterprise Claims") {
		t.Errorf("CanHandle lost a registered sector: %v", m.Sectors)
	}
	if m.CanHandle("Logistics") {
		t.Error("CanHandle should reject an unregistered sector")
	}
}

func TestMember_AssignTask_TransitionsToBusy(t *testing.T) {
	m := NewMember("m-1", "reviewer").SetCapacity(2)

	if err := m.AssignTask(); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if m.State != StateAlive {
		t.Errorf("state after 1/2 = %s, want alive", m.State)
	}

	if err := m.AssignTask(); err != nil {
		t.Fatalf("second assign failed: %v", err)
	}
	if m.State != StateBusy {
		t.Errorf("state at capacity = %s, want busy", m.State)
	}
	if m.CurrentLoad != 2 {
		t.Errorf("load = %d, want 2", m.CurrentLoad)
	}
}

func TestMember_CapacityExhaustionAndRecovery(t *testing.T) {
	m := NewMember("m-1", "reviewer").SetCapacity(2)

	if err := m.AssignTask(); err != nil {
		t.Fatalf("assign 1: %v", err)
	}
	if err := m.AssignTask(); err != nil {
		t.Fatalf("assign 2: %v", err)
	}

	err := m.AssignTask()
	if err == nil {
		t.Fatal("third assign should fail at capacity")
	}
	if !errors.Is(err, errors.ErrMemberAtCapacity) {
		t.Errorf("error = %v, want ErrMemberAtCapacity", err)
	}
	if m.CurrentLoad != 2 {
		t.Errorf("failed assign must not change load, got %d", m.CurrentLoad)
	}

	m.CompleteTask()
	if m.State != StateAlive {
		t.Errorf("state after completion = %s, want alive", m.State)
	}
	if err := m.AssignTask(); err != nil {
		t.Errorf("assign after completion should succeed, got %v", err)
	}
}

func TestMember_AssignTask_Unavailable(t *testing.T) {
	for _, state := range []MemberState{StateOffline, StateFailed} {
		m := NewMember("m-1", "reviewer")
		m.SetState(state)

		err := m.AssignTask()
		if err == nil {
			t.Fatalf("assign to %s member should fail", state)
		}
		if !errors.Is(err, errors.ErrMemberUnavailable) {
			t.Errorf("error = %v, want ErrMemberUnavailable", err)
		}

		var coordErr *errors.CoordinationError
		if !errors.As(err, &coordErr) {
			t.Fatal("expected a CoordinationError")
		}
		if coordErr.MemberState != state.String() {
			t.Errorf("error state = %q, want %q", coordErr.MemberState, state)
		}
	}
}

func TestMember_CompleteTask_FloorsAtZero(t *testing.T) {
	m := NewMember("m-1", "reviewer")
	m.CompleteTask()
	if m.CurrentLoad != 0 {
		t.Errorf("load = %d, want 0 (floor)", m.CurrentLoad)
	}
}

func TestMember_CompleteTask_RefreshesHeartbeat(t *testing.T) {
	m := NewMember("m-1", "reviewer")
	m.LastHeartbeat = time.Now().Add(-time.Hour)
	before := m.LastHeartbeat

	m.CompleteTask()
	if !m.LastHeartbeat.After(before) {
		t.Error("CompleteTask should refresh the heartbeat")
	}
}

func TestMember_Heartbeat_RevivesOffline(t *testing.T) {
	m := NewMember("m-1", "reviewer")
	m.SetState(StateOffline)

	m.Heartbeat()
	if m.State != StateAlive {
		t.Errorf("state after heartbeat = %s, want alive", m.State)
	}
}

func TestMember_Heartbeat_DoesNotReviveFailed(t *testing.T) {
	m := NewMember("m-1", "reviewer")
	m.SetState(StateFailed)

	m.Heartbeat()
	if m.State != StateFailed {
		t.Errorf("heartbeat must not revive a failed member, state = %s", m.State)
	}
}

func TestMember_UpdateReputation_Clamped(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"reward within range", 90, 5, 95},
		{"reward clamped at max", 98, 5, 100},
		{"penalty within range", 50, -10, 40},
		{"penalty clamped at min", 5, -10, 0},
		{"large negative", 100, -500, 0},
		{"large positive", 0, 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMember("m-1", "reviewer")
			m.Reputation = tt.start
			m.UpdateReputation(tt.delta)
			if m.Reputation != tt.want {
				t.Errorf("reputation = %d, want %d", m.Reputation, tt.want)
			}
		})
	}
}

func TestMember_CapacityInvariantUnderChurn(t *testing.T) {
	m := NewMember("m-1", "reviewer").SetCapacity(3)

	// Drive the member through a mixed sequence and check the invariant
	// plus state consistency after every step.
	steps := []func(){
		func() { _ = m.AssignTask() },
		func() { _ = m.AssignTask() },
		func() { m.CompleteTask() },
		func() { _ = m.AssignTask() },
		func() { _ = m.AssignTask() },
		func() { _ = m.AssignTask() }, // over capacity, must fail silently here
		func() { m.CompleteTask() },
		func() { m.CompleteTask() },
		func() { m.CompleteTask() },
		func() { m.CompleteTask() }, // below zero, must floor
		func() { m.Heartbeat() },
	}
	for i, step := range steps {
		step()
		if m.CurrentLoad < 0 || m.CurrentLoad > m.Capacity {
			t.Fatalf("step %d: load %d violates 0 <= load <= %d", i, m.CurrentLoad, m.Capacity)
		}
		wantBusy := m.CurrentLoad == m.Capacity
		if (m.State == StateBusy) != wantBusy {
			t.Fatalf("step %d: state %s inconsistent with load %d/%d", i, m.State, m.CurrentLoad, m.Capacity)
		}
	}
}
