package tui

import (
	"strings"
	"testing"

	"github.com/hivegrid/hivegrid/internal/config"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/swarm"
	"github.com/hivegrid/hivegrid/internal/taskqueue"
)

func testCoordinator() *swarm.Coordinator {
	c := swarm.NewCoordinator()
	c.RegisterMember(swarm.NewMember("member-1", "worker 1").RegisterSector("compute"))
	c.RegisterMember(swarm.NewMember("member-2", "worker 2").RegisterSector("storage"))
	return c
}

func TestModel_AdvanceDrainsBacklog(t *testing.T) {
	c := testCoordinator()
	for i := 0; i < 3; i++ {
		c.SubmitTask(taskqueue.NewTaskRequest("op", "in").AddSector("compute"))
	}

	m := NewModel(c, config.Default())
	for i := 0; i < 20; i++ {
		m.advance()
	}

	status := c.Status()
	if status.QueuedTasks != 0 {
		t.Errorf("backlog = %d, want 0", status.QueuedTasks)
	}
	if status.CompletedTasks != 3 {
		t.Errorf("receipts = %d, want 3", status.CompletedTasks)
	}
	if !m.drained {
		t.Error("model should notice the drained backlog")
	}
	if len(m.pending) != 0 {
		t.Errorf("pending assignments = %d, want 0", len(m.pending))
	}
}

func TestModel_View_ShowsMembers(t *testing.T) {
	m := NewModel(testCoordinator(), config.Default())

	view := m.View()
	if !strings.Contains(view, "member-1") || !strings.Contains(view, "member-2") {
		t.Errorf("view missing members:\n%s", view)
	}
	if !strings.Contains(view, "q: quit") {
		t.Error("view missing help line")
	}
}

func TestFormatEvent(t *testing.T) {
	assigned := formatEvent(event.NewTaskAssignedEvent("task-12345678", "member-1", 2))
	if !strings.Contains(assigned, "member-1") || !strings.Contains(assigned, "2 candidates") {
		t.Errorf("assigned line = %q", assigned)
	}

	completed := formatEvent(event.NewTaskCompletedEvent("task-12345678", "member-1", false))
	if !strings.Contains(completed, "failed") {
		t.Errorf("completed line = %q", completed)
	}

	generic := formatEvent(event.NewMemberRemovedEvent("member-1"))
	if !strings.Contains(generic, event.TypeMemberRemoved) {
		t.Errorf("generic line = %q", generic)
	}
}
