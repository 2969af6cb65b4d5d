package swarm

import (
	"sort"
	"sync"

	"github.com/hivegrid/hivegrid/internal/errors"
	"github.com/hivegrid/hivegrid/internal/event"
	"github.com/hivegrid/hivegrid/internal/logging"
	"github.com/hivegrid/hivegrid/internal/taskqueue"
)

// DefaultConsensusThreshold is the idle fraction a sector's members must
// meet for CheckConsensus to pass.
const DefaultConsensusThreshold = 0.66

// Reputation adjustments applied when a completion receipt is recorded.
const (
	defaultReputationReward  = 5
	defaultReputationPenalty = 10
)

// SwarmStatus is a point-in-time snapshot of the whole swarm.
type SwarmStatus struct {
	SwarmID        string `json:"swarm_id"`
	TotalMembers   int    `json:"total_members"`
	ActiveMembers  int    `json:"active_members"`
	TotalCapacity  int    `json:"total_capacity"`
	CurrentTasks   int    `json:"current_tasks"`
	QueuedTasks    int    `json:"queued_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
}

// Coordinator composes a Membership registry with a task queue and
// implements assignment, completion recording, the consensus predicate
// and status snapshotting. A single mutex serializes every operation;
// each call is atomic with respect to the others.
type Coordinator struct {
	mu sync.Mutex

	membership  *Membership
	queue       *taskqueue.Queue
	assignments map[string]string // taskID -> memberID, never cleared

	threshold         float64
	reputationReward  int
	reputationPenalty int

	bus    *event.Bus      // optional; nil means no events
	logger *logging.Logger // never nil; defaults to a nop logger
}

// candidate is one (member, reputation) pair gathered during selection.
// A member appears once per matched sector, so a member serving two of a
// task's sectors contributes two candidates. The duplication is
// observable in instrumentation and is kept intentionally; it cannot
// change the winner because selection is by maximum reputation.
type candidate struct {
	memberID   string
	reputation int
}

// NewCoordinator creates a Coordinator with a fresh registry and queue.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		membership:        NewMembership(),
		queue:             taskqueue.NewQueue(),
		assignments:       make(map[string]string),
		threshold:         DefaultConsensusThreshold,
		reputationReward:  defaultReputationReward,
		reputationPenalty: defaultReputationPenalty,
		logger:            logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Membership returns the underlying registry.
func (c *Coordinator) Membership() *Membership { return c.membership }

// Queue returns the underlying task queue.
func (c *Coordinator) Queue() *taskqueue.Queue { return c.queue }

// RegisterMember inserts a member into the registry, overwriting any
// existing member with the same id.
func (c *Coordinator) RegisterMember(m *Member) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.membership.Add(m)
	c.logger.WithSwarm(c.membership.SwarmID).Info("member registered",
		"member_id", m.ID, "sectors", m.Sectors, "capacity", m.Capacity)
	c.publish(event.NewMemberRegisteredEvent(m.ID, m.DisplayName, m.Sectors, m.Capacity))
}

// RemoveMember deletes a member from the registry. Returns true if the
// member existed. In-flight assignments to the member are left in the
// assignment map.
func (c *Coordinator) RemoveMember(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := c.membership.Remove(id)
	if removed {
		c.publish(event.NewMemberRemovedEvent(id))
	}
	return removed
}

// SubmitTask enqueues a task request into the backlog.
func (c *Coordinator) SubmitTask(task *taskqueue.TaskRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.Enqueue(task)
	c.logger.WithTask(task.ID).Debug("task submitted",
		"operation", task.Operation, "priority", task.Priority, "sectors", task.Sectors)
	c.publish(event.NewTaskSubmittedEvent(task.ID, task.Operation, task.Priority, task.Sectors))
}

// DistributeNextTask dequeues the highest-priority task and assigns it to
// the most reputable member that serves one of its sectors with spare
// capacity. When several candidates share the maximum reputation the pick
// is not deterministic: candidates are gathered from an unordered
// registry.
//
// On failure the dequeued task is NOT returned to the backlog; callers
// needing at-least-once handling must re-submit. The returned error
// wraps ErrQueueEmpty, ErrNoCapableMember, ErrMemberAtCapacity or
// ErrMemberUnavailable, and errors.IsRetryable distinguishes transient
// conditions from hard routing failures.
func (c *Coordinator) DistributeNextTask() (taskID, memberID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	task := c.queue.Dequeue()
	if task == nil {
		return "", "", errors.NewCoordinationError("no tasks to distribute", errors.ErrQueueEmpty)
	}

	candidates := c.gatherCandidates(task)
	if len(candidates) == 0 {
		c.logger.WithTask(task.ID).Warn("no capable member", "sectors", task.Sectors)
		return "", "", errors.NewCoordinationError("distribution failed", errors.ErrNoCapableMember).
			WithTaskID(task.ID)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].reputation > candidates[j].reputation
	})
	winner := candidates[0].memberID

	member, ok := c.membership.Get(winner)
	if !ok {
		// Candidates came from the registry under the same lock, so a
		// missing winner means the registry was corrupted externally.
		return "", "", errors.NewCoordinationError("winning candidate vanished", errors.ErrMemberNotFound).
			WithTaskID(task.ID).
			WithMemberID(winner)
	}
	if err := member.AssignTask(); err != nil {
		return "", "", errors.Wrapf(err, "assigning task %s", task.ID)
	}

	c.assignments[task.ID] = winner
	c.logger.WithTask(task.ID).WithMember(winner).Info("task assigned",
		"candidates", len(candidates), "reputation", candidates[0].reputation)
	c.publish(event.NewTaskAssignedEvent(task.ID, winner, len(candidates)))

	return task.ID, winner, nil
}

// gatherCandidates collects (member, reputation) pairs for every sector
// on the task, one entry per sector a member serves.
func (c *Coordinator) gatherCandidates(task *taskqueue.TaskRequest) []candidate {
	var candidates []candidate
	for _, sector := range task.Sectors {
		for _, m := range c.membership.MembersForSector(sector) {
			if m.HasCapacity() {
				candidates = append(candidates, candidate{memberID: m.ID, reputation: m.Reputation})
			}
		}
	}
	return candidates
}

// RecordCompletion records a task receipt: the executing member's load is
// released, its reputation adjusted (reward on success, penalty
// otherwise), and the receipt appended to the log. The receipt's agent id
// is trusted as reported; it is not validated against the assignment map.
func (c *Coordinator) RecordCompletion(receipt *taskqueue.TaskReceipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	member, ok := c.membership.Get(receipt.AgentID)
	if !ok {
		return errors.NewCoordinationError("cannot record completion", errors.ErrMemberNotFound).
			WithTaskID(receipt.TaskID).
			WithMemberID(receipt.AgentID)
	}

	member.CompleteTask()
	if receipt.IsSuccess() {
		member.UpdateReputation(c.reputationReward)
	} else {
		member.UpdateReputation(-c.reputationPenalty)
	}
	c.queue.RecordReceipt(receipt)

	c.logger.WithTask(receipt.TaskID).WithMember(receipt.AgentID).Info("completion recorded",
		"status", receipt.Status, "reputation", member.Reputation)
	c.publish(event.NewTaskCompletedEvent(receipt.TaskID, receipt.AgentID, receipt.IsSuccess()))

	return nil
}

// CheckConsensus reports whether the idle fraction of the sector's
// members meets the threshold. Idle means zero current load, which is a
// stricter condition than being in the alive state. Returns false for a
// sector with no members.
func (c *Coordinator) CheckConsensus(sector string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	members := c.membership.MembersForSector(sector)
	total := len(members)
	if total == 0 {
		c.publish(event.NewConsensusCheckedEvent(sector, 0, 0, false))
		return false
	}

	idle := 0
	for _, m := range members {
		if m.CurrentLoad == 0 {
			idle++
		}
	}

	reached := float64(idle)/float64(total) >= c.threshold
	c.logger.Debug("consensus checked",
		"sector", sector, "idle", idle, "total", total, "reached", reached)
	c.publish(event.NewConsensusCheckedEvent(sector, idle, total, reached))
	return reached
}

// AssignedMember returns the member a task was routed to. Assignments are
// kept for the life of the coordinator, including after completion.
func (c *Coordinator) AssignedMember(taskID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	memberID, ok := c.assignments[taskID]
	return memberID, ok
}

// Status returns a snapshot of swarm-wide counts.
func (c *Coordinator) Status() SwarmStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	return SwarmStatus{
		SwarmID:        c.membership.SwarmID,
		TotalMembers:   c.membership.Count(),
		ActiveMembers:  c.membership.ActiveCount(),
		TotalCapacity:  c.membership.TotalCapacity(),
		CurrentTasks:   c.membership.TotalLoad(),
		QueuedTasks:    c.queue.TaskCount(),
		CompletedTasks: c.queue.ReceiptCount(),
	}
}

// publish sends an event when a bus is attached.
func (c *Coordinator) publish(evt event.Event) {
	if c.bus != nil {
		c.bus.Publish(evt)
	}
}
