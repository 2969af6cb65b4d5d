package taskqueue

import "testing"

func TestQueue_EnqueueDequeue_PriorityOrder(t *testing.T) {
	q := NewQueue()

	low := NewTaskRequest("op-low", "in").WithPriority(1)
	high := NewTaskRequest("op-high", "in").WithPriority(100)
	mid := NewTaskRequest("op-mid", "in").WithPriority(50)

	q.Enqueue(low)
	q.Enqueue(high)
	q.Enqueue(mid)

	want := []string{high.ID, mid.ID, low.ID}
	for i, wantID := range want {
		task := q.Dequeue()
		if task == nil {
			t.Fatalf("dequeue %d returned nil", i)
		}
		if task.ID != wantID {
			t.Errorf("dequeue %d = %s, want %s", i, task.ID, wantID)
		}
	}
}

func TestQueue_EqualPriorityIsFIFO(t *testing.T) {
	q := NewQueue()

	a := NewTaskRequest("op-a", "in").WithPriority(10)
	b := NewTaskRequest("op-b", "in").WithPriority(10)

	q.Enqueue(a)
	q.Enqueue(b)

	if got := q.Dequeue(); got.ID != a.ID {
		t.Errorf("first dequeue = %s, want %s (insertion order within a tier)", got.ID, a.ID)
	}
	if got := q.Dequeue(); got.ID != b.ID {
		t.Errorf("second dequeue = %s, want %s", got.ID, b.ID)
	}
}

func TestQueue_TieStabilityAcrossInterleavedEnqueues(t *testing.T) {
	q := NewQueue()

	a := NewTaskRequest("op-a", "in").WithPriority(10)
	urgent := NewTaskRequest("op-urgent", "in").WithPriority(99)
	b := NewTaskRequest("op-b", "in").WithPriority(10)

	q.Enqueue(a)
	q.Enqueue(urgent)
	q.Enqueue(b)

	if got := q.Dequeue(); got.ID != urgent.ID {
		t.Fatalf("first dequeue = %s, want urgent task", got.ID)
	}
	if got := q.Dequeue(); got.ID != a.ID {
		t.Errorf("tie order broken: got %s, want %s", got.ID, a.ID)
	}
	if got := q.Dequeue(); got.ID != b.ID {
		t.Errorf("tie order broken: got %s, want %s", got.ID, b.ID)
	}
}

func TestQueue_DequeueEmpty(t *testing.T) {
	q := NewQueue()
	if task := q.Dequeue(); task != nil {
		t.Errorf("dequeue on empty queue = %v, want nil", task)
	}
}

func TestQueue_Peek(t *testing.T) {
	q := NewQueue()
	if q.Peek() != nil {
		t.Error("peek on empty queue should be nil")
	}

	task := NewTaskRequest("op", "in").WithPriority(5)
	q.Enqueue(task)

	if got := q.Peek(); got == nil || got.ID != task.ID {
		t.Errorf("peek = %v, want %s", got, task.ID)
	}
	if q.TaskCount() != 1 {
		t.Error("peek should not remove the task")
	}
}

func TestQueue_Counts(t *testing.T) {
	q := NewQueue()

	if q.TaskCount() != 0 || q.ReceiptCount() != 0 {
		t.Error("new queue should be empty")
	}

	task := NewTaskRequest("op", "in")
	q.Enqueue(task)
	if q.TaskCount() != 1 {
		t.Errorf("TaskCount = %d, want 1", q.TaskCount())
	}

	q.RecordReceipt(NewReceipt(task, "m-1", StatusCompleted, "out", 1))
	if q.ReceiptCount() != 1 {
		t.Errorf("ReceiptCount = %d, want 1", q.ReceiptCount())
	}
}

func TestQueue_ReceiptLogIsMonotonic(t *testing.T) {
	q := NewQueue()
	task := NewTaskRequest("op", "in")

	// Two receipts for the same task id are both kept.
	q.RecordReceipt(NewReceipt(task, "m-1", StatusFailed, "err", 1))
	q.RecordReceipt(NewReceipt(task, "m-2", StatusCompleted, "ok", 2))

	if q.ReceiptCount() != 2 {
		t.Fatalf("ReceiptCount = %d, want 2 (no de-duplication)", q.ReceiptCount())
	}
	receipts := q.Receipts()
	if receipts[0].AgentID != "m-1" || receipts[1].AgentID != "m-2" {
		t.Errorf("receipt log not in append order: %v, %v", receipts[0].AgentID, receipts[1].AgentID)
	}
}

func TestQueue_TasksReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Enqueue(NewTaskRequest("op", "in"))

	tasks := q.Tasks()
	tasks[0] = nil

	if q.Peek() == nil {
		t.Error("mutating the Tasks snapshot should not affect the backlog")
	}
}
