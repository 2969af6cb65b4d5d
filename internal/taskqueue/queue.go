package taskqueue

import "sort"

// Queue holds the priority-ordered backlog of task requests and the full
// receipt log. It is not internally synchronized; see the package doc.
type Queue struct {
	backlog  []*TaskRequest
	receipts []*TaskReceipt
}

// NewQueue creates an empty task queue.
func NewQueue() *Queue {
	return &Queue{
		backlog:  []*TaskRequest{},
		receipts: []*TaskReceipt{},
	}
}

// Enqueue appends a task and re-sorts the backlog descending by priority.
// The sort is stable: equal-priority tasks keep their relative insertion
// order, so each priority tier behaves as FIFO.
func (q *Queue) Enqueue(task *TaskRequest) {
	q.backlog = append(q.backlog, task)
	sort.SliceStable(q.backlog, func(i, j int) bool {
		return q.backlog[i].Priority > q.backlog[j].Priority
	})
}

// Dequeue removes and returns the highest-priority task, or nil if the
// backlog is empty.
func (q *Queue) Dequeue() *TaskRequest {
	if len(q.backlog) == 0 {
		return nil
	}
	task := q.backlog[0]
	q.backlog = q.backlog[1:]
	return task
}

// Peek returns the highest-priority task without removing it, or nil if
// the backlog is empty.
func (q *Queue) Peek() *TaskRequest {
	if len(q.backlog) == 0 {
		return nil
	}
	return q.backlog[0]
}

// RecordReceipt appends a receipt to the log. The log is monotonic; there
// is no de-duplication by task id.
func (q *Queue) RecordReceipt(receipt *TaskReceipt) {
	q.receipts = append(q.receipts, receipt)
}

// TaskCount returns the number of queued tasks.
func (q *Queue) TaskCount() int {
	return len(q.backlog)
}

// ReceiptCount returns the number of recorded receipts.
func (q *Queue) ReceiptCount() int {
	return len(q.receipts)
}

// Tasks returns a copy of the backlog in queue order.
func (q *Queue) Tasks() []*TaskRequest {
	return append([]*TaskRequest(nil), q.backlog...)
}

// Receipts returns a copy of the receipt log in append order.
func (q *Queue) Receipts() []*TaskReceipt {
	return append([]*TaskReceipt(nil), q.receipts...)
}
