// Package queue provides the best-effort pipeline for non-critical side
// effects: notification emission and global activity-log appends. A failed
// job is retried a bounded number of times and then dropped with a log
// line; it never unwinds the operation that produced it.
package queue

import (
	"context"
	"sync"

	"taskflow/internal/models"
)

// EffectKind tags the payload carried by a job.
type EffectKind string

const (
	// EffectNotification delivers a notification record.
	EffectNotification EffectKind = "notification"
	// EffectActivity appends a global activity-log entry.
	EffectActivity EffectKind = "activity"
)

// EffectJob is a single queued side effect. Exactly one payload field is
// set, matching Kind.
type EffectJob struct {
	Kind         EffectKind
	Notification *models.Notification
	Activity     *models.ActivityEntry
	RetryCount   int
}

// MemoryQueue is an in-memory job queue for side-effect jobs.
type MemoryQueue struct {
	jobs     chan EffectJob
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewMemoryQueue creates a new in-memory queue with the given capacity.
func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		jobs:     make(chan EffectJob, capacity),
		capacity: capacity,
	}
}

// Enqueue adds a job to the queue. Returns error if queue is full or closed.
// Lock is held during the entire operation to prevent race condition with Close().
func (q *MemoryQueue) Enqueue(job EffectJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue returns the next job from the queue, blocking until one is available.
// Returns error if context is cancelled or queue is closed.
func (q *MemoryQueue) Dequeue(ctx context.Context) (EffectJob, error) {
	select {
	case <-ctx.Done():
		return EffectJob{}, ctx.Err()
	case job, ok := <-q.jobs:
		if !ok {
			return EffectJob{}, ErrQueueClosed
		}
		return job, nil
	}
}

// Close closes the queue. No more jobs can be enqueued after closing.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
}

// Reset resets the queue to a fresh state. This is primarily for testing.
func (q *MemoryQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = false
	q.jobs = make(chan EffectJob, q.capacity)
}

// Len returns the current number of jobs in the queue.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Capacity returns the queue capacity.
func (q *MemoryQueue) Capacity() int {
	return q.capacity
}
