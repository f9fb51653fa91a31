package service

import (
	"log"
	"time"

	"taskflow/internal/models"
	"taskflow/internal/queue"
)

// Effects delivers side effects that must never block or fail the
// operation that triggered them. Implementations are fire-and-forget.
type Effects interface {
	Notify(notification *models.Notification)
	LogActivity(entry *models.ActivityEntry)
}

// QueueEffects hands effects to the in-memory queue for asynchronous
// delivery. A full queue drops the effect with a log line.
type QueueEffects struct {
	queue *queue.MemoryQueue
}

var _ Effects = (*QueueEffects)(nil)

func NewQueueEffects(q *queue.MemoryQueue) *QueueEffects {
	return &QueueEffects{queue: q}
}

func (e *QueueEffects) Notify(notification *models.Notification) {
	if notification == nil {
		return
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	err := e.queue.Enqueue(queue.EffectJob{
		Kind:         queue.EffectNotification,
		Notification: notification,
	})
	if err != nil {
		log.Printf("Failed to enqueue notification for user %s: %v", notification.UserID.Hex(), err)
	}
}

func (e *QueueEffects) LogActivity(entry *models.ActivityEntry) {
	if entry == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	err := e.queue.Enqueue(queue.EffectJob{
		Kind:     queue.EffectActivity,
		Activity: entry,
	})
	if err != nil {
		log.Printf("Failed to enqueue activity %s: %v", entry.Action, err)
	}
}
