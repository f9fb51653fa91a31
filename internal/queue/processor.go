package queue

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"taskflow/internal/models"
)

const (
	// MaxRetries is the maximum number of automatic retries for failed jobs.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 2 * time.Second
)

// NotificationWriter persists queued notifications.
type NotificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// ActivityWriter persists queued activity-log entries.
type ActivityWriter interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
}

// Processor drains side-effect jobs from the queue.
type Processor struct {
	queue         *MemoryQueue
	notifications NotificationWriter
	activities    ActivityWriter
	workerCount   int
	wg            sync.WaitGroup
	shutdownOnce  sync.Once
	shutdownCh    chan struct{}
}

// NewProcessor creates a new side-effect job processor.
func NewProcessor(queue *MemoryQueue, notifications NotificationWriter, activities ActivityWriter, workerCount int) *Processor {
	return &Processor{
		queue:         queue,
		notifications: notifications,
		activities:    activities,
		workerCount:   workerCount,
		shutdownCh:    make(chan struct{}),
	}
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	log.Printf("Effect processor started with %d workers", p.workerCount)
}

// Stop gracefully stops the processor, waiting for workers to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	log.Println("Effect processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
				log.Printf("Effect worker %d shutting down", id)
				return
			}
			continue
		}
		p.processJob(ctx, job)
	}
}

func (p *Processor) processJob(ctx context.Context, job EffectJob) {
	if err := p.execute(ctx, job); err != nil {
		log.Printf("Effect %s failed (attempt %d): %v", job.Kind, job.RetryCount+1, err)
		p.handleFailure(job)
	}
}

func (p *Processor) execute(ctx context.Context, job EffectJob) error {
	switch job.Kind {
	case EffectNotification:
		return p.notifications.Create(ctx, job.Notification)
	case EffectActivity:
		return p.activities.Create(ctx, job.Activity)
	default:
		return fmt.Errorf("unknown effect kind %q", job.Kind)
	}
}

// handleFailure re-enqueues with backoff until MaxRetries, then drops the
// job. Side effects are best-effort: dropping is logged, never surfaced.
func (p *Processor) handleFailure(job EffectJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		log.Printf("Effect %s dropped after %d attempts", job.Kind, job.RetryCount)
		return
	}

	delay := RetryDelay * time.Duration(1<<uint(job.RetryCount-1))

	// Uses shutdownCh instead of ctx so an in-flight retry either lands
	// or is dropped cleanly during graceful shutdown.
	go func() {
		select {
		case <-p.shutdownCh:
			log.Printf("Shutdown during retry delay, dropping %s effect", job.Kind)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				log.Printf("Failed to re-enqueue %s effect: %v", job.Kind, err)
			}
		}
	}()
}
