package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/BruksfildServices01/tutor-marketplace/internal/metrics"
	"github.com/BruksfildServices01/tutor-marketplace/internal/models"
	"github.com/BruksfildServices01/tutor-marketplace/internal/queue"
)

const MessageType = "application.status_changed"

var ErrAttemptsExhausted = errors.New("notification attempts exhausted")

type TaskStore interface {
	GetTask(ctx context.Context, id uint) (*models.NotificationTask, error)
	MarkSent(ctx context.Context, id uint, at time.Time) error
	// MarkFailed increments the attempt counter and records reason.
	MarkFailed(ctx context.Context, id uint, reason string) error
	// ListRetryable returns pending or failed tasks below maxAttempts that
	// have not been touched since idleSince.
	ListRetryable(ctx context.Context, maxAttempts int, idleSince time.Time, limit int) ([]models.NotificationTask, error)
}

type OutboxConfig struct {
	MaxAttempts     int
	FrontendBaseURL string
	Now             func() time.Time
}

// Outbox moves persisted notification tasks through the queue to the sender.
type Outbox struct {
	store       TaskStore
	queue       queue.Queue
	sender      EmailSender
	maxAttempts int
	baseURL     string
	now         func() time.Time
}

func NewOutbox(store TaskStore, q queue.Queue, sender EmailSender, cfg OutboxConfig) *Outbox {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Outbox{
		store:       store,
		queue:       q,
		sender:      sender,
		maxAttempts: cfg.MaxAttempts,
		baseURL:     cfg.FrontendBaseURL,
		now:         cfg.Now,
	}
}

// MaxAttempts is the resolved delivery attempt limit.
func (o *Outbox) MaxAttempts() int {
	return o.maxAttempts
}

type taskRef struct {
	ID   uint   `json:"id"`
	UUID string `json:"uuid"`
}

// Enqueue publishes a reference to an already persisted task.
func (o *Outbox) Enqueue(ctx context.Context, task *models.NotificationTask) error {
	body, err := json.Marshal(taskRef{ID: task.ID, UUID: task.UUID})
	if err != nil {
		return err
	}
	return o.queue.Publish(ctx, queue.Message{Type: MessageType, Body: body})
}

// Run consumes the queue until ctx is cancelled.
func (o *Outbox) Run(ctx context.Context) error {
	msgs, err := o.queue.Consume(ctx)
	if err != nil {
		return fmt.Errorf("outbox consume: %w", err)
	}

	log.Println("notification outbox worker started")
	for msg := range msgs {
		if msg.Type != MessageType {
			log.Printf("outbox: skipping message of type %q", msg.Type)
			continue
		}

		var ref taskRef
		if err := json.Unmarshal(msg.Body, &ref); err != nil {
			log.Printf("outbox: malformed message: %v", err)
			continue
		}

		if err := o.Process(ctx, ref.ID); err != nil {
			log.Printf("outbox: task %d (%s): %v", ref.ID, ref.UUID, err)
		}
	}

	log.Println("notification outbox worker stopped")
	return nil
}

// Process delivers a single task. Already sent tasks are skipped.
func (o *Outbox) Process(ctx context.Context, id uint) error {
	task, err := o.store.GetTask(ctx, id)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	if task.Status == models.NotificationSent {
		return nil
	}
	if task.Attempts >= o.maxAttempts {
		return ErrAttemptsExhausted
	}

	msg, err := Render(task, o.baseURL)
	if err != nil {
		o.fail(ctx, task, err)
		return fmt.Errorf("render: %w", err)
	}

	if err := o.sender.Send(ctx, msg); err != nil {
		o.fail(ctx, task, err)
		return fmt.Errorf("send: %w", err)
	}

	if err := o.store.MarkSent(ctx, task.ID, o.now()); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	metrics.Notifications.WithLabelValues(task.Channel, "sent").Inc()
	return nil
}

func (o *Outbox) fail(ctx context.Context, task *models.NotificationTask, cause error) {
	metrics.Notifications.WithLabelValues(task.Channel, "failed").Inc()
	if err := o.store.MarkFailed(ctx, task.ID, cause.Error()); err != nil {
		log.Printf("outbox: mark task %d failed: %v", task.ID, err)
	}
}
