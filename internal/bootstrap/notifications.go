// Package bootstrap assembles the notification pipeline shared by the API
// process and the standalone worker.
package bootstrap

import (
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	infraRepo "github.com/BruksfildServices01/tutor-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-marketplace/internal/notify"
	"github.com/BruksfildServices01/tutor-marketplace/internal/queue"
	"github.com/BruksfildServices01/tutor-marketplace/internal/timezone"
)

const (
	QueueMemory = "memory"
	QueueRedis  = "redis"
)

type Notifications struct {
	Queue  queue.Queue
	Outbox *notify.Outbox
	Relay  *notify.Relay

	// InProcess is set when the API process must run the consumer itself.
	InProcess bool

	close func() error
}

func NewNotifications(cfg *config.Config, db *gorm.DB) *Notifications {
	store := infraRepo.NewNotificationGormRepository(db)

	var (
		q       queue.Queue
		closeFn = func() error { return nil }
	)
	if cfg.QueueBackend == QueueRedis {
		client := queue.NewRedisClient(cfg.RedisAddr)
		q = queue.NewRedisQueue(client, cfg.QueueKey)
		closeFn = client.Close
		log.Printf("[NOTIFY] redis queue %s at %s", cfg.QueueKey, cfg.RedisAddr)
	} else {
		q = queue.NewInMemory(256)
		log.Println("[NOTIFY] in-memory queue")
	}

	var sender notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFrom)
	} else {
		log.Println("[NOTIFY] SENDGRID_API_KEY not set, emails are only logged")
		sender = notify.NewLogSender()
	}

	outbox := notify.NewOutbox(store, q, sender, notify.OutboxConfig{
		MaxAttempts:     cfg.NotifyMaxAttempts,
		FrontendBaseURL: cfg.FrontendBaseURL,
		Now:             timezone.Clock(cfg.Timezone),
	})

	return &Notifications{
		Queue:  q,
		Outbox: outbox,
		Relay:  notify.NewRelay(store, outbox, outbox.MaxAttempts()),

		InProcess: cfg.QueueBackend != QueueRedis,

		close: closeFn,
	}
}

func (n *Notifications) Close() error {
	return n.close()
}
