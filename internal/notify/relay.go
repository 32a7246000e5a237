package notify

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Relay periodically re-enqueues tasks whose first enqueue was lost or whose
// delivery failed.
type Relay struct {
	store       TaskStore
	outbox      *Outbox
	maxAttempts int
	grace       time.Duration
	batch       int
	now         func() time.Time

	cron *cron.Cron
}

// NewRelay sweeps tasks below maxAttempts. A non-positive limit falls back to
// the outbox's own.
func NewRelay(store TaskStore, outbox *Outbox, maxAttempts int) *Relay {
	if maxAttempts <= 0 && outbox != nil {
		maxAttempts = outbox.MaxAttempts()
	}
	return &Relay{
		store:       store,
		outbox:      outbox,
		maxAttempts: maxAttempts,
		grace:       30 * time.Second,
		batch:       100,
		now:         time.Now,
	}
}

// Sweep enqueues one batch of retryable tasks and returns how many went out.
func (r *Relay) Sweep(ctx context.Context) (int, error) {
	tasks, err := r.store.ListRetryable(ctx, r.maxAttempts, r.now().Add(-r.grace), r.batch)
	if err != nil {
		return 0, err
	}

	n := 0
	for i := range tasks {
		if err := r.outbox.Enqueue(ctx, &tasks[i]); err != nil {
			log.Printf("relay: enqueue task %d: %v", tasks[i].ID, err)
			continue
		}
		n++
	}
	return n, nil
}

func (r *Relay) Start(spec string) error {
	r.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := r.Sweep(ctx)
		if err != nil {
			log.Printf("relay: sweep failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("relay: re-enqueued %d notification task(s)", n)
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (r *Relay) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
