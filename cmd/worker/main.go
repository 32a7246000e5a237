package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/BruksfildServices01/tutor-marketplace/internal/bootstrap"
	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/tutor-marketplace/internal/db"
)

// Worker delivers status-change notifications from the Redis queue and runs
// the relay sweep. The API only runs these itself with the in-memory queue.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != bootstrap.QueueRedis {
		log.Fatalf("worker requires QUEUE_BACKEND=%s, got %q", bootstrap.QueueRedis, cfg.QueueBackend)
	}

	db := dbpkg.NewDB(cfg)

	notifications := bootstrap.NewNotifications(cfg, db)
	defer notifications.Close()

	if err := notifications.Relay.Start(cfg.NotifyRelaySpec); err != nil {
		log.Fatalf("failed to start notification relay: %v", err)
	}
	defer notifications.Relay.Stop()

	if err := notifications.Outbox.Run(ctx); err != nil {
		log.Fatalf("notification worker failed: %v", err)
	}
	log.Println("worker stopped")
}
