package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-marketplace/internal/bootstrap"
	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/tutor-marketplace/internal/db"
	"github.com/BruksfildServices01/tutor-marketplace/internal/routes"
)

func main() {

	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifications := bootstrap.NewNotifications(cfg, db)
	defer notifications.Close()

	// Without Redis nobody else drains the queue.
	if notifications.InProcess {
		go func() {
			if err := notifications.Outbox.Run(ctx); err != nil {
				log.Printf("notification worker stopped: %v", err)
			}
		}()

		if err := notifications.Relay.Start(cfg.NotifyRelaySpec); err != nil {
			log.Fatalf("failed to start notification relay: %v", err)
		}
		defer notifications.Relay.Stop()
	}

	r := gin.Default()

	flushAudit := routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Notifier: notifications.Outbox,
	})
	defer flushAudit()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
