package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/nekogravitycat/room-timeline-backend/internal/app"
	"github.com/nekogravitycat/room-timeline-backend/internal/cache"
	"github.com/nekogravitycat/room-timeline-backend/internal/config"
	"github.com/nekogravitycat/room-timeline-backend/internal/db"
	"github.com/nekogravitycat/room-timeline-backend/internal/jobs"
	"github.com/nekogravitycat/room-timeline-backend/internal/queue"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	layout, err := config.LoadLayout(cfg.GridLayoutFile)
	if err != nil {
		log.Fatalf("failed to load grid layout: %v", err)
	}

	// Connect DB (optional)
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		defer pool.Close()
	} else {
		log.Println("DB_DSN not set, using built-in room catalog")
	}

	// Connect Redis (optional)
	rdb := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer rdb.Close()
	}

	// Commit events (optional)
	var publisher queue.Publisher = queue.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		publisher = queue.NewAMQPPublisher(cfg.RabbitMQURL, queue.CommittedQueue)
	}

	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		Redis:        rdb,
		RoomCacheTTL: cfg.RoomCacheTTL,
		Publisher:    publisher,
		Layout:       layout,
	})

	// Follow-today check
	scheduler := cron.New()
	if _, err := jobs.RegisterRollover(scheduler, cfg.RolloverSchedule, container.BoardService); err != nil {
		log.Fatalf("invalid ROLLOVER_SCHEDULE: %v", err)
	}
	scheduler.Start()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop scheduling rollovers and wait for a running one
	<-scheduler.Stop().Done()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
