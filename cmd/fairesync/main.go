package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
	"github.com/yatelabs/faire-sync/internal/events"
	"github.com/yatelabs/faire-sync/internal/faire"
	"github.com/yatelabs/faire-sync/internal/handlers"
	"github.com/yatelabs/faire-sync/internal/logger"
	"github.com/yatelabs/faire-sync/internal/repository"
	"github.com/yatelabs/faire-sync/internal/server"
	"github.com/yatelabs/faire-sync/internal/service"
	"github.com/yatelabs/faire-sync/internal/snapshot"

	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("Starting faire-sync",
		zap.String("env", cfg.Env),
		zap.Int("port", cfg.Server.Port),
	)

	db, err := repository.Open(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureSchema(ctx, db); err != nil {
		cancel()
		zlog.Fatal("Failed to ensure schema", zap.Error(err))
	}
	cancel()

	orderRepo := repository.NewOrderRepository(db, zlog)

	snapshots, closeSnapshots := newSnapshotStore(cfg, zlog)
	defer closeSnapshots()

	var archiver service.Archiver
	if cfg.S3.Enabled() {
		s3Archiver, err := snapshot.NewS3Archiver(cfg.S3, zlog)
		if err != nil {
			zlog.Fatal("Failed to configure snapshot archiver", zap.Error(err))
		}
		archiver = s3Archiver
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka, zlog)
	}
	defer publisher.Close()

	faireClient := faire.NewClient(cfg.Faire, zlog)

	syncService := service.NewOrderSyncService(
		faireClient,
		orderRepo,
		snapshots,
		archiver,
		publisher,
		zlog,
	)

	h := handlers.NewHandlers(syncService, zlog)
	srv := server.New(cfg, h, zlog)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}

// newSnapshotStore picks redis when configured, the local file otherwise.
func newSnapshotStore(cfg *config.Config, zlog *zap.Logger) (snapshot.Store, func()) {
	if cfg.Redis.Enabled() {
		store := snapshot.NewRedisStore(cfg.Redis, zlog)
		return store, func() { store.Close() }
	}
	return snapshot.NewFileStore(cfg.Snapshot.Path), func() {}
}
