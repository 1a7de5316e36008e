package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calgrid/calgrid/config"
	"github.com/calgrid/calgrid/internal/scheduler"
	"github.com/calgrid/calgrid/internal/server"
	"github.com/calgrid/calgrid/internal/service"
	"github.com/calgrid/calgrid/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log := logger.WithField("app", "calgridd")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to init storage")
	}
	defer store.Close()

	svc := service.NewViewService(store, cfg, log)
	if err := svc.Refresh(); err != nil {
		log.WithError(err).Fatal("failed to load initial snapshot")
	}

	sched := scheduler.New(cfg, svc, log)
	srv := server.New(cfg, svc, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			log.WithError(err).Error("scheduler error")
		}
	}()

	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("server error")
		}
	}()

	log.Info("calgridd started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("error stopping server")
	}

	log.Info("calgridd stopped")
}
