package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/calgrid/calgrid/config"
	"github.com/calgrid/calgrid/internal/service"
)

// Scheduler periodically reloads the committed snapshot from the local
// store, so views pick up events written by other processes sharing the
// database.
type Scheduler struct {
	cron *cron.Cron
	cfg  *config.Config
	svc  *service.ViewService
	log  *logrus.Entry
}

func New(cfg *config.Config, svc *service.ViewService, log *logrus.Entry) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Location))

	return &Scheduler{
		cron: c,
		cfg:  cfg,
		svc:  svc,
		log:  log,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.RefreshSpec, s.refreshSnapshot); err != nil {
		return fmt.Errorf("add snapshot refresh: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.cfg.RefreshSpec).Info("scheduler started")

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) refreshSnapshot() {
	if err := s.svc.Refresh(); err != nil {
		s.log.WithError(err).Error("snapshot refresh failed")
	}
}
