package scheduler

import (
	"context"
	"fmt"
	"time"

	"church-calendar/internal/service"
	"church-calendar/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// syncTimeout bounds one background reconciliation pass, Asana
// pagination and image downloads included.
const syncTimeout = 5 * time.Minute

// Scheduler drives the periodic Asana sync. SkipIfStillRunning is the
// only overlap protection: there is no application-level lock, so a
// manual /trigger-asana can still race the timer (accepted).
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(syncService service.SyncService, intervalSeconds int) (*Scheduler, error) {
	log := logger.WithComponent("scheduler")
	cronLog := cron.PrintfLogger(zap.NewStdLog(logger.L))

	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))

	spec := fmt.Sprintf("@every %ds", intervalSeconds)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if _, err := syncService.SyncAsana(ctx); err != nil {
			log.Error("scheduled asana sync failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling; an in-flight pass is not canceled, it finishes
// within its own timeout.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}
