// Package jobs runs the scheduled maintenance: daily mission assignment
// shortly after midnight UTC and the monthly XP reset on the first of each
// month.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type Scheduler struct {
	log       *logger.Logger
	scheduler *gocron.Scheduler
	daily     services.DailyService
}

func NewScheduler(log *logger.Logger, daily services.DailyService) *Scheduler {
	return &Scheduler{
		log:       log.With("component", "Scheduler"),
		scheduler: gocron.NewScheduler(time.UTC),
		daily:     daily,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Cron("5 0 * * *").Do(s.runDailyAssignment); err != nil {
		return err
	}
	if _, err := s.scheduler.Cron("0 1 1 * *").Do(s.runMonthlyReset); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runDailyAssignment() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	rows, err := s.daily.AssignDailyMissions(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("daily mission assignment failed", "error", err)
		return
	}
	s.log.Info("daily mission assignment done", "rows", rows)
}

func (s *Scheduler) runMonthlyReset() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	users, err := s.daily.ResetMonthlyXP(ctx)
	if err != nil {
		s.log.Error("monthly xp reset failed", "error", err)
		return
	}
	s.log.Info("monthly xp reset done", "users", users)
}
