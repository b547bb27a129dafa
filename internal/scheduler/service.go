package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/leapscholar/leappulse/internal/cache"
)

// Service refreshes the cache on a fixed interval so the dashboard stays
// warm between user-triggered reads.
type Service struct {
	cache    *cache.Service
	interval time.Duration
	cron     *cron.Cron
}

// NewService creates a scheduler driving the given cache.
func NewService(cacheService *cache.Service, interval time.Duration) *Service {
	return &Service{
		cache:    cacheService,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start begins scheduled refreshes.
func (s *Service) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)

	_, err := s.cron.AddFunc(spec, func() {
		logrus.Info("Starting scheduled refresh")
		snapshot := s.cache.ForceRefresh(context.Background())
		if snapshot != nil {
			logrus.Infof("Scheduled refresh complete: %d mentions", len(snapshot.Mentions))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s refresh interval", s.interval)
	return nil
}

// Stop halts the scheduler. A refresh already in flight runs to
// completion.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
