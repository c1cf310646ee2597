package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	"github.com/robfig/cron/v3"
)

const (
	viewRetentionJob   = "flyer_view_retention"
	defaultRetention   = 90
	defaultCronSpec    = "0 4 * * *"
	retentionRunBudget = 5 * time.Minute
)

// ViewPurger deletes flyer views recorded before cutoff.
type ViewPurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ViewRetentionScheduler 오래된 조회 기록 정리 스케줄러
type ViewRetentionScheduler struct {
	cron          *cron.Cron
	purger        ViewPurger
	metrics       *metrics.JobMetrics
	spec          string
	retentionDays int
	now           func() time.Time
}

// NewViewRetentionScheduler 조회 기록 정리 스케줄러 생성
func NewViewRetentionScheduler(purger ViewPurger, jobMetrics *metrics.JobMetrics, spec string, retentionDays int) *ViewRetentionScheduler {
	if spec == "" {
		spec = defaultCronSpec
	}
	if retentionDays <= 0 {
		retentionDays = defaultRetention
	}
	return &ViewRetentionScheduler{
		cron:          cron.New(),
		purger:        purger,
		metrics:       jobMetrics,
		spec:          spec,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Start 스케줄러 시작
func (s *ViewRetentionScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), retentionRunBudget)
		defer cancel()
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		logger.Error("Failed to add cron job for view retention", err, map[string]interface{}{
			"spec": s.spec,
		})
		return fmt.Errorf("invalid retention schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("View retention scheduler started", map[string]interface{}{
		"spec":           s.spec,
		"retention_days": s.retentionDays,
	})
	return nil
}

// RunOnce purges views older than the retention window and returns how many were removed.
func (s *ViewRetentionScheduler) RunOnce(ctx context.Context) (int64, error) {
	started := s.now()
	cutoff := started.AddDate(0, 0, -s.retentionDays)

	logger.Info("Starting scheduled view retention", map[string]interface{}{
		"cutoff": cutoff,
	})

	removed, err := s.purger.DeleteOlderThan(ctx, cutoff)
	s.metrics.ObserveDuration(viewRetentionJob, time.Since(started))
	if err != nil {
		s.metrics.IncFailure(viewRetentionJob)
		logger.Error("Failed to purge flyer views from scheduler", err)
		return 0, err
	}

	s.metrics.IncSuccess(viewRetentionJob)
	s.metrics.AddRemoved(viewRetentionJob, removed)
	logger.Info("View retention completed", map[string]interface{}{
		"removed": removed,
	})
	return removed, nil
}

// Stop 스케줄러 중지
func (s *ViewRetentionScheduler) Stop() {
	logger.Info("Stopping view retention scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("View retention scheduler stopped", nil)
}
