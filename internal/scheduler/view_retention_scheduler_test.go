package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPurger struct{}

func (failingPurger) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, errors.New("backend down")
}

func TestViewRetentionScheduler_RunOnce(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	fixed := time.Date(2025, 6, 1, 4, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{
		fixed.AddDate(0, 0, -1),
		fixed.AddDate(0, 0, -29),
		fixed.AddDate(0, 0, -31),
		fixed.AddDate(0, 0, -120),
	} {
		require.NoError(t, repos.FlyerViews.Record(ctx, &model.FlyerView{VendorID: "v1", ViewedAt: at}))
	}

	reg := prometheus.NewRegistry()
	s := NewViewRetentionScheduler(repos.FlyerViews, metrics.NewJobMetrics(reg), "", 30)
	s.now = func() time.Time { return fixed }

	removed, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	left, err := repos.FlyerViews.CountByVendor(ctx, "v1", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, left)

	assert.Equal(t, 1.0, counterValue(t, reg, "flyer_job_success_total"))
	assert.Equal(t, 2.0, counterValue(t, reg, "flyer_job_records_removed_total"))
}

func TestViewRetentionScheduler_Failure(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewViewRetentionScheduler(failingPurger{}, metrics.NewJobMetrics(reg), "", 0)

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, defaultRetention, s.retentionDays)

	assert.Equal(t, 1.0, counterValue(t, reg, "flyer_job_failure_total"))
	assert.Equal(t, 0.0, counterValue(t, reg, "flyer_job_success_total"))
}

func TestViewRetentionScheduler_InvalidSpec(t *testing.T) {
	s := NewViewRetentionScheduler(failingPurger{}, nil, "not a cron spec", 7)
	assert.Error(t, s.Start())
}

func TestViewRetentionScheduler_StartStop(t *testing.T) {
	s := NewViewRetentionScheduler(failingPurger{}, nil, "@every 1h", 7)
	require.NoError(t, s.Start())
	s.Stop()
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		return total
	}
	return 0
}
