package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"buildaide/core/costengine"
	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
	"buildaide/internal/metrics"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string]*types.CostBreakdown
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{
		entries: map[string]*types.CostBreakdown{},
		ttls:    map[string]time.Duration{},
	}
}

func (c *memCache) Get(_ context.Context, key string) (*types.CostBreakdown, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	b, ok := c.entries[key]
	return b, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, b *types.CostBreakdown, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = b
	c.ttls[key] = ttl
	return nil
}

func kitchen() types.CostParameters {
	return types.CostParameters{
		ProjectType:     types.ProjectKitchenRemodel,
		Area:            200,
		MaterialQuality: types.QualityStandard,
	}
}

func TestService_Estimate(t *testing.T) {
	m := metrics.New()
	svc := NewService(nil, WithMetrics(m), WithLogger(zaptest.NewLogger(t)))

	res, err := svc.Estimate(context.Background(), kitchen())
	require.NoError(t, err)

	assert.Equal(t, int64(39000), res.Breakdown.Total)
	assert.Equal(t, costengine.InsightStandard, res.RegionalInsight)
	assert.Equal(t, 1.0, res.Metadata.RegionalMultiplier)
	assert.False(t, res.Metadata.Cached)
	assert.Len(t, res.Metadata.InputHash, 64)
	assert.Equal(t, InputHash(kitchen()), res.Metadata.InputHash)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EstimatesTotal.WithLabelValues(OpEstimate, "kitchen-remodel", "success")))
}

func TestService_EstimateRegionalInsight(t *testing.T) {
	svc := NewService(nil)
	p := kitchen()
	p.ZipCode = "94102"

	res, err := svc.Estimate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 1.40, res.Metadata.RegionalMultiplier)
	assert.Equal(t, costengine.InsightPremium, res.RegionalInsight)
}

func TestService_EstimateErrors(t *testing.T) {
	m := metrics.New()
	svc := NewService(nil, WithMetrics(m))

	_, err := svc.Estimate(context.Background(), types.CostParameters{ProjectType: "treehouse", Area: 100})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotSupported))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EstimatesTotal.WithLabelValues(OpEstimate, "unknown", string(apperrors.TypeNotSupported))))

	_, err = svc.Estimate(context.Background(), types.CostParameters{ProjectType: types.ProjectKitchenRemodel, Area: math.NaN()})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestService_EstimateCache(t *testing.T) {
	c := newMemCache()
	m := metrics.New()
	svc := NewService(nil, WithCache(c, 10*time.Minute), WithMetrics(m))
	ctx := context.Background()

	first, err := svc.Estimate(ctx, kitchen())
	require.NoError(t, err)
	assert.False(t, first.Metadata.Cached)
	require.Len(t, c.entries, 1)
	for _, ttl := range c.ttls {
		assert.Equal(t, 10*time.Minute, ttl)
	}

	second, err := svc.Estimate(ctx, kitchen())
	require.NoError(t, err)
	assert.True(t, second.Metadata.Cached)
	assert.Equal(t, first.Breakdown, second.Breakdown)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestService_CacheKeyedByTables(t *testing.T) {
	c := newMemCache()
	ctx := context.Background()

	_, err := NewService(nil, WithCache(c, time.Minute)).Estimate(ctx, kitchen())
	require.NoError(t, err)

	tables := costengine.DefaultTables()
	tables.BaseCosts[types.ProjectKitchenRemodel][types.QualityStandard] = 200
	res, err := NewService(costengine.NewCalculator(tables), WithCache(c, time.Minute)).Estimate(ctx, kitchen())
	require.NoError(t, err)

	assert.False(t, res.Metadata.Cached)
	assert.Equal(t, int64(40000), res.Breakdown.Total)
	assert.Len(t, c.entries, 2)
}

func TestService_CacheFailuresIgnored(t *testing.T) {
	c := newMemCache()
	c.getErr = errors.New("connection refused")
	c.setErr = errors.New("connection refused")
	m := metrics.New()
	svc := NewService(nil, WithCache(c, time.Minute), WithMetrics(m), WithLogger(zaptest.NewLogger(t)))

	res, err := svc.Estimate(context.Background(), kitchen())
	require.NoError(t, err)
	assert.Equal(t, int64(39000), res.Breakdown.Total)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("error")))
}

func TestService_FailedEstimateNotCached(t *testing.T) {
	c := newMemCache()
	svc := NewService(nil, WithCache(c, time.Minute))

	_, err := svc.Estimate(context.Background(), types.CostParameters{ProjectType: "treehouse", Area: 10})
	require.Error(t, err)
	assert.Empty(t, c.entries)
}

func TestService_WhatIf(t *testing.T) {
	svc := NewService(nil)

	res, err := svc.WhatIf(context.Background(), kitchen())
	require.NoError(t, err)

	assert.Equal(t, int64(39000), res.Baseline.Total)
	require.Len(t, res.Scenarios, 4)
	assert.Equal(t, int64(20400), res.Scenarios[types.ScenarioBudgetMaterials].Total)
	assert.Equal(t, int64(76800), res.Scenarios[types.ScenarioPremiumMaterials].Total)
	assert.Equal(t, int64(48750), res.Scenarios[types.ScenarioRushTimeline].Total)
	assert.Equal(t, int64(36270), res.Scenarios[types.ScenarioExtendedTimeline].Total)

	_, err = svc.WhatIf(context.Background(), types.CostParameters{ProjectType: types.ProjectDeckConstruction})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestService_RegionalInsight(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		zip        string
		multiplier float64
		insight    string
	}{
		{"10001", 1.35, costengine.InsightPremium},
		{"80202", 1.08, costengine.InsightAboveAverage},
		{"39201", 0.85, costengine.InsightValue},
		{"30303", 0.98, costengine.InsightStandard},
		{"00000", 1.0, costengine.InsightStandard},
	}
	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			r := svc.RegionalInsight(context.Background(), tt.zip)
			assert.Equal(t, tt.zip, r.ZipCode)
			assert.Equal(t, tt.multiplier, r.Multiplier)
			assert.Equal(t, tt.insight, r.Insight)
		})
	}
}

func TestInputHash(t *testing.T) {
	a := kitchen()
	b := kitchen()
	assert.Equal(t, InputHash(a), InputHash(b))

	b.ZipCode = "10001"
	assert.NotEqual(t, InputHash(a), InputHash(b))

	b.Area = math.Inf(1)
	assert.Empty(t, InputHash(b))
}
