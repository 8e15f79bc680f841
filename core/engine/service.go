// Package engine is the estimation service shared by the HTTP API and the CLI.
// Both are thin wrappers; all cost logic lives in costengine.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"buildaide/core/costengine"
	"buildaide/core/types"
	"buildaide/db/cache"
	apperrors "buildaide/internal/errors"
	"buildaide/internal/metrics"
)

const tracerName = "buildaide/core/engine"

// Operation labels
const (
	OpEstimate = "estimate"
	OpWhatIf   = "what_if"
	OpRegion   = "regional_insight"
)

// Service runs estimates against one calculator
type Service struct {
	calc     *costengine.Calculator
	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
	tracer   trace.Tracer

	// tablesDigest keys cache entries to the active rate tables
	tablesDigest string
	knownTypes   map[types.ProjectType]struct{}
}

// Option configures a Service
type Option func(*Service)

// WithCache enables estimate caching
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics sets the collectors the service records to
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer overrides the tracer taken from the global provider
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// NewService creates a service. A nil calculator means the compiled-in tables.
func NewService(calc *costengine.Calculator, opts ...Option) *Service {
	if calc == nil {
		calc = costengine.Default()
	}
	s := &Service{
		calc:   calc,
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	tables := calc.Tables()
	s.tablesDigest = digest(tables)
	s.knownTypes = make(map[types.ProjectType]struct{}, len(tables.BaseCosts))
	for pt := range tables.BaseCosts {
		s.knownTypes[pt] = struct{}{}
	}
	return s
}

// Calculator returns the underlying calculator
func (s *Service) Calculator() *costengine.Calculator {
	return s.calc
}

// Metrics returns the collectors the service records to
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// EstimateResult is a single estimate with its context
type EstimateResult struct {
	Breakdown       *types.CostBreakdown `json:"breakdown"`
	RegionalInsight string               `json:"regionalInsight"`
	Metadata        Metadata             `json:"metadata"`
}

// Metadata describes how an estimate was produced
type Metadata struct {
	InputHash          string  `json:"inputHash"`
	RegionalMultiplier float64 `json:"regionalMultiplier"`
	Cached             bool    `json:"cached"`
	DurationMs         int64   `json:"durationMs"`
}

// WhatIfResult is a baseline estimate and its named variants
type WhatIfResult struct {
	Baseline  *types.CostBreakdown                        `json:"baseline"`
	Scenarios map[types.ScenarioName]*types.CostBreakdown `json:"scenarios"`
}

// RegionResult describes one ZIP code's market
type RegionResult struct {
	ZipCode    string  `json:"zipCode"`
	Multiplier float64 `json:"multiplier"`
	Insight    string  `json:"insight"`
}

// Estimate computes a breakdown for p, consulting the cache first
func (s *Service) Estimate(ctx context.Context, p types.CostParameters) (*EstimateResult, error) {
	ctx, span := s.startSpan(ctx, OpEstimate, p)
	defer span.End()
	start := time.Now()

	hash := InputHash(p)
	key := ""
	if hash != "" {
		key = s.tablesDigest + ":" + hash
	}

	breakdown, cached := s.lookup(ctx, key)
	if !cached {
		var err error
		breakdown, err = s.calc.Calculate(p)
		if err != nil {
			s.observe(span, OpEstimate, p.ProjectType, start, err)
			return nil, err
		}
		s.store(ctx, key, breakdown)
	}
	s.observe(span, OpEstimate, p.ProjectType, start, nil)
	span.SetAttributes(attribute.Bool("estimate.cached", cached), attribute.Int64("estimate.total", breakdown.Total))

	multiplier := s.calc.RegionalMultiplier(p.ZipCode)
	return &EstimateResult{
		Breakdown:       breakdown,
		RegionalInsight: costengine.InsightForMultiplier(multiplier),
		Metadata: Metadata{
			InputHash:          hash,
			RegionalMultiplier: multiplier,
			Cached:             cached,
			DurationMs:         time.Since(start).Milliseconds(),
		},
	}, nil
}

// WhatIf computes the baseline and the four standard scenarios
func (s *Service) WhatIf(ctx context.Context, p types.CostParameters) (*WhatIfResult, error) {
	_, span := s.startSpan(ctx, OpWhatIf, p)
	defer span.End()
	start := time.Now()

	baseline, err := s.calc.Calculate(p)
	if err != nil {
		s.observe(span, OpWhatIf, p.ProjectType, start, err)
		return nil, err
	}
	scenarios, err := s.calc.WhatIf(p)
	if err != nil {
		s.observe(span, OpWhatIf, p.ProjectType, start, err)
		return nil, err
	}

	s.observe(span, OpWhatIf, p.ProjectType, start, nil)
	return &WhatIfResult{Baseline: baseline, Scenarios: scenarios}, nil
}

// RegionalInsight describes the market for zip. Unknown ZIPs get the neutral multiplier.
func (s *Service) RegionalInsight(ctx context.Context, zip string) *RegionResult {
	_, span := s.tracer.Start(ctx, OpRegion, trace.WithAttributes(attribute.String("estimate.zip_code", zip)))
	defer span.End()

	m := s.calc.RegionalMultiplier(zip)
	return &RegionResult{
		ZipCode:    zip,
		Multiplier: m,
		Insight:    costengine.InsightForMultiplier(m),
	}
}

// Tables returns the active rate tables
func (s *Service) Tables() costengine.Tables {
	return s.calc.Tables()
}

func (s *Service) lookup(ctx context.Context, key string) (*types.CostBreakdown, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	b, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("estimate cache lookup failed", zap.Error(err))
		return nil, false
	case ok:
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return b, true
	default:
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (s *Service) store(ctx context.Context, key string, b *types.CostBreakdown) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
		s.logger.Warn("estimate cache store failed", zap.Error(err))
	}
}

func (s *Service) startSpan(ctx context.Context, op string, p types.CostParameters) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("estimate.project_type", string(p.ProjectType)),
		attribute.Float64("estimate.area", p.Area),
		attribute.String("estimate.quality", string(p.MaterialQuality)),
	))
}

func (s *Service) observe(span trace.Span, op string, pt types.ProjectType, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(apperrors.TypeOf(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Debug("estimate failed",
			zap.String("operation", op),
			zap.String("project_type", string(pt)),
			zap.Error(err),
		)
	}
	s.metrics.EstimatesTotal.WithLabelValues(op, s.projectLabel(pt), outcome).Inc()
	s.metrics.EstimateDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// projectLabel bounds metric cardinality to the known project types
func (s *Service) projectLabel(pt types.ProjectType) string {
	pt = types.ProjectType(strings.ToLower(strings.TrimSpace(string(pt))))
	if _, ok := s.knownTypes[pt]; ok {
		return string(pt)
	}
	return "unknown"
}

// InputHash returns the SHA-256 of the canonical JSON encoding of p.
// Parameters that cannot be encoded (NaN, Inf) hash to "".
func InputHash(p types.CostParameters) string {
	return digest(p)
}

func digest(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
