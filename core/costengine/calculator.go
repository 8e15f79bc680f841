// Package costengine computes construction cost breakdowns from static
// multiplier tables. Every function here is pure: no I/O, no shared mutable
// state, safe for concurrent use.
package costengine

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
)

// Share of the base project cost allocated to each percentage-based line
var (
	materialsShare = decimal.RequireFromString("0.40")
	laborShare     = decimal.RequireFromString("0.38")
	permitsShare   = decimal.RequireFromString("0.04")
	equipmentShare = decimal.RequireFromString("0.06")
	overheadShare  = decimal.RequireFromString("0.12")

	hundred = decimal.NewFromInt(100)

	// amounts are reported as int64 whole dollars
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// Error messages surfaced to callers
const (
	MsgInvalidParameters  = "invalid project parameters"
	MsgUnsupportedProject = "unsupported project type"
	MsgInvalidBaseCost    = "invalid base cost"
	MsgInvalidMultipliers = "invalid calculation multipliers"
	MsgInvalidProjectCost = "invalid base project cost calculation"
	MsgInvalidTotal       = "invalid total cost calculation"
)

// Calculator computes cost breakdowns against one set of tables
type Calculator struct {
	tables Tables
	logger *zap.Logger
}

// Option configures a Calculator
type Option func(*Calculator)

// WithLogger sets the logger used for diagnostic lines
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// NewCalculator creates a calculator over a private copy of tables
func NewCalculator(tables Tables, opts ...Option) *Calculator {
	c := &Calculator{
		tables: tables.Clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator(DefaultTables())

// Default returns the calculator over the compiled-in tables
func Default() *Calculator {
	return defaultCalculator
}

// CalculateEnhancedEstimate runs the default calculator
func CalculateEnhancedEstimate(p types.CostParameters) (*types.CostBreakdown, error) {
	return defaultCalculator.Calculate(p)
}

// Tables returns a copy of the tables in use
func (c *Calculator) Tables() Tables {
	return c.tables.Clone()
}

// Calculate computes the cost breakdown for p.
// It either returns a fully populated breakdown or an *errors.Error, never both.
func (c *Calculator) Calculate(p types.CostParameters) (*types.CostBreakdown, error) {
	projectType := types.ProjectType(strings.ToLower(strings.TrimSpace(string(p.ProjectType))))
	if projectType == "" || !isFinite(p.Area) || p.Area <= 0 {
		return nil, apperrors.Input(MsgInvalidParameters)
	}
	for _, v := range []float64{p.LaborWorkers, p.LaborHours, p.LaborRate, p.EquipmentCost, p.OverheadCost} {
		if !isFinite(v) {
			return nil, apperrors.Input(MsgInvalidParameters)
		}
	}

	timelineHours, hasTimelineHours := ParseTimelineHours(p.Timeline)

	row, ok := c.tables.BaseCosts[projectType]
	if !ok {
		return nil, apperrors.NotSupported(MsgUnsupportedProject).WithContext("projectType", string(projectType))
	}

	quality := normalizeQuality(p.MaterialQuality)
	baseCostPerSqft, ok := row[quality]
	if !ok {
		baseCostPerSqft, ok = row[types.QualityStandard]
	}
	if !ok || !isFinite(baseCostPerSqft) {
		return nil, apperrors.Pricing(MsgInvalidBaseCost).WithContext("projectType", string(projectType))
	}

	regional := c.RegionalMultiplier(p.ZipCode)
	timeline := c.TimelineMultiplier(p.Timeline)
	qualityMultiplier := c.QualityMultiplier(quality)
	if !isFinite(regional) || !isFinite(timeline) || !isFinite(qualityMultiplier) {
		return nil, apperrors.Computation(MsgInvalidMultipliers)
	}

	adjustedCostPerSqft := decimal.NewFromFloat(baseCostPerSqft).
		Mul(decimal.NewFromFloat(regional)).
		Mul(decimal.NewFromFloat(timeline)).
		Mul(decimal.NewFromFloat(qualityMultiplier))

	baseProjectCost := decimal.NewFromFloat(p.Area).Mul(adjustedCostPerSqft).Round(0)
	if !baseProjectCost.IsPositive() || baseProjectCost.GreaterThan(maxAmount) {
		return nil, apperrors.Computation(MsgInvalidProjectCost)
	}

	materials := baseProjectCost.Mul(materialsShare).Round(0)
	permits := baseProjectCost.Mul(permitsShare).Round(0)

	equipment := baseProjectCost.Mul(equipmentShare).Round(0)
	if p.EquipmentCost > 0 {
		equipment = decimal.NewFromFloat(p.EquipmentCost).Round(0)
	}
	overhead := baseProjectCost.Mul(overheadShare).Round(0)
	if p.OverheadCost > 0 {
		overhead = decimal.NewFromFloat(p.OverheadCost).Round(0)
	}

	var labor decimal.Decimal
	switch {
	case hasTimelineHours:
		workers := orDefault(p.LaborWorkers, c.tables.Labor.Workers)
		rate := orDefault(p.LaborRate, c.tables.Labor.Rate)
		labor = crewCost(timelineHours, workers, rate)
		c.logger.Debug("labor cost from timeline hours",
			zap.Float64("hours", timelineHours),
			zap.Float64("workers", workers),
			zap.Float64("rate", rate),
			zap.String("labor", labor.String()),
		)
	case p.HasLaborOverride():
		labor = crewCost(p.LaborHours, p.LaborWorkers, p.LaborRate)
	default:
		labor = baseProjectCost.Mul(laborShare).Round(0)
	}

	total := materials.Add(labor).Add(permits).Add(equipment).Add(overhead)
	if !total.IsPositive() || total.GreaterThan(maxAmount) {
		return nil, apperrors.Computation(MsgInvalidTotal)
	}
	for _, amount := range []decimal.Decimal{materials, labor, permits, equipment, overhead} {
		if amount.IsNegative() || amount.GreaterThan(maxAmount) {
			return nil, apperrors.Computation(MsgInvalidTotal)
		}
	}
	if !total.Equal(baseProjectCost) {
		// overrides and share rounding can move total away from the base cost
		c.logger.Debug("total differs from base project cost",
			zap.String("projectType", string(projectType)),
			zap.String("baseProjectCost", baseProjectCost.String()),
			zap.String("total", total.String()),
		)
	}

	return &types.CostBreakdown{
		Materials: line(materials, total),
		Labor:     line(labor, total),
		Permits:   line(permits, total),
		Equipment: line(equipment, total),
		Overhead:  line(overhead, total),
		Total:     total.IntPart(),
	}, nil
}

// RegionalMultiplier looks up a ZIP code (ZIP+4 accepted), defaulting to 1.0
func (c *Calculator) RegionalMultiplier(zip string) float64 {
	zip = strings.TrimSpace(zip)
	if len(zip) > 5 && zip[5] == '-' {
		zip = zip[:5]
	}
	if m, ok := c.tables.Regional[zip]; ok {
		return m
	}
	return 1.0
}

// TimelineMultiplier looks up a duration band, defaulting to 1.0
func (c *Calculator) TimelineMultiplier(timeline string) float64 {
	if m, ok := c.tables.Timeline[strings.ToLower(strings.TrimSpace(timeline))]; ok {
		return m
	}
	return 1.0
}

// QualityMultiplier looks up a quality tier, defaulting to 1.0
func (c *Calculator) QualityMultiplier(q types.QualityTier) float64 {
	if m, ok := c.tables.Quality[q]; ok {
		return m
	}
	return 1.0
}

func normalizeQuality(q types.QualityTier) types.QualityTier {
	q = types.QualityTier(strings.ToLower(strings.TrimSpace(string(q))))
	if q.IsValid() {
		return q
	}
	return types.QualityStandard
}

func crewCost(hours, workers, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).
		Mul(decimal.NewFromFloat(workers)).
		Mul(decimal.NewFromFloat(rate)).
		Round(0)
}

func line(amount, total decimal.Decimal) types.CategoryCost {
	return types.CategoryCost{
		Amount:     amount.IntPart(),
		Percentage: amount.Div(total).Mul(hundred).Round(0).IntPart(),
	}
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
