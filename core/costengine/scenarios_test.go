package costengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
)

func TestWhatIfScenarios(t *testing.T) {
	base, err := CalculateEnhancedEstimate(kitchen())
	require.NoError(t, err)

	scenarios, err := GenerateWhatIfScenarios(kitchen())
	require.NoError(t, err)
	require.Len(t, scenarios, 4)

	budget := scenarios[types.ScenarioBudgetMaterials]
	premium := scenarios[types.ScenarioPremiumMaterials]
	rush := scenarios[types.ScenarioRushTimeline]
	extended := scenarios[types.ScenarioExtendedTimeline]

	assert.Equal(t, int64(20400), budget.Total)
	assert.Equal(t, int64(76800), premium.Total)
	assert.Equal(t, int64(48750), rush.Total)
	assert.Equal(t, int64(36270), extended.Total)

	assert.Less(t, budget.Total, base.Total)
	assert.Less(t, base.Total, premium.Total)
	assert.GreaterOrEqual(t, rush.Total, base.Total)
	assert.GreaterOrEqual(t, base.Total, extended.Total)

	seen := map[int64]bool{}
	for _, name := range types.AllScenarios() {
		seen[scenarios[name].Total] = true
	}
	assert.Len(t, seen, 4, "scenarios are distinct")
}

func TestWhatIfLeavesInputUntouched(t *testing.T) {
	p := kitchen()
	_, err := GenerateWhatIfScenarios(p)
	require.NoError(t, err)
	assert.Equal(t, kitchen(), p)
}

func TestWhatIfPropagatesErrors(t *testing.T) {
	_, err := GenerateWhatIfScenarios(types.CostParameters{ProjectType: "treehouse", Area: 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotSupported))
}

func TestWhatIfFollowsOverriddenBands(t *testing.T) {
	tables := DefaultTables()
	tables.Timeline["overnight"] = 1.6
	tables.Timeline["next year"] = 0.8

	assert.Equal(t, "overnight", tables.RushBand())
	assert.Equal(t, "next year", tables.ExtendedBand())

	scenarios, err := NewCalculator(tables).WhatIf(kitchen())
	require.NoError(t, err)
	assert.Equal(t, int64(62400), scenarios[types.ScenarioRushTimeline].Total)
	assert.Equal(t, int64(31200), scenarios[types.ScenarioExtendedTimeline].Total)
}

func TestDefaultBands(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, Band1To2Weeks, tables.RushBand())
	assert.Equal(t, Band6PlusMonths, tables.ExtendedBand())
}
