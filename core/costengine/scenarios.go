package costengine

import (
	"fmt"

	"buildaide/core/types"
)

// WhatIf recalculates p four times, swapping one parameter each time:
// budget quality, premium quality, the rush timeline band and the extended
// timeline band. Any failing scenario fails the whole set.
func (c *Calculator) WhatIf(p types.CostParameters) (map[types.ScenarioName]*types.CostBreakdown, error) {
	budget := p
	budget.MaterialQuality = types.QualityBudget

	premium := p
	premium.MaterialQuality = types.QualityPremium

	rush := p
	rush.Timeline = c.tables.RushBand()

	extended := p
	extended.Timeline = c.tables.ExtendedBand()

	variants := []struct {
		name   types.ScenarioName
		params types.CostParameters
	}{
		{types.ScenarioBudgetMaterials, budget},
		{types.ScenarioPremiumMaterials, premium},
		{types.ScenarioRushTimeline, rush},
		{types.ScenarioExtendedTimeline, extended},
	}

	out := make(map[types.ScenarioName]*types.CostBreakdown, len(variants))
	for _, v := range variants {
		breakdown, err := c.Calculate(v.params)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", v.name, err)
		}
		out[v.name] = breakdown
	}
	return out, nil
}

// GenerateWhatIfScenarios runs WhatIf on the default calculator
func GenerateWhatIfScenarios(p types.CostParameters) (map[types.ScenarioName]*types.CostBreakdown, error) {
	return defaultCalculator.WhatIf(p)
}
