package costengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionalInsight(t *testing.T) {
	tests := []struct {
		zip  string
		want string
	}{
		{"94102", InsightPremium},
		{"20814", InsightPremium},
		{"20850", InsightAboveAverage},
		{"33131", InsightAboveAverage},
		{"30303", InsightStandard},
		{"48226", InsightValue},
		{"39201", InsightValue},
		{"00000", InsightStandard},
		{"", InsightStandard},
		{"10001-4321", InsightPremium},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRegionalInsights(tt.zip))
		})
	}
}

func TestRegionalInsightDependsOnlyOnMultiplier(t *testing.T) {
	calc := Default()
	// 20814 and 60601 share the 1.15 multiplier
	assert.Equal(t, calc.RegionalMultiplier("20814"), calc.RegionalMultiplier("60601"))
	assert.Equal(t, calc.RegionalInsight("20814"), calc.RegionalInsight("60601"))
}

func TestInsightThresholds(t *testing.T) {
	assert.Equal(t, InsightPremium, InsightForMultiplier(1.15))
	assert.Equal(t, InsightAboveAverage, InsightForMultiplier(1.1499))
	assert.Equal(t, InsightAboveAverage, InsightForMultiplier(1.05))
	assert.Equal(t, InsightStandard, InsightForMultiplier(1.0))
	assert.Equal(t, InsightStandard, InsightForMultiplier(0.9201))
	assert.Equal(t, InsightValue, InsightForMultiplier(0.92))
}
