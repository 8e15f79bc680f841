package costengine

// Regional insight messages
const (
	InsightPremium      = "Premium market: construction costs run well above the national average"
	InsightAboveAverage = "Above-average market: expect moderately higher labor and material costs"
	InsightValue        = "Value market: construction costs run below the national average"
	InsightStandard     = "Standard rates: construction costs are close to the national average"
)

// InsightForMultiplier maps a regional multiplier to its market description
func InsightForMultiplier(m float64) string {
	switch {
	case m >= 1.15:
		return InsightPremium
	case m >= 1.05:
		return InsightAboveAverage
	case m <= 0.92:
		return InsightValue
	default:
		return InsightStandard
	}
}

// RegionalInsight describes the construction market of a ZIP code
func (c *Calculator) RegionalInsight(zip string) string {
	return InsightForMultiplier(c.RegionalMultiplier(zip))
}

// GetRegionalInsights runs RegionalInsight on the default calculator
func GetRegionalInsights(zip string) string {
	return defaultCalculator.RegionalInsight(zip)
}
