// Package types - Cost breakdown types
package types

// Category names a cost breakdown category
type Category string

const (
	CategoryMaterials Category = "materials"
	CategoryLabor     Category = "labor"
	CategoryPermits   Category = "permits"
	CategoryEquipment Category = "equipment"
	CategoryOverhead  Category = "overhead"
)

// AllCategories lists the breakdown categories in report order
func AllCategories() []Category {
	return []Category{CategoryMaterials, CategoryLabor, CategoryPermits, CategoryEquipment, CategoryOverhead}
}

// CategoryCost is one line of a cost breakdown
type CategoryCost struct {
	// Amount is the cost in whole US dollars
	Amount int64 `json:"amount"`

	// Percentage is the rounded share of the total (0-100)
	Percentage int64 `json:"percentage"`
}

// CostBreakdown is the output of the cost calculator.
// Total is always the sum of the five category amounts.
type CostBreakdown struct {
	Materials CategoryCost `json:"materials"`
	Labor     CategoryCost `json:"labor"`
	Permits   CategoryCost `json:"permits"`
	Equipment CategoryCost `json:"equipment"`
	Overhead  CategoryCost `json:"overhead"`
	Total     int64        `json:"total"`
}

// Get returns the line for a category
func (b *CostBreakdown) Get(c Category) CategoryCost {
	switch c {
	case CategoryMaterials:
		return b.Materials
	case CategoryLabor:
		return b.Labor
	case CategoryPermits:
		return b.Permits
	case CategoryEquipment:
		return b.Equipment
	case CategoryOverhead:
		return b.Overhead
	default:
		return CategoryCost{}
	}
}

// SumAmounts adds the category amounts
func (b *CostBreakdown) SumAmounts() int64 {
	return b.Materials.Amount + b.Labor.Amount + b.Permits.Amount + b.Equipment.Amount + b.Overhead.Amount
}

// SumPercentages adds the category percentages
func (b *CostBreakdown) SumPercentages() int64 {
	return b.Materials.Percentage + b.Labor.Percentage + b.Permits.Percentage + b.Equipment.Percentage + b.Overhead.Percentage
}

// ScenarioName identifies a what-if scenario
type ScenarioName string

const (
	ScenarioBudgetMaterials  ScenarioName = "budgetMaterials"
	ScenarioPremiumMaterials ScenarioName = "premiumMaterials"
	ScenarioRushTimeline     ScenarioName = "rushTimeline"
	ScenarioExtendedTimeline ScenarioName = "extendedTimeline"
)

// AllScenarios lists the what-if scenarios in report order
func AllScenarios() []ScenarioName {
	return []ScenarioName{ScenarioBudgetMaterials, ScenarioPremiumMaterials, ScenarioRushTimeline, ScenarioExtendedTimeline}
}
