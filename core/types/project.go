// Package types - Estimate input types
package types

// CostParameters is the input to the cost calculator.
// Optional numeric fields count as supplied when they are greater than zero.
type CostParameters struct {
	ProjectType     ProjectType `json:"projectType"`
	Area            float64     `json:"area"`
	MaterialQuality QualityTier `json:"materialQuality,omitempty"`
	Timeline        string      `json:"timeline,omitempty"`
	ZipCode         string      `json:"zipCode,omitempty"`

	// Labor overrides, used when the timeline carries no explicit hours
	LaborWorkers float64 `json:"laborWorkers,omitempty"`
	LaborHours   float64 `json:"laborHours,omitempty"`
	LaborRate    float64 `json:"laborRate,omitempty"`

	// Direct overrides of the percentage-based equipment and overhead lines
	EquipmentCost float64 `json:"equipmentCost,omitempty"`
	OverheadCost  float64 `json:"overheadCost,omitempty"`
}

// HasLaborOverride reports whether workers, hours and rate were all supplied
func (p CostParameters) HasLaborOverride() bool {
	return p.LaborWorkers > 0 && p.LaborHours > 0 && p.LaborRate > 0
}
