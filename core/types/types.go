// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// ProjectType identifies a construction project category
type ProjectType string

const (
	ProjectKitchenRemodel       ProjectType = "kitchen-remodel"
	ProjectBathroomRemodel      ProjectType = "bathroom-remodel"
	ProjectHomeAddition         ProjectType = "home-addition"
	ProjectDeckConstruction     ProjectType = "deck-construction"
	ProjectFlooringInstallation ProjectType = "flooring-installation"
	ProjectRoofingReplacement   ProjectType = "roofing-replacement"
	ProjectSidingInstallation   ProjectType = "siding-installation"
)

// AllProjectTypes lists the supported project categories in display order
func AllProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectKitchenRemodel,
		ProjectBathroomRemodel,
		ProjectHomeAddition,
		ProjectDeckConstruction,
		ProjectFlooringInstallation,
		ProjectRoofingReplacement,
		ProjectSidingInstallation,
	}
}

// String returns the string representation
func (t ProjectType) String() string {
	return string(t)
}

// QualityTier is the material-quality tier of a project
type QualityTier string

const (
	QualityBudget   QualityTier = "budget"
	QualityStandard QualityTier = "standard"
	QualityPremium  QualityTier = "premium"
	QualityLuxury   QualityTier = "luxury"
)

// AllQualityTiers lists the tiers from cheapest to most expensive
func AllQualityTiers() []QualityTier {
	return []QualityTier{QualityBudget, QualityStandard, QualityPremium, QualityLuxury}
}

// String returns the string representation
func (q QualityTier) String() string {
	return string(q)
}

// IsValid checks if the tier is a known tier
func (q QualityTier) IsValid() bool {
	switch q {
	case QualityBudget, QualityStandard, QualityPremium, QualityLuxury:
		return true
	default:
		return false
	}
}
