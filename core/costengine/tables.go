package costengine

import (
	"sort"

	"buildaide/core/types"
)

// LaborDefaults are the crew assumptions used when a request does not supply them
type LaborDefaults struct {
	Workers float64 `json:"workers"`
	Hours   float64 `json:"hours"`
	Rate    float64 `json:"rate"`
}

// Tables holds the static lookup tables the calculator reads.
// A Tables value is treated as immutable once handed to a Calculator.
type Tables struct {
	// BaseCosts is dollars per square foot by project type and quality tier
	BaseCosts map[types.ProjectType]map[types.QualityTier]float64 `json:"baseCosts"`

	// Regional maps a 5-digit ZIP code to a cost-of-construction multiplier
	Regional map[string]float64 `json:"regional"`

	// Timeline maps a duration band to a schedule multiplier
	Timeline map[string]float64 `json:"timeline"`

	// Quality maps a quality tier to a material premium multiplier
	Quality map[types.QualityTier]float64 `json:"quality"`

	Labor LaborDefaults `json:"labor"`
}

// Timeline bands
const (
	Band1To2Weeks   = "1-2 weeks"
	Band2To4Weeks   = "2-4 weeks"
	Band4To8Weeks   = "4-8 weeks"
	Band2To3Months  = "2-3 months"
	Band3To6Months  = "3-6 months"
	Band6PlusMonths = "6+ months"
)

// DefaultTables returns a fresh copy of the compiled-in tables
func DefaultTables() Tables {
	return Tables{
		BaseCosts: map[types.ProjectType]map[types.QualityTier]float64{
			types.ProjectKitchenRemodel:       tiers(120, 195, 320, 500),
			types.ProjectBathroomRemodel:      tiers(140, 225, 375, 575),
			types.ProjectHomeAddition:         tiers(150, 225, 325, 450),
			types.ProjectDeckConstruction:     tiers(25, 40, 60, 85),
			types.ProjectFlooringInstallation: tiers(6, 10, 16, 25),
			types.ProjectRoofingReplacement:   tiers(5, 8, 12, 18),
			types.ProjectSidingInstallation:   tiers(6, 9, 14, 20),
		},
		Regional: map[string]float64{
			"94102": 1.40, // San Francisco, CA
			"94301": 1.38, // Palo Alto, CA
			"10013": 1.38, // New York, NY (Tribeca)
			"10001": 1.35, // New York, NY
			"90210": 1.32, // Beverly Hills, CA
			"02108": 1.28, // Boston, MA
			"90012": 1.25, // Los Angeles, CA
			"98101": 1.22, // Seattle, WA
			"20001": 1.18, // Washington, DC
			"20814": 1.15, // Bethesda, MD
			"60601": 1.15, // Chicago, IL
			"20850": 1.12, // Rockville, MD
			"80202": 1.08, // Denver, CO
			"33131": 1.06, // Miami, FL
			"30303": 0.98, // Atlanta, GA
			"75201": 0.96, // Dallas, TX
			"77002": 0.95, // Houston, TX
			"85004": 0.94, // Phoenix, AZ
			"48226": 0.92, // Detroit, MI
			"63101": 0.91, // St. Louis, MO
			"38103": 0.88, // Memphis, TN
			"39201": 0.85, // Jackson, MS
		},
		Timeline: map[string]float64{
			Band1To2Weeks:   1.25,
			Band2To4Weeks:   1.10,
			Band4To8Weeks:   1.00,
			Band2To3Months:  0.97,
			Band3To6Months:  0.95,
			Band6PlusMonths: 0.93,
		},
		Quality: map[types.QualityTier]float64{
			types.QualityBudget:   0.85,
			types.QualityStandard: 1.00,
			types.QualityPremium:  1.20,
			types.QualityLuxury:   1.45,
		},
		Labor: LaborDefaults{
			Workers: 2,
			Hours:   24,
			Rate:    55,
		},
	}
}

func tiers(budget, standard, premium, luxury float64) map[types.QualityTier]float64 {
	return map[types.QualityTier]float64{
		types.QualityBudget:   budget,
		types.QualityStandard: standard,
		types.QualityPremium:  premium,
		types.QualityLuxury:   luxury,
	}
}

// Clone returns a deep copy
func (t Tables) Clone() Tables {
	out := Tables{
		BaseCosts: make(map[types.ProjectType]map[types.QualityTier]float64, len(t.BaseCosts)),
		Regional:  make(map[string]float64, len(t.Regional)),
		Timeline:  make(map[string]float64, len(t.Timeline)),
		Quality:   make(map[types.QualityTier]float64, len(t.Quality)),
		Labor:     t.Labor,
	}
	for pt, row := range t.BaseCosts {
		copied := make(map[types.QualityTier]float64, len(row))
		for tier, v := range row {
			copied[tier] = v
		}
		out.BaseCosts[pt] = copied
	}
	for k, v := range t.Regional {
		out.Regional[k] = v
	}
	for k, v := range t.Timeline {
		out.Timeline[k] = v
	}
	for k, v := range t.Quality {
		out.Quality[k] = v
	}
	return out
}

// ProjectTypes returns the project types with a base cost row, sorted
func (t Tables) ProjectTypes() []types.ProjectType {
	out := make([]types.ProjectType, 0, len(t.BaseCosts))
	for pt := range t.BaseCosts {
		out = append(out, pt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RushBand is the timeline band with the highest multiplier
func (t Tables) RushBand() string {
	return t.extremeBand(func(a, b float64) bool { return a > b })
}

// ExtendedBand is the timeline band with the lowest multiplier
func (t Tables) ExtendedBand() string {
	return t.extremeBand(func(a, b float64) bool { return a < b })
}

func (t Tables) extremeBand(better func(a, b float64) bool) string {
	bands := make([]string, 0, len(t.Timeline))
	for band := range t.Timeline {
		bands = append(bands, band)
	}
	sort.Strings(bands)

	best := ""
	for _, band := range bands {
		if best == "" || better(t.Timeline[band], t.Timeline[best]) {
			best = band
		}
	}
	return best
}
