// Package ratefile loads HCL rate-table overrides.
//
//	project "kitchen-remodel" {
//	  standard = 200
//	}
//	region "20850" { multiplier = 1.12 }
//	timeline "1-2 weeks" { multiplier = 1.3 }
//	quality "luxury" { multiplier = 1.5 }
//	labor {
//	  workers = 3
//	  rate    = 60
//	}
package ratefile

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"buildaide/core/costengine"
	"buildaide/core/types"
)

type fileSchema struct {
	Projects  []projectBlock    `hcl:"project,block"`
	Regions   []multiplierBlock `hcl:"region,block"`
	Timelines []multiplierBlock `hcl:"timeline,block"`
	Qualities []multiplierBlock `hcl:"quality,block"`
	Labor     *laborBlock       `hcl:"labor,block"`
}

type projectBlock struct {
	Type     string   `hcl:"type,label"`
	Budget   *float64 `hcl:"budget,optional"`
	Standard *float64 `hcl:"standard,optional"`
	Premium  *float64 `hcl:"premium,optional"`
	Luxury   *float64 `hcl:"luxury,optional"`
}

type multiplierBlock struct {
	Key        string  `hcl:"key,label"`
	Multiplier float64 `hcl:"multiplier"`
}

type laborBlock struct {
	Workers *float64 `hcl:"workers,optional"`
	Hours   *float64 `hcl:"hours,optional"`
	Rate    *float64 `hcl:"rate,optional"`
}

// Overrides is the validated content of a rate file
type Overrides struct {
	BaseCosts map[types.ProjectType]map[types.QualityTier]float64
	Regional  map[string]float64
	Timeline  map[string]float64
	Quality   map[types.QualityTier]float64
	Labor     costengine.LaborDefaults // zero fields keep the base value
}

// Load parses and validates the rate file at path
func Load(path string) (*Overrides, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file: %w", err)
	}
	return Parse(src, path)
}

// Parse parses and validates rate file source; filename is used in diagnostics
func Parse(src []byte, filename string) (*Overrides, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, diagError(diags)
	}

	return schema.validate(filename)
}

func (s *fileSchema) validate(filename string) (*Overrides, error) {
	o := &Overrides{
		BaseCosts: map[types.ProjectType]map[types.QualityTier]float64{},
		Regional:  map[string]float64{},
		Timeline:  map[string]float64{},
		Quality:   map[types.QualityTier]float64{},
	}

	for _, p := range s.Projects {
		pt := types.ProjectType(strings.ToLower(strings.TrimSpace(p.Type)))
		if pt == "" {
			return nil, fmt.Errorf("%s: project block needs a type label", filename)
		}
		row := map[types.QualityTier]float64{}
		for tier, v := range map[types.QualityTier]*float64{
			types.QualityBudget:   p.Budget,
			types.QualityStandard: p.Standard,
			types.QualityPremium:  p.Premium,
			types.QualityLuxury:   p.Luxury,
		} {
			if v == nil {
				continue
			}
			if err := positive(*v); err != nil {
				return nil, fmt.Errorf("%s: project %q %s: %w", filename, pt, tier, err)
			}
			row[tier] = *v
		}
		o.BaseCosts[pt] = row
	}

	for _, r := range s.Regions {
		if !isZip(r.Key) {
			return nil, fmt.Errorf("%s: region %q is not a 5-digit ZIP code", filename, r.Key)
		}
		if err := positive(r.Multiplier); err != nil {
			return nil, fmt.Errorf("%s: region %q: %w", filename, r.Key, err)
		}
		o.Regional[r.Key] = r.Multiplier
	}

	for _, t := range s.Timelines {
		band := strings.ToLower(strings.TrimSpace(t.Key))
		if band == "" {
			return nil, fmt.Errorf("%s: timeline block needs a band label", filename)
		}
		if err := positive(t.Multiplier); err != nil {
			return nil, fmt.Errorf("%s: timeline %q: %w", filename, band, err)
		}
		o.Timeline[band] = t.Multiplier
	}

	for _, q := range s.Qualities {
		tier := types.QualityTier(strings.ToLower(q.Key))
		if !tier.IsValid() {
			return nil, fmt.Errorf("%s: unknown quality tier %q", filename, q.Key)
		}
		if err := positive(q.Multiplier); err != nil {
			return nil, fmt.Errorf("%s: quality %q: %w", filename, tier, err)
		}
		o.Quality[tier] = q.Multiplier
	}

	if s.Labor != nil {
		for name, v := range map[string]*float64{"workers": s.Labor.Workers, "hours": s.Labor.Hours, "rate": s.Labor.Rate} {
			if v != nil {
				if err := positive(*v); err != nil {
					return nil, fmt.Errorf("%s: labor %s: %w", filename, name, err)
				}
			}
		}
		o.Labor = costengine.LaborDefaults{
			Workers: deref(s.Labor.Workers),
			Hours:   deref(s.Labor.Hours),
			Rate:    deref(s.Labor.Rate),
		}
	}

	return o, nil
}

// Apply returns base with o layered on top. base is not modified.
// A project type that base does not know must define a standard rate.
func Apply(base costengine.Tables, o *Overrides) (costengine.Tables, error) {
	out := base.Clone()
	if o == nil {
		return out, nil
	}

	for pt, row := range o.BaseCosts {
		existing, known := out.BaseCosts[pt]
		if !known {
			if _, ok := row[types.QualityStandard]; !ok {
				return costengine.Tables{}, fmt.Errorf("new project type %q must define a standard rate", pt)
			}
			existing = map[types.QualityTier]float64{}
			out.BaseCosts[pt] = existing
		}
		for tier, v := range row {
			existing[tier] = v
		}
	}
	for zip, m := range o.Regional {
		out.Regional[zip] = m
	}
	for band, m := range o.Timeline {
		out.Timeline[band] = m
	}
	for tier, m := range o.Quality {
		out.Quality[tier] = m
	}
	if o.Labor.Workers > 0 {
		out.Labor.Workers = o.Labor.Workers
	}
	if o.Labor.Hours > 0 {
		out.Labor.Hours = o.Labor.Hours
	}
	if o.Labor.Rate > 0 {
		out.Labor.Rate = o.Labor.Rate
	}
	return out, nil
}

// LoadTables loads path and applies it over the compiled-in tables.
// An empty path yields the compiled-in tables.
func LoadTables(path string) (costengine.Tables, error) {
	if path == "" {
		return costengine.DefaultTables(), nil
	}
	o, err := Load(path)
	if err != nil {
		return costengine.Tables{}, err
	}
	return Apply(costengine.DefaultTables(), o)
}

func diagError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%s:%d: %s", diag.Subject.Filename, diag.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid rate file: %s", strings.Join(msgs, "; "))
}

func positive(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("value must be a positive number, got %v", v)
	}
	return nil
}

func isZip(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
