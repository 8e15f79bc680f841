// Package output renders estimation results for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"buildaide/core/costengine"
	"buildaide/core/engine"
	"buildaide/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	Format() Format
	Estimate(w io.Writer, res *engine.EstimateResult) error
	WhatIf(w io.Writer, res *engine.WhatIfResult) error
	Region(w io.Writer, res *engine.RegionResult) error
	Tables(w io.Writer, t costengine.Tables) error
}

// Get returns the formatter for a format name
func Get(format string) (Formatter, error) {
	switch Format(strings.ToLower(format)) {
	case FormatCLI, "":
		return cliFormatter{printer: message.NewPrinter(language.English)}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use cli or json)", format)
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) Estimate(w io.Writer, res *engine.EstimateResult) error { return writeJSON(w, res) }

func (jsonFormatter) WhatIf(w io.Writer, res *engine.WhatIfResult) error { return writeJSON(w, res) }

func (jsonFormatter) Region(w io.Writer, res *engine.RegionResult) error { return writeJSON(w, res) }

func (jsonFormatter) Tables(w io.Writer, t costengine.Tables) error { return writeJSON(w, t) }

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const rule = "├──────────────────────────────────────────────────────────┤"

type cliFormatter struct {
	printer *message.Printer
}

func (cliFormatter) Format() Format { return FormatCLI }

func (f cliFormatter) Estimate(w io.Writer, res *engine.EstimateResult) error {
	b := res.Breakdown
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                 CONSTRUCTION COST ESTIMATE               │")
	fmt.Fprintln(w, rule)
	for _, c := range types.AllCategories() {
		line := b.Get(c)
		fmt.Fprintf(w, "│ %-31s %15s %8s │\n", categoryLabel(c), f.usd(line.Amount), fmt.Sprintf("%d%%", line.Percentage))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "│ %-31s %15s %8s │\n", "TOTAL", f.usd(b.Total), "")
	fmt.Fprintln(w, "└──────────────────────────────────────────────────────────┘")
	fmt.Fprintf(w, "\n%s (regional multiplier %.2f)\n", res.RegionalInsight, res.Metadata.RegionalMultiplier)
	if res.Metadata.Cached {
		fmt.Fprintln(w, "Served from cache")
	}
	return nil
}

func (f cliFormatter) WhatIf(w io.Writer, res *engine.WhatIfResult) error {
	fmt.Fprintln(w, "┌──────────────────────────────────────────────────────────┐")
	fmt.Fprintln(w, "│                    WHAT-IF SCENARIOS                     │")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "│ %-31s %15s %8s │\n", "Baseline", f.usd(res.Baseline.Total), "")
	for _, name := range types.AllScenarios() {
		s, ok := res.Scenarios[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "│ %-31s %15s %8s │\n", scenarioLabel(name), f.usd(s.Total), f.delta(s.Total-res.Baseline.Total))
	}
	fmt.Fprintln(w, "└──────────────────────────────────────────────────────────┘")
	return nil
}

func (f cliFormatter) Region(w io.Writer, res *engine.RegionResult) error {
	fmt.Fprintf(w, "ZIP %s: multiplier %.2f\n%s\n", res.ZipCode, res.Multiplier, res.Insight)
	return nil
}

func (f cliFormatter) Tables(w io.Writer, t costengine.Tables) error {
	fmt.Fprintln(w, "Base cost per square foot")
	fmt.Fprintf(w, "  %-24s %9s %9s %9s %9s\n", "project", "budget", "standard", "premium", "luxury")
	for _, pt := range t.ProjectTypes() {
		row := t.BaseCosts[pt]
		fmt.Fprintf(w, "  %-24s", pt)
		for _, q := range types.AllQualityTiers() {
			if v, ok := row[q]; ok {
				fmt.Fprintf(w, " %9s", f.printer.Sprintf("$%.2f", v))
			} else {
				fmt.Fprintf(w, " %9s", "-")
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\nQuality multipliers")
	for _, q := range types.AllQualityTiers() {
		if v, ok := t.Quality[q]; ok {
			fmt.Fprintf(w, "  %-24s %.2f\n", q, v)
		}
	}

	fmt.Fprintln(w, "\nTimeline multipliers")
	writeSorted(w, t.Timeline)

	fmt.Fprintln(w, "\nRegional multipliers")
	writeSorted(w, t.Regional)

	fmt.Fprintf(w, "\nDefault crew: %g workers, %g hours, $%g/hour\n", t.Labor.Workers, t.Labor.Hours, t.Labor.Rate)
	return nil
}

func (f cliFormatter) usd(amount int64) string {
	return f.printer.Sprintf("$%d", amount)
}

func (f cliFormatter) delta(d int64) string {
	if d >= 0 {
		return f.printer.Sprintf("+%d", d)
	}
	return f.printer.Sprintf("%d", d)
}

func writeSorted(w io.Writer, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-24s %.2f\n", k, m[k])
	}
}

func categoryLabel(c types.Category) string {
	switch c {
	case types.CategoryMaterials:
		return "Materials"
	case types.CategoryLabor:
		return "Labor"
	case types.CategoryPermits:
		return "Permits"
	case types.CategoryEquipment:
		return "Equipment"
	case types.CategoryOverhead:
		return "Overhead"
	default:
		return string(c)
	}
}

func scenarioLabel(s types.ScenarioName) string {
	switch s {
	case types.ScenarioBudgetMaterials:
		return "Budget materials"
	case types.ScenarioPremiumMaterials:
		return "Premium materials"
	case types.ScenarioRushTimeline:
		return "Rush timeline"
	case types.ScenarioExtendedTimeline:
		return "Extended timeline"
	default:
		return string(s)
	}
}
