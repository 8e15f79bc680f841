// Package cmd - estimate and what-if commands
package cmd

import (
	"github.com/spf13/cobra"

	"buildaide/core/output"
	"buildaide/core/types"
	"buildaide/internal/logging"
)

// paramFlags binds the cost parameter flags of one command
type paramFlags struct {
	projectType string
	area        float64
	quality     string
	timeline    string
	zip         string
	workers     float64
	hours       float64
	rate        float64
	equipment   float64
	overhead    float64
	format      string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.projectType, "type", "t", "", "project type (e.g. kitchen-remodel, deck-construction)")
	fs.Float64VarP(&f.area, "area", "a", 0, "project area in square feet")
	fs.StringVarP(&f.quality, "quality", "q", "", "material quality (budget, standard, premium, luxury)")
	fs.StringVar(&f.timeline, "timeline", "", `timeline band (e.g. "4-8 weeks") or an hour count (e.g. "8 hours")`)
	fs.StringVarP(&f.zip, "zip", "z", "", "5-digit ZIP code for regional pricing")
	fs.Float64Var(&f.workers, "workers", 0, "crew size")
	fs.Float64Var(&f.hours, "hours", 0, "labor hours per worker")
	fs.Float64Var(&f.rate, "rate", 0, "hourly labor rate in dollars")
	fs.Float64Var(&f.equipment, "equipment", 0, "fixed equipment cost (replaces the percentage estimate)")
	fs.Float64Var(&f.overhead, "overhead", 0, "fixed overhead cost (replaces the percentage estimate)")
	fs.StringVarP(&f.format, "format", "f", "", "output format (cli, json)")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("area")
}

func (f *paramFlags) params() types.CostParameters {
	return types.CostParameters{
		ProjectType:     types.ProjectType(f.projectType),
		Area:            f.area,
		MaterialQuality: types.QualityTier(f.quality),
		Timeline:        f.timeline,
		ZipCode:         f.zip,
		LaborWorkers:    f.workers,
		LaborHours:      f.hours,
		LaborRate:       f.rate,
		EquipmentCost:   f.equipment,
		OverheadCost:    f.overhead,
	}
}

func newEstimateCmd() *cobra.Command {
	flags := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a construction project",
		Long: `Compute a cost breakdown for one project.

Examples:
  buildaide estimate --type kitchen-remodel --area 200
  buildaide estimate -t bathroom-remodel -a 100 -q premium --timeline "1-2 weeks" --zip 10001
  buildaide estimate -t deck-construction -a 300 --timeline "8 hours" --workers 3 --rate 70`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.Get(outputFormat(flags.format))
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}

			logging.Debug("Starting cost estimation")
			res, err := svc.Estimate(cmd.Context(), flags.params())
			if err != nil {
				return err
			}
			return formatter.Estimate(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	return cmd
}

func newWhatIfCmd() *cobra.Command {
	flags := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "what-if",
		Short: "Compare a project against budget, premium, rush and extended variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.Get(outputFormat(flags.format))
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}

			res, err := svc.WhatIf(cmd.Context(), flags.params())
			if err != nil {
				return err
			}
			return formatter.WhatIf(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	return cmd
}
