// Package cmd - region and rates commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildaide/adapters/ratefile"
	"buildaide/core/costengine"
	"buildaide/core/output"
)

func newRegionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "region <zip>",
		Short: "Show the regional cost multiplier and market insight for a ZIP code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.Get(outputFormat(format))
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			return formatter.Region(cmd.OutOrStdout(), svc.RegionalInsight(cmd.Context(), args[0]))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (cli, json)")
	return cmd
}

func newRatesCmd() *cobra.Command {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and validate rate tables",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active rate tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.Get(outputFormat(format))
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			return formatter.Tables(cmd.OutOrStdout(), svc.Tables())
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", "", "output format (cli, json)")

	validateCmd := &cobra.Command{
		Use:   "validate <file.hcl>",
		Short: "Check an HCL rate override file without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := ratefile.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := ratefile.Apply(costengine.DefaultTables(), o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d project, %d region, %d timeline, %d quality overrides)\n",
				args[0], len(o.BaseCosts), len(o.Regional), len(o.Timeline), len(o.Quality))
			return nil
		},
	}

	ratesCmd.AddCommand(showCmd, validateCmd)
	return ratesCmd
}
