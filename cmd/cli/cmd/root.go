// Package cmd provides the CLI commands for buildaide.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"buildaide/adapters/ratefile"
	"buildaide/core/costengine"
	"buildaide/core/engine"
	"buildaide/internal/config"
	"buildaide/internal/logging"
)

const version = "1.0.0"

// options holds the persistent flags shared by every command
type options struct {
	cfgFile   string
	ratesFile string
	verbose   bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "buildaide",
		Short: "Estimate residential construction costs",
		Long: `buildaide estimates the cost of residential construction projects.

It combines per-square-foot base rates with regional, timeline and quality
multipliers and splits the result into materials, labor, permits, equipment
and overhead.

Examples:
  buildaide estimate --type kitchen-remodel --area 200
  buildaide estimate --type deck-construction --area 320 --zip 98101 --format json
  buildaide what-if --type bathroom-remodel --area 80 --quality premium
  buildaide region 94102`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.ratesFile, "rates", "", "HCL rate override file (overrides pricing.rates_file)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newEstimateCmd())
	rootCmd.AddCommand(newWhatIfCmd())
	rootCmd.AddCommand(newRegionCmd())
	rootCmd.AddCommand(newRatesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

func initConfig(opts *options) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if opts.ratesFile != "" {
		cfg.Pricing.RatesFile = opts.ratesFile
	}
	config.Set(cfg)

	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	return nil
}

// newService builds the estimation service from the loaded configuration
func newService() (*engine.Service, error) {
	cfg := config.Get()
	tables, err := ratefile.LoadTables(cfg.Pricing.RatesFile)
	if err != nil {
		return nil, err
	}
	calc := costengine.NewCalculator(tables, costengine.WithLogger(logging.Named("costengine")))
	return engine.NewService(calc, engine.WithLogger(logging.Named("engine"))), nil
}

// outputFormat resolves the --format flag against the configured default
func outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return config.Get().Output.DefaultFormat
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "buildaide version %s\n", version)
		},
	}
}
