package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"geospec/adapters/csvio"
	"geospec/adapters/excel"
	"geospec/app"
	"geospec/internal/analysis"
	"geospec/internal/config"
)

func main() {
	// Load .env if present; the environment only supplies defaults.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "geospec",
		Short: "Spherical harmonic spectral analysis of geospatial point data",
	}

	rootCmd.AddCommand(
		newExpandCmd(),
		newCorrelateCmd(),
		newSummaryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newExpandCmd() *cobra.Command {
	var maxDegree int
	var workers int
	var coefsFile string
	var powerFile string

	cmd := &cobra.Command{
		Use:   "expand [samples-file]",
		Short: "Expand sample coordinates into harmonic coefficients and power",
		Long: `Expand reads (latitude, longitude) sample points from a CSV or Excel file,
estimates the truncated spherical harmonic expansion, and prints the run
manifest. Use --coefs and --power to export the tables as headerless CSV.

Example: geospec expand samples.csv --max-degree 20 --coefs coefs.csv --power power.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-degree") {
				maxDegree = cfg.Analysis.MaxDegree
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Analysis.Workers
			}

			samples, err := excel.NewSampleReader(args[0]).Read()
			if err != nil {
				return err
			}

			expander := analysis.NewExpander()
			if workers > 1 {
				expander = analysis.NewParallelExpander(workers)
			}
			service := app.NewSpectralService(expander)

			result, err := service.Expand(cmd.Context(), app.ExpandRequest{
				Lats:             samples.Lats,
				Lons:             samples.Lons,
				MaxDegree:        maxDegree,
				CoefficientsFile: coefsFile,
				PowerFile:        powerFile,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result.Manifest)
		},
	}

	cmd.Flags().IntVar(&maxDegree, "max-degree", analysis.DefaultMaxDegree, "maximum spherical harmonic degree")
	cmd.Flags().IntVar(&workers, "workers", 1, "worker goroutines for the sample reduction")
	cmd.Flags().StringVar(&coefsFile, "coefs", "", "coefficient table output path (CSV)")
	cmd.Flags().StringVar(&powerFile, "power", "", "power table output path (CSV)")
	return cmd
}

func newCorrelateCmd() *cobra.Command {
	var maxDegree int
	var levelsArg string
	var outFile string

	cmd := &cobra.Command{
		Use:   "correlate [coefs-file-1] [coefs-file-2]",
		Short: "Correlate two coefficient tables per harmonic degree",
		Long: `Correlate reads two previously exported coefficient tables and reports the
correlation coefficient per degree with zero-correlation confidence bounds.

Example: geospec correlate a.csv b.csv --levels 0.95 --out corr.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			table1, err := csvio.ReadCoefficientsFile(args[0])
			if err != nil {
				return err
			}
			table2, err := csvio.ReadCoefficientsFile(args[1])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("max-degree") {
				maxDegree = table1.MaxDegree
			}
			levels := cfg.Analysis.ConfidenceLevels
			if levelsArg != "" {
				levels, err = config.ParseConfidenceLevels(levelsArg)
				if err != nil {
					return err
				}
			}

			service := app.NewSpectralService(analysis.NewExpander())
			result, err := service.Correlate(cmd.Context(), app.CorrelateRequest{
				Table1:           table1,
				Table2:           table2,
				MaxDegree:        maxDegree,
				ConfidenceLevels: levels,
				CorrelationFile:  outFile,
			})
			if err != nil {
				return err
			}
			if outFile == "" {
				return csvio.WriteCorrelation(cmd.OutOrStdout(), result.Correlation)
			}
			return printJSON(cmd, result.Manifest)
		},
	}

	cmd.Flags().IntVar(&maxDegree, "max-degree", 0, "maximum degree (default: inferred from first table)")
	cmd.Flags().StringVar(&levelsArg, "levels", "", "comma-separated confidence levels, e.g. 0.8,0.95,0.99")
	cmd.Flags().StringVar(&outFile, "out", "", "correlation table output path (CSV)")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [power-file]",
		Short: "Describe an exported power spectrum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			power, err := csvio.ReadPowerFile(args[0])
			if err != nil {
				return err
			}
			summary, err := analysis.SummarizePower(power)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	}
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
