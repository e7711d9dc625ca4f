package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jriceoh2020/applehealthexport/internal/convert"
)

var (
	convertCombined     bool
	convertKeepTimezone bool
	convertSkipTypes    []string
)

// convertCmd converts an export into CSV files
var convertCmd = &cobra.Command{
	Use:   "convert <export.xml|export-dir> <output-dir>",
	Short: "Convert an Apple Health export to CSV files",
	Long: `Converts an Apple Health export into CSV files under the output
directory. The input may be the export.xml file itself or the exported
folder containing it.

One CSV file is written per record type (heart_rate.csv, steps.csv, ...),
plus workouts.csv, activity_summary.csv, blood_pressure.csv, and
profile.csv when the export contains that data.

Example:
  healthcsv convert ~/Downloads/apple_health_export ./csv`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertCombined, "combined", false,
		"write all records to a single records.csv with a type column")
	convertCmd.Flags().BoolVar(&convertKeepTimezone, "keep-timezone", false,
		"keep timezone offsets on date columns")
	convertCmd.Flags().StringArrayVar(&convertSkipTypes, "skip", nil,
		"HealthKit type identifier to skip (repeatable)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applyConvertFlags(cmd)

	summary, err := convert.Run(ctx, convert.Options{
		Input:     args[0],
		OutputDir: args[1],
		Config:    cfg,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	renderSummary(cmd.OutOrStdout(), summary, args[1])
	return nil
}

// applyConvertFlags layers explicit flags over the loaded config.
func applyConvertFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("combined") {
		cfg.Combined = convertCombined
	}
	if cmd.Flags().Changed("keep-timezone") {
		cfg.KeepTimezone = convertKeepTimezone
	}
	if len(convertSkipTypes) > 0 {
		cfg.SkipTypes = append(cfg.SkipTypes, convertSkipTypes...)
	}
}
