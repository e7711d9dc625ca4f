package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jriceoh2020/applehealthexport/internal/convert"
)

// inspectCmd parses an export without writing anything
var inspectCmd = &cobra.Command{
	Use:   "inspect <export.xml|export-dir>",
	Short: "Report what an export contains without writing CSV files",
	Long: `Parses an Apple Health export and reports the row counts a
conversion would produce, without writing any files.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := convert.Inspect(ctx, convert.Options{
		Input:  args[0],
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	renderInspect(cmd.OutOrStdout(), summary)
	return nil
}
