// Package convert drives the export-to-CSV pipeline: streaming reader,
// element mapper, and CSV sinks.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jriceoh2020/applehealthexport/internal/config"
	"github.com/jriceoh2020/applehealthexport/internal/csvout"
	"github.com/jriceoh2020/applehealthexport/internal/healthxml"
)

// contextCheckInterval is how many elements to process between cancellation
// checks.
const contextCheckInterval = 1000

// ExportFileName is the file Apple writes inside the exported folder.
const ExportFileName = "export.xml"

// Options configures a conversion run.
type Options struct {
	// Input is the export.xml file or the exported folder containing it.
	Input string
	// OutputDir receives the CSV files; created if absent.
	OutputDir string
	Config    *config.Config
	Logger    *zap.Logger
}

// Summary reports what a run produced.
type Summary struct {
	RunID      string
	ExportDate string
	Rows       map[string]int // rows per output file base name
	Skipped    map[string]int // skipped elements per name
	Files      []string       // output file base names, sorted
	Elements   int            // total element starts seen
}

// Run converts the export at opts.Input into CSV files under opts.OutputDir.
// Cancellation is checked between elements; partial output files are left on
// disk when a run aborts.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := csvout.New(csvout.Options{
		Dir:           opts.OutputDir,
		Combined:      cfg.Combined,
		NameOverrides: cfg.TypeNames,
	})

	summary, err := drive(ctx, opts, writer)
	closeErr := writer.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}

	summary.Rows = writer.Counts()
	summary.Files = writer.Files()
	return summary, nil
}

// Inspect parses the export without writing anything, returning the summary
// a conversion run would report.
func Inspect(ctx context.Context, opts Options) (*Summary, error) {
	counter := newCountingSink()
	summary, err := drive(ctx, opts, counter)
	if err != nil {
		return nil, err
	}
	summary.Rows = counter.counts
	summary.Files = counter.names()
	return summary, nil
}

func drive(ctx context.Context, opts Options, sink healthxml.Sink) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	path, err := resolveInput(opts.Input)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger.Info("parsing export",
		zap.String("run_id", runID),
		zap.String("input", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := healthxml.NewReader(f)
	mapper := healthxml.NewMapper(healthxml.MapperOptions{
		SkipTypes:    cfg.SkipTypes,
		KeepTimezone: cfg.KeepTimezone,
		Logger:       logger,
	})

	elements := 0
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if ev.Kind == healthxml.StartElement {
			elements++
			if elements%contextCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return nil, fmt.Errorf("conversion aborted after %d elements: %w", elements, err)
				}
			}
		}
		if err := mapper.Feed(ev, sink); err != nil {
			return nil, err
		}
	}

	logger.Info("export parsed",
		zap.String("run_id", runID),
		zap.Int("elements", elements),
		zap.String("export_date", mapper.ExportDate()))

	return &Summary{
		RunID:      runID,
		ExportDate: mapper.ExportDate(),
		Skipped:    mapper.Skipped(),
		Elements:   elements,
	}, nil
}

// resolveInput accepts either the export.xml file or the exported folder
// containing it.
func resolveInput(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("input: %w", err)
	}
	if !info.IsDir() {
		return input, nil
	}

	path := filepath.Join(input, ExportFileName)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("input: %w", err)
	}
	return path, nil
}
