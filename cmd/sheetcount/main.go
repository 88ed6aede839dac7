// Command sheetcount tallies drawing sheet formats across a document manifest,
// prints the per-format counts and optionally writes exports or stores the
// report in the report history.
// Usage: go run ./cmd/sheetcount --manifest docs.json --xlsx sheets.xlsx
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/domain"
	"cadtools/internal/logging"
	"cadtools/internal/provider/manifest"
	"cadtools/internal/repository/postgres"
	"cadtools/internal/service"
	"cadtools/internal/sheetsize"
)

type options struct {
	manifestPath string
	xlsxPath     string
	csvPath      string
	save         bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.Must(cfg.Log)
	defer func() { _ = logger.Sync() }()

	opts := options{}
	fs := pflag.NewFlagSet("sheetcount", pflag.ContinueOnError)
	fs.StringVar(&opts.manifestPath, "manifest", cfg.Documents.Manifest, "document manifest to count")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "write the report as an Excel workbook")
	fs.StringVar(&opts.csvPath, "csv", "", "write the report as CSV")
	fs.BoolVar(&opts.save, "save", false, "store the report in the database")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.manifestPath == "" {
		return fmt.Errorf("--manifest is required")
	}
	targets, err := exportTargets(opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	records, err := manifest.New(opts.manifestPath).Documents(ctx)
	if err != nil {
		return err
	}

	report := count(records, logger)
	if err := printReport(stdout, report); err != nil {
		return err
	}

	for _, target := range targets {
		if err := writeExport(target.path, report, target.format); err != nil {
			return err
		}
		logger.Info("export written", zap.String("path", target.path), zap.String("format", string(target.format)))
	}

	if opts.save {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := postgres.NewSheetSizeReportRepo(db).Create(ctx, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		logger.Info("report saved", zap.String("report_id", report.ID.String()))
	}
	return nil
}

type exportTarget struct {
	path   string
	format service.ExportFormat
}

// exportTargets lists the requested exports in flag order. Two exports may not
// share a path.
func exportTargets(opts options) ([]exportTarget, error) {
	var targets []exportTarget
	for _, t := range []exportTarget{
		{opts.xlsxPath, service.FormatXLSX},
		{opts.csvPath, service.FormatCSV},
	} {
		if t.path == "" {
			continue
		}
		for _, prev := range targets {
			if filepath.Clean(prev.path) == filepath.Clean(t.path) {
				return nil, fmt.Errorf("--%s and --%s both write %s", prev.format, t.format, t.path)
			}
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// count tallies the drawings among records; other document types are skipped.
func count(records []*domain.Record, logger *zap.Logger) *domain.SheetSizeReport {
	drawings := make([]domain.DrawingDocument, 0, len(records))
	for _, r := range records {
		if r.Type != domain.DocumentTypeDrawing {
			logger.Debug("skipping non-drawing", zap.String("path", r.FullPath), zap.String("type", string(r.Type)))
			continue
		}
		drawings = append(drawings, r)
	}

	tally := sheetsize.NewCounter().Count(drawings)
	return tally.Report(uuid.New(), time.Now().UTC())
}

func printReport(w io.Writer, report *domain.SheetSizeReport) error {
	for _, e := range report.Entries {
		if _, err := fmt.Fprintf(w, "%s: %d\n", e.Size, e.Count); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Drawings: %d, sheets: %d, A4 equivalent: %d\n",
		report.DocumentCount, report.TotalSheets, report.SummaryA4)
	return err
}

func writeExport(path string, report *domain.SheetSizeReport, format service.ExportFormat) error {
	file, err := service.RenderReport(report, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
