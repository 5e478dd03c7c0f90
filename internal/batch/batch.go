// Package batch ingests every statement of a directory in one run.
package batch

import (
	"context"
	"errors"
	"sort"

	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/pipeline"
)

// Ingester processes one statement file.
type Ingester interface {
	Ingest(ctx context.Context, filePath string) (pipeline.IngestResult, error)
}

// Failure is a file that could not be ingested.
type Failure struct {
	File string
	Err  error
}

// Report aggregates the results of a directory run.
type Report struct {
	Files      int
	Succeeded  int
	Failed     []Failure
	Parsed     int
	Skipped    int
	Added      int
	Duplicates int
	// Months is every month touched by the run, sorted.
	Months []string
}

// Processor runs an Ingester over a directory. Files are processed one at a
// time in name order and are never deleted.
type Processor struct {
	ingester Ingester
	logger   logging.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(ingester Ingester, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{ingester: ingester, logger: logger}
}

// ProcessDirectory ingests the regular, non-hidden files of dir. A failing
// file is recorded in the report and does not stop the run; only listing
// errors and cancellation end it early.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string) (Report, error) {
	files, err := fileutils.ListFiles(dir)
	if err != nil {
		return Report{}, err
	}

	logger := p.logger.WithField(logging.FieldDirectory, dir)
	logger.Info("Batch ingestion started", logging.F(logging.FieldCount, len(files)))

	report := Report{Files: len(files)}
	months := make(map[string]struct{})
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := p.ingester.Ingest(ctx, file)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return report, err
			}
			logger.WithError(err).Warn("Failed to ingest file", logging.F(logging.FieldFile, file))
			report.Failed = append(report.Failed, Failure{File: file, Err: err})
			continue
		}

		report.Succeeded++
		report.Parsed += result.Parsed
		report.Skipped += result.Skipped
		report.Added += result.Write.Added
		report.Duplicates += result.Write.Duplicates
		for _, m := range result.Write.Months {
			months[m] = struct{}{}
		}
	}

	for m := range months {
		report.Months = append(report.Months, m)
	}
	sort.Strings(report.Months)

	logger.Info("Batch ingestion finished",
		logging.F("succeeded", report.Succeeded),
		logging.F("failed", len(report.Failed)),
		logging.F("added", report.Added),
		logging.F(logging.FieldDuplicates, report.Duplicates))
	return report, nil
}
