// Package container provides dependency injection for the ledgerlens application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"ledgerlens/ledgerlens/internal/analysis"
	"ledgerlens/ledgerlens/internal/batch"
	"ledgerlens/ledgerlens/internal/config"
	"ledgerlens/ledgerlens/internal/ledger"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/models"
	"ledgerlens/ledgerlens/internal/parser"
	"ledgerlens/ledgerlens/internal/pdfparser"
	"ledgerlens/ledgerlens/internal/pipeline"
	"ledgerlens/ledgerlens/internal/report"
	"ledgerlens/ledgerlens/internal/store"
	"ledgerlens/ledgerlens/internal/tabularparser"
	"ledgerlens/ledgerlens/internal/watcher"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    store.TableStore
	registry *parser.Registry
	ledger   *ledger.Writer
	analyzer *analysis.Generator
	reporter *report.Generator
	pipeline *pipeline.Pipeline
	batch    *batch.Processor
	watcher  *watcher.Watcher
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return build(cfg, config.NewLogger(cfg), pdfparser.NewLibraryExtractor())
}

func build(cfg *config.Config, logger logging.Logger, extractor pdfparser.TableExtractor) (*Container, error) {
	tableStore, err := store.New(cfg.Output.Format, cfg.Delimiter())
	if err != nil {
		return nil, fmt.Errorf("failed to create table store: %w", err)
	}

	registry := parser.NewRegistry()
	registry.Register(models.FileTypePDF, models.BankSBI,
		pdfparser.NewParser(logger, extractor, cfg.Parsers.PDF.DateLayout))
	tabular := tabularparser.NewParser(logger, cfg.Delimiter())
	registry.Register(models.FileTypeCSV, models.BankAny, tabular)
	registry.Register(models.FileTypeExcel, models.BankAny, tabular)

	writer := ledger.NewWriter(tableStore, cfg.Output.Directory, logger)
	analyzer := analysis.NewGenerator(writer, tableStore, cfg.Output.Directory, cfg.Analysis.TopSenders, logger)
	ingest := pipeline.New(registry, writer, analyzer, logger)
	settle := time.Duration(cfg.Watch.SettleMillis) * time.Millisecond

	logger.Debug("Container initialized",
		logging.F(logging.FieldFormat, tableStore.Extension()),
		logging.F(logging.FieldDirectory, cfg.Output.Directory),
		logging.F("parsers_count", len(registry.Supported())))

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    tableStore,
		registry: registry,
		ledger:   writer,
		analyzer: analyzer,
		reporter: report.NewGenerator(logger),
		pipeline: ingest,
		batch:    batch.NewProcessor(ingest, logger),
		watcher:  watcher.New(cfg.Input.Directory, ingest, settle, logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the table store used for every ledger file.
func (c *Container) GetStore() store.TableStore {
	return c.store
}

// GetRegistry returns the parser registry.
func (c *Container) GetRegistry() *parser.Registry {
	return c.registry
}

// GetLedger returns the ledger writer.
func (c *Container) GetLedger() *ledger.Writer {
	return c.ledger
}

// GetAnalyzer returns the monthly analysis generator.
func (c *Container) GetAnalyzer() *analysis.Generator {
	return c.analyzer
}

// GetReporter returns the console report generator.
func (c *Container) GetReporter() *report.Generator {
	return c.reporter
}

// GetPipeline returns the ingestion pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetBatchProcessor returns the directory batch processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// GetWatcher returns the input directory watcher.
func (c *Container) GetWatcher() *watcher.Watcher {
	return c.watcher
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
