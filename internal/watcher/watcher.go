// Package watcher ingests statements dropped into the input directory.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/logging"
	"ledgerlens/ledgerlens/internal/pipeline"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is the wait between a file appearing and its ingestion.
const DefaultSettle = 500 * time.Millisecond

// Ingester processes one statement file.
type Ingester interface {
	Ingest(ctx context.Context, filePath string) (pipeline.IngestResult, error)
}

// Watcher feeds every file of a directory to an Ingester, one at a time.
// A file is deleted after it was ingested successfully and left in place
// otherwise.
type Watcher struct {
	dir      string
	ingester Ingester
	settle   time.Duration
	logger   logging.Logger
}

// New creates a Watcher on dir.
func New(dir string, ingester Ingester, settle time.Duration, logger logging.Logger) *Watcher {
	if settle < 0 {
		settle = DefaultSettle
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Watcher{
		dir:      dir,
		ingester: ingester,
		settle:   settle,
		logger:   logger.WithField(logging.FieldDirectory, dir),
	}
}

// Run processes the files already present, then every file created in the
// directory until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if err := fileutils.EnsureDirectoryExists(w.dir); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file watcher")
		}
	}()

	// Files dropped during the initial scan still raise events.
	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("Watching input directory")

	if err := w.ProcessExisting(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopped")
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.wait(ctx) {
				w.logger.Info("Watcher stopped")
				return nil
			}
			w.ProcessFile(ctx, event.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("File watcher error")
		}
	}
}

// ProcessExisting ingests the files already in the directory.
func (w *Watcher) ProcessExisting(ctx context.Context) error {
	files, err := fileutils.ListFiles(w.dir)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		w.logger.Info("Processing existing files", logging.F(logging.FieldCount, len(files)))
	}
	for _, path := range files {
		if ctx.Err() != nil {
			return nil
		}
		w.ProcessFile(ctx, path)
	}
	return nil
}

// ProcessFile ingests path and deletes it on success. It reports whether the
// file was ingested.
func (w *Watcher) ProcessFile(ctx context.Context, path string) bool {
	logger := w.logger.WithField(logging.FieldFile, path)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || fileutils.IsHidden(filepath.Base(path)) {
		logger.Debug("Ignoring entry")
		return false
	}

	result, err := w.ingester.Ingest(ctx, path)
	if err != nil {
		logger.WithError(err).Error("Failed to ingest file, leaving it in place")
		return false
	}

	if err := os.Remove(path); err != nil {
		logger.WithError(err).Error("Failed to delete ingested file")
	}
	logger.Info("File processed",
		logging.F(logging.FieldBatchID, result.BatchID),
		logging.F("added", result.Write.Added))
	return true
}

func (w *Watcher) wait(ctx context.Context) bool {
	if w.settle == 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(w.settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
