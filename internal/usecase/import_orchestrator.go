package usecase

import (
	"context"
	"os"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/pkg/logger"
	"cezatakip-service/pkg/metrics"
	"cezatakip-service/pkg/spreadsheet"
)

// keyPageSize is the page size used when snapshotting existing penalty
// numbers; it bounds peak memory per page regardless of collection size.
const keyPageSize = 500

// ImportOptions describes one import invocation.
type ImportOptions struct {
	// Path is the workbook to read. When Uploaded is true it is a staged
	// temp file and is removed on every exit path; a configured default
	// path is never removed.
	Path     string
	Uploaded bool
	// ClearExisting wipes the whole collection before any row is read.
	// Destructive and non-transactional: a failure after the wipe leaves
	// the collection empty.
	ClearExisting bool
}

// PenaltyImporter runs the bulk workbook import: pre-scan the daily-log
// sheet, snapshot existing keys, then stream the primary list row by row
// into batched writes. One importer invocation is single-threaded except
// for the writer's background flush; concurrent imports against the same
// collection need external serialization.
type PenaltyImporter struct {
	repo         repository.PenaltyRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
	batchSize    int
	primarySheet string
	logSheet     string
}

// NewPenaltyImporter creates a new importer.
func NewPenaltyImporter(repo repository.PenaltyRepository, log logger.Logger, m *metrics.Metrics, batchSize int, primarySheet, logSheet string) *PenaltyImporter {
	if primarySheet == "" {
		primarySheet = "Liste"
	}
	if logSheet == "" {
		logSheet = "Günlük"
	}
	return &PenaltyImporter{
		repo:         repo,
		logger:       log,
		metrics:      m,
		batchSize:    batchSize,
		primarySheet: primarySheet,
		logSheet:     logSheet,
	}
}

// Import runs the pipeline and returns the aggregate counters. A missing
// required sheet or an unreadable workbook fails the whole run before any
// write; row and batch failures only move counters.
func (imp *PenaltyImporter) Import(ctx context.Context, opts ImportOptions) (*entity.ImportSummary, error) {
	if opts.Uploaded {
		defer func() {
			if err := os.Remove(opts.Path); err != nil && !os.IsNotExist(err) {
				imp.logger.Warn("Failed to remove uploaded file", "path", opts.Path, "error", err)
			}
		}()
	}

	start := time.Now()
	imp.logger.Info("Starting penalty import", "path", opts.Path, "clearExisting", opts.ClearExisting)

	summary, err := imp.run(ctx, opts)
	if err != nil {
		imp.metrics.ImportsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	imp.metrics.ImportsTotal.WithLabelValues("completed").Inc()
	imp.metrics.ImportDuration.Observe(time.Since(start).Seconds())
	imp.logger.Info("Penalty import finished",
		"imported", summary.Imported,
		"updated", summary.Updated,
		"errors", summary.Errors,
		"total", summary.Total,
		"took", time.Since(start).String())
	return summary, nil
}

func (imp *PenaltyImporter) run(ctx context.Context, opts ImportOptions) (*entity.ImportSummary, error) {
	workbook, err := spreadsheet.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	// Resolve both required sheets before touching the store, so a bad
	// workbook never costs a wipe.
	logSheet, err := workbook.Sheet(imp.logSheet)
	if err != nil {
		return nil, err
	}
	primary, err := workbook.Sheet(imp.primarySheet)
	if err != nil {
		return nil, err
	}

	if opts.ClearExisting {
		if err := imp.repo.DeleteAll(ctx); err != nil {
			return nil, err
		}
		imp.logger.Warn("Cleared existing penalty records before import")
	}

	flags, err := BuildFlagSets(logSheet)
	if err != nil {
		return nil, err
	}
	imp.logger.Info("Built flag sets from daily log",
		"flagged", len(flags.Flagged), "taxi", len(flags.Taxi))

	existing, err := imp.loadExistingKeys(ctx)
	if err != nil {
		return nil, err
	}
	imp.logger.Info("Loaded existing key snapshot", "count", len(existing))

	headers, err := primary.HeaderRow()
	if err != nil {
		return nil, err
	}
	mapper := NewRowMapper(headers)
	writer := NewBatchWriter(imp.repo, imp.logger, imp.metrics, imp.batchSize)

	err = primary.ForEachRow(func(cells []string) error {
		result := mapper.Map(cells)
		switch result.Outcome {
		case MapSkipped:
			return nil
		case MapErrored:
			imp.logger.Warn("Row mapping failed", "error", result.Err)
			imp.metrics.RowErrors.WithLabelValues("map").Inc()
			writer.RecordError()
			return nil
		}

		record := result.Record
		record.IsFlagged, record.IsTaxiPenalty = flags.Apply(record.EventDate, record.Driver.Name)

		_, exists := existing[record.PenaltyNumber]
		writer.Enqueue(ctx, record, exists)
		imp.metrics.RowsProcessed.Inc()
		return nil
	})
	if err != nil {
		// Sheet iteration broke mid-stream; whatever flushed stays, per
		// the fatal-error contract the caller gets no counters.
		writer.Drain(ctx)
		return nil, err
	}

	summary := writer.Drain(ctx)
	return &summary, nil
}

// loadExistingKeys pages through the collection by ascending penaltyNumber
// and returns the full key set. A page shorter than keyPageSize ends the
// scan.
func (imp *PenaltyImporter) loadExistingKeys(ctx context.Context) (map[int64]struct{}, error) {
	keys := make(map[int64]struct{})
	var after int64 = -1 << 62
	for {
		page, err := imp.repo.PageNumbers(ctx, after, keyPageSize)
		if err != nil {
			return nil, err
		}
		for _, n := range page {
			keys[n] = struct{}{}
		}
		if len(page) < keyPageSize {
			return keys, nil
		}
		after = page[len(page)-1]
	}
}
