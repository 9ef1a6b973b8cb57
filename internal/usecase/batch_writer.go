package usecase

import (
	"context"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/pkg/logger"
	"cezatakip-service/pkg/metrics"
)

// DefaultBatchSize is the combined buffer threshold that triggers a flush.
const DefaultBatchSize = 50

type flushResult struct {
	imported int
	updated  int
	errors   int
}

// BatchWriter accumulates classified records into insert and update buffers
// and flushes them to the store in bulk, decoupling sheet-read speed from
// write throughput. At most one flush runs at a time: hitting the threshold
// while a flush is outstanding waits for it before starting the next, which
// is the pipeline's only suspension point. Not safe for concurrent callers;
// one writer serves one import run.
type BatchWriter struct {
	repo      repository.PenaltyRepository
	logger    logger.Logger
	metrics   *metrics.Metrics
	batchSize int

	inserts []*entity.PenaltyRecord
	updates []*entity.PenaltyRecord

	// Single-slot in-flight flush. pending is true while a result is owed
	// on the channel.
	inflight chan flushResult
	pending  bool

	summary entity.ImportSummary
}

// NewBatchWriter creates a writer flushing at batchSize buffered rows.
func NewBatchWriter(repo repository.PenaltyRepository, log logger.Logger, m *metrics.Metrics, batchSize int) *BatchWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &BatchWriter{
		repo:      repo,
		logger:    log,
		metrics:   m,
		batchSize: batchSize,
		inflight:  make(chan flushResult, 1),
	}
}

// Enqueue buffers one mapped record, already classified against the
// existing-key snapshot, and starts a flush once the combined buffers reach
// the threshold.
func (w *BatchWriter) Enqueue(ctx context.Context, record *entity.PenaltyRecord, exists bool) {
	if exists {
		w.updates = append(w.updates, record)
	} else {
		w.inserts = append(w.inserts, record)
	}
	w.summary.Total++

	if len(w.inserts)+len(w.updates) >= w.batchSize {
		w.startFlush(ctx)
	}
}

// RecordError counts a row that failed before it could be buffered.
func (w *BatchWriter) RecordError() {
	w.summary.Errors++
	w.summary.Total++
}

// Drain awaits any in-flight flush, writes out whatever is still buffered,
// and returns the final counters.
func (w *BatchWriter) Drain(ctx context.Context) entity.ImportSummary {
	if w.pending {
		w.collect()
	}
	if len(w.inserts)+len(w.updates) > 0 {
		w.apply(w.flush(ctx, w.inserts, w.updates))
		w.inserts, w.updates = nil, nil
	}
	return w.summary
}

// startFlush hands the current buffers to a background flush. An already
// outstanding flush is awaited first, never overlapped.
func (w *BatchWriter) startFlush(ctx context.Context) {
	if w.pending {
		w.collect()
	}
	inserts, updates := w.inserts, w.updates
	w.inserts, w.updates = nil, nil
	w.pending = true
	go func() {
		w.inflight <- w.flush(ctx, inserts, updates)
	}()
}

func (w *BatchWriter) collect() {
	w.apply(<-w.inflight)
	w.pending = false
}

func (w *BatchWriter) apply(res flushResult) {
	w.summary.Imported += res.imported
	w.summary.Updated += res.updated
	w.summary.Errors += res.errors
}

// flush writes one insert buffer and one update buffer. Per-row insert
// failures (duplicate key raced in, validation) cost only those rows; an
// update bulk failure costs the whole buffer.
func (w *BatchWriter) flush(ctx context.Context, inserts, updates []*entity.PenaltyRecord) flushResult {
	var res flushResult

	if len(inserts) > 0 {
		inserted, failed, err := w.repo.InsertBatch(ctx, inserts)
		if err != nil {
			w.logger.Error("Insert batch failed", "size", len(inserts), "error", err)
			res.errors += len(inserts)
			w.metrics.RowErrors.WithLabelValues("insert").Add(float64(len(inserts)))
		} else {
			res.imported += inserted
			res.errors += failed
			if failed > 0 {
				w.logger.Warn("Insert batch partially failed", "inserted", inserted, "failed", failed)
				w.metrics.RowErrors.WithLabelValues("insert").Add(float64(failed))
			}
		}
	}

	if len(updates) > 0 {
		if err := w.repo.UpdateBatch(ctx, updates); err != nil {
			w.logger.Error("Update batch failed", "size", len(updates), "error", err)
			res.errors += len(updates)
			w.metrics.RowErrors.WithLabelValues("update").Add(float64(len(updates)))
		} else {
			res.updated += len(updates)
		}
	}

	w.metrics.BatchFlushes.Inc()
	return res
}
