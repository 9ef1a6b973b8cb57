package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/pkg/logger"
	"cezatakip-service/pkg/metrics"
)

// memRepo is an in-memory PenaltyRepository with the same partial-failure
// semantics as the Mongo implementation: duplicate keys within an insert
// batch fail individually, updates fail as a whole buffer when armed.
type memRepo struct {
	mu      sync.Mutex
	records map[int64]*entity.PenaltyRecord

	rejectInserts  map[int64]bool
	failUpdates    bool
	insertCalls    int
	updateCalls    int
	flushesActive  int32
	flushesMaxSeen int32
}

func newMemRepo() *memRepo {
	return &memRepo{
		records:       make(map[int64]*entity.PenaltyRecord),
		rejectInserts: make(map[int64]bool),
	}
}

func (m *memRepo) enterFlush() {
	active := atomic.AddInt32(&m.flushesActive, 1)
	for {
		max := atomic.LoadInt32(&m.flushesMaxSeen)
		if active <= max || atomic.CompareAndSwapInt32(&m.flushesMaxSeen, max, active) {
			break
		}
	}
	time.Sleep(time.Millisecond)
}

func (m *memRepo) leaveFlush() {
	atomic.AddInt32(&m.flushesActive, -1)
}

func (m *memRepo) InsertBatch(_ context.Context, records []*entity.PenaltyRecord) (int, int, error) {
	m.enterFlush()
	defer m.leaveFlush()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertCalls++
	now := time.Now()
	inserted, failed := 0, 0
	for _, rec := range records {
		if m.rejectInserts[rec.PenaltyNumber] {
			failed++
			continue
		}
		if _, dup := m.records[rec.PenaltyNumber]; dup {
			failed++
			continue
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now
		m.records[rec.PenaltyNumber] = rec
		inserted++
	}
	return inserted, failed, nil
}

func (m *memRepo) UpdateBatch(_ context.Context, records []*entity.PenaltyRecord) error {
	m.enterFlush()
	defer m.leaveFlush()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updateCalls++
	if m.failUpdates {
		return errors.New("bulk update failed")
	}
	now := time.Now()
	for _, rec := range records {
		if existing, ok := m.records[rec.PenaltyNumber]; ok {
			rec.CreatedAt = existing.CreatedAt
		}
		rec.UpdatedAt = now
		m.records[rec.PenaltyNumber] = rec
	}
	return nil
}

func (m *memRepo) PageNumbers(_ context.Context, after int64, limit int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var keys []int64
	for n := range m.records {
		if n > after {
			keys = append(keys, n)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if int64(len(keys)) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (m *memRepo) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[int64]*entity.PenaltyRecord)
	return nil
}

func (m *memRepo) FindByNumber(_ context.Context, number int64) (*entity.PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[number], nil
}

func (m *memRepo) Find(context.Context, repository.PenaltyFilter) ([]*entity.PenaltyRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.PenaltyRecord
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (m *memRepo) Stats(context.Context) (*entity.PenaltyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &entity.PenaltyStats{Total: int64(len(m.records))}
	for _, rec := range m.records {
		if rec.IsFlagged {
			stats.Flagged++
		}
		if rec.IsTaxiPenalty {
			stats.Taxi++
		}
	}
	return stats, nil
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *memRepo) get(number int64) *entity.PenaltyRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[number]
}

// nopLogger drops everything; usecase tests assert on state, not logs.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) logger.Logger {
	return l
}

var testMetricsOnce sync.Once
var testMetrics *metrics.Metrics

// newTestMetrics returns a shared Metrics instance; prometheus registration
// is global, so it is created once per test binary.
func newTestMetrics() *metrics.Metrics {
	testMetricsOnce.Do(func() {
		testMetrics = metrics.NewMetrics("cezatakip_test")
	})
	return testMetrics
}

// fakeSheet feeds canned rows to the reconciler.
type fakeSheet struct {
	headers []string
	rows    [][]string
}

func (s *fakeSheet) HeaderRow() ([]string, error) {
	return s.headers, nil
}

func (s *fakeSheet) ForEachRow(fn func(cells []string) error) error {
	for _, row := range s.rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}
