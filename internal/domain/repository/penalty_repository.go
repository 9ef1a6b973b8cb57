package repository

import (
	"context"

	"cezatakip-service/internal/domain/entity"
)

// PenaltyFilter narrows list queries over the penalty collection.
type PenaltyFilter struct {
	DriverName    string
	PassengerName string
	Flagged       *bool
	Taxi          *bool
	DateFrom      string // YYYY-MM-DD
	DateTo        string // YYYY-MM-DD
	Page          int64
	Limit         int64
}

// PenaltyRepository defines the interface for penalty record operations
type PenaltyRepository interface {
	// InsertBatch submits records as an unordered bulk insert. Individual
	// failures (duplicate key, validation) do not abort siblings; the
	// returned counts partition the batch. err is non-nil only when the
	// whole submission failed.
	InsertBatch(ctx context.Context, records []*entity.PenaltyRecord) (inserted, failed int, err error)

	// UpdateBatch submits records as an unordered bulk update matched on
	// penaltyNumber, replacing all mapped fields.
	UpdateBatch(ctx context.Context, records []*entity.PenaltyRecord) error

	// PageNumbers returns up to limit penalty numbers strictly greater than
	// after, ascending. A short page means the scan is complete.
	PageNumbers(ctx context.Context, after int64, limit int64) ([]int64, error)

	// DeleteAll wipes the collection. Destructive and non-transactional.
	DeleteAll(ctx context.Context) error

	FindByNumber(ctx context.Context, number int64) (*entity.PenaltyRecord, error)
	Find(ctx context.Context, filter PenaltyFilter) ([]*entity.PenaltyRecord, int64, error)
	Stats(ctx context.Context) (*entity.PenaltyStats, error)
}
