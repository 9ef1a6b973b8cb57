package repository

import (
	"context"

	"cezatakip-service/internal/domain/entity"
)

// ActivityRepository defines the interface for the user activity log
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityEntry) error
	Recent(ctx context.Context, limit int) ([]*entity.ActivityEntry, error)
}
