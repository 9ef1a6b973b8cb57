package repository

import (
	"context"
	"time"

	"cezatakip-service/internal/domain/entity"
)

// UserRepository defines the interface for account lookups
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
}

// SessionRepository defines the interface for bearer-token sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) error
}
