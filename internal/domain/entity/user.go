// internal/domain/entity/user.go
package entity

import (
	"time"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleCeza  = "ceza"
	RoleUye   = "uye"
)

// User is a back-office account.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string    `bson:"username" json:"username"` // unique index
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Role         string    `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Session is one issued bearer token.
type Session struct {
	ID        string    `bson:"_id,omitempty"`
	Token     string    `bson:"token"` // unique index
	UserID    string    `bson:"userId"`
	Username  string    `bson:"username"`
	Role      string    `bson:"role"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
