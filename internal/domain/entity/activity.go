// internal/domain/entity/activity.go
package entity

import (
	"time"
)

// ActivityEntry is one audit-log line for an authenticated action.
type ActivityEntry struct {
	ID       string    `bson:"_id,omitempty" json:"id,omitempty"`
	Username string    `bson:"username" json:"username"`
	Action   string    `bson:"action" json:"action"`
	Detail   string    `bson:"detail,omitempty" json:"detail,omitempty"`
	At       time.Time `bson:"at" json:"at"`
}
