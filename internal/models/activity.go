package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of a state-changing action. The actor
// reference is nullable so entries survive user deletion.
type ActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    *uint             `gorm:"index" json:"user_id"`
	Action    string            `gorm:"size:128;not null" json:"action"`
	Details   datatypes.JSONMap `gorm:"type:json" json:"details"`
	IP        string            `gorm:"size:45" json:"ip"`
	CreatedAt time.Time         `json:"created_at"`
}
