package models

import "time"

// Review states of a leave-of-absence request. Pending is the only
// non-terminal state.
const (
	InactiveStatusPending  = "pending"
	InactiveStatusApproved = "approved"
	InactiveStatusRejected = "rejected"
)

// InactiveRequest is a staff member's request for an approved
// leave-of-absence window.
type InactiveRequest struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	User         User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time  `gorm:"type:date;not null" json:"end_date"`
	Reason       string     `gorm:"type:text" json:"reason"`
	Status       string     `gorm:"size:16;not null;default:pending" json:"status"`
	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	RejectReason *string    `gorm:"type:text" json:"reject_reason"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName keeps the historical table name.
func (InactiveRequest) TableName() string { return "inactives" }
