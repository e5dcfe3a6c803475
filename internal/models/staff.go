package models

import "time"

// Staff marks a user as holding an administrative position on the server.
// At most one staff record exists per user.
type Staff struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	UserID            uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User              User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RealName          string       `gorm:"size:128" json:"real_name"`
	Position          string       `gorm:"size:128" json:"position"`
	AppointmentDate   *time.Time   `gorm:"type:date" json:"appointment_date"`
	LastPromotionDate *time.Time   `gorm:"type:date" json:"last_promotion_date"`
	Points            int          `gorm:"not null;default:0" json:"points"`
	Punishments       []Punishment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt         time.Time    `json:"created_at"`
}

// TableName keeps the historical table name.
func (Staff) TableName() string { return "staff" }
