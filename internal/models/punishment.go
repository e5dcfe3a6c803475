package models

import "time"

// Punishment types issuable against a staff member.
const (
	PunishmentTypeWarning   = "warning"
	PunishmentTypeReprimand = "reprimand"
)

// Punishment is a disciplinary mark against a staff member. Once issued it is
// immutable except for the removal fields, which are set exactly once when
// the punishment is expunged.
type Punishment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StaffID      uint       `gorm:"index;not null" json:"staff_id"`
	Type         string     `gorm:"size:16;not null" json:"type"`
	Reason       string     `gorm:"type:text" json:"reason"`
	IssuedByID   uint       `gorm:"not null" json:"issued_by_id"`
	IssuedBy     User       `gorm:"foreignKey:IssuedByID" json:"-"`
	IssuedAt     time.Time  `gorm:"autoCreateTime" json:"issued_at"`
	RemovedAt    *time.Time `json:"removed_at"`
	RemovedByID  *uint      `json:"removed_by_id"`
	RemoveReason *string    `gorm:"type:text" json:"remove_reason"`
}

// Active reports whether the punishment still counts against the staff member.
func (p Punishment) Active() bool {
	return p.RemovedAt == nil
}
