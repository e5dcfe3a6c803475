package dto

// PunishmentIssueRequest issues a disciplinary mark against a staff member.
type PunishmentIssueRequest struct {
	StaffID uint   `json:"staff_id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=warning reprimand"`
	Reason  string `json:"reason" validate:"omitempty,max=2000"`
}

// PunishmentRemoveRequest expunges an active punishment, with an optional
// removal reason.
type PunishmentRemoveRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=2000"`
}
