package dto

// StaffAddRequest adds a user to the staff roster.
type StaffAddRequest struct {
	UserID          uint    `json:"user_id" validate:"required"`
	RealName        *string `json:"real_name" validate:"omitempty,max=128"`
	AppointmentDate *string `json:"appointment_date" validate:"omitempty,datetime=2006-01-02"`
	Points          *int    `json:"points" validate:"omitempty,gte=0"`
}

// StaffUpdateRequest is a partial update of a staff record. Only the fields
// present in the payload are mutated; an absent field is a no-op, not a
// clear.
type StaffUpdateRequest struct {
	RealName          *string `json:"real_name" validate:"omitempty,max=128"`
	Position          *string `json:"position" validate:"omitempty,max=128"`
	AppointmentDate   *string `json:"appointment_date" validate:"omitempty,datetime=2006-01-02"`
	LastPromotionDate *string `json:"last_promotion_date" validate:"omitempty,datetime=2006-01-02"`
	Points            *int    `json:"points" validate:"omitempty,gte=0"`
}
