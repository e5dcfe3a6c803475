package dto

import (
	"time"

	"github.com/arizona-prime/community-api/internal/repository"
)

// InactiveCreateRequest submits a leave-of-absence window.
type InactiveCreateRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"omitempty,max=2000"`
}

// InactiveRejectRequest rejects a pending request with an optional reason.
type InactiveRejectRequest struct {
	RejectReason *string `json:"reject_reason" validate:"omitempty,max=2000"`
}

// InactiveResponse is the viewer-facing projection of a leave request. The
// Reason field is a pointer so redaction renders as an explicit null.
type InactiveResponse struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	Nickname     string     `json:"nickname"`
	AvatarPath   *string    `json:"avatar_path"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Reason       *string    `json:"reason"`
	Status       string     `json:"status"`
	ReviewedByID *uint      `json:"reviewed_by_id"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	RejectReason *string    `json:"reject_reason"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProjectInactiveForViewer applies the per-row privacy rule for leave
// requests: a privileged viewer sees every reason, everyone else sees the
// reason only on their own rows. The policy lives here, with the entity, so
// any endpoint returning leave requests shares the same projection.
func ProjectInactiveForViewer(rows []repository.InactiveRow, viewerID uint, privileged bool) []InactiveResponse {
	responses := make([]InactiveResponse, 0, len(rows))
	for _, row := range rows {
		response := InactiveResponse{
			ID:           row.ID,
			UserID:       row.UserID,
			Nickname:     row.Nickname,
			AvatarPath:   row.AvatarPath,
			StartDate:    row.StartDate,
			EndDate:      row.EndDate,
			Status:       row.Status,
			ReviewedByID: row.ReviewedByID,
			ReviewedAt:   row.ReviewedAt,
			RejectReason: row.RejectReason,
			CreatedAt:    row.CreatedAt,
		}
		if privileged || row.UserID == viewerID {
			reason := row.Reason
			response.Reason = &reason
		}
		responses = append(responses, response)
	}
	return responses
}
