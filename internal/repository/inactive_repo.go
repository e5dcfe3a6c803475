package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// InactiveRow is a leave request joined with the requester's nickname and
// avatar for list rendering.
type InactiveRow struct {
	models.InactiveRequest
	Nickname   string  `json:"nickname"`
	AvatarPath *string `json:"avatar_path"`
}

// InactiveRepository exposes persistence helpers for leave requests.
type InactiveRepository interface {
	List(ctx context.Context, userID *uint) ([]InactiveRow, error)
	Create(ctx context.Context, request *models.InactiveRequest) error
	Review(ctx context.Context, id uint, status string, reviewerID uint, rejectReason *string) (models.InactiveRequest, error)
}

type inactiveRepository struct {
	db *gorm.DB
}

// NewInactiveRepository constructs the leave-request repository.
func NewInactiveRepository(db *gorm.DB) InactiveRepository {
	return &inactiveRepository{db: db}
}

// List returns requests newest first, restricted to one user when userID is
// set.
func (r *inactiveRepository) List(ctx context.Context, userID *uint) ([]InactiveRow, error) {
	query := r.db.WithContext(ctx).
		Table("inactives").
		Select("inactives.*, users.nickname, users.avatar_path").
		Joins("JOIN users ON users.id = inactives.user_id")

	if userID != nil {
		query = query.Where("inactives.user_id = ?", *userID)
	}

	var rows []InactiveRow
	if err := query.Order("inactives.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *inactiveRepository) Create(ctx context.Context, request *models.InactiveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// Review moves a pending request into a terminal state. The status guard in
// the predicate makes the transition race-safe: reviewing an already-reviewed
// request matches zero rows and reports not found.
func (r *inactiveRepository) Review(ctx context.Context, id uint, status string, reviewerID uint, rejectReason *string) (models.InactiveRequest, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by_id": reviewerID,
		"reviewed_at":    now,
	}
	if status == models.InactiveStatusRejected {
		updates["reject_reason"] = rejectReason
	}

	tx := r.db.WithContext(ctx).Model(&models.InactiveRequest{}).
		Where("id = ? AND status = ?", id, models.InactiveStatusPending).
		Updates(updates)
	if tx.Error != nil {
		return models.InactiveRequest{}, tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.InactiveRequest{}, gorm.ErrRecordNotFound
	}

	var request models.InactiveRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return models.InactiveRequest{}, err
	}
	return request, nil
}
