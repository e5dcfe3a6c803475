package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// ActivityRow is a log entry joined with the actor's nickname. The nickname
// is null when the actor has since been deleted.
type ActivityRow struct {
	models.ActivityLog
	Nickname *string `json:"nickname"`
}

// ActivityLogRepository persists the append-only audit trail.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, limit, offset int) ([]ActivityRow, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, limit, offset int) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := r.db.WithContext(ctx).
		Table("activity_logs").
		Select("activity_logs.*, users.nickname").
		Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
		Order("activity_logs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
