package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// LeadershipRepository persists the public leadership roster.
type LeadershipRepository interface {
	List(ctx context.Context) ([]models.Leadership, error)
	Create(ctx context.Context, entry *models.Leadership) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type leadershipRepository struct {
	db *gorm.DB
}

// NewLeadershipRepository constructs the leadership repository.
func NewLeadershipRepository(db *gorm.DB) LeadershipRepository {
	return &leadershipRepository{db: db}
}

func (r *leadershipRepository) List(ctx context.Context) ([]models.Leadership, error) {
	var entries []models.Leadership
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leadershipRepository) Create(ctx context.Context, entry *models.Leadership) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *leadershipRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).Model(&models.Leadership{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *leadershipRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Leadership{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
