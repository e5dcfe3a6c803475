package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// ApplicationRepository persists leadership-candidate submissions.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	List(ctx context.Context) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository constructs the application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) List(ctx context.Context) ([]models.Application, error) {
	var applications []models.Application
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
