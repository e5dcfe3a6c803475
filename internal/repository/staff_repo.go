package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// StaffRosterRow is the roster projection: the staff record joined with the
// owning user plus live counts of active punishments.
type StaffRosterRow struct {
	models.Staff
	Nickname   string  `json:"nickname"`
	AvatarPath *string `json:"avatar_path"`
	Role       string  `json:"role"`
	Warnings   int64   `json:"warnings"`
	Reprimands int64   `json:"reprimands"`
}

// StaffRepository exposes persistence helpers for the staff roster.
type StaffRepository interface {
	ListRoster(ctx context.Context) ([]StaffRosterRow, error)
	GetByID(ctx context.Context, id uint) (models.Staff, error)
	GetByUserID(ctx context.Context, userID uint) (models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository constructs the staff repository.
func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) ListRoster(ctx context.Context) ([]StaffRosterRow, error) {
	var rows []StaffRosterRow
	err := r.db.WithContext(ctx).
		Table("staff").
		Select(`staff.*, users.nickname, users.avatar_path, users.role,
			(SELECT COUNT(*) FROM punishments p WHERE p.staff_id = staff.id AND p.type = ? AND p.removed_at IS NULL) AS warnings,
			(SELECT COUNT(*) FROM punishments p WHERE p.staff_id = staff.id AND p.type = ? AND p.removed_at IS NULL) AS reprimands`,
			models.PunishmentTypeWarning, models.PunishmentTypeReprimand).
		Joins("JOIN users ON users.id = staff.user_id").
		Order("users.nickname").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uint) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return models.Staff{}, err
	}
	return staff, nil
}

func (r *staffRepository) GetByUserID(ctx context.Context, userID uint) (models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&staff).Error; err != nil {
		return models.Staff{}, err
	}
	return staff, nil
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).Model(&models.Staff{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the staff record and its punishments in one transaction.
// The punishment delete mirrors the store-level cascade so no orphans remain
// even on engines where the FK constraint is not enforced.
func (r *staffRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", id).Delete(&models.Punishment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Staff{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
