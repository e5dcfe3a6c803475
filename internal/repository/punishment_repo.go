package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/models"
)

// PunishmentRow is a punishment joined with the issuer's nickname.
type PunishmentRow struct {
	models.Punishment
	IssuedByNickname string `json:"issued_by_nickname"`
}

// PunishmentRepository exposes persistence helpers for the punishment ledger.
type PunishmentRepository interface {
	ListByStaff(ctx context.Context, staffID uint) ([]PunishmentRow, error)
	ListByUser(ctx context.Context, userID uint) ([]PunishmentRow, error)
	Create(ctx context.Context, punishment *models.Punishment) error
	Remove(ctx context.Context, id, removedByID uint, reason *string) error
	CountActiveByUser(ctx context.Context, userID uint, kind string) (int64, error)
	CountByStaff(ctx context.Context, staffID uint) (int64, error)
}

type punishmentRepository struct {
	db *gorm.DB
}

// NewPunishmentRepository constructs the punishment repository.
func NewPunishmentRepository(db *gorm.DB) PunishmentRepository {
	return &punishmentRepository{db: db}
}

func (r *punishmentRepository) ListByStaff(ctx context.Context, staffID uint) ([]PunishmentRow, error) {
	var rows []PunishmentRow
	err := r.db.WithContext(ctx).
		Table("punishments").
		Select("punishments.*, users.nickname AS issued_by_nickname").
		Joins("JOIN users ON users.id = punishments.issued_by_id").
		Where("punishments.staff_id = ?", staffID).
		Order("punishments.issued_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *punishmentRepository) ListByUser(ctx context.Context, userID uint) ([]PunishmentRow, error) {
	var rows []PunishmentRow
	err := r.db.WithContext(ctx).
		Table("punishments").
		Select("punishments.*, users.nickname AS issued_by_nickname").
		Joins("JOIN staff ON staff.id = punishments.staff_id").
		Joins("JOIN users ON users.id = punishments.issued_by_id").
		Where("staff.user_id = ?", userID).
		Order("punishments.issued_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *punishmentRepository) Create(ctx context.Context, punishment *models.Punishment) error {
	return r.db.WithContext(ctx).Create(punishment).Error
}

// Remove sets the removal fields on an active punishment. The removed_at
// guard in the predicate makes the state transition race-safe: a second
// removal attempt matches zero rows and reports not found.
func (r *punishmentRepository) Remove(ctx context.Context, id, removedByID uint, reason *string) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&models.Punishment{}).
		Where("id = ? AND removed_at IS NULL", id).
		Updates(map[string]interface{}{
			"removed_at":    now,
			"removed_by_id": removedByID,
			"remove_reason": reason,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *punishmentRepository) CountActiveByUser(ctx context.Context, userID uint, kind string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("punishments").
		Joins("JOIN staff ON staff.id = punishments.staff_id").
		Where("staff.user_id = ? AND punishments.type = ? AND punishments.removed_at IS NULL", userID, kind).
		Count(&count).Error
	return count, err
}

func (r *punishmentRepository) CountByStaff(ctx context.Context, staffID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Punishment{}).
		Where("staff_id = ?", staffID).
		Count(&count).Error
	return count, err
}
