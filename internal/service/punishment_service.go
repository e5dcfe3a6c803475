package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// ErrPunishmentNotFound covers both a missing punishment and one already
// removed: from the caller's point of view there is nothing left to expunge.
var ErrPunishmentNotFound = errors.New("punishment not found or already removed")

// PunishmentService manages the disciplinary ledger.
type PunishmentService interface {
	ListByStaff(ctx context.Context, staffID uint) ([]repository.PunishmentRow, error)
	Issue(ctx context.Context, payload dto.PunishmentIssueRequest, actor Actor) (models.Punishment, error)
	Remove(ctx context.Context, id uint, payload dto.PunishmentRemoveRequest, actor Actor) error
}

type punishmentService struct {
	punishments repository.PunishmentRepository
	staff       repository.StaffRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
}

// NewPunishmentService constructs the punishment service.
func NewPunishmentService(punishments repository.PunishmentRepository, staff repository.StaffRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) PunishmentService {
	return &punishmentService{
		punishments: punishments,
		staff:       staff,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "punishment_service").Logger(),
	}
}

func (s *punishmentService) ListByStaff(ctx context.Context, staffID uint) ([]repository.PunishmentRow, error) {
	return s.punishments.ListByStaff(ctx, staffID)
}

// Issue records a new punishment. The target staff record must exist before
// anything is written.
func (s *punishmentService) Issue(ctx context.Context, payload dto.PunishmentIssueRequest, actor Actor) (models.Punishment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Punishment{}, err
	}

	if _, err := s.staff.GetByID(ctx, payload.StaffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Punishment{}, ErrStaffNotFound
		}
		return models.Punishment{}, err
	}

	punishment := models.Punishment{
		StaffID:    payload.StaffID,
		Type:       payload.Type,
		Reason:     strings.TrimSpace(payload.Reason),
		IssuedByID: actor.ID,
	}
	if err := s.punishments.Create(ctx, &punishment); err != nil {
		return models.Punishment{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID: actorRef(actor),
		Action: "punishment_issue",
		Details: map[string]interface{}{
			"staff_id": payload.StaffID,
			"type":     payload.Type,
			"reason":   punishment.Reason,
		},
		IP: actor.IP,
	})
	return punishment, nil
}

// Remove expunges an active punishment. The removal fields are written
// exactly once; a second attempt fails cleanly with not found.
func (s *punishmentService) Remove(ctx context.Context, id uint, payload dto.PunishmentRemoveRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if err := s.punishments.Remove(ctx, id, actor.ID, payload.Reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPunishmentNotFound
		}
		return err
	}

	details := map[string]interface{}{"punishment_id": id}
	if payload.Reason != nil {
		details["reason"] = *payload.Reason
	}
	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "punishment_remove",
		Details: details,
		IP:      actor.IP,
	})
	return nil
}
