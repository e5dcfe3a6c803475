package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// Errors surfaced by the inactive-request workflow.
var (
	ErrNotStaff        = errors.New("only a staff member may submit a leave request")
	ErrInvalidInterval = errors.New("end of leave must be after its start")
	ErrRequestNotFound = errors.New("request not found or already reviewed")
)

// InactiveService manages leave-of-absence requests: creation by staff,
// review by curators and admins.
type InactiveService interface {
	List(ctx context.Context, viewer models.User) ([]dto.InactiveResponse, error)
	Create(ctx context.Context, payload dto.InactiveCreateRequest, actor Actor) (models.InactiveRequest, error)
	Approve(ctx context.Context, id uint, actor Actor) error
	Reject(ctx context.Context, id uint, payload dto.InactiveRejectRequest, actor Actor) error
}

type inactiveService struct {
	inactives repository.InactiveRepository
	staff     repository.StaffRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewInactiveService constructs the leave-request service.
func NewInactiveService(inactives repository.InactiveRepository, staff repository.StaffRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) InactiveService {
	return &inactiveService{
		inactives: inactives,
		staff:     staff,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "inactive_service").Logger(),
	}
}

// List returns leave requests scoped to the viewer: curators and admins see
// every member's requests, everyone else only their own. The projection step
// additionally redacts reasons on rows the viewer does not own, so the
// privacy rule holds even if the row scope widens later.
func (s *inactiveService) List(ctx context.Context, viewer models.User) ([]dto.InactiveResponse, error) {
	privileged := models.PrivilegedRole(viewer.Role)

	var owner *uint
	if !privileged {
		owner = &viewer.ID
	}
	rows, err := s.inactives.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	return dto.ProjectInactiveForViewer(rows, viewer.ID, privileged), nil
}

func (s *inactiveService) Create(ctx context.Context, payload dto.InactiveCreateRequest, actor Actor) (models.InactiveRequest, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.InactiveRequest{}, err
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		return models.InactiveRequest{}, err
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		return models.InactiveRequest{}, err
	}
	if !end.After(*start) {
		return models.InactiveRequest{}, ErrInvalidInterval
	}

	if _, err := s.staff.GetByUserID(ctx, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InactiveRequest{}, ErrNotStaff
		}
		return models.InactiveRequest{}, err
	}

	request := models.InactiveRequest{
		UserID:    actor.ID,
		StartDate: *start,
		EndDate:   *end,
		Reason:    payload.Reason,
		Status:    models.InactiveStatusPending,
	}
	if err := s.inactives.Create(ctx, &request); err != nil {
		return models.InactiveRequest{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID: actorRef(actor),
		Action: "inactive_request",
		Details: map[string]interface{}{
			"inactive_id": request.ID,
			"start_date":  payload.StartDate,
			"end_date":    payload.EndDate,
		},
		IP: actor.IP,
	})
	return request, nil
}

func (s *inactiveService) Approve(ctx context.Context, id uint, actor Actor) error {
	request, err := s.inactives.Review(ctx, id, models.InactiveStatusApproved, actor.ID, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "inactive_approve",
		Details: map[string]interface{}{"inactive_id": id, "user_id": request.UserID},
		IP:      actor.IP,
	})
	return nil
}

func (s *inactiveService) Reject(ctx context.Context, id uint, payload dto.InactiveRejectRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	request, err := s.inactives.Review(ctx, id, models.InactiveStatusRejected, actor.ID, payload.RejectReason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	details := map[string]interface{}{"inactive_id": id, "user_id": request.UserID}
	if payload.RejectReason != nil {
		details["reason"] = *payload.RejectReason
	}
	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "inactive_reject",
		Details: details,
		IP:      actor.IP,
	})
	return nil
}
