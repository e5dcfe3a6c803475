package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// Audit log page bounds for the admin trail endpoint.
const (
	defaultLogPageSize = 100
	maxLogPageSize     = 500
)

// Actor identifies the authenticated caller performing a state-changing
// action, together with the request origin address.
type Actor struct {
	ID   uint
	Role string
	IP   string
}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	UserID  *uint
	Action  string
	Details map[string]interface{}
	IP      string
}

// ActivityRecorder defines behaviour for recording audit entries. Appends
// are fire-and-forget: callers never fail their own operation because the
// audit write failed.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService records and lists the append-only audit trail.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, limit, offset int) ([]repository.ActivityRow, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	action := strings.TrimSpace(entry.Action)
	if action == "" {
		s.logger.Warn().Msg("dropping audit entry without action")
		return
	}

	details := datatypes.JSONMap{}
	for key, value := range entry.Details {
		details[key] = value
	}

	model := models.ActivityLog{
		UserID:  entry.UserID,
		Action:  action,
		Details: details,
		IP:      entry.IP,
	}
	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to persist audit entry")
	}
}

func (s *activityService) List(ctx context.Context, limit, offset int) ([]repository.ActivityRow, error) {
	if limit <= 0 {
		limit = defaultLogPageSize
	}
	if limit > maxLogPageSize {
		limit = maxLogPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, limit, offset)
}

// actorRef returns a pointer to the actor id for the nullable audit column.
func actorRef(actor Actor) *uint {
	if actor.ID == 0 {
		return nil
	}
	id := actor.ID
	return &id
}
