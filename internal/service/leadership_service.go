package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// ErrLeadershipNotFound indicates the roster entry does not exist.
var ErrLeadershipNotFound = errors.New("leadership entry not found")

// LeadershipService manages the public leadership roster. Bios are rendered
// on the public site, so they pass through a UGC sanitizer on every write.
type LeadershipService interface {
	List(ctx context.Context) ([]models.Leadership, error)
	Create(ctx context.Context, payload dto.LeadershipCreateRequest) (models.Leadership, error)
	Update(ctx context.Context, id uint, payload dto.LeadershipUpdateRequest) error
	Delete(ctx context.Context, id uint) error
	SetAvatarPath(ctx context.Context, id uint, path string) error
}

type leadershipService struct {
	leadership repository.LeadershipRepository
	validator  *validator.Validate
	policy     *bluemonday.Policy
	logger     zerolog.Logger
}

// NewLeadershipService constructs the leadership service.
func NewLeadershipService(leadership repository.LeadershipRepository, validate *validator.Validate, logger zerolog.Logger) LeadershipService {
	return &leadershipService{
		leadership: leadership,
		validator:  validate,
		policy:     bluemonday.UGCPolicy(),
		logger:     logger.With().Str("component", "leadership_service").Logger(),
	}
}

func (s *leadershipService) List(ctx context.Context) ([]models.Leadership, error) {
	return s.leadership.List(ctx)
}

func (s *leadershipService) Create(ctx context.Context, payload dto.LeadershipCreateRequest) (models.Leadership, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Leadership{}, err
	}

	entry := models.Leadership{
		Name:     strings.TrimSpace(payload.Name),
		Position: strings.TrimSpace(payload.Position),
		Bio:      s.policy.Sanitize(payload.Bio),
	}
	if payload.SortOrder != nil {
		entry.SortOrder = *payload.SortOrder
	}

	if err := s.leadership.Create(ctx, &entry); err != nil {
		return models.Leadership{}, err
	}
	return entry, nil
}

func (s *leadershipService) Update(ctx context.Context, id uint, payload dto.LeadershipUpdateRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Position != nil {
		updates["position"] = strings.TrimSpace(*payload.Position)
	}
	if payload.Bio != nil {
		updates["bio"] = s.policy.Sanitize(*payload.Bio)
	}
	if payload.SortOrder != nil {
		updates["sort_order"] = *payload.SortOrder
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.leadership.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadershipNotFound
		}
		return err
	}
	return nil
}

func (s *leadershipService) Delete(ctx context.Context, id uint) error {
	if err := s.leadership.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadershipNotFound
		}
		return err
	}
	return nil
}

func (s *leadershipService) SetAvatarPath(ctx context.Context, id uint, path string) error {
	if err := s.leadership.UpdateFields(ctx, id, map[string]interface{}{"avatar_path": path}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLeadershipNotFound
		}
		return err
	}
	return nil
}
