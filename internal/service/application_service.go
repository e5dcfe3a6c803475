package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// ApplicationService handles public leadership-candidate submissions.
type ApplicationService interface {
	Submit(ctx context.Context, payload dto.ApplicationCreateRequest) (models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	validator    *validator.Validate
	logger       zerolog.Logger
}

// NewApplicationService constructs the application service.
func NewApplicationService(applications repository.ApplicationRepository, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: applications,
		validator:    validate,
		logger:       logger.With().Str("component", "application_service").Logger(),
	}
}

func (s *applicationService) Submit(ctx context.Context, payload dto.ApplicationCreateRequest) (models.Application, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Application{}, err
	}

	application := models.Application{
		GameNickname:   strings.TrimSpace(payload.GameNickname),
		ServerPosition: strings.TrimSpace(payload.ServerPosition),
		Discord:        strings.TrimSpace(payload.Discord),
		VkURL:          strings.TrimSpace(payload.VkURL),
		ForumURL:       strings.TrimSpace(payload.ForumURL),
	}
	if err := s.applications.Create(ctx, &application); err != nil {
		return models.Application{}, err
	}
	return application, nil
}

func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	return s.applications.List(ctx)
}
