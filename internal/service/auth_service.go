package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arizona-prime/community-api/internal/dto"
	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
	"github.com/arizona-prime/community-api/pkg/token"
)

// Errors surfaced by the auth service.
var (
	ErrNicknameTaken      = errors.New("nickname already taken")
	ErrInvalidCredentials = errors.New("invalid nickname or password")
)

// AuthService handles registration, login and admin account creation.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest, ip string) (dto.AuthResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest, ip string) (dto.AuthResponse, error)
	CreateUser(ctx context.Context, payload dto.CreateUserRequest, actor Actor) (dto.CreatedUserResponse, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *token.Manager
	validator  *validator.Validate
	activity   ActivityRecorder
	bcryptCost int
	logger     zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, tokens *token.Manager, validate *validator.Validate, activity ActivityRecorder, bcryptCost int, logger zerolog.Logger) AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:      users,
		tokens:     tokens,
		validator:  validate,
		activity:   activity,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest, ip string) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.createAccount(ctx, payload.Nickname, payload.Password)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	signed, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  &user.ID,
		Action:  "register",
		Details: map[string]interface{}{"nickname": user.Nickname},
		IP:      ip,
	})

	return dto.NewAuthResponse(signed, user), nil
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest, ip string) (dto.AuthResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AuthResponse{}, err
	}

	user, err := s.users.GetByNickname(ctx, payload.Nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	signed, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID: &user.ID,
		Action: "login",
		IP:     ip,
	})

	return dto.NewAuthResponse(signed, user), nil
}

func (s *authService) CreateUser(ctx context.Context, payload dto.CreateUserRequest, actor Actor) (dto.CreatedUserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CreatedUserResponse{}, err
	}

	user, err := s.createAccount(ctx, payload.Nickname, payload.Password)
	if err != nil {
		return dto.CreatedUserResponse{}, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "user_create",
		Details: map[string]interface{}{"nickname": user.Nickname, "user_id": user.ID},
		IP:      actor.IP,
	})

	return dto.CreatedUserResponse{UserID: user.ID, Nickname: user.Nickname}, nil
}

// createAccount hashes the password and inserts the user, translating the
// unique-nickname violation. The constraint is the source of truth: two
// simultaneous registrations with the same nickname race at the store and
// exactly one wins.
func (s *authService) createAccount(ctx context.Context, nickname, password string) (models.User, error) {
	taken, err := s.users.NicknameTaken(ctx, nickname, 0)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrNicknameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Nickname:     nickname,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrNicknameTaken
		}
		return models.User{}, err
	}

	return user, nil
}
