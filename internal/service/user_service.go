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

// Errors surfaced by the user service.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleChangeRequires = errors.New("only an admin may change a role")
)

const userListLimit = 500

// UserService handles profile reads and privileged profile edits.
type UserService interface {
	Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error)
	ListAll(ctx context.Context) ([]dto.UserSummary, error)
	UpdateContacts(ctx context.Context, userID uint, payload dto.UpdateContactsRequest, actor Actor) error
	ChangeNickname(ctx context.Context, targetID uint, payload dto.NicknameUpdateRequest, actor Actor) error
	AdminProfileUpdate(ctx context.Context, targetID uint, payload dto.AdminProfileUpdateRequest, actor Actor) error
	SetAvatarPath(ctx context.Context, userID uint, path string, actor Actor) error
}

type userService struct {
	users       repository.UserRepository
	staff       repository.StaffRepository
	punishments repository.PunishmentRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	logger      zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(users repository.UserRepository, staff repository.StaffRepository, punishments repository.PunishmentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) UserService {
	return &userService{
		users:       users,
		staff:       staff,
		punishments: punishments,
		validator:   validate,
		activity:    activity,
		logger:      logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Profile(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	var staffRecord *models.Staff
	staff, err := s.staff.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		staffRecord = &staff
	case errors.Is(err, gorm.ErrRecordNotFound):
		// not a staff member, profile still renders
	default:
		return dto.ProfileResponse{}, err
	}

	punishments, err := s.punishments.ListByUser(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	warnings, err := s.punishments.CountActiveByUser(ctx, userID, models.PunishmentTypeWarning)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	reprimands, err := s.punishments.CountActiveByUser(ctx, userID, models.PunishmentTypeReprimand)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.NewProfileResponse(user, staffRecord, punishments, warnings, reprimands), nil
}

func (s *userService) ListAll(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.users.List(ctx, userListLimit)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, dto.NewUserSummary(user))
	}
	return summaries, nil
}

func (s *userService) UpdateContacts(ctx context.Context, userID uint, payload dto.UpdateContactsRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if payload.VkURL != nil {
		updates["vk_url"] = strings.TrimSpace(*payload.VkURL)
	}
	if payload.DiscordURL != nil {
		updates["discord_url"] = strings.TrimSpace(*payload.DiscordURL)
	}
	if payload.TelegramURL != nil {
		updates["telegram_url"] = strings.TrimSpace(*payload.TelegramURL)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.users.UpdateFields(ctx, userID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  &userID,
		Action:  "profile_update",
		Details: map[string]interface{}{"fields": fieldNames(updates)},
		IP:      actor.IP,
	})
	return nil
}

func (s *userService) ChangeNickname(ctx context.Context, targetID uint, payload dto.NicknameUpdateRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	nickname := strings.TrimSpace(payload.Nickname)
	taken, err := s.users.NicknameTaken(ctx, nickname, targetID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNicknameTaken
	}

	if err := s.users.UpdateFields(ctx, targetID, map[string]interface{}{"nickname": nickname}); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrUserNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return ErrNicknameTaken
		default:
			return err
		}
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "nickname_change",
		Details: map[string]interface{}{"target_user_id": targetID, "new_nickname": nickname},
		IP:      actor.IP,
	})
	return nil
}

// AdminProfileUpdate edits another user's contact links and, for admins,
// their role. Staff fields upsert the staff record so a curator can fill in
// real name and position for a member promoted outside the roster flow.
func (s *userService) AdminProfileUpdate(ctx context.Context, targetID uint, payload dto.AdminProfileUpdateRequest, actor Actor) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	if payload.Role != nil && actor.Role != models.RoleAdmin {
		return ErrRoleChangeRequires
	}

	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	updates := make(map[string]interface{})
	if payload.VkURL != nil {
		updates["vk_url"] = strings.TrimSpace(*payload.VkURL)
	}
	if payload.DiscordURL != nil {
		updates["discord_url"] = strings.TrimSpace(*payload.DiscordURL)
	}
	if payload.TelegramURL != nil {
		updates["telegram_url"] = strings.TrimSpace(*payload.TelegramURL)
	}
	if payload.Role != nil {
		updates["role"] = *payload.Role
	}
	if len(updates) > 0 {
		if err := s.users.UpdateFields(ctx, targetID, updates); err != nil {
			return err
		}
	}

	if payload.RealName != nil || payload.Position != nil {
		if err := s.upsertStaffFields(ctx, targetID, payload.RealName, payload.Position); err != nil {
			return err
		}
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  actorRef(actor),
		Action:  "admin_profile_edit",
		Details: map[string]interface{}{"target_user_id": targetID, "fields": fieldNames(updates)},
		IP:      actor.IP,
	})
	return nil
}

func (s *userService) SetAvatarPath(ctx context.Context, userID uint, path string, actor Actor) error {
	if err := s.users.UpdateFields(ctx, userID, map[string]interface{}{"avatar_path": path}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  &userID,
		Action:  "avatar_upload",
		Details: map[string]interface{}{"filename": path},
		IP:      actor.IP,
	})
	return nil
}

func (s *userService) upsertStaffFields(ctx context.Context, targetID uint, realName, position *string) error {
	staff, err := s.staff.GetByUserID(ctx, targetID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record := models.Staff{UserID: targetID}
		if realName != nil {
			record.RealName = strings.TrimSpace(*realName)
		}
		if position != nil {
			record.Position = strings.TrimSpace(*position)
		}
		return s.staff.Create(ctx, &record)
	}

	updates := make(map[string]interface{})
	if realName != nil {
		updates["real_name"] = strings.TrimSpace(*realName)
	}
	if position != nil {
		updates["position"] = strings.TrimSpace(*position)
	}
	return s.staff.UpdateFields(ctx, staff.ID, updates)
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	return names
}
