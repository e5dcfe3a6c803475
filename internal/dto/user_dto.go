package dto

import (
	"time"

	"github.com/arizona-prime/community-api/internal/models"
	"github.com/arizona-prime/community-api/internal/repository"
)

// UserSummary is the compact user listing row for the admin user list.
type UserSummary struct {
	ID         uint      `json:"id"`
	Nickname   string    `json:"nickname"`
	Role       string    `json:"role"`
	AvatarPath *string   `json:"avatar_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileResponse is the full profile view: account, optional staff record,
// punishment history and live counts of active marks.
type ProfileResponse struct {
	ID              uint                       `json:"id"`
	Nickname        string                     `json:"nickname"`
	Role            string                     `json:"role"`
	AvatarPath      *string                    `json:"avatar_path"`
	VkURL           string                     `json:"vk_url"`
	DiscordURL      string                     `json:"discord_url"`
	TelegramURL     string                     `json:"telegram_url"`
	CreatedAt       time.Time                  `json:"created_at"`
	Staff           *models.Staff              `json:"staff"`
	Punishments     []repository.PunishmentRow `json:"punishments"`
	WarningsCount   int64                      `json:"warnings_count"`
	ReprimandsCount int64                      `json:"reprimands_count"`
}

// UpdateContactsRequest carries a partial update of the caller's own contact
// links. Absent fields are left untouched.
type UpdateContactsRequest struct {
	VkURL       *string `json:"vk_url" validate:"omitempty,max=255"`
	DiscordURL  *string `json:"discord_url" validate:"omitempty,max=255"`
	TelegramURL *string `json:"telegram_url" validate:"omitempty,max=255"`
}

// NicknameUpdateRequest renames a user.
type NicknameUpdateRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=64"`
}

// AdminProfileUpdateRequest is the privileged profile edit: contact links,
// role (admin only) and staff fields that upsert the staff record.
type AdminProfileUpdateRequest struct {
	VkURL       *string `json:"vk_url" validate:"omitempty,max=255"`
	DiscordURL  *string `json:"discord_url" validate:"omitempty,max=255"`
	TelegramURL *string `json:"telegram_url" validate:"omitempty,max=255"`
	Role        *string `json:"role" validate:"omitempty,oneof=user curator admin"`
	RealName    *string `json:"real_name" validate:"omitempty,max=128"`
	Position    *string `json:"position" validate:"omitempty,max=128"`
}

// AvatarResponse reports the stored avatar path after an upload.
type AvatarResponse struct {
	AvatarPath string `json:"avatar_path"`
}

// NewUserSummary converts a user model into the listing row.
func NewUserSummary(user models.User) UserSummary {
	return UserSummary{
		ID:         user.ID,
		Nickname:   user.Nickname,
		Role:       user.Role,
		AvatarPath: user.AvatarPath,
		CreatedAt:  user.CreatedAt,
	}
}

// NewProfileResponse assembles the profile view from its parts.
func NewProfileResponse(user models.User, staff *models.Staff, punishments []repository.PunishmentRow, warnings, reprimands int64) ProfileResponse {
	if punishments == nil {
		punishments = []repository.PunishmentRow{}
	}
	return ProfileResponse{
		ID:              user.ID,
		Nickname:        user.Nickname,
		Role:            user.Role,
		AvatarPath:      user.AvatarPath,
		VkURL:           user.VkURL,
		DiscordURL:      user.DiscordURL,
		TelegramURL:     user.TelegramURL,
		CreatedAt:       user.CreatedAt,
		Staff:           staff,
		Punishments:     punishments,
		WarningsCount:   warnings,
		ReprimandsCount: reprimands,
	}
}
