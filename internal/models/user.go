package models

import "time"

// Roles assignable to a user account. Admin is a strict superset of curator.
const (
	RoleUser    = "user"
	RoleCurator = "curator"
	RoleAdmin   = "admin"
)

// User represents a registered community member.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nickname     string    `gorm:"size:64;uniqueIndex;not null" json:"nickname"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"`
	AvatarPath   *string   `gorm:"size:255" json:"avatar_path"`
	VkURL        string    `gorm:"size:255" json:"vk_url"`
	DiscordURL   string    `gorm:"size:255" json:"discord_url"`
	TelegramURL  string    `gorm:"size:255" json:"telegram_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// PrivilegedRole reports whether the role may review other members' records.
func PrivilegedRole(role string) bool {
	return role == RoleCurator || role == RoleAdmin
}
