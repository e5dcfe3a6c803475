package models

import "time"

// Application is a leadership-candidate submission from the public site.
type Application struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	GameNickname   string    `gorm:"size:128;not null" json:"game_nickname"`
	ServerPosition string    `gorm:"size:255;not null" json:"server_position"`
	Discord        string    `gorm:"size:255" json:"discord"`
	VkURL          string    `gorm:"size:512" json:"vk_url"`
	ForumURL       string    `gorm:"size:512" json:"forum_url"`
	CreatedAt      time.Time `json:"created_at"`
}

// Leadership is a public roster entry shown on the company page.
type Leadership struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	AvatarPath *string   `gorm:"size:255" json:"avatar_path"`
	Position   string    `gorm:"size:255" json:"position"`
	Bio        string    `gorm:"type:text" json:"bio"`
	SortOrder  int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (Leadership) TableName() string { return "leadership" }
