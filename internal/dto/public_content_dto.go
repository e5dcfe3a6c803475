package dto

// ApplicationCreateRequest is the public leadership-candidate form.
type ApplicationCreateRequest struct {
	GameNickname   string `json:"game_nickname" validate:"required,min=1,max=128"`
	ServerPosition string `json:"server_position" validate:"required,min=1,max=255"`
	Discord        string `json:"discord" validate:"omitempty,max=255"`
	VkURL          string `json:"vk_url" validate:"omitempty,max=512"`
	ForumURL       string `json:"forum_url" validate:"omitempty,max=512"`
}

// LeadershipCreateRequest adds an entry to the public leadership roster.
type LeadershipCreateRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=128"`
	Position  string `json:"position" validate:"omitempty,max=255"`
	Bio       string `json:"bio" validate:"omitempty,max=10000"`
	SortOrder *int   `json:"sort_order" validate:"omitempty,gte=0"`
}

// LeadershipUpdateRequest is a partial update of a leadership entry.
type LeadershipUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=128"`
	Position  *string `json:"position" validate:"omitempty,max=255"`
	Bio       *string `json:"bio" validate:"omitempty,max=10000"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,gte=0"`
}
