package entities

import "time"

// Tag представляет собой пользовательскую метку для заметок.
// UsageCount - агрегат на чтение (количество связанных заметок),
// напрямую не изменяется.
type Tag struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon,omitempty"`
	Description *string   `json:"description,omitempty"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTag creates a new tag with the given user ID, name, and color.
func NewTag(userID, name, color string) *Tag {
	return &Tag{
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
}

// TagUpdate описывает частичное обновление метки.
type TagUpdate struct {
	Name        *string
	Color       *string
	Icon        *string
	Description *string
}
