package dto

import (
	"time"

	"deltanote/internal/notes/domain/entities"
)

// CreateTagRequest содержит данные для создания метки.
type CreateTagRequest struct {
	Name        string  `json:"name" validate:"required"`
	Color       string  `json:"color" validate:"required"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// UpdateTagRequest содержит данные для частичного обновления метки.
type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// Tag представляет метку в ответе API.
type Tag struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon"`
	Description *string   `json:"description"`
	UsageCount  int       `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// TagResponse содержит информацию о метке для ответа.
type TagResponse struct {
	Tag *Tag `json:"tag"`
}

// ListTagsResponse содержит список меток.
type ListTagsResponse struct {
	Tags []*Tag `json:"tags"`
}

// TagFromEntity переводит доменную метку в DTO.
func TagFromEntity(tag *entities.Tag) *Tag {
	return &Tag{
		ID:          tag.ID,
		UserID:      tag.UserID,
		Name:        tag.Name,
		Color:       tag.Color,
		Icon:        tag.Icon,
		Description: tag.Description,
		UsageCount:  tag.UsageCount,
		CreatedAt:   tag.CreatedAt,
	}
}

// TagsFromEntities переводит список доменных меток в DTO.
func TagsFromEntities(tags []*entities.Tag) []*Tag {
	out := make([]*Tag, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagFromEntity(tag))
	}
	return out
}
