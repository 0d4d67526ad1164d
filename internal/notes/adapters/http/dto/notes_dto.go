// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"deltanote/internal/notes/domain/entities"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content" validate:"required"`
	Language   *string  `json:"language"`
	Confidence *float64 `json:"confidence"`
}

// UpdateNoteRequest содержит данные для частичного обновления заметки.
type UpdateNoteRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Language   *string  `json:"language"`
	Confidence *float64 `json:"confidence"`
}

// Note представляет заметку в ответе API.
type Note struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ContentPlain string    `json:"content_plain"`
	Language     *string   `json:"language"`
	Confidence   *float64  `json:"confidence"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NoteResponse содержит информацию о заметке для ответа.
type NoteResponse struct {
	Note *Note `json:"note"`
}

// ListNotesResponse содержит список заметок.
type ListNotesResponse struct {
	Notes      []*Note `json:"notes"`
	TotalCount int     `json:"total_count"`
}

// CountNotesResponse содержит количество заметок пользователя.
type CountNotesResponse struct {
	Count int `json:"count"`
}

// NoteFromEntity переводит доменную заметку в DTO.
func NoteFromEntity(note *entities.Note) *Note {
	return &Note{
		ID:           note.ID,
		UserID:       note.UserID,
		Title:        note.Title,
		Content:      note.Content,
		ContentPlain: note.ContentPlain,
		Language:     note.Language,
		Confidence:   note.Confidence,
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}
}

// NotesFromEntities переводит список доменных заметок в DTO.
func NotesFromEntities(notes []*entities.Note) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, NoteFromEntity(note))
	}
	return out
}
