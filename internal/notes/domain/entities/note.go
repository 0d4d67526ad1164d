// Package entities defines the domain entities for the notes service.
package entities

import "time"

// LanguageUndetected - код языка, когда определение невозможно.
const LanguageUndetected = "undetected"

// Note представляет собой заметку пользователя с rich-text содержимым.
// Content хранит delta JSON, ContentPlain - извлеченный из него текст.
type Note struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ContentPlain string    `json:"content_plain"`
	Language     *string   `json:"language,omitempty"`
	Confidence   *float64  `json:"confidence,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewNote creates a new note with the given user ID, title, and content.
func NewNote(userID, title, content, contentPlain string) *Note {
	now := time.Now()
	return &Note{
		UserID:       userID,
		Title:        title,
		Content:      content,
		ContentPlain: contentPlain,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NoteUpdate описывает частичное обновление заметки.
// nil-поле означает "не менять".
type NoteUpdate struct {
	Title        *string
	Content      *string
	ContentPlain *string
	Language     *string
	Confidence   *float64
}
