// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"time"

	"deltanote/internal/notes/domain/entities"
)

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// Все операции неявно ограничены владельцем через userID.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error)
	Update(ctx context.Context, noteID, userID string, update *entities.NoteUpdate) (*entities.Note, error)
	Delete(ctx context.Context, noteID, userID string) error
	Search(ctx context.Context, userID, filter string) ([]*entities.Note, error)
	ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*entities.Note, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	ListByLanguage(ctx context.Context, userID, language string) ([]*entities.Note, error)
}
