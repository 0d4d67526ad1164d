package repositories

import (
	"context"

	"deltanote/internal/notes/domain/entities"
)

// TagRepository определяет интерфейс для работы с метками
// и связями заметка-метка.
type TagRepository interface {
	Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error)
	GetByID(ctx context.Context, tagID, userID string) (*entities.Tag, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.Tag, error)
	Update(ctx context.Context, tagID, userID string, update *entities.TagUpdate) (*entities.Tag, error)
	Delete(ctx context.Context, tagID, userID string) error

	AddToNote(ctx context.Context, noteID, tagID, userID string) error
	RemoveFromNote(ctx context.Context, noteID, tagID, userID string) error
	ListForNote(ctx context.Context, noteID, userID string) ([]*entities.Tag, error)
	ListNotesForTag(ctx context.Context, tagID, userID string) ([]*entities.Note, error)
	ListNoteIDsForTag(ctx context.Context, tagID, userID string) ([]string, error)
}
