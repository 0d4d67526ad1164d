package noteusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/services"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, noteID, userID string, update *entities.NoteUpdate) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	args := m.Called(ctx, noteID, userID)
	return args.Error(0)
}

func (m *mockNoteRepository) Search(ctx context.Context, userID, filter string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNoteRepository) ListByLanguage(ctx context.Context, userID, language string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

type mockLanguageDetector struct {
	mock.Mock
}

func (m *mockLanguageDetector) Detect(ctx context.Context, text string) (services.Detection, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(services.Detection), args.Error(1)
}
