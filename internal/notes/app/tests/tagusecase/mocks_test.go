package tagusecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"deltanote/internal/notes/domain/entities"
)

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) GetByID(ctx context.Context, tagID, userID string) (*entities.Tag, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) Update(ctx context.Context, tagID, userID string, update *entities.TagUpdate) (*entities.Tag, error) {
	args := m.Called(ctx, tagID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) Delete(ctx context.Context, tagID, userID string) error {
	args := m.Called(ctx, tagID, userID)
	return args.Error(0)
}

func (m *mockTagRepository) AddToNote(ctx context.Context, noteID, tagID, userID string) error {
	args := m.Called(ctx, noteID, tagID, userID)
	return args.Error(0)
}

func (m *mockTagRepository) RemoveFromNote(ctx context.Context, noteID, tagID, userID string) error {
	args := m.Called(ctx, noteID, tagID, userID)
	return args.Error(0)
}

func (m *mockTagRepository) ListForNote(ctx context.Context, noteID, userID string) ([]*entities.Tag, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockTagRepository) ListNotesForTag(ctx context.Context, tagID, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockTagRepository) ListNoteIDsForTag(ctx context.Context, tagID, userID string) ([]string, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// mockViewCache - кэш представлений в памяти для проверки инвалидации.
type mockViewCache struct {
	store map[string]string
}

func newMockViewCache() *mockViewCache {
	return &mockViewCache{store: make(map[string]string)}
}

func (c *mockViewCache) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := c.store[key]
	return value, ok, nil
}

func (c *mockViewCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *mockViewCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func (c *mockViewCache) Close() error { return nil }
