package app

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"deltanote/internal/notes/domain/entities"
	portcache "deltanote/internal/notes/ports/cache"
	"deltanote/pkg/logger"
)

// Сообщения логгера владельца кэша.
const (
	msgViewCacheHit        = "view cache hit"
	msgViewCacheUnreadable = "cached view unreadable, refreshing"
	msgViewCacheWriteSkip  = "failed to store view, serving uncached"
	msgInvalidationFailed  = "failed to invalidate views"
)

// TagViews - владелец кэша read-представлений меток. Чтения идут через
// кэш; мутации делегируются use case и инвалидируют ровно возвращенный
// им набор ключей. Ошибки кэша деградируют до прямого запроса и никогда
// не проваливают операцию.
type TagViews struct {
	tags  *TagUseCase
	cache portcache.ViewCache
}

// NewTagViews создает владельца кэша представлений меток.
func NewTagViews(tags *TagUseCase, cache portcache.ViewCache) *TagViews {
	return &TagViews{
		tags:  tags,
		cache: cache,
	}
}

// GetAllTags возвращает представление "все метки" пользователя.
func (v *TagViews) GetAllTags(ctx context.Context, userID string) ([]*entities.Tag, error) {
	return cachedView(ctx, v.cache, portcache.KeyAllTags(userID), func() ([]*entities.Tag, error) {
		return v.tags.ListTags(ctx, userID)
	})
}

// GetTagsForNote возвращает представление "метки заметки".
func (v *TagViews) GetTagsForNote(ctx context.Context, userID, noteID string) ([]*entities.Tag, error) {
	return cachedView(ctx, v.cache, portcache.KeyTagsForNote(noteID), func() ([]*entities.Tag, error) {
		return v.tags.ListTagsForNote(ctx, userID, noteID)
	})
}

// GetNotesForTag возвращает представление "заметки с меткой".
func (v *TagViews) GetNotesForTag(ctx context.Context, userID, tagID string) ([]*entities.Note, error) {
	return cachedView(ctx, v.cache, portcache.KeyNotesForTag(tagID), func() ([]*entities.Note, error) {
		return v.tags.ListNotesForTag(ctx, userID, tagID)
	})
}

// CreateTag создает метку и инвалидирует затронутые представления.
func (v *TagViews) CreateTag(ctx context.Context, userID string, in CreateTagInput) (*entities.Tag, error) {
	tag, keys, err := v.tags.CreateTag(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	v.invalidate(ctx, keys)
	return tag, nil
}

// UpdateTag обновляет метку и инвалидирует затронутые представления.
func (v *TagViews) UpdateTag(ctx context.Context, userID, tagID string, in UpdateTagInput) (*entities.Tag, error) {
	tag, keys, err := v.tags.UpdateTag(ctx, userID, tagID, in)
	if err != nil {
		return nil, err
	}
	v.invalidate(ctx, keys)
	return tag, nil
}

// DeleteTag удаляет метку и инвалидирует затронутые представления.
func (v *TagViews) DeleteTag(ctx context.Context, userID, tagID string) error {
	keys, err := v.tags.DeleteTag(ctx, userID, tagID)
	if err != nil {
		return err
	}
	v.invalidate(ctx, keys)
	return nil
}

// AddTagToNote привязывает метку и инвалидирует затронутые представления.
func (v *TagViews) AddTagToNote(ctx context.Context, userID, noteID, tagID string) error {
	keys, err := v.tags.AddTagToNote(ctx, userID, noteID, tagID)
	if err != nil {
		return err
	}
	v.invalidate(ctx, keys)
	return nil
}

// RemoveTagFromNote отвязывает метку и инвалидирует затронутые представления.
func (v *TagViews) RemoveTagFromNote(ctx context.Context, userID, noteID, tagID string) error {
	keys, err := v.tags.RemoveTagFromNote(ctx, userID, noteID, tagID)
	if err != nil {
		return err
	}
	v.invalidate(ctx, keys)
	return nil
}

// invalidate применяет набор ключей от use case. Неудачная
// инвалидация логируется, операция уже успешна.
func (v *TagViews) invalidate(ctx context.Context, keys []string) {
	if err := v.cache.Invalidate(ctx, keys...); err != nil {
		logger.Log(ctx).Warn(ctx, msgInvalidationFailed, zap.Error(err), zap.Strings("keys", keys))
	}
}

// cachedView читает представление из кэша или загружает и кэширует его.
func cachedView[T any](ctx context.Context, cache portcache.ViewCache, key string, load func() ([]T, error)) ([]T, error) {
	log := logger.Log(ctx).With(zap.String("view", key))

	encoded, found, err := cache.Get(ctx, key)
	if err == nil && found {
		var view []T
		if err := json.Unmarshal([]byte(encoded), &view); err == nil {
			log.Debug(ctx, msgViewCacheHit)
			return view, nil
		}
		log.Warn(ctx, msgViewCacheUnreadable)
	}

	view, err := load()
	if err != nil {
		return nil, err
	}

	if encodedView, err := json.Marshal(view); err == nil {
		if err := cache.Set(ctx, key, string(encodedView), 0); err != nil {
			log.Warn(ctx, msgViewCacheWriteSkip, zap.Error(err))
		}
	}

	return view, nil
}
