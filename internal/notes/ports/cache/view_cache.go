// Package cache определяет интерфейс кэша представлений и схему ключей.
package cache

import (
	"context"
	"fmt"
	"time"
)

// ViewCache определяет интерфейс кэша read-представлений.
// Промах кэша возвращается как ("", false, nil), не как ошибка.
type ViewCache interface {
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Invalidate(ctx context.Context, keys ...string) error

	Close() error
}

// Конструкторы ключей представлений. Мутации меток возвращают
// наборы именно этих ключей.
func KeyAllTags(userID string) string {
	return fmt.Sprintf("tags:all:%s", userID)
}

// KeyTagsForNote - представление "метки заметки".
func KeyTagsForNote(noteID string) string {
	return fmt.Sprintf("tags:note:%s", noteID)
}

// KeyNotesForTag - представление "заметки с меткой".
func KeyNotesForTag(tagID string) string {
	return fmt.Sprintf("notes:tag:%s", tagID)
}
