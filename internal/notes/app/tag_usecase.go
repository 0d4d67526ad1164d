package app

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"deltanote/internal/notes/domain/entities"
	portcache "deltanote/internal/notes/ports/cache"
	"deltanote/internal/notes/ports/repositories"
	"deltanote/pkg/logger"
)

// Сообщения отказов валидации меток.
const (
	MsgTagNameEmpty    = "tag name cannot be empty"
	MsgTagColorInvalid = "tag color must be a hex string like #RRGGBB"
)

// hexColorRe проверяет формат цвета метки.
var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateTagInput - входные данные создания метки.
type CreateTagInput struct {
	Name        string
	Color       string
	Icon        *string
	Description *string
}

// UpdateTagInput - частичное обновление метки; nil-поле не меняется.
type UpdateTagInput struct {
	Name        *string
	Color       *string
	Icon        *string
	Description *string
}

// TagUseCase реализует учет меток и связей заметка-метка.
// Каждая успешная мутация возвращает набор инвалидируемых ключей
// представлений; применяет их владелец кэша, а не use case.
type TagUseCase struct {
	tagRepo repositories.TagRepository
}

// NewTagUseCase создает новый экземпляр TagUseCase.
func NewTagUseCase(tagRepo repositories.TagRepository) *TagUseCase {
	return &TagUseCase{tagRepo: tagRepo}
}

// CreateTag создает метку. Инвалидируется представление "все метки".
func (uc *TagUseCase) CreateTag(ctx context.Context, userID string, in CreateTagInput) (*entities.Tag, []string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.CreateTag"))

	if in.Name == "" {
		return nil, nil, entities.NewValidationFailure(MsgTagNameEmpty)
	}
	if !hexColorRe.MatchString(in.Color) {
		return nil, nil, entities.NewValidationFailure(MsgTagColorInvalid)
	}

	tag := entities.NewTag(userID, in.Name, in.Color)
	tag.Icon = in.Icon
	tag.Description = in.Description

	created, err := uc.tagRepo.Create(ctx, tag)
	if err != nil {
		log.Error(ctx, "failed to create tag", zap.Error(err))
		return nil, nil, databaseFailure("failed to create tag", err)
	}

	return created, []string{portcache.KeyAllTags(userID)}, nil
}

// UpdateTag применяет частичное обновление метки.
func (uc *TagUseCase) UpdateTag(ctx context.Context, userID, tagID string, in UpdateTagInput) (*entities.Tag, []string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.UpdateTag"))

	if in.Name != nil && *in.Name == "" {
		return nil, nil, entities.NewValidationFailure(MsgTagNameEmpty)
	}
	if in.Color != nil && !hexColorRe.MatchString(*in.Color) {
		return nil, nil, entities.NewValidationFailure(MsgTagColorInvalid)
	}

	update := &entities.TagUpdate{
		Name:        in.Name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
	}

	tag, err := uc.tagRepo.Update(ctx, tagID, userID, update)
	if err != nil {
		log.Error(ctx, "failed to update tag", zap.Error(err))
		return nil, nil, databaseFailure("failed to update tag", err)
	}

	return tag, []string{portcache.KeyAllTags(userID)}, nil
}

// DeleteTag удаляет метку. Помимо "все метки" инвалидируются
// представления каждой заметки, к которой метка была привязана.
func (uc *TagUseCase) DeleteTag(ctx context.Context, userID, tagID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.DeleteTag"))

	noteIDs, err := uc.tagRepo.ListNoteIDsForTag(ctx, tagID, userID)
	if err != nil {
		log.Error(ctx, "failed to list affected notes", zap.Error(err))
		return nil, databaseFailure("failed to delete tag", err)
	}

	if err := uc.tagRepo.Delete(ctx, tagID, userID); err != nil {
		log.Error(ctx, "failed to delete tag", zap.Error(err))
		return nil, databaseFailure("failed to delete tag", err)
	}

	keys := make([]string, 0, len(noteIDs)+2)
	keys = append(keys, portcache.KeyAllTags(userID), portcache.KeyNotesForTag(tagID))
	for _, noteID := range noteIDs {
		keys = append(keys, portcache.KeyTagsForNote(noteID))
	}

	return keys, nil
}

// AddTagToNote привязывает метку к заметке. Повторная привязка -
// отказ хранилища, не успех.
func (uc *TagUseCase) AddTagToNote(ctx context.Context, userID, noteID, tagID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.AddTagToNote"))

	if err := uc.tagRepo.AddToNote(ctx, noteID, tagID, userID); err != nil {
		log.Error(ctx, "failed to attach tag", zap.Error(err))
		return nil, databaseFailure("failed to attach tag to note", err)
	}

	return associationKeys(userID, noteID, tagID), nil
}

// RemoveTagFromNote отвязывает метку от заметки.
func (uc *TagUseCase) RemoveTagFromNote(ctx context.Context, userID, noteID, tagID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagUseCase.RemoveTagFromNote"))

	if err := uc.tagRepo.RemoveFromNote(ctx, noteID, tagID, userID); err != nil {
		log.Error(ctx, "failed to detach tag", zap.Error(err))
		return nil, databaseFailure("failed to detach tag from note", err)
	}

	return associationKeys(userID, noteID, tagID), nil
}

// associationKeys - представления, затрагиваемые изменением связи:
// счетчики использования в "все метки" и оба списка по сторонам связи.
func associationKeys(userID, noteID, tagID string) []string {
	return []string{
		portcache.KeyAllTags(userID),
		portcache.KeyTagsForNote(noteID),
		portcache.KeyNotesForTag(tagID),
	}
}

// ListTags возвращает все метки пользователя с количеством использований.
func (uc *TagUseCase) ListTags(ctx context.Context, userID string) ([]*entities.Tag, error) {
	tags, err := uc.tagRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, databaseFailure("failed to list tags", err)
	}
	return tags, nil
}

// ListTagsForNote возвращает метки заметки; пустой список - не ошибка.
func (uc *TagUseCase) ListTagsForNote(ctx context.Context, userID, noteID string) ([]*entities.Tag, error) {
	tags, err := uc.tagRepo.ListForNote(ctx, noteID, userID)
	if err != nil {
		return nil, databaseFailure("failed to list tags for note", err)
	}
	return tags, nil
}

// ListNotesForTag возвращает заметки с меткой; пустой список - не ошибка.
func (uc *TagUseCase) ListNotesForTag(ctx context.Context, userID, tagID string) ([]*entities.Note, error) {
	notes, err := uc.tagRepo.ListNotesForTag(ctx, tagID, userID)
	if err != nil {
		return nil, databaseFailure("failed to list notes for tag", err)
	}
	return notes, nil
}
