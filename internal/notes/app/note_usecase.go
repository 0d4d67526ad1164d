// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"deltanote/internal/notes/domain/delta"
	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/repositories"
	"deltanote/internal/notes/ports/services"
	"deltanote/pkg/logger"
)

// maxDerivedTitleLen - предел длины заголовка, выведенного из текста.
const maxDerivedTitleLen = 80

// Сообщения отказов валидации.
const (
	MsgContentEmpty       = "content cannot be empty"
	MsgContentUnparseable = "content is not a valid delta document"
	MsgNoFieldsToUpdate   = "no fields to update"
)

// CreateNoteInput - входные данные создания заметки. Content - delta JSON.
// Заданный Language отключает автоматическое определение языка.
type CreateNoteInput struct {
	Title      string
	Content    string
	Language   *string
	Confidence *float64
}

// UpdateNoteInput - частичное обновление заметки; nil-поле не меняется.
type UpdateNoteInput struct {
	Title      *string
	Content    *string
	Language   *string
	Confidence *float64
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	detector services.LanguageDetector
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, detector services.LanguageDetector) *NoteUseCase {
	return &NoteUseCase{
		noteRepo: noteRepo,
		detector: detector,
	}
}

// CreateNote создает новую заметку. Пустое содержимое отклоняется до
// какого-либо обращения к хранилищу; язык определяется только если
// не задан вызывающим.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID string, in CreateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"))

	doc, err := delta.FromJSON(in.Content)
	if err != nil {
		log.Debug(ctx, "note content failed to parse", zap.Error(err))
		return nil, entities.NewValidationFailure(MsgContentUnparseable)
	}
	if doc.IsEmpty() {
		log.Debug(ctx, "note content is empty")
		return nil, entities.NewValidationFailure(MsgContentEmpty)
	}

	plain := doc.PlainText()

	language, confidence := in.Language, in.Confidence
	if language == nil {
		detection := uc.detectLanguage(ctx, plain)
		language, confidence = &detection.Language, &detection.Confidence
	}

	title := in.Title
	if title == "" {
		title = delta.DeriveTitle(doc, maxDerivedTitleLen)
	}

	note := entities.NewNote(userID, title, in.Content, plain)
	note.Language = language
	note.Confidence = confidence

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, databaseFailure("failed to create note", err)
	}

	return created, nil
}

// UpdateNote применяет частичное обновление. Определение языка
// выполняется только когда передано содержимое без явного языка;
// обновление одного заголовка его не запускает.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID string, in UpdateNoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.UpdateNote"))

	if in.Title == nil && in.Content == nil && in.Language == nil && in.Confidence == nil {
		return nil, entities.NewValidationFailure(MsgNoFieldsToUpdate)
	}

	update := &entities.NoteUpdate{
		Title:      in.Title,
		Language:   in.Language,
		Confidence: in.Confidence,
	}

	if in.Content != nil {
		doc, err := delta.FromJSON(*in.Content)
		if err != nil {
			log.Debug(ctx, "note content failed to parse", zap.Error(err))
			return nil, entities.NewValidationFailure(MsgContentUnparseable)
		}
		if doc.IsEmpty() {
			log.Debug(ctx, "note content is empty")
			return nil, entities.NewValidationFailure(MsgContentEmpty)
		}

		plain := doc.PlainText()
		update.Content = in.Content
		update.ContentPlain = &plain

		if in.Language == nil {
			detection := uc.detectLanguage(ctx, plain)
			update.Language = &detection.Language
			update.Confidence = &detection.Confidence
		}
	}

	note, err := uc.noteRepo.Update(ctx, noteID, userID, update)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, databaseFailure("failed to update note", err)
	}

	return note, nil
}

// detectLanguage определяет язык текста. Отказ детектора не прерывает
// сохранение: заметка помечается как неопределенная.
func (uc *NoteUseCase) detectLanguage(ctx context.Context, text string) services.Detection {
	detection, err := uc.detector.Detect(ctx, text)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "language detection failed, falling back", zap.Error(err))
		return services.Detection{Language: entities.LanguageUndetected, Confidence: 0.0}
	}
	return detection
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, databaseFailure("failed to get note", err)
	}
	return note, nil
}

// ListNotes возвращает все заметки пользователя.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, databaseFailure("failed to list notes", err)
	}
	return notes, nil
}

// DeleteNote удаляет заметку вместе со связями с метками.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return databaseFailure("failed to delete note", err)
	}
	return nil
}

// SearchNotes ищет заметки по подстроке.
func (uc *NoteUseCase) SearchNotes(ctx context.Context, userID, filter string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.Search(ctx, userID, filter)
	if err != nil {
		return nil, databaseFailure("failed to search notes", err)
	}
	return notes, nil
}

// ListNotesUpdatedSince возвращает заметки, измененные после since.
func (uc *NoteUseCase) ListNotesUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListUpdatedSince(ctx, userID, since)
	if err != nil {
		return nil, databaseFailure("failed to list updated notes", err)
	}
	return notes, nil
}

// CountNotes возвращает количество заметок пользователя.
func (uc *NoteUseCase) CountNotes(ctx context.Context, userID string) (int, error) {
	count, err := uc.noteRepo.CountByUserID(ctx, userID)
	if err != nil {
		return 0, databaseFailure("failed to count notes", err)
	}
	return count, nil
}

// ListNotesByLanguage возвращает заметки с указанным языком.
func (uc *NoteUseCase) ListNotesByLanguage(ctx context.Context, userID, language string) ([]*entities.Note, error) {
	notes, err := uc.noteRepo.ListByLanguage(ctx, userID, language)
	if err != nil {
		return nil, databaseFailure("failed to list notes by language", err)
	}
	return notes, nil
}

// databaseFailure переводит ошибку хранилища в отказ таксономии.
func databaseFailure(message string, err error) *entities.Failure {
	switch {
	case errors.Is(err, repositories.ErrNoteNotFoundOrNotOwned),
		errors.Is(err, repositories.ErrTagNotFoundOrNotOwned),
		errors.Is(err, repositories.ErrAssociationNotFound):
		return entities.NewDatabaseFailure(message, entities.CodeNotFound, err)
	case errors.Is(err, repositories.ErrDuplicateAssociation):
		return entities.NewDatabaseFailure(message, entities.CodeDuplicate, err)
	default:
		return entities.NewDatabaseFailure(message, "", err)
	}
}
