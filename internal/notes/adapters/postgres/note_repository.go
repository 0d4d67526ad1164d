package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/repositories"
	"deltanote/pkg/logger"
)

// ErrNoteNotFoundOrNotOwned is returned when a note doesn't exist or belongs to another user.
var ErrNoteNotFoundOrNotOwned = repositories.ErrNoteNotFoundOrNotOwned

const noteColumns = "id, user_id, title, content, content_plain, language, confidence, created_at, updated_at"

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// scanNote читает одну строку заметки.
func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.ContentPlain,
		&note.Language,
		&note.Confidence,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// collectNotes читает все строки результата в список заметок.
func collectNotes(rows pgx.Rows) ([]*entities.Note, error) {
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return notes, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("userID", note.UserID))

	created, err := scanNote(r.pool.QueryRow(ctx,
		`INSERT INTO notes (user_id, title, content, content_plain, language, confidence)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+noteColumns,
		note.UserID, note.Title, note.Content, note.ContentPlain, note.Language, note.Confidence,
	))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// GetByID получает заметку по ID и ID пользователя.
func (r *NoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", noteID), zap.String("userID", userID))

	note, err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", noteID))
			return nil, ErrNoteNotFoundOrNotOwned
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// ListByUserID получает все заметки пользователя.
func (r *NoteRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByUserID"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return collectNotes(rows)
}

// Update применяет частичное обновление заметки. Отправляются только
// заданные поля; updated_at обновляется всегда.
func (r *NoteRepository) Update(ctx context.Context, noteID, userID string, update *entities.NoteUpdate) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", noteID))

	assignments := []string{"updated_at = now()"}
	args := []interface{}{noteID, userID}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		appendSet("title", *update.Title)
	}
	if update.Content != nil {
		appendSet("content", *update.Content)
	}
	if update.ContentPlain != nil {
		appendSet("content_plain", *update.ContentPlain)
	}
	if update.Language != nil {
		appendSet("language", *update.Language)
	}
	if update.Confidence != nil {
		appendSet("confidence", *update.Confidence)
	}

	query := fmt.Sprintf(
		`UPDATE notes SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		strings.Join(assignments, ", "), noteColumns,
	)

	note, err := scanNote(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found or not owned by user")
			return nil, ErrNoteNotFoundOrNotOwned
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// Delete удаляет заметку; связи с метками удаляются каскадно.
func (r *NoteRepository) Delete(ctx context.Context, noteID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return ErrNoteNotFoundOrNotOwned
	}

	return nil
}

// Search ищет заметки по подстроке в заголовке или плоском тексте.
func (r *NoteRepository) Search(ctx context.Context, userID, filter string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Search"))
	log.Debug(ctx, "searching notes", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes
         WHERE user_id = $1 AND (title ILIKE '%' || $2 || '%' OR content_plain ILIKE '%' || $2 || '%')
         ORDER BY updated_at DESC`,
		userID, filter,
	)
	if err != nil {
		log.Error(ctx, "failed to search notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	return collectNotes(rows)
}

// ListUpdatedSince получает заметки, измененные после указанного момента.
func (r *NoteRepository) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListUpdatedSince"))
	log.Debug(ctx, "listing updated notes", zap.String("userID", userID), zap.Time("since", since))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes
         WHERE user_id = $1 AND updated_at > $2
         ORDER BY updated_at DESC`,
		userID, since,
	)
	if err != nil {
		log.Error(ctx, "failed to list updated notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list updated notes: %w", err)
	}

	return collectNotes(rows)
}

// CountByUserID возвращает количество заметок пользователя.
func (r *NoteRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.CountByUserID"))
	log.Debug(ctx, "counting notes", zap.String("userID", userID))

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		log.Error(ctx, "failed to count notes", zap.Error(err))
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}

	return count, nil
}

// ListByLanguage получает заметки пользователя с указанным языком.
func (r *NoteRepository) ListByLanguage(ctx context.Context, userID, language string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByLanguage"))
	log.Debug(ctx, "listing notes by language", zap.String("userID", userID), zap.String("language", language))

	rows, err := r.pool.Query(ctx,
		`SELECT `+noteColumns+` FROM notes
         WHERE user_id = $1 AND language = $2
         ORDER BY updated_at DESC`,
		userID, language,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes by language", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes by language: %w", err)
	}

	return collectNotes(rows)
}
