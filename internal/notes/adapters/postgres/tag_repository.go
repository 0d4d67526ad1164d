package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/repositories"
	"deltanote/pkg/logger"
)

// Ошибки репозитория меток.
var (
	ErrTagNotFoundOrNotOwned = repositories.ErrTagNotFoundOrNotOwned
	ErrDuplicateAssociation  = repositories.ErrDuplicateAssociation
	ErrAssociationNotFound   = repositories.ErrAssociationNotFound
)

// pgUniqueViolation - код SQLSTATE нарушения уникальности.
const pgUniqueViolation = "23505"

const tagUsageCount = "(SELECT COUNT(*) FROM note_tags x WHERE x.tag_id = t.id)"

const tagColumns = "t.id, t.user_id, t.name, t.color, t.icon, t.description, " + tagUsageCount + ", t.created_at"

// TagRepository реализует интерфейс repositories.TagRepository.
type TagRepository struct {
	pool PgxPoolInterface
}

// NewTagRepository создает новый репозиторий меток.
func NewTagRepository(pool PgxPoolInterface) repositories.TagRepository {
	return &TagRepository{pool: pool}
}

// scanTag читает одну строку метки вместе с количеством использований.
func scanTag(row pgx.Row) (*entities.Tag, error) {
	var tag entities.Tag
	err := row.Scan(
		&tag.ID,
		&tag.UserID,
		&tag.Name,
		&tag.Color,
		&tag.Icon,
		&tag.Description,
		&tag.UsageCount,
		&tag.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// collectTags читает все строки результата в список меток.
func collectTags(rows pgx.Rows) ([]*entities.Tag, error) {
	defer rows.Close()

	tags := make([]*entities.Tag, 0)
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return tags, nil
}

// Create сохраняет новую метку в БД.
func (r *TagRepository) Create(ctx context.Context, tag *entities.Tag) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Create"))
	log.Debug(ctx, "creating new tag", zap.String("userID", tag.UserID), zap.String("name", tag.Name))

	var created entities.Tag
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tags (user_id, name, color, icon, description)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, user_id, name, color, icon, description, created_at`,
		tag.UserID, tag.Name, tag.Color, tag.Icon, tag.Description,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Color, &created.Icon, &created.Description, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, "failed to create tag", zap.Error(err))
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	log.Debug(ctx, "tag created", zap.String("tagID", created.ID))
	return &created, nil
}

// GetByID получает метку по ID и ID пользователя.
func (r *TagRepository) GetByID(ctx context.Context, tagID, userID string) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.GetByID"))
	log.Debug(ctx, "getting tag", zap.String("tagID", tagID))

	tag, err := scanTag(r.pool.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.id = $1 AND t.user_id = $2`,
		tagID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "tag not found", zap.String("tagID", tagID))
			return nil, ErrTagNotFoundOrNotOwned
		}
		log.Error(ctx, "failed to get tag", zap.Error(err))
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// ListByUserID получает все метки пользователя с количеством использований.
func (r *TagRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.ListByUserID"))
	log.Debug(ctx, "listing tags", zap.String("userID", userID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.user_id = $1 ORDER BY t.name`,
		userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list tags", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return collectTags(rows)
}

// Update применяет частичное обновление метки.
func (r *TagRepository) Update(ctx context.Context, tagID, userID string, update *entities.TagUpdate) (*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Update"))
	log.Debug(ctx, "updating tag", zap.String("tagID", tagID))

	assignments := make([]string, 0, 4)
	args := []interface{}{tagID, userID}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Color != nil {
		appendSet("color", *update.Color)
	}
	if update.Icon != nil {
		appendSet("icon", *update.Icon)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}

	if len(assignments) == 0 {
		return r.GetByID(ctx, tagID, userID)
	}

	query := fmt.Sprintf(
		`UPDATE tags t SET %s WHERE t.id = $1 AND t.user_id = $2
         RETURNING `+tagColumns,
		strings.Join(assignments, ", "),
	)

	tag, err := scanTag(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "tag not found or not owned by user")
			return nil, ErrTagNotFoundOrNotOwned
		}
		log.Error(ctx, "failed to update tag", zap.Error(err))
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// Delete удаляет метку; связи с заметками удаляются каскадно.
func (r *TagRepository) Delete(ctx context.Context, tagID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.Delete"))
	log.Debug(ctx, "deleting tag", zap.String("tagID", tagID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM tags WHERE id = $1 AND user_id = $2`,
		tagID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete tag", zap.Error(err))
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "tag not found or not owned by user")
		return ErrTagNotFoundOrNotOwned
	}

	return nil
}

// AddToNote создает связь заметка-метка. Обе стороны должны
// принадлежать пользователю.
func (r *TagRepository) AddToNote(ctx context.Context, noteID, tagID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.AddToNote"))
	log.Debug(ctx, "attaching tag to note", zap.String("noteID", noteID), zap.String("tagID", tagID))

	result, err := r.pool.Exec(ctx,
		`INSERT INTO note_tags (note_id, tag_id)
         SELECT n.id, t.id FROM notes n
         JOIN tags t ON t.id = $2 AND t.user_id = $3
         WHERE n.id = $1 AND n.user_id = $3`,
		noteID, tagID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			log.Debug(ctx, "association already exists")
			return ErrDuplicateAssociation
		}
		log.Error(ctx, "failed to attach tag", zap.Error(err))
		return fmt.Errorf("failed to attach tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note or tag not found or not owned by user")
		return ErrTagNotFoundOrNotOwned
	}

	return nil
}

// RemoveFromNote удаляет связь заметка-метка.
func (r *TagRepository) RemoveFromNote(ctx context.Context, noteID, tagID, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.RemoveFromNote"))
	log.Debug(ctx, "detaching tag from note", zap.String("noteID", noteID), zap.String("tagID", tagID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM note_tags nt
         USING tags t
         WHERE nt.note_id = $1 AND nt.tag_id = $2 AND t.id = nt.tag_id AND t.user_id = $3`,
		noteID, tagID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to detach tag", zap.Error(err))
		return fmt.Errorf("failed to detach tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "association not found")
		return ErrAssociationNotFound
	}

	return nil
}

// ListForNote получает метки, привязанные к заметке.
func (r *TagRepository) ListForNote(ctx context.Context, noteID, userID string) ([]*entities.Tag, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.ListForNote"))
	log.Debug(ctx, "listing tags for note", zap.String("noteID", noteID))

	rows, err := r.pool.Query(ctx,
		`SELECT `+tagColumns+` FROM tags t
         JOIN note_tags nt ON nt.tag_id = t.id
         WHERE nt.note_id = $1 AND t.user_id = $2
         ORDER BY t.name`,
		noteID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list tags for note", zap.Error(err))
		return nil, fmt.Errorf("failed to list tags for note: %w", err)
	}

	return collectTags(rows)
}

// ListNotesForTag получает заметки с указанной меткой.
func (r *TagRepository) ListNotesForTag(ctx context.Context, tagID, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.ListNotesForTag"))
	log.Debug(ctx, "listing notes for tag", zap.String("tagID", tagID))

	rows, err := r.pool.Query(ctx,
		`SELECT n.id, n.user_id, n.title, n.content, n.content_plain, n.language, n.confidence, n.created_at, n.updated_at
         FROM notes n
         JOIN note_tags nt ON nt.note_id = n.id
         WHERE nt.tag_id = $1 AND n.user_id = $2
         ORDER BY n.updated_at DESC`,
		tagID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes for tag", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes for tag: %w", err)
	}

	return collectNotes(rows)
}

// ListNoteIDsForTag получает идентификаторы заметок с указанной меткой.
// Используется для вычисления инвалидируемых ключей кэша перед удалением метки.
func (r *TagRepository) ListNoteIDsForTag(ctx context.Context, tagID, userID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "TagRepository.ListNoteIDsForTag"))
	log.Debug(ctx, "listing note ids for tag", zap.String("tagID", tagID))

	rows, err := r.pool.Query(ctx,
		`SELECT nt.note_id FROM note_tags nt
         JOIN tags t ON t.id = nt.tag_id
         WHERE nt.tag_id = $1 AND t.user_id = $2`,
		tagID, userID,
	)
	if err != nil {
		log.Error(ctx, "failed to list note ids for tag", zap.Error(err))
		return nil, fmt.Errorf("failed to list note ids for tag: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan note id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ids, nil
}
