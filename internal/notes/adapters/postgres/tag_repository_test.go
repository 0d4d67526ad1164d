package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deltanote/internal/notes/adapters/postgres"
	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/repositories"
)

var tagColumns = []string{
	"id", "user_id", "name", "color", "icon", "description", "count", "created_at",
}

func tagRow(tag *entities.Tag) *pgxmock.Rows {
	return pgxmock.NewRows(tagColumns).AddRow(
		tag.ID, tag.UserID, tag.Name, tag.Color, tag.Icon, tag.Description,
		tag.UsageCount, tag.CreatedAt,
	)
}

func sampleTag() *entities.Tag {
	icon := "work_outline"
	return &entities.Tag{
		ID:         "tag-xyz",
		UserID:     "user-123",
		Name:       "work",
		Color:      "#1976d2",
		Icon:       &icon,
		UsageCount: 2,
		CreatedAt:  time.Now(),
	}
}

func TestNewTagRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := postgres.NewTagRepository(mock)

	assert.NotNil(t, repo, "Repository should not be nil")
	assert.Implements(t, (*repositories.TagRepository)(nil), repo, "Repository should implement TagRepository interface")
}

func TestTagRepository_Create(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	t.Run("successful tag creation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO tags \(user_id, name, color, icon, description\)`).
			WithArgs(expected.UserID, expected.Name, expected.Color, expected.Icon, expected.Description).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "color", "icon", "description", "created_at"}).
				AddRow(expected.ID, expected.UserID, expected.Name, expected.Color, expected.Icon, expected.Description, expected.CreatedAt))

		repo := postgres.NewTagRepository(mock)
		created, err := repo.Create(ctx, &entities.Tag{
			UserID: expected.UserID,
			Name:   expected.Name,
			Color:  expected.Color,
			Icon:   expected.Icon,
		})

		require.NoError(t, err)
		require.Equal(t, expected.ID, created.ID)
		require.Equal(t, expected.Name, created.Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`INSERT INTO tags`).
			WithArgs(expected.UserID, expected.Name, expected.Color, expected.Icon, expected.Description).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewTagRepository(mock)
		created, err := repo.Create(ctx, &entities.Tag{
			UserID: expected.UserID,
			Name:   expected.Name,
			Color:  expected.Color,
			Icon:   expected.Icon,
		})

		require.Error(t, err)
		require.Nil(t, created)
		assert.Contains(t, err.Error(), "failed to create tag")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	t.Run("tag found with usage count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM tags t WHERE t.id = \$1 AND t.user_id = \$2`).
			WithArgs(expected.ID, expected.UserID).
			WillReturnRows(tagRow(expected))

		repo := postgres.NewTagRepository(mock)
		tag, err := repo.GetByID(ctx, expected.ID, expected.UserID)

		require.NoError(t, err)
		require.Equal(t, expected.ID, tag.ID)
		require.Equal(t, 2, tag.UsageCount)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tag not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM tags t WHERE t.id = \$1 AND t.user_id = \$2`).
			WithArgs("missing-tag", expected.UserID).
			WillReturnRows(pgxmock.NewRows(tagColumns))

		repo := postgres.NewTagRepository(mock)
		tag, err := repo.GetByID(ctx, "missing-tag", expected.UserID)

		require.ErrorIs(t, err, repositories.ErrTagNotFoundOrNotOwned)
		require.Nil(t, tag)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_ListByUserID(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM tags t WHERE t.user_id = \$1 ORDER BY t.name`).
		WithArgs(expected.UserID).
		WillReturnRows(tagRow(expected))

	repo := postgres.NewTagRepository(mock)
	tags, err := repo.ListByUserID(ctx, expected.UserID)

	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.Equal(t, expected.Name, tags[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_Update(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	t.Run("updates provided fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		newName := "personal"
		newColor := "#43a047"
		mock.ExpectQuery(`UPDATE tags t SET name = \$3, color = \$4 WHERE t.id = \$1 AND t.user_id = \$2`).
			WithArgs(expected.ID, expected.UserID, newName, newColor).
			WillReturnRows(tagRow(expected))

		repo := postgres.NewTagRepository(mock)
		tag, err := repo.Update(ctx, expected.ID, expected.UserID, &entities.TagUpdate{
			Name:  &newName,
			Color: &newColor,
		})

		require.NoError(t, err)
		require.Equal(t, expected.ID, tag.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update falls back to read", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM tags t WHERE t.id = \$1 AND t.user_id = \$2`).
			WithArgs(expected.ID, expected.UserID).
			WillReturnRows(tagRow(expected))

		repo := postgres.NewTagRepository(mock)
		tag, err := repo.Update(ctx, expected.ID, expected.UserID, &entities.TagUpdate{})

		require.NoError(t, err)
		require.Equal(t, expected.ID, tag.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tag not found or not owned", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		newName := "personal"
		mock.ExpectQuery(`UPDATE tags t SET name = \$3`).
			WithArgs("missing-tag", expected.UserID, newName).
			WillReturnRows(pgxmock.NewRows(tagColumns))

		repo := postgres.NewTagRepository(mock)
		tag, err := repo.Update(ctx, "missing-tag", expected.UserID, &entities.TagUpdate{Name: &newName})

		require.ErrorIs(t, err, repositories.ErrTagNotFoundOrNotOwned)
		require.Nil(t, tag)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_Delete(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	t.Run("successful deletion", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND user_id = \$2`).
			WithArgs(expected.ID, expected.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewTagRepository(mock)
		require.NoError(t, repo.Delete(ctx, expected.ID, expected.UserID))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tag not found or not owned", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM tags WHERE id = \$1 AND user_id = \$2`).
			WithArgs("missing-tag", expected.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewTagRepository(mock)
		err = repo.Delete(ctx, "missing-tag", expected.UserID)

		require.ErrorIs(t, err, repositories.ErrTagNotFoundOrNotOwned)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_AddToNote(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()
	noteID := "note-abc-123"

	t.Run("successful attachment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO note_tags \(note_id, tag_id\)`).
			WithArgs(noteID, expected.ID, expected.UserID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewTagRepository(mock)
		require.NoError(t, repo.AddToNote(ctx, noteID, expected.ID, expected.UserID))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate association", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO note_tags`).
			WithArgs(noteID, expected.ID, expected.UserID).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := postgres.NewTagRepository(mock)
		err = repo.AddToNote(ctx, noteID, expected.ID, expected.UserID)

		require.ErrorIs(t, err, repositories.ErrDuplicateAssociation)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("note or tag not owned", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO note_tags`).
			WithArgs(noteID, expected.ID, "another-user").
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		repo := postgres.NewTagRepository(mock)
		err = repo.AddToNote(ctx, noteID, expected.ID, "another-user")

		require.ErrorIs(t, err, repositories.ErrTagNotFoundOrNotOwned)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_RemoveFromNote(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()
	noteID := "note-abc-123"

	t.Run("successful detachment", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM note_tags nt USING tags t`).
			WithArgs(noteID, expected.ID, expected.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewTagRepository(mock)
		require.NoError(t, repo.RemoveFromNote(ctx, noteID, expected.ID, expected.UserID))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("association not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM note_tags nt USING tags t`).
			WithArgs(noteID, expected.ID, expected.UserID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewTagRepository(mock)
		err = repo.RemoveFromNote(ctx, noteID, expected.ID, expected.UserID)

		require.ErrorIs(t, err, repositories.ErrAssociationNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTagRepository_ListForNote(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()
	noteID := "note-abc-123"

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM tags t JOIN note_tags nt ON nt.tag_id = t.id`).
		WithArgs(noteID, expected.UserID).
		WillReturnRows(tagRow(expected))

	repo := postgres.NewTagRepository(mock)
	tags, err := repo.ListForNote(ctx, noteID, expected.UserID)

	require.NoError(t, err)
	require.Len(t, tags, 1)
	require.Equal(t, expected.Name, tags[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ListNotesForTag(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()
	note := sampleNote()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM notes n JOIN note_tags nt ON nt.note_id = n.id`).
		WithArgs(expected.ID, expected.UserID).
		WillReturnRows(noteRow(note))

	repo := postgres.NewTagRepository(mock)
	notes, err := repo.ListNotesForTag(ctx, expected.ID, expected.UserID)

	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, note.ID, notes[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ListNoteIDsForTag(t *testing.T) {
	ctx := testContext(t)
	expected := sampleTag()

	t.Run("returns note ids", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT nt.note_id FROM note_tags nt`).
			WithArgs(expected.ID, expected.UserID).
			WillReturnRows(pgxmock.NewRows([]string{"note_id"}).AddRow("note-1").AddRow("note-2"))

		repo := postgres.NewTagRepository(mock)
		ids, err := repo.ListNoteIDsForTag(ctx, expected.ID, expected.UserID)

		require.NoError(t, err)
		require.Equal(t, []string{"note-1", "note-2"}, ids)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unused tag yields empty list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT nt.note_id FROM note_tags nt`).
			WithArgs(expected.ID, expected.UserID).
			WillReturnRows(pgxmock.NewRows([]string{"note_id"}))

		repo := postgres.NewTagRepository(mock)
		ids, err := repo.ListNoteIDsForTag(ctx, expected.ID, expected.UserID)

		require.NoError(t, err)
		require.Empty(t, ids)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
