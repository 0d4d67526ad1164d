package noteusecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"deltanote/internal/notes/app"
	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/repositories"
	"deltanote/internal/notes/ports/services"
)

const testNoteID = "note-abc"

func TestUpdateNote_TitleOnlySkipsDetection(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	noteRepo.On("Update", mock.Anything, testNoteID, testUserID, mock.MatchedBy(func(update *entities.NoteUpdate) bool {
		return update.Title != nil && *update.Title == "New title" &&
			update.Content == nil && update.Language == nil
	})).Return(&entities.Note{ID: testNoteID, Title: "New title"}, nil)

	note, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{
		Title: strPtr("New title"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New title", note.Title)
	detector.AssertNotCalled(t, "Detect")
}

func TestUpdateNote_ContentTriggersDetection(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	detector.On("Detect", mock.Anything, "rewritten body").
		Return(services.Detection{Language: "en", Confidence: 0.5}, nil)

	noteRepo.On("Update", mock.Anything, testNoteID, testUserID, mock.MatchedBy(func(update *entities.NoteUpdate) bool {
		return update.Content != nil &&
			update.ContentPlain != nil && *update.ContentPlain == "rewritten body" &&
			update.Language != nil && *update.Language == "en"
	})).Return(&entities.Note{ID: testNoteID}, nil)

	_, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{
		Content: strPtr(`[{"insert":"rewritten body"}]`),
	})

	require.NoError(t, err)
	detector.AssertExpectations(t)
	noteRepo.AssertExpectations(t)
}

func TestUpdateNote_ContentWithExplicitLanguageSkipsDetection(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	noteRepo.On("Update", mock.Anything, testNoteID, testUserID, mock.MatchedBy(func(update *entities.NoteUpdate) bool {
		return update.Language != nil && *update.Language == "fr"
	})).Return(&entities.Note{ID: testNoteID}, nil)

	_, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{
		Content:  strPtr(`[{"insert":"texte de la note"}]`),
		Language: strPtr("fr"),
	})

	require.NoError(t, err)
	detector.AssertNotCalled(t, "Detect")
}

func TestUpdateNote_EmptyContentRejected(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	note, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{
		Content: strPtr(`[{"insert":"  \n "}]`),
	})

	require.Error(t, err)
	assert.Nil(t, note)
	assert.Equal(t, entities.FailureValidation, entities.AsFailure(err).Kind)
	noteRepo.AssertNotCalled(t, "Update")
}

func TestUpdateNote_NoFields(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	note, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{})

	require.Error(t, err)
	assert.Nil(t, note)
	assert.Equal(t, entities.FailureValidation, entities.AsFailure(err).Kind)
	noteRepo.AssertNotCalled(t, "Update")
}

func TestUpdateNote_NotFound(t *testing.T) {
	ctx := context.Background()
	noteRepo := new(mockNoteRepository)
	detector := new(mockLanguageDetector)
	uc := app.NewNoteUseCase(noteRepo, detector)

	noteRepo.On("Update", mock.Anything, testNoteID, testUserID, mock.Anything).
		Return(nil, repositories.ErrNoteNotFoundOrNotOwned)

	note, err := uc.UpdateNote(ctx, testUserID, testNoteID, app.UpdateNoteInput{
		Title: strPtr("New title"),
	})

	require.Error(t, err)
	assert.Nil(t, note)

	failure := entities.AsFailure(err)
	assert.Equal(t, entities.FailureDatabase, failure.Kind)
	assert.Equal(t, entities.CodeNotFound, failure.Code)
	assert.True(t, entities.IsNotFound(err))
}
