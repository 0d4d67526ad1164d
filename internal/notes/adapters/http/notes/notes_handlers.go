// Package notes содержит HTTP обработчики для работы с заметками.
package notes

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"deltanote/internal/notes/adapters/http/dto"
	"deltanote/internal/notes/adapters/http/middleware"
	"deltanote/internal/notes/app"
	"deltanote/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreate       = "notes handler: create"
	LogHandlerGet          = "notes handler: get"
	LogHandlerList         = "notes handler: list"
	LogHandlerUpdate       = "notes handler: update"
	LogHandlerDelete       = "notes handler: delete"
	LogHandlerSearch       = "notes handler: search"
	LogHandlerUpdatedSince = "notes handler: updated since"
	LogHandlerCount        = "notes handler: count"
	LogHandlerByLanguage   = "notes handler: by language"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	notes *app.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notes *app.NoteUseCase) *Handler {
	return &Handler{notes: notes}
}

// respondError переводит отказ операции в HTTP ответ.
func respondError(ctx fiber.Ctx, err error) error {
	status, body := dto.FromError(err)
	return ctx.Status(status).JSON(body)
}

// Create обрабатывает запрос на создание заметки.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	note, err := h.notes.CreateNote(requestCtx, middleware.UserID(ctx), app.CreateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Language:   req.Language,
		Confidence: req.Confidence,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.Status(http.StatusCreated).JSON(dto.NoteResponse{Note: dto.NoteFromEntity(note)})
}

// Get обрабатывает запрос на получение заметки.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGet)

	note, err := h.notes.GetNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.NoteResponse{Note: dto.NoteFromEntity(note)})
}

// List обрабатывает запрос на список заметок пользователя.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	notes, err := h.notes.ListNotes(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListNotesResponse{Notes: dto.NotesFromEntities(notes), TotalCount: len(notes)})
}

// Update обрабатывает запрос на частичное обновление заметки.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	note, err := h.notes.UpdateNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"), app.UpdateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Language:   req.Language,
		Confidence: req.Confidence,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.NoteResponse{Note: dto.NoteFromEntity(note)})
}

// Delete обрабатывает запрос на удаление заметки.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	if err := h.notes.DeleteNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id")); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// Search обрабатывает поиск заметок по подстроке.
func (h *Handler) Search(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSearch)

	notes, err := h.notes.SearchNotes(requestCtx, middleware.UserID(ctx), ctx.Query("q"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListNotesResponse{Notes: dto.NotesFromEntities(notes), TotalCount: len(notes)})
}

// UpdatedSince обрабатывает запрос заметок, измененных после указанного момента.
func (h *Handler) UpdatedSince(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdatedSince)

	since, err := time.Parse(time.RFC3339, ctx.Query("since"))
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: "since must be an RFC3339 timestamp"})
	}

	notes, err := h.notes.ListNotesUpdatedSince(requestCtx, middleware.UserID(ctx), since)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListNotesResponse{Notes: dto.NotesFromEntities(notes), TotalCount: len(notes)})
}

// Count обрабатывает запрос количества заметок пользователя.
func (h *Handler) Count(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCount)

	count, err := h.notes.CountNotes(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.CountNotesResponse{Count: count})
}

// ByLanguage обрабатывает запрос заметок на указанном языке.
func (h *Handler) ByLanguage(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerByLanguage)

	notes, err := h.notes.ListNotesByLanguage(requestCtx, middleware.UserID(ctx), ctx.Params("code"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListNotesResponse{Notes: dto.NotesFromEntities(notes), TotalCount: len(notes)})
}
