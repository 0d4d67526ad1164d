// Package tags содержит HTTP обработчики для работы с метками.
package tags

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"deltanote/internal/notes/adapters/http/dto"
	"deltanote/internal/notes/adapters/http/middleware"
	"deltanote/internal/notes/app"
	"deltanote/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreate      = "tags handler: create"
	LogHandlerList        = "tags handler: list"
	LogHandlerUpdate      = "tags handler: update"
	LogHandlerDelete      = "tags handler: delete"
	LogHandlerNotesForTag = "tags handler: notes for tag"
	LogHandlerTagsForNote = "tags handler: tags for note"
	LogHandlerAttach      = "tags handler: attach"
	LogHandlerDetach      = "tags handler: detach"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики меток. Все операции идут через
// владельца кэша, чтобы представления оставались согласованными.
type Handler struct {
	views *app.TagViews
}

// NewHandler создает новый экземпляр обработчика меток.
func NewHandler(views *app.TagViews) *Handler {
	return &Handler{views: views}
}

// respondError переводит отказ операции в HTTP ответ.
func respondError(ctx fiber.Ctx, err error) error {
	status, body := dto.FromError(err)
	return ctx.Status(status).JSON(body)
}

// Create обрабатывает запрос на создание метки.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	var req dto.CreateTagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	tag, err := h.views.CreateTag(requestCtx, middleware.UserID(ctx), app.CreateTagInput{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.Status(http.StatusCreated).JSON(dto.TagResponse{Tag: dto.TagFromEntity(tag)})
}

// List обрабатывает запрос на список меток пользователя.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	tags, err := h.views.GetAllTags(requestCtx, middleware.UserID(ctx))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListTagsResponse{Tags: dto.TagsFromEntities(tags)})
}

// Update обрабатывает запрос на частичное обновление метки.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdate)

	var req dto.UpdateTagRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrorInvalidRequest})
	}

	tag, err := h.views.UpdateTag(requestCtx, middleware.UserID(ctx), ctx.Params("tag_id"), app.UpdateTagInput{
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.TagResponse{Tag: dto.TagFromEntity(tag)})
}

// Delete обрабатывает запрос на удаление метки.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	if err := h.views.DeleteTag(requestCtx, middleware.UserID(ctx), ctx.Params("tag_id")); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// NotesForTag обрабатывает запрос заметок с указанной меткой.
func (h *Handler) NotesForTag(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerNotesForTag)

	notes, err := h.views.GetNotesForTag(requestCtx, middleware.UserID(ctx), ctx.Params("tag_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListNotesResponse{Notes: dto.NotesFromEntities(notes), TotalCount: len(notes)})
}

// TagsForNote обрабатывает запрос меток, привязанных к заметке.
func (h *Handler) TagsForNote(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerTagsForNote)

	tags, err := h.views.GetTagsForNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.JSON(dto.ListTagsResponse{Tags: dto.TagsFromEntities(tags)})
}

// Attach обрабатывает привязку метки к заметке.
func (h *Handler) Attach(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAttach)

	err := h.views.AddTagToNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"), ctx.Params("tag_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// Detach обрабатывает отвязку метки от заметки.
func (h *Handler) Detach(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDetach)

	err := h.views.RemoveTagFromNote(requestCtx, middleware.UserID(ctx), ctx.Params("note_id"), ctx.Params("tag_id"))
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondError(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}
