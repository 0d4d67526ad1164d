// Package http содержит компоненты для HTTP сервера сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"

	"deltanote/internal/notes/adapters/http/middleware"
	"deltanote/internal/notes/adapters/http/notes"
	"deltanote/internal/notes/adapters/http/tags"
	"deltanote/internal/notes/app"
	"deltanote/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(fiberApp *fiber.App, noteUseCase *app.NoteUseCase, tagViews *app.TagViews, tokenService services.TokenService) {
	notesHandler := notes.NewHandler(noteUseCase)
	tagsHandler := tags.NewHandler(tagViews)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	// API версии 1. Все маршруты требуют токен доступа.
	apiV1 := fiberApp.Group("/api/v1")
	apiV1.Use(middleware.NewAuthMiddleware(tokenService))

	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Post("/", notesHandler.Create)
	noteRoutes.Get("/", notesHandler.List)
	// Статические сегменты идут до :note_id.
	noteRoutes.Get("/count", notesHandler.Count)
	noteRoutes.Get("/search", notesHandler.Search)
	noteRoutes.Get("/updated-since", notesHandler.UpdatedSince)
	noteRoutes.Get("/language/:code", notesHandler.ByLanguage)
	noteRoutes.Get("/:note_id", notesHandler.Get)
	noteRoutes.Patch("/:note_id", notesHandler.Update)
	noteRoutes.Delete("/:note_id", notesHandler.Delete)
	noteRoutes.Get("/:note_id/tags", tagsHandler.TagsForNote)
	noteRoutes.Post("/:note_id/tags/:tag_id", tagsHandler.Attach)
	noteRoutes.Delete("/:note_id/tags/:tag_id", tagsHandler.Detach)

	tagRoutes := apiV1.Group("/tags")
	tagRoutes.Post("/", tagsHandler.Create)
	tagRoutes.Get("/", tagsHandler.List)
	tagRoutes.Patch("/:tag_id", tagsHandler.Update)
	tagRoutes.Delete("/:tag_id", tagsHandler.Delete)
	tagRoutes.Get("/:tag_id/notes", tagsHandler.NotesForTag)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
