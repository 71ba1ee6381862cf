package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/conteo-api/internal/application/counting"
	"github.com/jhoicas/conteo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC   *counting.SessionUseCase
	SubmitItems *counting.SubmitItemsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sesiones de conteo (protegido). Crear, actualizar y borrar son solo
	// admin/manager; el resto se acota por el predicado de visibilidad en el
	// caso de uso.
	sessions := protected.Group("/count-sessions")
	handler := NewSessionHandler(deps.SessionUC, deps.SubmitItems)
	sessions.Get("/", handler.List)
	sessions.Get("/:id", handler.GetByID)
	sessions.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), handler.Create)
	sessions.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), handler.Update)
	sessions.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), handler.Delete)
	sessions.Post("/:id/items", handler.SubmitItems)
}
