package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/conteo-api/internal/application/counting"
	"github.com/jhoicas/conteo-api/internal/application/dto"
)

// SessionHandler maneja las peticiones HTTP para sesiones de conteo (protegido).
type SessionHandler struct {
	sessions *counting.SessionUseCase
	submit   *counting.SubmitItemsUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sessions *counting.SessionUseCase, submit *counting.SubmitItemsUseCase) *SessionHandler {
	return &SessionHandler{sessions: sessions, submit: submit}
}

// List godoc
// @Summary      Listar sesiones de conteo
// @Tags         count-sessions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/count-sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	out, err := h.sessions.List(callerFrom(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener sesión de conteo con sus items
// @Tags         count-sessions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/count-sessions/{id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido: " + id})
	}
	out, err := h.sessions.GetByID(callerFrom(c), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear sesión de conteo
// @Tags         count-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "Nombre y salas opcionales a sembrar"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/count-sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.Create(c.Context(), callerFrom(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar nombre y/o estado de una sesión
// @Tags         count-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.UpdateSessionRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/count-sessions/{id} [put]
func (h *SessionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido: " + id})
	}
	var in dto.UpdateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.sessions.Update(c.Context(), callerFrom(c), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sesión de conteo (no finalizada)
// @Tags         count-sessions
// @Security     Bearer
// @Param        id   path  string  true  "ID de la sesión"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/count-sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido: " + id})
	}
	if err := h.sessions.Delete(c.Context(), callerFrom(c), id); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitItems godoc
// @Summary      Registrar lote de conteos contra una sesión
// @Tags         count-sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SubmitItemsRequest  true  "Items a crear o actualizar"
// @Success      200   {array}  dto.CountItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/count-sessions/{id}/items [post]
func (h *SessionHandler) SubmitItems(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido: " + id})
	}
	var in dto.SubmitItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.submit.Submit(c.Context(), callerFrom(c), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
