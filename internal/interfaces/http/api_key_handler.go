package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

const apiKeyNotFound = "llave no encontrada"

// APIKeyHandler administración de llaves de dispositivo. Solo usuarios (JWT).
type APIKeyHandler struct {
	uc *usecase.APIKeyUseCase
}

// NewAPIKeyHandler construye el handler.
func NewAPIKeyHandler(uc *usecase.APIKeyUseCase) *APIKeyHandler {
	return &APIKeyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear llave de dispositivo
// @Description  La llave en claro se devuelve solo en esta respuesta.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateAPIKeyRequest  true  "Dispositivo"
// @Success      201   {object}  dto.APIKeyCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/api-keys [post]
func (h *APIKeyHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateAPIKeyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, GetUserID(c), in)
	if err != nil {
		return writeError(c, err, apiKeyNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar llaves
// @Tags         api-keys
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.APIKeyListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/api-keys [get]
func (h *APIKeyHandler) List(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Revoke godoc
// @Summary      Revocar llave
// @Tags         api-keys
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/api-keys/{id}/revoke [post]
func (h *APIKeyHandler) Revoke(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.Revoke(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, apiKeyNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activate godoc
// @Summary      Reactivar llave
// @Tags         api-keys
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/api-keys/{id}/activate [post]
func (h *APIKeyHandler) Activate(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.Activate(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, apiKeyNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Borrar llave
// @Tags         api-keys
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/api-keys/{id} [delete]
func (h *APIKeyHandler) Delete(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, apiKeyNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
