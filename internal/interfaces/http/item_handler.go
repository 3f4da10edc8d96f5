package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

const itemNotFound = "ítem no encontrado"

// ItemHandler ítems terminados y su costo total.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.ItemRequest  true  "Ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, itemNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         items
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, itemNotFound)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: itemNotFound})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar ítem
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string           true  "ID"
// @Param        body  body  dto.ItemRequest  true  "Ítem completo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, itemNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ítems
// @Tags         items
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre o código"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), scope, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar ítem
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, itemNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Costo total del ítem
// @Description  Materia prima + empaque + mano de obra con los últimos costos a as_of (hoy por defecto).
// @Tags         items
// @Produce      json
// @Security     Bearer
// @Param        id     path   string  true   "ID"
// @Param        as_of  query  string  false  "Fecha YYYY-MM-DD"
// @Success      200    {object}  dto.ItemCostResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/items/{id}/cost [get]
func (h *ItemHandler) Cost(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var asOf time.Time
	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		asOf, err = time.Parse(dto.DateLayout, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe tener formato YYYY-MM-DD"})
		}
	}
	out, err := h.uc.Cost(c.UserContext(), scope, c.Params("id"), asOf)
	if err != nil {
		return writeError(c, err, itemNotFound)
	}
	return c.JSON(out)
}
