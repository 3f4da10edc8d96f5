package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

const packagingNotFound = "empaque no encontrado"

// PackagingHandler empaques, su historial de costos y tarifas de mano de obra.
type PackagingHandler struct {
	uc *usecase.PackagingUseCase
}

// NewPackagingHandler construye el handler.
func NewPackagingHandler(uc *usecase.PackagingUseCase) *PackagingHandler {
	return &PackagingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empaque
// @Description  Nombre único por empresa. initial_cost opcional (los cuatro componentes).
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreatePackagingRequest  true  "Empaque"
// @Success      201   {object}  dto.PackagingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/packaging [post]
func (h *PackagingHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreatePackagingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, packagingNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener empaque
// @Tags         packaging
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PackagingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packaging/{id} [get]
func (h *PackagingHandler) GetByID(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, packagingNotFound)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: packagingNotFound})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empaques
// @Tags         packaging
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PackagingListResponse
// @Router       /api/packaging [get]
func (h *PackagingHandler) List(c *fiber.Ctx) error {
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
// @Summary      Borrar empaque
// @Description  Borra también su historial. 409 si algún ítem lo usa.
// @Tags         packaging
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/packaging/{id} [delete]
func (h *PackagingHandler) Delete(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, packagingNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddCost godoc
// @Summary      Registrar costo de empaque
// @Tags         packaging
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                  true  "ID del empaque"
// @Param        body  body  dto.PackagingCostInput  true  "Componentes y fecha (YYYY-MM-DD)"
// @Success      201   {object}  dto.PackagingCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/packaging/{id}/costs [post]
func (h *PackagingHandler) AddCost(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.PackagingCostInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddCost(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, packagingNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCosts godoc
// @Summary      Historial de costos de empaque
// @Tags         packaging
// @Produce      json
// @Security     Bearer
// @Param        id      path   string  true   "ID del empaque"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.PackagingCostHistoryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/packaging/{id}/costs [get]
func (h *PackagingHandler) ListCosts(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListCosts(c.UserContext(), scope, c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err, packagingNotFound)
	}
	return c.JSON(out)
}

// AddLaborCost godoc
// @Summary      Registrar tarifa de mano de obra
// @Description  Costo por hora vigente desde date (hoy por defecto).
// @Tags         labor-costs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.AddCostRequest  true  "Tarifa y fecha"
// @Success      201   {object}  dto.LaborCostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/labor-costs [post]
func (h *PackagingHandler) AddLaborCost(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.AddCostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddLaborCost(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLaborCosts godoc
// @Summary      Tarifas de mano de obra
// @Tags         labor-costs
// @Produce      json
// @Security     Bearer
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.LaborCostListResponse
// @Router       /api/labor-costs [get]
func (h *PackagingHandler) ListLaborCosts(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListLaborCosts(c.UserContext(), scope, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
