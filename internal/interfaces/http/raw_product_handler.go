package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

const rawProductNotFound = "materia prima no encontrada"

// RawProductHandler materias primas, historial de costos y costo de mercado.
type RawProductHandler struct {
	uc      *usecase.RawProductUseCase
	pricing *pricing.UseCase
}

// NewRawProductHandler construye el handler.
func NewRawProductHandler(uc *usecase.RawProductUseCase, pricingUC *pricing.UseCase) *RawProductHandler {
	return &RawProductHandler{uc: uc, pricing: pricingUC}
}

// Create godoc
// @Summary      Crear materia prima
// @Description  El nombre es único por empresa (sin distinguir mayúsculas ni tildes). initial_cost opcional.
// @Tags         raw-products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateRawProductRequest  true  "Materia prima"
// @Success      201   {object}  dto.RawProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-products [post]
func (h *RawProductHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateRawProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener materia prima
// @Tags         raw-products
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RawProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-products/{id} [get]
func (h *RawProductHandler) GetByID(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: rawProductNotFound})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar materia prima
// @Tags         raw-products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                       true  "ID"
// @Param        body  body  dto.UpdateRawProductRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.RawProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-products/{id} [put]
func (h *RawProductHandler) Update(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.UpdateRawProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materias primas
// @Tags         raw-products
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RawProductListResponse
// @Router       /api/raw-products [get]
func (h *RawProductHandler) List(c *fiber.Ctx) error {
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

// AddCost godoc
// @Summary      Registrar costo de mercado
// @Description  Agrega una entrada al historial (no se editan ni se borran).
// @Tags         raw-products
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string              true  "ID de la materia prima"
// @Param        body  body  dto.AddCostRequest  true  "Costo y fecha (YYYY-MM-DD)"
// @Success      201   {object}  dto.CostEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-products/{id}/costs [post]
func (h *RawProductHandler) AddCost(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.AddCostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddCost(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCosts godoc
// @Summary      Historial de costos
// @Tags         raw-products
// @Produce      json
// @Security     Bearer
// @Param        id      path   string  true   "ID de la materia prima"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CostHistoryResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/raw-products/{id}/costs [get]
func (h *RawProductHandler) ListCosts(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListCosts(c.UserContext(), scope, c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	return c.JSON(out)
}

// MarketCost godoc
// @Summary      Costo de mercado vigente
// @Description  Entrada más reciente dentro de la ventana que termina en as_of (hoy por defecto).
// @Tags         raw-products
// @Produce      json
// @Security     Bearer
// @Param        id     path   string  true   "ID de la materia prima"
// @Param        as_of  query  string  false  "Fecha YYYY-MM-DD"
// @Success      200    {object}  dto.MarketCostResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/raw-products/{id}/market-cost [get]
func (h *RawProductHandler) MarketCost(c *fiber.Ctx) error {
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
	out, err := h.pricing.GetMarketCost(c.UserContext(), scope, c.Params("id"), asOf)
	if err != nil {
		return writeError(c, err, rawProductNotFound)
	}
	return c.JSON(out)
}
