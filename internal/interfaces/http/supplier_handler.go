package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

// SupplierHandler marcas, vendedores y productores/distribuidores.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// CreateBrand godoc
// @Summary      Crear marca
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateSupplierRequest  true  "Nombre"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brand-names [post]
func (h *SupplierHandler) CreateBrand(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBrand(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "marca no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBrands godoc
// @Summary      Listar marcas
// @Tags         suppliers
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/brand-names [get]
func (h *SupplierHandler) ListBrands(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListBrands(c.UserContext(), scope, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// DeleteBrand godoc
// @Summary      Borrar marca
// @Description  409 si la marca tiene recepciones.
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/brand-names/{id} [delete]
func (h *SupplierHandler) DeleteBrand(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.DeleteBrand(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, "marca no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Vendedores ────────────────────────────────────────────────────────────────

// CreateSeller godoc
// @Summary      Crear vendedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateSupplierRequest  true  "Nombre"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sellers [post]
func (h *SupplierHandler) CreateSeller(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSeller(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "vendedor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSellers godoc
// @Summary      Listar vendedores
// @Tags         suppliers
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/sellers [get]
func (h *SupplierHandler) ListSellers(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListSellers(c.UserContext(), scope, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// DeleteSeller godoc
// @Summary      Borrar vendedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sellers/{id} [delete]
func (h *SupplierHandler) DeleteSeller(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.DeleteSeller(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, "vendedor no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Productores / distribuidores ──────────────────────────────────────────────

// CreateGrower godoc
// @Summary      Crear productor/distribuidor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateGrowerRequest  true  "Nombre, ciudad y estado"
// @Success      201   {object}  dto.GrowerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/growers-distributors [post]
func (h *SupplierHandler) CreateGrower(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateGrowerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateGrower(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, "productor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGrowers godoc
// @Summary      Listar productores/distribuidores
// @Tags         suppliers
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda por nombre, ciudad o estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.GrowerListResponse
// @Router       /api/growers-distributors [get]
func (h *SupplierHandler) ListGrowers(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.ListGrowers(c.UserContext(), scope, pageFromQuery(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// DeleteGrower godoc
// @Summary      Borrar productor/distribuidor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/growers-distributors/{id} [delete]
func (h *SupplierHandler) DeleteGrower(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := h.uc.DeleteGrower(c.UserContext(), scope, c.Params("id")); err != nil {
		return writeError(c, err, "productor no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
