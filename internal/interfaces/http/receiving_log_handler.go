package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/application/receiving"
)

const receivingNotFound = "log de recepción no encontrado"

// ReceivingLogHandler logs de recepción y su comparación contra el costo de mercado.
type ReceivingLogHandler struct {
	uc      *receiving.UseCase
	pricing *pricing.UseCase
	pdf     *receiving.PDFUseCase
}

// NewReceivingLogHandler construye el handler.
func NewReceivingLogHandler(uc *receiving.UseCase, pricingUC *pricing.UseCase, pdf *receiving.PDFUseCase) *ReceivingLogHandler {
	return &ReceivingLogHandler{uc: uc, pricing: pricingUC, pdf: pdf}
}

// Create godoc
// @Summary      Registrar recepción
// @Description  Todas las referencias deben pertenecer a la empresa. La respuesta incluye la comparación de precio.
// @Tags         receiving-logs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateReceivingLogRequest  true  "Recepción"
// @Success      201   {object}  dto.ReceivingLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receiving-logs [post]
func (h *ReceivingLogHandler) Create(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.CreateReceivingLogRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), scope, in)
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recepción
// @Tags         receiving-logs
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ReceivingLogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving-logs/{id} [get]
func (h *ReceivingLogHandler) GetByID(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recepciones
// @Description  Más recientes primero. q busca en materia prima, recibido por y país.
// @Tags         receiving-logs
// @Produce      json
// @Security     Bearer
// @Param        q       query  string  false  "Búsqueda"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ReceivingLogListResponse
// @Router       /api/receiving-logs [get]
func (h *ReceivingLogHandler) List(c *fiber.Ctx) error {
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

// UpdatePrice godoc
// @Summary      Corregir precio pagado
// @Description  price_paid null borra el precio.
// @Tags         receiving-logs
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                  true  "ID"
// @Param        body  body  dto.UpdatePriceRequest  true  "Precio"
// @Success      200   {object}  dto.ReceivingLogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receiving-logs/{id}/price [patch]
func (h *ReceivingLogHandler) UpdatePrice(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdatePrice(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return c.JSON(out)
}

// PriceComparison godoc
// @Summary      Comparación de precio
// @Tags         receiving-logs
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PriceComparisonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving-logs/{id}/price-comparison [get]
func (h *ReceivingLogHandler) PriceComparison(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.pricing.GetPriceComparison(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return c.JSON(out)
}

// PriceComparisonDebug godoc
// @Summary      Diagnóstico de la comparación
// @Description  Ventana de búsqueda, historial reciente, candidatas y costo usado.
// @Tags         receiving-logs
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PriceComparisonDebugResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving-logs/{id}/price-comparison/debug [get]
func (h *ReceivingLogHandler) PriceComparisonDebug(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.pricing.Debug(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Comprobante de recepción en PDF
// @Tags         receiving-logs
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receiving-logs/{id}/pdf [get]
func (h *ReceivingLogHandler) DownloadPDF(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	pdf, filename, err := h.pdf.Download(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err, receivingNotFound)
	}
	return sendPDF(c, pdf, filename)
}
