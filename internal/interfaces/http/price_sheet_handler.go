package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
)

// PriceSheetHandler hoja de precios de materia prima (JSON y PDF).
type PriceSheetHandler struct {
	uc *analytics.PriceSheetUseCase
}

// NewPriceSheetHandler construye el handler.
func NewPriceSheetHandler(uc *analytics.PriceSheetUseCase) *PriceSheetHandler {
	return &PriceSheetHandler{uc: uc}
}

// Get godoc
// @Summary      Hoja de precios de materia prima
// @Description  Último y penúltimo costo, promedio y variación por materia prima.
// @Tags         price-sheet
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.RawPriceSheetResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-price-sheet [get]
func (h *PriceSheetHandler) Get(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	out, err := h.uc.GetRawPriceSheet(c.UserContext(), scope)
	if err != nil {
		return writeError(c, err, "empresa no encontrada")
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Hoja de precios en PDF
// @Tags         price-sheet
// @Produce      application/pdf
// @Security     Bearer
// @Param        hide_previous  query  bool  false  "Ocultar columnas del costo anterior"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-price-sheet/pdf [get]
func (h *PriceSheetHandler) DownloadPDF(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return unauthorized(c)
	}
	pdf, filename, err := h.uc.DownloadPDF(c.UserContext(), scope, c.QueryBool("hide_previous", false))
	if err != nil {
		return writeError(c, err, "empresa no encontrada")
	}
	return sendPDF(c, pdf, filename)
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
