package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawPriceSheetItem fila de la hoja de precios de materia prima.
type RawPriceSheetItem struct {
	RawProductID  string           `json:"raw_product_id"`
	Name          string           `json:"name"`
	LatestCost    *decimal.Decimal `json:"latest_cost"`
	LatestDate    *string          `json:"latest_date"`
	PreviousCost  *decimal.Decimal `json:"previous_cost"`
	PreviousDate  *string          `json:"previous_date"`
	AverageCost   *decimal.Decimal `json:"average_cost"`   // 2 decimales
	Change        *decimal.Decimal `json:"change"`         // latest - previous
	ChangePercent *decimal.Decimal `json:"change_percent"` // sobre previous, 2 decimales
	EntryCount    int              `json:"entry_count"`
}

// RawPriceSheetResponse respuesta de GET /api/raw-price-sheet.
type RawPriceSheetResponse struct {
	CompanyName string              `json:"company_name"`
	GeneratedAt time.Time           `json:"generated_at"`
	Items       []RawPriceSheetItem `json:"items"`
}
