package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// CostPoint un costo con su fecha.
type CostPoint struct {
	Cost decimal.Decimal
	Date time.Time
}

// RawPriceSheetRow resultado crudo por materia prima. Lo produce la DB; el use case lo convierte en DTO.
type RawPriceSheetRow struct {
	RawProductID   string
	RawProductName string
	Latest         *CostPoint       // nil si no hay historial
	Previous       *CostPoint       // segunda entrada más reciente
	Average        *decimal.Decimal // promedio de todo el historial
	EntryCount     int
}

// PriceSheetRepository consultas de lectura para la hoja de precios de materia prima.
type PriceSheetRepository interface {
	// GetRawPriceSheet una fila por materia prima de la empresa, ordenadas por nombre.
	GetRawPriceSheet(ctx context.Context, scope tenant.Scope) ([]RawPriceSheetRow, error)
}
