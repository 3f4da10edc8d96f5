package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawProductRequest entrada para crear una materia prima.
// Si InitialCost viene, se registra en el historial en la misma transacción.
type CreateRawProductRequest struct {
	Name        string           `json:"name"`
	InitialCost *decimal.Decimal `json:"initial_cost"`
	CostDate    string           `json:"cost_date"` // YYYY-MM-DD; por defecto hoy
}

// UpdateRawProductRequest renombrar una materia prima.
type UpdateRawProductRequest struct {
	Name string `json:"name"`
}

// RawProductResponse salida de una materia prima.
type RawProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RawProductListResponse lista paginada de materias primas.
type RawProductListResponse struct {
	Items []RawProductResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// AddCostRequest nuevo costo de mercado observado.
type AddCostRequest struct {
	Cost *decimal.Decimal `json:"cost"`
	Date string           `json:"date"` // YYYY-MM-DD
}

// CostEntryResponse una entrada del historial de costos.
type CostEntryResponse struct {
	ID           string          `json:"id"`
	RawProductID string          `json:"raw_product_id"`
	Cost         decimal.Decimal `json:"cost"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CostHistoryResponse historial paginado (fecha desc).
type CostHistoryResponse struct {
	Items []CostEntryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// MarketCostResponse costo de mercado vigente a una fecha.
type MarketCostResponse struct {
	RawProductID string           `json:"raw_product_id"`
	AsOf         string           `json:"as_of"`
	WindowStart  string           `json:"window_start"`
	WindowEnd    string           `json:"window_end"`
	Found        bool             `json:"found"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Date         *string          `json:"date,omitempty"`
}
