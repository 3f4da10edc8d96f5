package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackagingCostInput los cuatro componentes del costo de un empaque.
type PackagingCostInput struct {
	BoxCost               *decimal.Decimal `json:"box_cost"`
	BagCost               *decimal.Decimal `json:"bag_cost"`
	TrayAndOrChemicalCost *decimal.Decimal `json:"tray_andor_chemical_cost"`
	LabelAndOrTapeCost    *decimal.Decimal `json:"label_andor_tape_cost"`
	Date                  string           `json:"date"` // YYYY-MM-DD
}

// CreatePackagingRequest alta de empaque; InitialCost se registra en la misma transacción.
type CreatePackagingRequest struct {
	Name        string              `json:"name"`
	InitialCost *PackagingCostInput `json:"initial_cost"`
}

// PackagingResponse salida de un empaque.
type PackagingResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PackagingListResponse lista paginada de empaques.
type PackagingListResponse struct {
	Items []PackagingResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PackagingCostResponse una entrada del historial de costos de empaque.
type PackagingCostResponse struct {
	ID                    string          `json:"id"`
	PackagingID           string          `json:"packaging_id"`
	BoxCost               decimal.Decimal `json:"box_cost"`
	BagCost               decimal.Decimal `json:"bag_cost"`
	TrayAndOrChemicalCost decimal.Decimal `json:"tray_andor_chemical_cost"`
	LabelAndOrTapeCost    decimal.Decimal `json:"label_andor_tape_cost"`
	Total                 decimal.Decimal `json:"total"`
	Date                  string          `json:"date"`
	CreatedAt             time.Time       `json:"created_at"`
}

// PackagingCostHistoryResponse historial paginado (fecha desc).
type PackagingCostHistoryResponse struct {
	Items []PackagingCostResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LaborCostResponse una tarifa de mano de obra por hora.
type LaborCostResponse struct {
	ID        string          `json:"id"`
	Cost      decimal.Decimal `json:"cost"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// LaborCostListResponse tarifas paginadas (fecha desc).
type LaborCostListResponse struct {
	Items []LaborCostResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
