package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest alta o edición completa de un ítem.
type ItemRequest struct {
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	AlternateCode string           `json:"alternate_code"`
	UnitOfWeight  string           `json:"unit_of_weight"`
	Designation   string           `json:"item_designation"` // snakpak | retail | foodservice | combo; por defecto foodservice
	PackagingID   string           `json:"packaging_id"`
	RawProductIDs []string         `json:"raw_product_ids"`
	CaseWeight    *decimal.Decimal `json:"case_weight"`
	ProductYield  *decimal.Decimal `json:"product_yield"` // 0 < y <= 1; por defecto 1
	LaborHours    *decimal.Decimal `json:"labor_hours"`   // por defecto 0
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	AlternateCode string          `json:"alternate_code,omitempty"`
	UnitOfWeight  string          `json:"unit_of_weight"`
	Designation   string          `json:"item_designation"`
	PackagingID   string          `json:"packaging_id"`
	RawProductIDs []string        `json:"raw_product_ids"`
	CaseWeight    decimal.Decimal `json:"case_weight"`
	ProductYield  decimal.Decimal `json:"product_yield"`
	LaborHours    decimal.Decimal `json:"labor_hours"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemCostResponse desglose del costo total de un ítem a una fecha.
type ItemCostResponse struct {
	ItemID          string          `json:"item_id"`
	AsOf            string          `json:"as_of"`
	RawProductCost  decimal.Decimal `json:"raw_product_cost"`
	PackagingCost   decimal.Decimal `json:"packaging_cost"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	RawProductsUsed int             `json:"raw_products_used"`
	Missing         []string        `json:"missing"`
}
