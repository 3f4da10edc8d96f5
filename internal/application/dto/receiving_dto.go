package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceivingLogRequest entrada para registrar una recepción.
type CreateReceivingLogRequest struct {
	RawProductID          string           `json:"raw_product_id"`
	PackSize              *decimal.Decimal `json:"pack_size"`
	PackSizeUnit          string           `json:"pack_size_unit"`
	BrandNameID           string           `json:"brand_name_id"`
	QuantityReceived      *int             `json:"quantity_received"`
	SellerID              string           `json:"seller_id"`
	Temperature           *decimal.Decimal `json:"temperature"`
	HoldOrUsed            string           `json:"hold_or_used"` // hold | used
	GrowerOrDistributorID string           `json:"grower_or_distributor_id"`
	CountryOfOrigin       string           `json:"country_of_origin"`
	ReceivedBy            string           `json:"received_by"`
	Returned              string           `json:"returned"`
	ReceivedAt            *time.Time       `json:"received_at"` // RFC 3339; por defecto ahora
	PricePaid             *decimal.Decimal `json:"price_paid"`
}

// UpdatePriceRequest fija el precio pagado; null (o ausente) lo borra.
type UpdatePriceRequest struct {
	PricePaid *decimal.Decimal `json:"price_paid"`
}

// PriceComparisonResponse comparación contra el costo de mercado. Campos ausentes = sin dato.
type PriceComparisonResponse struct {
	MarketCost     *decimal.Decimal `json:"market_cost"`
	MarketCostDate *string          `json:"market_cost_date"`
	PricePaid      *decimal.Decimal `json:"price_paid"`
	Delta          *decimal.Decimal `json:"delta"`
	Percentage     *decimal.Decimal `json:"percentage"`
	Classification string           `json:"classification"`
}

// ReceivingLogResponse log de recepción con nombres resueltos.
type ReceivingLogResponse struct {
	ID                      string                   `json:"id"`
	RawProductID            string                   `json:"raw_product_id"`
	RawProductName          string                   `json:"raw_product_name"`
	PackSize                decimal.Decimal          `json:"pack_size"`
	PackSizeUnit            string                   `json:"pack_size_unit"`
	BrandNameID             string                   `json:"brand_name_id"`
	BrandName               string                   `json:"brand_name"`
	QuantityReceived        int                      `json:"quantity_received"`
	SellerID                string                   `json:"seller_id"`
	SellerName              string                   `json:"seller_name"`
	Temperature             *decimal.Decimal         `json:"temperature"`
	HoldOrUsed              string                   `json:"hold_or_used"`
	GrowerOrDistributorID   string                   `json:"grower_or_distributor_id"`
	GrowerOrDistributorName string                   `json:"grower_or_distributor_name"`
	CountryOfOrigin         string                   `json:"country_of_origin"`
	ReceivedBy              string                   `json:"received_by"`
	Returned                string                   `json:"returned"`
	ReceivedAt              time.Time                `json:"received_at"`
	PricePaid               *decimal.Decimal         `json:"price_paid"`
	PriceComparison         *PriceComparisonResponse `json:"price_comparison,omitempty"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

// ReceivingLogListResponse lista paginada (más recientes primero).
type ReceivingLogListResponse struct {
	Items []ReceivingLogResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// DebugCostEntry entrada del historial vista desde la fecha del log.
type DebugCostEntry struct {
	ID            string          `json:"id"`
	Cost          decimal.Decimal `json:"cost"`
	Date          string          `json:"date"`
	DaysBeforeLog *int            `json:"days_before_log,omitempty"`
}

// PriceComparisonDebugResponse explica por qué un log obtuvo su clasificación.
type PriceComparisonDebugResponse struct {
	LogID               string                  `json:"log_id"`
	RawProductID        string                  `json:"raw_product_id"`
	RawProductName      string                  `json:"raw_product_name"`
	PricePaid           *decimal.Decimal        `json:"price_paid"`
	LogDate             string                  `json:"log_date"`
	SearchWindowStart   string                  `json:"search_window_start"`
	SearchWindowEnd     string                  `json:"search_window_end"`
	AllCostHistory      []DebugCostEntry        `json:"all_cost_history"`      // últimas 10
	RelevantCostHistory []DebugCostEntry        `json:"relevant_cost_history"` // dentro de la ventana
	MarketCostUsed      *decimal.Decimal        `json:"market_cost_used"`
	MarketCostDate      *string                 `json:"market_cost_date"`
	Comparison          PriceComparisonResponse `json:"comparison"`
}
