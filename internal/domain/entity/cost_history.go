package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostHistory costo de mercado observado para una materia prima en una fecha.
// Solo se inserta; nunca se actualiza.
type CostHistory struct {
	ID           string // uuid v7: el orden lexicográfico es el de inserción
	CompanyID    string // debe coincidir con el de la materia prima
	RawProductID string
	Cost         decimal.Decimal
	Date         time.Time // día calendario (00:00 UTC)
	CreatedAt    time.Time
}
