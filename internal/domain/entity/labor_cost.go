package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborCost tarifa de mano de obra por hora de la empresa, vigente desde Date. Solo se inserta.
type LaborCost struct {
	ID        string
	CompanyID string
	Cost      decimal.Decimal
	Date      time.Time // día calendario (00:00 UTC)
	CreatedAt time.Time
}
