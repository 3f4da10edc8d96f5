package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Packaging tipo de empaque con el que se arma un ítem (clamshell 1 lb, bolsa 5 lb...).
type Packaging struct {
	ID        string
	CompanyID string
	Name      string
	NameKey   string // única por empresa
	CreatedAt time.Time
}

// PackagingCost costo de los componentes del empaque en una fecha. Solo se inserta.
type PackagingCost struct {
	ID                    string
	CompanyID             string
	PackagingID           string
	BoxCost               decimal.Decimal
	BagCost               decimal.Decimal
	TrayAndOrChemicalCost decimal.Decimal
	LabelAndOrTapeCost    decimal.Decimal
	Date                  time.Time // día calendario (00:00 UTC)
	CreatedAt             time.Time
}

// Total suma de los cuatro componentes.
func (c *PackagingCost) Total() decimal.Decimal {
	return c.BoxCost.Add(c.BagCost).Add(c.TrayAndOrChemicalCost).Add(c.LabelAndOrTapeCost)
}
