package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Destino de la mercancía recibida.
const (
	ReceivingHold = "hold"
	ReceivingUsed = "used"
)

// ReceivingLog registro de una recepción real de materia prima.
// PricePaid es por unidad de PackSize y puede corregirse o borrarse después.
type ReceivingLog struct {
	ID                    string
	CompanyID             string
	RawProductID          string
	PackSize              decimal.Decimal
	PackSizeUnit          string // lb, count...
	BrandNameID           string
	QuantityReceived      int
	SellerID              string
	Temperature           *decimal.Decimal
	HoldOrUsed            string // hold | used
	GrowerOrDistributorID string
	CountryOfOrigin       string
	ReceivedBy            string
	Returned              string // normalmente vacío; si no, quién devolvió
	ReceivedAt            time.Time
	ReceivedOn            time.Time // día calendario en el huso del cliente; define la ventana de mercado
	PricePaid             *decimal.Decimal // nil = sin precio
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ReceiptDay día usado para buscar el costo de mercado. Los registros sin ReceivedOn
// caen al día UTC de ReceivedAt.
func (l *ReceivingLog) ReceiptDay() time.Time {
	if !l.ReceivedOn.IsZero() {
		y, m, d := l.ReceivedOn.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	y, m, d := l.ReceivedAt.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReceivingLogDetail log con los nombres de sus referencias resueltos (listados, PDF).
type ReceivingLogDetail struct {
	ReceivingLog
	RawProductName          string
	BrandName               string
	SellerName              string
	GrowerOrDistributorName string
}
