package entity

import "time"

// BrandName marca impresa en la caja recibida.
type BrandName struct {
	ID        string
	CompanyID string
	Name      string
	NameKey   string
	CreatedAt time.Time
}

// Seller quien vende la mercancía (bodega, mayorista).
type Seller struct {
	ID        string
	CompanyID string
	Name      string
	NameKey   string
	CreatedAt time.Time
}

// GrowerOrDistributor productor o distribuidor de origen.
type GrowerOrDistributor struct {
	ID        string
	CompanyID string
	Name      string
	NameKey   string
	City      string
	State     string
	CreatedAt time.Time
}
