package entity

import "time"

// RawProduct materia prima que la empresa compra (tomate, cebolla, cilantro...).
type RawProduct struct {
	ID        string
	CompanyID string
	Name      string
	NameKey   string // clave normalizada (textnorm.Key); única por empresa
	CreatedAt time.Time
	UpdatedAt time.Time
}
