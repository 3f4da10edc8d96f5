package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemDesignation línea de venta del ítem.
type ItemDesignation string

const (
	DesignationSnakpak     ItemDesignation = "snakpak"
	DesignationRetail      ItemDesignation = "retail"
	DesignationFoodservice ItemDesignation = "foodservice"
	DesignationCombo       ItemDesignation = "combo"
)

// Valid informa si d es una de las líneas conocidas.
func (d ItemDesignation) Valid() bool {
	switch d {
	case DesignationSnakpak, DesignationRetail, DesignationFoodservice, DesignationCombo:
		return true
	}
	return false
}

// Unidades de peso aceptadas para un ítem.
var UnitsOfWeight = []string{"gram", "kilogram", "pound", "ounce", "pint", "liter"}

// Item producto terminado que se vende: una o varias materias primas en un empaque.
// ProductYield es la fracción aprovechable de la materia prima (0 < y <= 1) y
// LaborHours las horas de mano de obra por caja.
type Item struct {
	ID            string
	CompanyID     string
	Name          string
	Code          string
	AlternateCode string
	UnitOfWeight  string
	Designation   ItemDesignation
	PackagingID   string
	RawProductIDs []string
	CaseWeight    decimal.Decimal
	ProductYield  decimal.Decimal
	LaborHours    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
