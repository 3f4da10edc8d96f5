// Package costing calcula el costo total de un ítem a partir de sus insumos
// (servicio de dominio, sin persistencia).
//
// Total = materia prima + empaque + mano de obra, donde
//
//	materia prima = Σ (costo / rendimiento) × peso de caja   (promedio si el ítem es combo)
//	empaque       = caja + bolsa + bandeja/químico + etiqueta/cinta
//	mano de obra  = horas por caja × tarifa por hora
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
)

// Insumos que pueden faltar al calcular.
const (
	MissingRawProductCost = "raw_product_cost"
	MissingPackagingCost  = "packaging_cost"
	MissingLaborCost      = "labor_cost"
)

// Inputs últimos costos conocidos para el ítem. RawCosts trae solo las materias primas
// que tienen costo; nil en Packaging o LaborRate indica que no hay dato.
type Inputs struct {
	Designation  entity.ItemDesignation
	CaseWeight   decimal.Decimal
	ProductYield decimal.Decimal
	LaborHours   decimal.Decimal
	RawCosts     []decimal.Decimal
	Packaging    *entity.PackagingCost
	LaborRate    *decimal.Decimal
}

// Breakdown costo por componente, redondeado a centavos. Total es la suma de los componentes.
type Breakdown struct {
	RawProduct decimal.Decimal
	Packaging  decimal.Decimal
	Labor      decimal.Decimal
	Total      decimal.Decimal
	Missing    []string
}

// ItemCost aplica la fórmula. Un componente sin datos vale cero y se anota en Missing.
func ItemCost(in Inputs) Breakdown {
	var out Breakdown

	out.RawProduct = RawProductCost(in.Designation, in.CaseWeight, in.ProductYield, in.RawCosts).Round(2)
	if len(in.RawCosts) == 0 {
		out.Missing = append(out.Missing, MissingRawProductCost)
	}

	if in.Packaging != nil {
		out.Packaging = in.Packaging.Total().Round(2)
	} else {
		out.Missing = append(out.Missing, MissingPackagingCost)
	}

	if in.LaborRate != nil {
		out.Labor = in.LaborHours.Mul(*in.LaborRate).Round(2)
	} else {
		out.Missing = append(out.Missing, MissingLaborCost)
	}

	out.Total = out.RawProduct.Add(out.Packaging).Add(out.Labor)
	return out
}

// RawProductCost costo de materia prima por caja sin redondear. Un rendimiento <= 0 se toma como 1.
func RawProductCost(designation entity.ItemDesignation, caseWeight, productYield decimal.Decimal, costs []decimal.Decimal) decimal.Decimal {
	if len(costs) == 0 {
		return decimal.Zero
	}
	if !productYield.IsPositive() {
		productYield = decimal.NewFromInt(1)
	}
	sum := decimal.Zero
	for _, c := range costs {
		sum = sum.Add(c.Div(productYield).Mul(caseWeight))
	}
	if designation == entity.DesignationCombo {
		return sum.Div(decimal.NewFromInt(int64(len(costs))))
	}
	return sum
}
