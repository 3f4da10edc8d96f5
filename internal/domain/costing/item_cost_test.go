package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/producepricer-api/internal/domain/costing"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func packaging() *entity.PackagingCost {
	return &entity.PackagingCost{BoxCost: d("1.10"), BagCost: d("0.25"), TrayAndOrChemicalCost: d("0.40"), LabelAndOrTapeCost: d("0.05")}
}

func TestItemCost_SumaComponentes(t *testing.T) {
	rate := d("18.50")
	got := costing.ItemCost(costing.Inputs{
		Designation:  entity.DesignationRetail,
		CaseWeight:   d("10"),
		ProductYield: d("0.8"),
		LaborHours:   d("0.25"),
		RawCosts:     []decimal.Decimal{d("1.20")},
		Packaging:    packaging(),
		LaborRate:    &rate,
	})

	// 1.20 / 0.8 × 10 = 15.00; empaque 1.80; 0.25 × 18.50 = 4.625 → 4.63
	assert.True(t, d("15").Equal(got.RawProduct), got.RawProduct.String())
	assert.True(t, d("1.80").Equal(got.Packaging), got.Packaging.String())
	assert.True(t, d("4.63").Equal(got.Labor), got.Labor.String())
	assert.True(t, d("21.43").Equal(got.Total), got.Total.String())
	assert.Empty(t, got.Missing)
}

func TestItemCost_ComboPromedia(t *testing.T) {
	costs := []decimal.Decimal{d("2"), d("4")}

	retail := costing.RawProductCost(entity.DesignationRetail, d("5"), d("1"), costs)
	combo := costing.RawProductCost(entity.DesignationCombo, d("5"), d("1"), costs)

	assert.True(t, d("30").Equal(retail), retail.String())
	assert.True(t, d("15").Equal(combo), combo.String())
}

func TestItemCost_RendimientoCeroSeTomaComoUno(t *testing.T) {
	got := costing.RawProductCost(entity.DesignationFoodservice, d("3"), decimal.Zero, []decimal.Decimal{d("2.5")})
	assert.True(t, d("7.5").Equal(got), got.String())
}

func TestItemCost_SinDatosMarcaFaltantes(t *testing.T) {
	got := costing.ItemCost(costing.Inputs{
		Designation: entity.DesignationRetail,
		CaseWeight:  d("10"),
		LaborHours:  d("1"),
	})
	assert.True(t, got.Total.IsZero())
	assert.Equal(t, []string{
		costing.MissingRawProductCost, costing.MissingPackagingCost, costing.MissingLaborCost,
	}, got.Missing)

	got = costing.ItemCost(costing.Inputs{
		Designation: entity.DesignationRetail,
		CaseWeight:  d("1"),
		Packaging:   packaging(),
	})
	assert.True(t, d("1.80").Equal(got.Total), got.Total.String())
	assert.Equal(t, []string{costing.MissingRawProductCost, costing.MissingLaborCost}, got.Missing)
}
