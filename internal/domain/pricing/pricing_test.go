package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var (
	companyA = tenant.Scope{CompanyID: "company-a"}
	companyB = tenant.Scope{CompanyID: "company-b"}
	asOf     = time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC)
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func entry(id, company, product, cost string, date time.Time) *entity.CostHistory {
	return &entity.CostHistory{ID: id, CompanyID: company, RawProductID: product, Cost: d(cost), Date: date}
}

func daysBefore(n int) time.Time { return pricing.Day(asOf).AddDate(0, 0, -n) }

func TestSelect_SinHistorial(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	_, ok := pricing.Select(companyA, "rp-1", w, nil)
	assert.False(t, ok)

	for _, ref := range []time.Time{asOf, asOf.AddDate(-1, 0, 0), asOf.AddDate(1, 0, 0)} {
		_, ok := pricing.Select(companyA, "rp-1", pricing.NewWindow(ref, pricing.DefaultWindowDays), []*entity.CostHistory{})
		assert.False(t, ok)
	}
}

func TestSelect_Limite30Y31Dias(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)

	_, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-1", "5", daysBefore(31)),
	})
	assert.False(t, ok, "31 días antes queda fuera")

	got, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-1", "5", daysBefore(30)),
	})
	require.True(t, ok, "30 días antes entra (límite inclusivo)")
	assert.True(t, d("5").Equal(got.Cost))
}

func TestSelect_NoUsaFechasFuturas(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	got, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-1", "5", daysBefore(3)),
		entry("02", "company-a", "rp-1", "9", daysBefore(-1)),
	})
	require.True(t, ok)
	assert.True(t, d("5").Equal(got.Cost))
}

func TestSelect_MismaFechaDeRecepcionIncluida(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	got, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-1", "7.25", pricing.Day(asOf)),
	})
	require.True(t, ok)
	assert.Equal(t, pricing.Day(asOf), got.Date)
}

func TestSelect_GanaFechaMasReciente(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	got, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("09", "company-a", "rp-1", "4", daysBefore(10)),
		entry("01", "company-a", "rp-1", "6", daysBefore(2)),
	})
	require.True(t, ok)
	assert.True(t, d("6").Equal(got.Cost))
	assert.Equal(t, "01", got.EntryID)
}

func TestSelect_EmpateDesempataPorID(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	entries := []*entity.CostHistory{
		entry("0190a000-0000-7000-8000-000000000001", "company-a", "rp-1", "4", daysBefore(1)),
		entry("0190a000-0000-7000-8000-000000000003", "company-a", "rp-1", "6", daysBefore(1)),
		entry("0190a000-0000-7000-8000-000000000002", "company-a", "rp-1", "5", daysBefore(1)),
	}
	for i := 0; i < 3; i++ {
		got, ok := pricing.Select(companyA, "rp-1", w, entries)
		require.True(t, ok)
		assert.True(t, d("6").Equal(got.Cost), "debe ser determinista")
		entries = append(entries[1:], entries[0])
	}
}

func TestSelect_AislamientoPorEmpresa(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	entries := []*entity.CostHistory{
		entry("02", "company-b", "rp-1", "99", daysBefore(1)),
		entry("01", "company-a", "rp-1", "5", daysBefore(5)),
	}

	got, ok := pricing.Select(companyA, "rp-1", w, entries)
	require.True(t, ok)
	assert.True(t, d("5").Equal(got.Cost))

	_, ok = pricing.Select(companyA, "rp-1", w, entries[:1])
	assert.False(t, ok, "un costo de otra empresa nunca se selecciona")

	got, ok = pricing.Select(companyB, "rp-1", w, entries)
	require.True(t, ok)
	assert.True(t, d("99").Equal(got.Cost))
}

func TestSelect_IgnoraOtraMateriaPrima(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	_, ok := pricing.Select(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-2", "5", daysBefore(1)),
	})
	assert.False(t, ok)
}

func TestCandidates_OrdenDescendente(t *testing.T) {
	w := pricing.NewWindow(asOf, pricing.DefaultWindowDays)
	got := pricing.Candidates(companyA, "rp-1", w, []*entity.CostHistory{
		entry("01", "company-a", "rp-1", "1", daysBefore(20)),
		entry("02", "company-a", "rp-1", "2", daysBefore(0)),
		entry("03", "company-a", "rp-1", "3", daysBefore(40)),
		entry("04", "company-a", "rp-1", "4", daysBefore(20)),
	})
	require.Len(t, got, 3)
	assert.Equal(t, "02", got[0].ID)
	assert.Equal(t, "04", got[1].ID)
	assert.Equal(t, "01", got[2].ID)
}

func TestCompare_SobreMercado(t *testing.T) {
	mc := &pricing.MarketCost{Cost: d("8"), Date: daysBefore(1)}
	c := pricing.Compare(ptr("10"), mc)

	assert.Equal(t, pricing.AboveMarket, c.Classification)
	require.NotNil(t, c.Delta)
	require.NotNil(t, c.Percentage)
	assert.True(t, d("2").Equal(*c.Delta))
	assert.True(t, d("25").Equal(*c.Percentage))
	require.NotNil(t, c.MarketCost)
	assert.True(t, d("8").Equal(*c.MarketCost))
}

func TestCompare_EnMercado(t *testing.T) {
	c := pricing.Compare(ptr("8"), &pricing.MarketCost{Cost: d("8")})
	assert.Equal(t, pricing.AtMarket, c.Classification)
	require.NotNil(t, c.Delta)
	assert.True(t, c.Delta.IsZero())
}

func TestCompare_BajoMercado(t *testing.T) {
	c := pricing.Compare(ptr("6"), &pricing.MarketCost{Cost: d("8")})
	assert.Equal(t, pricing.BelowMarket, c.Classification)
	assert.True(t, d("-2").Equal(*c.Delta))
	assert.True(t, d("-25").Equal(*c.Percentage))
}

func TestCompare_IgualdadExacta(t *testing.T) {
	c := pricing.Compare(ptr("8.001"), &pricing.MarketCost{Cost: d("8")})
	assert.Equal(t, pricing.AboveMarket, c.Classification, "sin tolerancia")
}

func TestCompare_PorcentajeRedondeado(t *testing.T) {
	c := pricing.Compare(ptr("10"), &pricing.MarketCost{Cost: d("3")})
	assert.Equal(t, "233.33", c.Percentage.StringFixed(2))
}

func TestCompare_SinPrecio(t *testing.T) {
	withMarket := pricing.Compare(nil, &pricing.MarketCost{Cost: d("8"), Date: daysBefore(1)})
	assert.Equal(t, pricing.NoPrice, withMarket.Classification)
	require.NotNil(t, withMarket.MarketCost, "el costo de mercado se reporta igual")
	assert.Nil(t, withMarket.Delta)
	assert.Nil(t, withMarket.Percentage)

	withoutMarket := pricing.Compare(nil, nil)
	assert.Equal(t, pricing.NoPrice, withoutMarket.Classification)
	assert.Nil(t, withoutMarket.MarketCost)
}

func TestCompare_SinDatosDeMercado(t *testing.T) {
	c := pricing.Compare(ptr("10"), nil)
	assert.Equal(t, pricing.NoMarketData, c.Classification)
	assert.Nil(t, c.Delta)
	assert.Nil(t, c.Percentage)
	assert.Nil(t, c.MarketCost)
	require.NotNil(t, c.PricePaid)
}

func TestCompare_CostoCero(t *testing.T) {
	c := pricing.Compare(ptr("10"), &pricing.MarketCost{Cost: decimal.Zero})
	assert.Equal(t, pricing.NoMarketData, c.Classification)
	assert.Nil(t, c.Delta)
	assert.Nil(t, c.Percentage)
	require.NotNil(t, c.MarketCost)
}

func TestWindow_Contains(t *testing.T) {
	w := pricing.NewWindow(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), 30)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), w.From)
	assert.True(t, w.Contains(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 1, 30, 23, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestCalendarDay_RespetaHusoDelCliente(t *testing.T) {
	bogota := time.FixedZone("-05:00", -5*60*60)
	t1 := time.Date(2026, 10, 18, 22, 0, 0, 0, bogota)

	assert.Equal(t, "2026-10-18", pricing.CalendarDay(t1).Format("2006-01-02"))
	assert.Equal(t, "2026-10-19", pricing.Day(t1).Format("2006-01-02"), "en UTC ya es el día siguiente")
	assert.Equal(t, time.UTC, pricing.CalendarDay(t1).Location())
}

func TestValidAmount(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0", true},
		{"12.5", true},
		{"12.50", true},
		{"9999999999.99", true},
		{"-3.25", true},
		{"1.005", false},
		{"0.001", false},
		{"10000000000", false},
		{"-10000000000.00", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, pricing.ValidAmount(d(c.in)), c.in)
	}
}
