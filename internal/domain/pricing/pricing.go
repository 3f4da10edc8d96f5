// Package pricing compara el precio pagado en una recepción contra el costo de
// mercado vigente (el último CostHistory dentro de la ventana de días).
//
// Es lógica pura: no consulta persistencia. La aplicación trae los candidatos y
// aquí se filtran, se ordenan y se clasifica el resultado.
package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// DefaultWindowDays días hacia atrás desde la fecha de recepción.
const DefaultWindowDays = 30

// Classification resultado de la comparación.
type Classification string

const (
	BelowMarket  Classification = "below_market"
	AboveMarket  Classification = "above_market"
	AtMarket     Classification = "at_market"
	NoPrice      Classification = "no_price"
	NoMarketData Classification = "no_market_data"
)

var hundred = decimal.NewFromInt(100)

// Day trunca a día calendario en UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDay día calendario en el huso propio de t (el del cliente que lo envió),
// expresado como medianoche UTC para compararlo con las fechas del historial.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Límites de un importe en NUMERIC(12,2).
const (
	MaxAmountScale  = 2
	MaxAmountDigits = 10
)

var maxAmount = decimal.New(1, MaxAmountDigits)

// ValidAmount informa si d cabe en la columna: a lo sumo 2 decimales y 10 dígitos enteros.
func ValidAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(MaxAmountScale)) && d.Abs().LessThan(maxAmount)
}

// Window rango de días calendario, ambos extremos incluidos.
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow ventana [asOf - days, asOf] en días calendario.
func NewWindow(asOf time.Time, days int) Window {
	to := Day(asOf)
	return Window{From: to.AddDate(0, 0, -days), To: to}
}

// Contains informa si la fecha cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.From) && !d.After(w.To)
}

// MarketCost costo de mercado seleccionado.
type MarketCost struct {
	EntryID string
	Cost    decimal.Decimal
	Date    time.Time
}

// Candidates filtra las entradas que aplican a la materia prima, la empresa y la ventana,
// ordenadas de la más reciente a la más antigua (fecha desc, id desc).
func Candidates(scope tenant.Scope, rawProductID string, w Window, entries []*entity.CostHistory) []*entity.CostHistory {
	out := make([]*entity.CostHistory, 0, len(entries))
	for _, e := range entries {
		if e == nil || !scope.Owns(e.CompanyID) || e.RawProductID != rawProductID {
			continue
		}
		if !w.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst ordena por fecha desc; empate por id desc (uuid v7 = orden de inserción).
func SortNewestFirst(entries []*entity.CostHistory) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := Day(entries[i].Date), Day(entries[j].Date)
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return entries[i].ID > entries[j].ID
	})
}

// Select toma el primer candidato tras ordenar. ok=false si no hay datos.
func Select(scope tenant.Scope, rawProductID string, w Window, entries []*entity.CostHistory) (MarketCost, bool) {
	c := Candidates(scope, rawProductID, w, entries)
	if len(c) == 0 {
		return MarketCost{}, false
	}
	first := c[0]
	return MarketCost{EntryID: first.ID, Cost: first.Cost, Date: Day(first.Date)}, true
}

// Comparison resultado estructurado. Los punteros nil son "ausente", nunca cero.
type Comparison struct {
	MarketCost     *decimal.Decimal
	MarketCostDate *time.Time
	PricePaid      *decimal.Decimal
	Delta          *decimal.Decimal
	Percentage     *decimal.Decimal // redondeado a 2 decimales
	Classification Classification
}

// Compare clasifica el precio pagado contra el costo de mercado.
//
// Sin precio gana sobre sin mercado: un log sin precio es NoPrice aunque tampoco
// haya costo. Un costo de mercado en cero se reporta como NoMarketData (no se divide).
// AtMarket exige igualdad exacta.
func Compare(pricePaid *decimal.Decimal, market *MarketCost) Comparison {
	var out Comparison
	if market != nil {
		cost := market.Cost
		date := market.Date
		out.MarketCost = &cost
		out.MarketCostDate = &date
	}
	if pricePaid != nil {
		p := *pricePaid
		out.PricePaid = &p
	}

	switch {
	case pricePaid == nil:
		out.Classification = NoPrice
		return out
	case market == nil || market.Cost.Sign() <= 0:
		out.Classification = NoMarketData
		return out
	}

	delta := pricePaid.Sub(market.Cost)
	pct := delta.Div(market.Cost).Mul(hundred).Round(2)
	out.Delta = &delta
	out.Percentage = &pct

	switch delta.Sign() {
	case -1:
		out.Classification = BelowMarket
	case 1:
		out.Classification = AboveMarket
	default:
		out.Classification = AtMarket
	}
	return out
}
