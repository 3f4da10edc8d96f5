// Package pricing contiene los casos de uso de costo de mercado y comparación de precios
// de recepción. La selección y la clasificación viven en domain/pricing; aquí se traen
// los datos del tenant y se arma la respuesta.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	domainpricing "github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/logger"
)

// debugHistoryLimit entradas del historial completo que muestra la vista de diagnóstico.
const debugHistoryLimit = 10

// UseCase evalúa el costo de mercado vigente y la comparación de un log de recepción.
// Solo lectura.
type UseCase struct {
	costs       repository.CostHistoryRepository
	logs        repository.ReceivingLogRepository
	rawProducts repository.RawProductRepository
	windowDays  int
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. windowDays <= 0 usa la ventana por defecto (30).
func NewUseCase(
	costs repository.CostHistoryRepository,
	logs repository.ReceivingLogRepository,
	rawProducts repository.RawProductRepository,
	windowDays int,
	log *logger.Logger,
) *UseCase {
	if windowDays <= 0 {
		windowDays = domainpricing.DefaultWindowDays
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		costs:       costs,
		logs:        logs,
		rawProducts: rawProducts,
		windowDays:  windowDays,
		log:         log.Component("pricing"),
	}
}

// WindowDays ventana configurada.
func (uc *UseCase) WindowDays() int { return uc.windowDays }

// GetMasterCustomerPrice costo de mercado vigente a asOf: la entrada más reciente de la
// materia prima en la empresa dentro de [asOf - ventana, asOf]. nil si no hay datos.
func (uc *UseCase) GetMasterCustomerPrice(
	ctx context.Context,
	scope tenant.Scope,
	rawProductID string,
	asOf time.Time,
) (*domainpricing.MarketCost, error) {
	if !scope.Valid() {
		return nil, domain.ErrMissingTenant
	}
	w := domainpricing.NewWindow(asOf, uc.windowDays)
	entries, err := uc.costs.ListInWindow(ctx, scope, rawProductID, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("pricing: historial en ventana: %w", err)
	}
	mc, ok := domainpricing.Select(scope, rawProductID, w, entries)

	ev := uc.log.Debug().
		Str("company_id", scope.CompanyID).
		Str("raw_product_id", rawProductID).
		Str("window_start", w.From.Format(dto.DateLayout)).
		Str("window_end", w.To.Format(dto.DateLayout)).
		Int("candidates", len(entries)).
		Bool("found", ok)
	if ok {
		ev = ev.Str("entry_id", mc.EntryID).Str("cost", mc.Cost.String())
	}
	ev.Msg("costo de mercado evaluado")

	if !ok {
		return nil, nil
	}
	return &mc, nil
}

// Compare compara un log ya cargado. Un log de otra empresa es domain.ErrNotFound.
func (uc *UseCase) Compare(ctx context.Context, scope tenant.Scope, l *entity.ReceivingLog) (domainpricing.Comparison, error) {
	if l == nil || !scope.Owns(l.CompanyID) {
		return domainpricing.Comparison{}, domain.ErrNotFound
	}
	mc, err := uc.GetMasterCustomerPrice(ctx, scope, l.RawProductID, l.ReceiptDay())
	if err != nil {
		return domainpricing.Comparison{}, err
	}
	return domainpricing.Compare(l.PricePaid, mc), nil
}

// GetPriceComparison carga el log y devuelve su comparación.
func (uc *UseCase) GetPriceComparison(ctx context.Context, scope tenant.Scope, logID string) (*dto.PriceComparisonResponse, error) {
	l, err := uc.logs.GetByID(ctx, scope, logID)
	if err != nil {
		return nil, fmt.Errorf("pricing: obtener log: %w", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.Compare(ctx, scope, &l.ReceivingLog)
	if err != nil {
		return nil, err
	}
	out := ComparisonToResponse(c)
	return &out, nil
}

// GetMarketCost costo de mercado de una materia prima a una fecha (hoy si asOf es cero).
func (uc *UseCase) GetMarketCost(ctx context.Context, scope tenant.Scope, rawProductID string, asOf time.Time) (*dto.MarketCostResponse, error) {
	rp, err := uc.rawProducts.GetByID(ctx, scope, rawProductID)
	if err != nil {
		return nil, fmt.Errorf("pricing: obtener materia prima: %w", err)
	}
	if rp == nil {
		return nil, domain.ErrNotFound
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}
	mc, err := uc.GetMasterCustomerPrice(ctx, scope, rp.ID, asOf)
	if err != nil {
		return nil, err
	}
	w := domainpricing.NewWindow(asOf, uc.windowDays)
	out := &dto.MarketCostResponse{
		RawProductID: rp.ID,
		AsOf:         domainpricing.Day(asOf).Format(dto.DateLayout),
		WindowStart:  w.From.Format(dto.DateLayout),
		WindowEnd:    w.To.Format(dto.DateLayout),
	}
	if mc != nil {
		cost := mc.Cost
		date := mc.Date.Format(dto.DateLayout)
		out.Found = true
		out.Cost = &cost
		out.Date = &date
	}
	return out, nil
}

// Debug explica la clasificación de un log: ventana, últimas entradas del historial,
// candidatas con sus días de antigüedad y el costo finalmente usado.
func (uc *UseCase) Debug(ctx context.Context, scope tenant.Scope, logID string) (*dto.PriceComparisonDebugResponse, error) {
	l, err := uc.logs.GetByID(ctx, scope, logID)
	if err != nil {
		return nil, fmt.Errorf("pricing: obtener log: %w", err)
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}

	logDay := l.ReceiptDay()
	w := domainpricing.NewWindow(logDay, uc.windowDays)

	recent, _, err := uc.costs.ListByRawProduct(ctx, scope, l.RawProductID, debugHistoryLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("pricing: historial reciente: %w", err)
	}
	inWindow, err := uc.costs.ListInWindow(ctx, scope, l.RawProductID, w.From, w.To)
	if err != nil {
		return nil, fmt.Errorf("pricing: historial en ventana: %w", err)
	}
	candidates := domainpricing.Candidates(scope, l.RawProductID, w, inWindow)

	c, err := uc.Compare(ctx, scope, &l.ReceivingLog)
	if err != nil {
		return nil, err
	}

	out := &dto.PriceComparisonDebugResponse{
		LogID:               l.ID,
		RawProductID:        l.RawProductID,
		RawProductName:      l.RawProductName,
		PricePaid:           l.PricePaid,
		LogDate:             logDay.Format(dto.DateLayout),
		SearchWindowStart:   w.From.Format(dto.DateLayout),
		SearchWindowEnd:     w.To.Format(dto.DateLayout),
		AllCostHistory:      make([]dto.DebugCostEntry, 0, len(recent)),
		RelevantCostHistory: make([]dto.DebugCostEntry, 0, len(candidates)),
		MarketCostUsed:      c.MarketCost,
		Comparison:          ComparisonToResponse(c),
	}
	if c.MarketCostDate != nil {
		s := c.MarketCostDate.Format(dto.DateLayout)
		out.MarketCostDate = &s
	}
	for _, e := range recent {
		out.AllCostHistory = append(out.AllCostHistory, dto.DebugCostEntry{
			ID: e.ID, Cost: e.Cost, Date: domainpricing.Day(e.Date).Format(dto.DateLayout),
		})
	}
	for _, e := range candidates {
		days := int(logDay.Sub(domainpricing.Day(e.Date)).Hours() / 24)
		out.RelevantCostHistory = append(out.RelevantCostHistory, dto.DebugCostEntry{
			ID: e.ID, Cost: e.Cost, Date: domainpricing.Day(e.Date).Format(dto.DateLayout), DaysBeforeLog: &days,
		})
	}
	return out, nil
}

// ComparisonToResponse convierte el resultado de dominio al DTO.
func ComparisonToResponse(c domainpricing.Comparison) dto.PriceComparisonResponse {
	out := dto.PriceComparisonResponse{
		MarketCost:     c.MarketCost,
		PricePaid:      c.PricePaid,
		Delta:          c.Delta,
		Percentage:     c.Percentage,
		Classification: string(c.Classification),
	}
	if c.MarketCostDate != nil {
		s := c.MarketCostDate.Format(dto.DateLayout)
		out.MarketCostDate = &s
	}
	return out
}
