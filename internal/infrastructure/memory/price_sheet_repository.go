package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.PriceSheetRepository = (*PriceSheetRepo)(nil)

// PriceSheetRepo hoja de precios calculada sobre el store.
type PriceSheetRepo struct {
	s *Store
}

// NewPriceSheetRepository construye el repo sobre el store.
func NewPriceSheetRepository(s *Store) *PriceSheetRepo {
	return &PriceSheetRepo{s: s}
}

func (r *PriceSheetRepo) GetRawPriceSheet(_ context.Context, scope tenant.Scope) ([]repository.RawPriceSheetRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var products []*entity.RawProduct
	for _, p := range r.s.rawProducts {
		if scope.Owns(p.CompanyID) {
			products = append(products, p)
		}
	}
	sortByName(products, func(p *entity.RawProduct) string { return p.Name })

	costs := &CostHistoryRepo{s: r.s}
	rows := make([]repository.RawPriceSheetRow, 0, len(products))
	for _, p := range products {
		row := repository.RawPriceSheetRow{RawProductID: p.ID, RawProductName: p.Name}
		history := costs.byRawProduct(scope, p.ID)
		row.EntryCount = len(history)
		if len(history) > 0 {
			row.Latest = &repository.CostPoint{Cost: history[0].Cost, Date: history[0].Date}
			sum := decimal.Zero
			for _, e := range history {
				sum = sum.Add(e.Cost)
			}
			avg := sum.Div(decimal.NewFromInt(int64(len(history))))
			row.Average = &avg
		}
		if len(history) > 1 {
			row.Previous = &repository.CostPoint{Cost: history[1].Cost, Date: history[1].Date}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
