package memory

import (
	"context"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo historial de costos en memoria.
type CostHistoryRepo struct {
	s    *Store
	undo *undoLog
}

// NewCostHistoryRepository construye el repo sobre el store.
func NewCostHistoryRepository(s *Store) *CostHistoryRepo {
	return &CostHistoryRepo{s: s}
}

// Create exige que la materia prima exista en la misma empresa (como la FK compuesta en PostgreSQL).
func (r *CostHistoryRepo) Create(_ context.Context, scope tenant.Scope, e *entity.CostHistory) error {
	if !scope.Owns(e.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rp := r.s.rawProducts[e.RawProductID]
	if rp == nil || rp.CompanyID != e.CompanyID {
		return domain.ErrInvalidInput
	}
	if _, ok := r.s.costs[e.ID]; ok {
		return domain.ErrDuplicate
	}
	c := clone(e)
	c.Date = pricing.Day(c.Date)
	put(r.undo, r.s.costs, e.ID, c)
	return nil
}

func (r *CostHistoryRepo) ListInWindow(_ context.Context, scope tenant.Scope, rawProductID string, from, to time.Time) ([]*entity.CostHistory, error) {
	w := pricing.Window{From: pricing.Day(from), To: pricing.Day(to)}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.CostHistory
	for _, e := range r.s.costs {
		if scope.Owns(e.CompanyID) && e.RawProductID == rawProductID && w.Contains(e.Date) {
			list = append(list, clone(e))
		}
	}
	pricing.SortNewestFirst(list)
	return list, nil
}

func (r *CostHistoryRepo) ListByRawProduct(_ context.Context, scope tenant.Scope, rawProductID string, limit, offset int) ([]*entity.CostHistory, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.byRawProduct(scope, rawProductID)
	return page(all, limit, offset), len(all), nil
}

// byRawProduct requiere el lock tomado.
func (r *CostHistoryRepo) byRawProduct(scope tenant.Scope, rawProductID string) []*entity.CostHistory {
	var list []*entity.CostHistory
	for _, e := range r.s.costs {
		if scope.Owns(e.CompanyID) && e.RawProductID == rawProductID {
			list = append(list, clone(e))
		}
	}
	pricing.SortNewestFirst(list)
	return list
}

func (r *CostHistoryRepo) Latest(_ context.Context, scope tenant.Scope, rawProductID string, asOf time.Time) (*entity.CostHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	day := pricing.Day(asOf)
	for _, e := range r.byRawProduct(scope, rawProductID) {
		if !e.Date.After(day) {
			return e, nil
		}
	}
	return nil, nil
}
