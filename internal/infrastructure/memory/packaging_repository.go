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

var (
	_ repository.PackagingRepository     = (*PackagingRepo)(nil)
	_ repository.PackagingCostRepository = (*PackagingCostRepo)(nil)
	_ repository.LaborCostRepository     = (*LaborCostRepo)(nil)
)

// PackagingRepo empaques en memoria. No se puede borrar un empaque que use algún ítem.
type PackagingRepo struct {
	c catalog[entity.Packaging]
}

// NewPackagingRepository construye el repo sobre el store.
func NewPackagingRepository(s *Store) *PackagingRepo {
	return newPackagingRepo(s, nil)
}

func newPackagingRepo(s *Store, u *undoLog) *PackagingRepo {
	return &PackagingRepo{c: catalog[entity.Packaging]{
		s:       s,
		undo:    u,
		items:   func() map[string]*entity.Packaging { return s.packaging },
		company: func(p *entity.Packaging) string { return p.CompanyID },
		id:      func(p *entity.Packaging) string { return p.ID },
		nameKey: func(p *entity.Packaging) string { return p.NameKey },
		name:    func(p *entity.Packaging) string { return p.Name },
		search:  func(p *entity.Packaging) []string { return []string{p.Name} },
		inUse: func(id string) bool {
			for _, it := range s.items {
				if it.PackagingID == id {
					return true
				}
			}
			return false
		},
	}}
}

func (r *PackagingRepo) Create(_ context.Context, scope tenant.Scope, p *entity.Packaging) error {
	return r.c.create(scope, p)
}

func (r *PackagingRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Packaging, error) {
	return r.c.get(scope, id), nil
}

func (r *PackagingRepo) GetByNameKey(_ context.Context, scope tenant.Scope, key string) (*entity.Packaging, error) {
	return r.c.byNameKey(scope, key), nil
}

func (r *PackagingRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Packaging, int, error) {
	list, total := r.c.list(scope, f)
	return list, total, nil
}

// Delete borra el empaque y su historial de costos.
func (r *PackagingRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	if err := r.c.remove(scope, id); err != nil {
		return err
	}
	r.c.s.mu.Lock()
	defer r.c.s.mu.Unlock()
	for cid, c := range r.c.s.packagingCosts {
		if c.PackagingID == id {
			delete(r.c.s.packagingCosts, cid)
		}
	}
	return nil
}

// PackagingCostRepo historial de costos de empaque en memoria.
type PackagingCostRepo struct {
	s    *Store
	undo *undoLog
}

// NewPackagingCostRepository construye el repo sobre el store.
func NewPackagingCostRepository(s *Store) *PackagingCostRepo {
	return &PackagingCostRepo{s: s}
}

// Create exige que el empaque exista en la misma empresa.
func (r *PackagingCostRepo) Create(_ context.Context, scope tenant.Scope, c *entity.PackagingCost) error {
	if !scope.Owns(c.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.packaging[c.PackagingID]
	if p == nil || p.CompanyID != c.CompanyID {
		return domain.ErrInvalidInput
	}
	if _, ok := r.s.packagingCosts[c.ID]; ok {
		return domain.ErrDuplicate
	}
	v := clone(c)
	v.Date = pricing.Day(v.Date)
	put(r.undo, r.s.packagingCosts, c.ID, v)
	return nil
}

func (r *PackagingCostRepo) Latest(_ context.Context, scope tenant.Scope, packagingID string, asOf time.Time) (*entity.PackagingCost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.byPackaging(scope, packagingID) {
		if !c.Date.After(pricing.Day(asOf)) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *PackagingCostRepo) ListByPackaging(_ context.Context, scope tenant.Scope, packagingID string, limit, offset int) ([]*entity.PackagingCost, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.byPackaging(scope, packagingID)
	return page(all, limit, offset), len(all), nil
}

// byPackaging requiere el lock tomado.
func (r *PackagingCostRepo) byPackaging(scope tenant.Scope, packagingID string) []*entity.PackagingCost {
	var list []*entity.PackagingCost
	for _, c := range r.s.packagingCosts {
		if scope.Owns(c.CompanyID) && c.PackagingID == packagingID {
			list = append(list, clone(c))
		}
	}
	sortNewestFirst(list, func(c *entity.PackagingCost) (time.Time, string) { return c.Date, c.ID })
	return list
}

// LaborCostRepo tarifas de mano de obra en memoria.
type LaborCostRepo struct {
	s *Store
}

// NewLaborCostRepository construye el repo sobre el store.
func NewLaborCostRepository(s *Store) *LaborCostRepo {
	return &LaborCostRepo{s: s}
}

func (r *LaborCostRepo) Create(_ context.Context, scope tenant.Scope, c *entity.LaborCost) error {
	if !scope.Owns(c.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.laborCosts[c.ID]; ok {
		return domain.ErrDuplicate
	}
	v := clone(c)
	v.Date = pricing.Day(v.Date)
	r.s.laborCosts[c.ID] = v
	return nil
}

func (r *LaborCostRepo) Latest(_ context.Context, scope tenant.Scope, asOf time.Time) (*entity.LaborCost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.all(scope) {
		if !c.Date.After(pricing.Day(asOf)) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *LaborCostRepo) List(_ context.Context, scope tenant.Scope, limit, offset int) ([]*entity.LaborCost, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.all(scope)
	return page(all, limit, offset), len(all), nil
}

// all requiere el lock tomado.
func (r *LaborCostRepo) all(scope tenant.Scope) []*entity.LaborCost {
	var list []*entity.LaborCost
	for _, c := range r.s.laborCosts {
		if scope.Owns(c.CompanyID) {
			list = append(list, clone(c))
		}
	}
	sortNewestFirst(list, func(c *entity.LaborCost) (time.Time, string) { return c.Date, c.ID })
	return list
}
