package memory

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.RawProductRepository = (*RawProductRepo)(nil)

// RawProductRepo materias primas en memoria.
type RawProductRepo struct {
	s    *Store
	undo *undoLog
}

// NewRawProductRepository construye el repo sobre el store.
func NewRawProductRepository(s *Store) *RawProductRepo {
	return &RawProductRepo{s: s}
}

func (r *RawProductRepo) Create(_ context.Context, scope tenant.Scope, p *entity.RawProduct) error {
	if !scope.Owns(p.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rawProducts[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if r.nameTaken(scope, p.NameKey, p.ID) {
		return domain.ErrDuplicate
	}
	put(r.undo, r.s.rawProducts, p.ID, clone(p))
	return nil
}

func (r *RawProductRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.RawProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p := r.s.rawProducts[id]
	if p == nil || !scope.Owns(p.CompanyID) {
		return nil, nil
	}
	return clone(p), nil
}

func (r *RawProductRepo) GetByNameKey(_ context.Context, scope tenant.Scope, nameKey string) (*entity.RawProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.rawProducts {
		if scope.Owns(p.CompanyID) && p.NameKey == nameKey {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *RawProductRepo) Update(_ context.Context, scope tenant.Scope, p *entity.RawProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.rawProducts[p.ID]
	if cur == nil || !scope.Owns(cur.CompanyID) {
		return domain.ErrNotFound
	}
	if r.nameTaken(scope, p.NameKey, p.ID) {
		return domain.ErrDuplicate
	}
	next := clone(p)
	next.CompanyID = cur.CompanyID
	next.CreatedAt = cur.CreatedAt
	put(r.undo, r.s.rawProducts, p.ID, next)
	return nil
}

func (r *RawProductRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.RawProduct, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.RawProduct
	for _, p := range r.s.rawProducts {
		if scope.Owns(p.CompanyID) && matches(f.Query, p.Name) {
			list = append(list, clone(p))
		}
	}
	sortByName(list, func(p *entity.RawProduct) string { return p.Name })
	return page(list, f.Limit, f.Offset), len(list), nil
}

// nameTaken requiere el lock tomado.
func (r *RawProductRepo) nameTaken(scope tenant.Scope, key, exceptID string) bool {
	for _, p := range r.s.rawProducts {
		if p.ID != exceptID && scope.Owns(p.CompanyID) && p.NameKey == key {
			return true
		}
	}
	return false
}
