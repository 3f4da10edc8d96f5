package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems en memoria.
type ItemRepo struct {
	s *Store
}

// NewItemRepository construye el repo sobre el store.
func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func cloneItem(it *entity.Item) *entity.Item {
	c := clone(it)
	if c != nil {
		c.RawProductIDs = slices.Clone(it.RawProductIDs)
	}
	return c
}

func (r *ItemRepo) Create(_ context.Context, scope tenant.Scope, it *entity.Item) error {
	if !scope.Owns(it.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; ok {
		return domain.ErrDuplicate
	}
	if err := r.checkRefs(it); err != nil {
		return err
	}
	r.s.items[it.ID] = cloneItem(it)
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it := r.s.items[id]
	if it == nil || !scope.Owns(it.CompanyID) {
		return nil, nil
	}
	return cloneItem(it), nil
}

func (r *ItemRepo) Update(_ context.Context, scope tenant.Scope, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.items[it.ID]
	if cur == nil || !scope.Owns(cur.CompanyID) {
		return domain.ErrNotFound
	}
	next := cloneItem(it)
	next.CompanyID = cur.CompanyID
	next.CreatedAt = cur.CreatedAt
	if err := r.checkRefs(next); err != nil {
		return err
	}
	r.s.items[it.ID] = next
	return nil
}

func (r *ItemRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Item, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Item
	for _, it := range r.s.items {
		if scope.Owns(it.CompanyID) && matches(f.Query, it.Name, it.Code, it.AlternateCode) {
			list = append(list, cloneItem(it))
		}
	}
	sortByName(list, func(it *entity.Item) string { return it.Name })
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *ItemRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it := r.s.items[id]
	if it == nil || !scope.Owns(it.CompanyID) {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

// checkRefs replica las FKs compuestas de PostgreSQL. Requiere el lock tomado.
func (r *ItemRepo) checkRefs(it *entity.Item) error {
	if p := r.s.packaging[it.PackagingID]; p == nil || p.CompanyID != it.CompanyID {
		return domain.ErrInvalidInput
	}
	for _, id := range it.RawProductIDs {
		if rp := r.s.rawProducts[id]; rp == nil || rp.CompanyID != it.CompanyID {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
