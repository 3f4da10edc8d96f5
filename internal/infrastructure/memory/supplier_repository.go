package memory

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var (
	_ repository.BrandNameRepository = (*BrandNameRepo)(nil)
	_ repository.SellerRepository    = (*SellerRepo)(nil)
	_ repository.GrowerRepository    = (*GrowerRepo)(nil)
)

// catalog operaciones comunes a los catálogos con nombre único; items elige el mapa.
// undo no es nil cuando el repo corre dentro de TxRunner.
type catalog[T any] struct {
	s       *Store
	undo    *undoLog
	items   func() map[string]*T
	company func(*T) string
	id      func(*T) string
	nameKey func(*T) string
	name    func(*T) string
	search  func(*T) []string
	inUse   func(id string) bool
}

func (c catalog[T]) create(scope tenant.Scope, v *T) error {
	if !scope.Owns(c.company(v)) {
		return domain.ErrForbidden
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items := c.items()
	if _, ok := items[c.id(v)]; ok {
		return domain.ErrDuplicate
	}
	for _, it := range items {
		if scope.Owns(c.company(it)) && c.nameKey(it) == c.nameKey(v) {
			return domain.ErrDuplicate
		}
	}
	put(c.undo, items, c.id(v), clone(v))
	return nil
}

func (c catalog[T]) get(scope tenant.Scope, id string) *T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	v := c.items()[id]
	if v == nil || !scope.Owns(c.company(v)) {
		return nil
	}
	return clone(v)
}

func (c catalog[T]) byNameKey(scope tenant.Scope, key string) *T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	for _, v := range c.items() {
		if scope.Owns(c.company(v)) && c.nameKey(v) == key {
			return clone(v)
		}
	}
	return nil
}

func (c catalog[T]) list(scope tenant.Scope, f repository.ListFilter) ([]*T, int) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	var list []*T
	for _, v := range c.items() {
		if scope.Owns(c.company(v)) && matches(f.Query, c.search(v)...) {
			list = append(list, clone(v))
		}
	}
	sortByName(list, c.name)
	return page(list, f.Limit, f.Offset), len(list)
}

func (c catalog[T]) remove(scope tenant.Scope, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	items := c.items()
	v := items[id]
	if v == nil || !scope.Owns(c.company(v)) {
		return domain.ErrNotFound
	}
	if c.inUse(id) {
		return domain.ErrConflict
	}
	delete(items, id)
	return nil
}

// logsReferencing requiere el lock tomado.
func (s *Store) logsReferencing(match func(*entity.ReceivingLog) bool) bool {
	for _, l := range s.logs {
		if match(l) {
			return true
		}
	}
	return false
}

// BrandNameRepo marcas en memoria.
type BrandNameRepo struct {
	c catalog[entity.BrandName]
}

// NewBrandNameRepository construye el repo sobre el store.
func NewBrandNameRepository(s *Store) *BrandNameRepo {
	return &BrandNameRepo{c: catalog[entity.BrandName]{
		s:       s,
		items:   func() map[string]*entity.BrandName { return s.brands },
		company: func(b *entity.BrandName) string { return b.CompanyID },
		id:      func(b *entity.BrandName) string { return b.ID },
		nameKey: func(b *entity.BrandName) string { return b.NameKey },
		name:    func(b *entity.BrandName) string { return b.Name },
		search:  func(b *entity.BrandName) []string { return []string{b.Name} },
		inUse: func(id string) bool {
			return s.logsReferencing(func(l *entity.ReceivingLog) bool { return l.BrandNameID == id })
		},
	}}
}

func (r *BrandNameRepo) Create(_ context.Context, scope tenant.Scope, b *entity.BrandName) error {
	return r.c.create(scope, b)
}

func (r *BrandNameRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.BrandName, error) {
	return r.c.get(scope, id), nil
}

func (r *BrandNameRepo) GetByNameKey(_ context.Context, scope tenant.Scope, key string) (*entity.BrandName, error) {
	return r.c.byNameKey(scope, key), nil
}

func (r *BrandNameRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.BrandName, int, error) {
	list, total := r.c.list(scope, f)
	return list, total, nil
}

func (r *BrandNameRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	return r.c.remove(scope, id)
}

// SellerRepo vendedores en memoria.
type SellerRepo struct {
	c catalog[entity.Seller]
}

// NewSellerRepository construye el repo sobre el store.
func NewSellerRepository(s *Store) *SellerRepo {
	return &SellerRepo{c: catalog[entity.Seller]{
		s:       s,
		items:   func() map[string]*entity.Seller { return s.sellers },
		company: func(v *entity.Seller) string { return v.CompanyID },
		id:      func(v *entity.Seller) string { return v.ID },
		nameKey: func(v *entity.Seller) string { return v.NameKey },
		name:    func(v *entity.Seller) string { return v.Name },
		search:  func(v *entity.Seller) []string { return []string{v.Name} },
		inUse: func(id string) bool {
			return s.logsReferencing(func(l *entity.ReceivingLog) bool { return l.SellerID == id })
		},
	}}
}

func (r *SellerRepo) Create(_ context.Context, scope tenant.Scope, v *entity.Seller) error {
	return r.c.create(scope, v)
}

func (r *SellerRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Seller, error) {
	return r.c.get(scope, id), nil
}

func (r *SellerRepo) GetByNameKey(_ context.Context, scope tenant.Scope, key string) (*entity.Seller, error) {
	return r.c.byNameKey(scope, key), nil
}

func (r *SellerRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Seller, int, error) {
	list, total := r.c.list(scope, f)
	return list, total, nil
}

func (r *SellerRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	return r.c.remove(scope, id)
}

// GrowerRepo productores/distribuidores en memoria.
type GrowerRepo struct {
	c catalog[entity.GrowerOrDistributor]
}

// NewGrowerRepository construye el repo sobre el store.
func NewGrowerRepository(s *Store) *GrowerRepo {
	return &GrowerRepo{c: catalog[entity.GrowerOrDistributor]{
		s:       s,
		items:   func() map[string]*entity.GrowerOrDistributor { return s.growers },
		company: func(v *entity.GrowerOrDistributor) string { return v.CompanyID },
		id:      func(v *entity.GrowerOrDistributor) string { return v.ID },
		nameKey: func(v *entity.GrowerOrDistributor) string { return v.NameKey },
		name:    func(v *entity.GrowerOrDistributor) string { return v.Name },
		search: func(v *entity.GrowerOrDistributor) []string {
			return []string{v.Name, v.City, v.State}
		},
		inUse: func(id string) bool {
			return s.logsReferencing(func(l *entity.ReceivingLog) bool { return l.GrowerOrDistributorID == id })
		},
	}}
}

func (r *GrowerRepo) Create(_ context.Context, scope tenant.Scope, v *entity.GrowerOrDistributor) error {
	return r.c.create(scope, v)
}

func (r *GrowerRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.GrowerOrDistributor, error) {
	return r.c.get(scope, id), nil
}

func (r *GrowerRepo) GetByNameKey(_ context.Context, scope tenant.Scope, key string) (*entity.GrowerOrDistributor, error) {
	return r.c.byNameKey(scope, key), nil
}

func (r *GrowerRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.GrowerOrDistributor, int, error) {
	list, total := r.c.list(scope, f)
	return list, total, nil
}

func (r *GrowerRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	return r.c.remove(scope, id)
}
