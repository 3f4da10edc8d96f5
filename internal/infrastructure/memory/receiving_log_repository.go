package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.ReceivingLogRepository = (*ReceivingLogRepo)(nil)

// ReceivingLogRepo logs de recepción en memoria.
type ReceivingLogRepo struct {
	s *Store
}

// NewReceivingLogRepository construye el repo sobre el store.
func NewReceivingLogRepository(s *Store) *ReceivingLogRepo {
	return &ReceivingLogRepo{s: s}
}

func (r *ReceivingLogRepo) Create(_ context.Context, scope tenant.Scope, l *entity.ReceivingLog) error {
	if !scope.Owns(l.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.logs[l.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.logs[l.ID] = clone(l)
	return nil
}

func (r *ReceivingLogRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.ReceivingLogDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l := r.s.logs[id]
	if l == nil || !scope.Owns(l.CompanyID) {
		return nil, nil
	}
	return r.detail(l), nil
}

func (r *ReceivingLogRepo) List(_ context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.ReceivingLogDetail, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ReceivingLogDetail
	for _, l := range r.s.logs {
		if !scope.Owns(l.CompanyID) {
			continue
		}
		d := r.detail(l)
		if matches(f.Query, d.RawProductName, d.ReceivedBy, d.CountryOfOrigin) {
			list = append(list, d)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].ReceivedAt.Equal(list[j].ReceivedAt) {
			return list[i].ReceivedAt.After(list[j].ReceivedAt)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, f.Limit, f.Offset), len(list), nil
}

func (r *ReceivingLogRepo) UpdatePrice(_ context.Context, scope tenant.Scope, id string, price *decimal.Decimal, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur := r.s.logs[id]
	if cur == nil || !scope.Owns(cur.CompanyID) {
		return domain.ErrNotFound
	}
	next := clone(cur)
	if price != nil {
		p := *price
		next.PricePaid = &p
	} else {
		next.PricePaid = nil
	}
	next.UpdatedAt = at
	r.s.logs[id] = next
	return nil
}

// detail requiere el lock tomado.
func (r *ReceivingLogRepo) detail(l *entity.ReceivingLog) *entity.ReceivingLogDetail {
	d := &entity.ReceivingLogDetail{ReceivingLog: *l}
	if rp := r.s.rawProducts[l.RawProductID]; rp != nil {
		d.RawProductName = rp.Name
	}
	if b := r.s.brands[l.BrandNameID]; b != nil {
		d.BrandName = b.Name
	}
	if s := r.s.sellers[l.SellerID]; s != nil {
		d.SellerName = s.Name
	}
	if g := r.s.growers[l.GrowerOrDistributorID]; g != nil {
		d.GrowerOrDistributorName = g.Name
	}
	return d
}
