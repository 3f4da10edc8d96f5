package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.APIKeyRepository = (*APIKeyRepo)(nil)

// APIKeyRepo llaves de dispositivo en memoria.
type APIKeyRepo struct {
	s *Store
}

// NewAPIKeyRepository construye el repo sobre el store.
func NewAPIKeyRepository(s *Store) *APIKeyRepo {
	return &APIKeyRepo{s: s}
}

func (r *APIKeyRepo) Create(_ context.Context, scope tenant.Scope, k *entity.APIKey) error {
	if !scope.Owns(k.CompanyID) {
		return domain.ErrForbidden
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.apiKeys {
		if cur.ID == k.ID || cur.Prefix == k.Prefix {
			return domain.ErrDuplicate
		}
	}
	r.s.apiKeys[k.ID] = clone(k)
	return nil
}

func (r *APIKeyRepo) GetByPrefix(_ context.Context, prefix string) (*entity.APIKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, k := range r.s.apiKeys {
		if k.Prefix == prefix {
			return clone(k), nil
		}
	}
	return nil, nil
}

func (r *APIKeyRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.APIKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	k := r.s.apiKeys[id]
	if k == nil || !scope.Owns(k.CompanyID) {
		return nil, nil
	}
	return clone(k), nil
}

func (r *APIKeyRepo) List(_ context.Context, scope tenant.Scope) ([]*entity.APIKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.APIKey
	for _, k := range r.s.apiKeys {
		if scope.Owns(k.CompanyID) {
			list = append(list, clone(k))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *APIKeyRepo) SetActive(_ context.Context, scope tenant.Scope, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := r.s.apiKeys[id]
	if k == nil || !scope.Owns(k.CompanyID) {
		return domain.ErrNotFound
	}
	next := clone(k)
	next.IsActive = active
	r.s.apiKeys[id] = next
	return nil
}

func (r *APIKeyRepo) Delete(_ context.Context, scope tenant.Scope, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := r.s.apiKeys[id]
	if k == nil || !scope.Owns(k.CompanyID) {
		return domain.ErrNotFound
	}
	delete(r.s.apiKeys, id)
	return nil
}

func (r *APIKeyRepo) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := r.s.apiKeys[id]
	if k == nil {
		return nil
	}
	next := clone(k)
	next.LastUsedAt = &at
	r.s.apiKeys[id] = next
	return nil
}
