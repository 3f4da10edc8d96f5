package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s *Store
}

// NewCompanyRepository construye el repo sobre el store.
func NewCompanyRepository(s *Store) *CompanyRepo {
	return &CompanyRepo{s: s}
}

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, c := range r.s.companies {
		if strings.EqualFold(c.AdminEmail, company.AdminEmail) {
			return domain.ErrDuplicate
		}
	}
	r.s.companies[company.ID] = clone(company)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.companies[id]), nil
}

func (r *CompanyRepo) GetByAdminEmail(_ context.Context, email string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.companies {
		if strings.EqualFold(c.AdminEmail, email) {
			return clone(c), nil
		}
	}
	return nil, nil
}
