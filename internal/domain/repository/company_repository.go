package repository

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// Es el único puerto sin tenant.Scope: la empresa es el tenant.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByAdminEmail(ctx context.Context, email string) (*entity.Company, error)
}
