package repository

import (
	"context"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// PackagingRepository puerto de persistencia para empaques.
// Delete devuelve domain.ErrConflict si algún ítem usa el empaque.
type PackagingRepository interface {
	Create(ctx context.Context, scope tenant.Scope, p *entity.Packaging) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Packaging, error)
	GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.Packaging, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.Packaging, int, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

// PackagingCostRepository historial de costos de empaque (solo inserción), fecha desc e id desc.
type PackagingCostRepository interface {
	Create(ctx context.Context, scope tenant.Scope, c *entity.PackagingCost) error

	// Latest la entrada más reciente con date <= asOf. (nil, nil) si no hay.
	Latest(ctx context.Context, scope tenant.Scope, packagingID string, asOf time.Time) (*entity.PackagingCost, error)

	ListByPackaging(ctx context.Context, scope tenant.Scope, packagingID string, limit, offset int) ([]*entity.PackagingCost, int, error)
}

// LaborCostRepository tarifas de mano de obra de la empresa (solo inserción).
type LaborCostRepository interface {
	Create(ctx context.Context, scope tenant.Scope, c *entity.LaborCost) error

	// Latest la tarifa vigente a asOf (date <= asOf). (nil, nil) si no hay.
	Latest(ctx context.Context, scope tenant.Scope, asOf time.Time) (*entity.LaborCost, error)

	List(ctx context.Context, scope tenant.Scope, limit, offset int) ([]*entity.LaborCost, int, error)
}
