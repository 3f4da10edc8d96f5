package repository

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// Los catálogos de proveedores comparten forma. Delete devuelve domain.ErrNotFound si no
// existe y domain.ErrConflict si algún log de recepción lo referencia.

// BrandNameRepository puerto de persistencia para marcas.
type BrandNameRepository interface {
	Create(ctx context.Context, scope tenant.Scope, b *entity.BrandName) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.BrandName, error)
	GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.BrandName, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.BrandName, int, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

// SellerRepository puerto de persistencia para vendedores.
type SellerRepository interface {
	Create(ctx context.Context, scope tenant.Scope, s *entity.Seller) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Seller, error)
	GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.Seller, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.Seller, int, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}

// GrowerRepository puerto de persistencia para productores/distribuidores.
// Query busca en nombre, ciudad y estado.
type GrowerRepository interface {
	Create(ctx context.Context, scope tenant.Scope, g *entity.GrowerOrDistributor) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.GrowerOrDistributor, error)
	GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.GrowerOrDistributor, error)
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.GrowerOrDistributor, int, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
