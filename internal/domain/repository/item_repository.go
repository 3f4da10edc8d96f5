package repository

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// ItemRepository puerto de persistencia para ítems. Las materias primas y el empaque
// referenciados deben ser de la misma empresa (domain.ErrInvalidInput si no).
// Query busca en nombre y código.
type ItemRepository interface {
	Create(ctx context.Context, scope tenant.Scope, it *entity.Item) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error)
	Update(ctx context.Context, scope tenant.Scope, it *entity.Item) error
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.Item, int, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
}
