package repository

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// ListFilter búsqueda libre y paginación para listados.
// Query vacío no filtra; Limit <= 0 devuelve todo.
type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}

// RawProductRepository define el puerto de persistencia para RawProduct (DIP).
// Los métodos de lectura devuelven (nil, nil) si el registro no existe en la empresa.
type RawProductRepository interface {
	Create(ctx context.Context, scope tenant.Scope, p *entity.RawProduct) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.RawProduct, error)
	GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.RawProduct, error)
	Update(ctx context.Context, scope tenant.Scope, p *entity.RawProduct) error
	// List ordena por nombre; el int es el total sin paginar.
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.RawProduct, int, error)
}
