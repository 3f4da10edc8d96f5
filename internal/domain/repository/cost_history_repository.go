package repository

import (
	"context"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// CostHistoryRepository define el puerto de persistencia para CostHistory (solo inserción).
// Todos los listados vienen ordenados por fecha desc e id desc.
type CostHistoryRepository interface {
	Create(ctx context.Context, scope tenant.Scope, e *entity.CostHistory) error

	// ListInWindow entradas de la materia prima con from <= date <= to (días calendario).
	ListInWindow(ctx context.Context, scope tenant.Scope, rawProductID string, from, to time.Time) ([]*entity.CostHistory, error)

	// Latest la entrada más reciente de la materia prima con date <= asOf, sin ventana. (nil, nil) si no hay.
	Latest(ctx context.Context, scope tenant.Scope, rawProductID string, asOf time.Time) (*entity.CostHistory, error)

	// ListByRawProduct historial completo paginado; limit <= 0 devuelve todo. El int es el total.
	ListByRawProduct(ctx context.Context, scope tenant.Scope, rawProductID string, limit, offset int) ([]*entity.CostHistory, int, error)
}
