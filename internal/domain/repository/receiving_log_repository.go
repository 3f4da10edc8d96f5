package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// ReceivingLogRepository define el puerto de persistencia para ReceivingLog (DIP).
type ReceivingLogRepository interface {
	Create(ctx context.Context, scope tenant.Scope, l *entity.ReceivingLog) error

	// GetByID devuelve el log con sus nombres resueltos; (nil, nil) si no existe en la empresa.
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.ReceivingLogDetail, error)

	// List más recientes primero. Query busca en materia prima, recibido por y país de origen.
	List(ctx context.Context, scope tenant.Scope, f ListFilter) ([]*entity.ReceivingLogDetail, int, error)

	// UpdatePrice fija (price != nil) o borra (nil) el precio pagado. domain.ErrNotFound si no existe.
	UpdatePrice(ctx context.Context, scope tenant.Scope, id string, price *decimal.Decimal, at time.Time) error
}
