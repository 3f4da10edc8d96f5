package repository

import (
	"context"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// APIKeyRepository puerto de persistencia para llaves de dispositivo.
type APIKeyRepository interface {
	Create(ctx context.Context, scope tenant.Scope, k *entity.APIKey) error

	// GetByPrefix resuelve la llave antes de conocer el tenant (autenticación).
	GetByPrefix(ctx context.Context, prefix string) (*entity.APIKey, error)

	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.APIKey, error)
	List(ctx context.Context, scope tenant.Scope) ([]*entity.APIKey, error)
	SetActive(ctx context.Context, scope tenant.Scope, id string, active bool) error
	Delete(ctx context.Context, scope tenant.Scope, id string) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}
