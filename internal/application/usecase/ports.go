package usecase

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta un callback con repos de catálogo atados a una transacción.
// Si fn devuelve error se hace rollback.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		products repository.RawProductRepository,
		costs repository.CostHistoryRepository,
	) error) error
}

// PackagingTxRunner igual que CatalogTxRunner para empaques y su historial de costos.
type PackagingTxRunner interface {
	RunPackaging(ctx context.Context, fn func(
		packaging repository.PackagingRepository,
		costs repository.PackagingCostRepository,
	) error) error
}
