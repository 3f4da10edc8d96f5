package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

var errFallo = errors.New("fallo a mitad de la transacción")

func TestTxRunner_RollbackConservaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	companies := memory.NewCompanyRepository(store)
	rawProducts := memory.NewRawProductRepository(store)
	scope := tenant.Scope{CompanyID: "c-1"}
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	err := memory.NewTxRunner(store).RunCatalog(ctx, func(products repository.RawProductRepository, costs repository.CostHistoryRepository) error {
		rp := &entity.RawProduct{ID: "rp-1", CompanyID: "c-1", Name: "Tomate", NameKey: "tomate", CreatedAt: now, UpdatedAt: now}
		if err := products.Create(ctx, scope, rp); err != nil {
			return err
		}
		if err := costs.Create(ctx, scope, &entity.CostHistory{
			ID: "ch-1", CompanyID: "c-1", RawProductID: "rp-1", Cost: decimal.NewFromInt(12), Date: now, CreatedAt: now,
		}); err != nil {
			return err
		}

		// otra petición crea una empresa mientras la transacción sigue abierta
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, companies.Create(ctx, &entity.Company{ID: "c-otra", Name: "Otra", AdminEmail: "otra@x.com", Status: "active"}))
		}()
		wg.Wait()
		return errFallo
	})
	require.ErrorIs(t, err, errFallo)

	c, err := companies.GetByID(ctx, "c-otra")
	require.NoError(t, err)
	require.NotNil(t, c, "la escritura concurrente sobrevive al rollback")

	rp, err := rawProducts.GetByID(ctx, scope, "rp-1")
	require.NoError(t, err)
	assert.Nil(t, rp)
	latest, err := memory.NewCostHistoryRepository(store).Latest(ctx, scope, "rp-1", now)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestTxRunner_RunPackagingRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	scope := tenant.Scope{CompanyID: "c-1"}
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	packaging := memory.NewPackagingRepository(store)

	require.NoError(t, packaging.Create(ctx, scope, &entity.Packaging{ID: "p-0", CompanyID: "c-1", Name: "Previo", NameKey: "previo", CreatedAt: now}))

	err := memory.NewTxRunner(store).RunPackaging(ctx, func(p repository.PackagingRepository, costs repository.PackagingCostRepository) error {
		if err := p.Create(ctx, scope, &entity.Packaging{ID: "p-1", CompanyID: "c-1", Name: "Caja", NameKey: "caja", CreatedAt: now}); err != nil {
			return err
		}
		one := decimal.NewFromInt(1)
		if err := costs.Create(ctx, scope, &entity.PackagingCost{
			ID: "pc-1", CompanyID: "c-1", PackagingID: "p-1",
			BoxCost: one, BagCost: one, TrayAndOrChemicalCost: one, LabelAndOrTapeCost: one, Date: now, CreatedAt: now,
		}); err != nil {
			return err
		}
		return errFallo
	})
	require.ErrorIs(t, err, errFallo)

	got, err := packaging.GetByID(ctx, scope, "p-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	prev, err := packaging.GetByID(ctx, scope, "p-0")
	require.NoError(t, err)
	assert.NotNil(t, prev)
	pc, err := memory.NewPackagingCostRepository(store).Latest(ctx, scope, "p-1", now)
	require.NoError(t, err)
	assert.Nil(t, pc)
}

func TestTxRunner_CommitConservaTodo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	scope := tenant.Scope{CompanyID: "c-1"}
	now := time.Now()

	err := memory.NewTxRunner(store).RunCatalog(ctx, func(products repository.RawProductRepository, _ repository.CostHistoryRepository) error {
		return products.Create(ctx, scope, &entity.RawProduct{ID: "rp-1", CompanyID: "c-1", Name: "Tomate", NameKey: "tomate", CreatedAt: now, UpdatedAt: now})
	})
	require.NoError(t, err)

	rp, err := memory.NewRawProductRepository(store).GetByID(ctx, scope, "rp-1")
	require.NoError(t, err)
	assert.NotNil(t, rp)
}
