package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

var (
	scopeA = tenant.Scope{CompanyID: "company-a"}
	scopeB = tenant.Scope{CompanyID: "company-b"}
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func newRawProductUC(store *memory.Store, tx usecase.CatalogTxRunner) *usecase.RawProductUseCase {
	if tx == nil {
		tx = memory.NewTxRunner(store)
	}
	return usecase.NewRawProductUseCase(
		memory.NewRawProductRepository(store),
		memory.NewCostHistoryRepository(store),
		tx,
	)
}

// failingCostsTx ejecuta el tx en memoria pero el repo de costos siempre falla.
type failingCostsTx struct {
	inner *memory.TxRunner
}

type failingCosts struct {
	repository.CostHistoryRepository
}

func (failingCosts) Create(context.Context, tenant.Scope, *entity.CostHistory) error {
	return errors.New("disco lleno")
}

func (f failingCostsTx) RunCatalog(ctx context.Context, fn func(repository.RawProductRepository, repository.CostHistoryRepository) error) error {
	return f.inner.RunCatalog(ctx, func(p repository.RawProductRepository, c repository.CostHistoryRepository) error {
		return fn(p, failingCosts{c})
	})
}

func TestRawProduct_CreateNormalizaNombre(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)

	out, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "  Tomate   Roma "})
	require.NoError(t, err)
	assert.Equal(t, "Tomate Roma", out.Name)

	_, err = uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "TOMÁTE roma"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// otra empresa puede usar el mismo nombre
	_, err = uc.Create(ctx, scopeB, dto.CreateRawProductRequest{Name: "Tomate Roma"})
	assert.NoError(t, err)
}

func TestRawProduct_CreateNombreInvalido(t *testing.T) {
	uc := newRawProductUC(memory.NewStore(), nil)
	_, err := uc.Create(context.Background(), scopeA, dto.CreateRawProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRawProduct_CreateConCostoInicial(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)

	out, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{
		Name:        "Cebolla",
		InitialCost: dec("12.50"),
		CostDate:    "2024-03-01",
	})
	require.NoError(t, err)

	hist, err := uc.ListCosts(ctx, scopeA, out.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, "2024-03-01", hist.Items[0].Date)
	assert.True(t, dec("12.50").Equal(hist.Items[0].Cost))
	assert.Equal(t, 1, hist.Page.Total)
}

func TestRawProduct_CreateRollbackSiFallaCostoInicial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := newRawProductUC(store, failingCostsTx{inner: memory.NewTxRunner(store)})

	_, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Cebolla", InitialCost: dec("3")})
	require.Error(t, err)

	list, err := newRawProductUC(store, nil).List(ctx, scopeA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "la materia prima no debe quedar sin su costo inicial")
}

func TestRawProduct_CostoInicialNegativo(t *testing.T) {
	uc := newRawProductUC(memory.NewStore(), nil)
	_, err := uc.Create(context.Background(), scopeA, dto.CreateRawProductRequest{Name: "Ajo", InitialCost: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRawProduct_MontosFueraDeEscala(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)
	for _, v := range []string{"1.005", "10000000000", "-0.001"} {
		_, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Ajo " + v, InitialCost: dec(v)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, v)
	}

	p, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Ajo", InitialCost: dec("9999999999.99")})
	require.NoError(t, err)
	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("2.499"), Date: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("2.50"), Date: "2024-03-01"})
	assert.NoError(t, err)
}

func TestRawProduct_Update(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)

	a, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Limón"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Lima"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, scopeA, a.ID, dto.UpdateRawProductRequest{Name: "lima"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// cambiar solo mayúsculas del propio nombre es válido
	out, err := uc.Update(ctx, scopeA, a.ID, dto.UpdateRawProductRequest{Name: "LIMÓN"})
	require.NoError(t, err)
	assert.Equal(t, "LIMÓN", out.Name)

	_, err = uc.Update(ctx, scopeB, a.ID, dto.UpdateRawProductRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRawProduct_GetByIDOtraEmpresa(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)
	a, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Papa"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, scopeB, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRawProduct_AddCost(t *testing.T) {
	ctx := context.Background()
	uc := newRawProductUC(memory.NewStore(), nil)
	p, err := uc.Create(ctx, scopeA, dto.CreateRawProductRequest{Name: "Pepino"})
	require.NoError(t, err)

	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("-0.01"), Date: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("1"), Date: "01/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Date: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddCost(ctx, scopeB, p.ID, dto.AddCostRequest{Cost: dec("1"), Date: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	zero, err := uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("0"), Date: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, zero.Cost.IsZero())

	_, err = uc.AddCost(ctx, scopeA, p.ID, dto.AddCostRequest{Cost: dec("4.25"), Date: "2024-03-05"})
	require.NoError(t, err)

	hist, err := uc.ListCosts(ctx, scopeA, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)
	assert.Equal(t, "2024-03-05", hist.Items[0].Date, "más reciente primero")
}
