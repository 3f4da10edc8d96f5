package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

func newPackagingUC(store *memory.Store) *usecase.PackagingUseCase {
	return usecase.NewPackagingUseCase(
		memory.NewPackagingRepository(store),
		memory.NewPackagingCostRepository(store),
		memory.NewLaborCostRepository(store),
		memory.NewTxRunner(store),
	)
}

func packagingCost(box, date string) *dto.PackagingCostInput {
	return &dto.PackagingCostInput{
		BoxCost:               dec(box),
		BagCost:               dec("0.50"),
		TrayAndOrChemicalCost: dec("0.25"),
		LabelAndOrTapeCost:    dec("0.05"),
		Date:                  date,
	}
}

func TestPackaging_CreateConCostoInicial(t *testing.T) {
	ctx := context.Background()
	uc := newPackagingUC(memory.NewStore())

	p, err := uc.Create(ctx, scopeA, dto.CreatePackagingRequest{Name: "  Caja   25 lb ", InitialCost: packagingCost("1", "2024-03-01")})
	require.NoError(t, err)
	assert.Equal(t, "Caja 25 lb", p.Name)

	hist, err := uc.ListCosts(ctx, scopeA, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, "1.80", hist.Items[0].Total.StringFixed(2))
	assert.Equal(t, "2024-03-01", hist.Items[0].Date)

	_, err = uc.Create(ctx, scopeA, dto.CreatePackagingRequest{Name: "CAJA 25 LB"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el nombre es único por empresa, no global
	_, err = uc.Create(ctx, scopeB, dto.CreatePackagingRequest{Name: "Caja 25 lb"})
	assert.NoError(t, err)
}

func TestPackaging_CostoInvalidoNoCreaEmpaque(t *testing.T) {
	ctx := context.Background()
	uc := newPackagingUC(memory.NewStore())

	cases := map[string]*dto.PackagingCostInput{
		"3 decimales":  packagingCost("1.005", "2024-03-01"),
		"11 enteros":   packagingCost("10000000000", "2024-03-01"),
		"negativo":     packagingCost("-1", "2024-03-01"),
		"fecha mala":   packagingCost("1", "01/03/2024"),
		"sin bag_cost": {BoxCost: dec("1"), TrayAndOrChemicalCost: dec("0"), LabelAndOrTapeCost: dec("0")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, scopeA, dto.CreatePackagingRequest{Name: "Bolsa " + name, InitialCost: in})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	list, err := uc.List(ctx, scopeA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestPackaging_AddCost(t *testing.T) {
	ctx := context.Background()
	uc := newPackagingUC(memory.NewStore())
	p, err := uc.Create(ctx, scopeA, dto.CreatePackagingRequest{Name: "Clamshell"})
	require.NoError(t, err)

	_, err = uc.AddCost(ctx, scopeA, p.ID, *packagingCost("1", ""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "date es requerido")

	_, err = uc.AddCost(ctx, scopeB, p.ID, *packagingCost("1", "2024-03-01"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddCost(ctx, scopeA, p.ID, *packagingCost("1", "2024-03-01"))
	require.NoError(t, err)
	_, err = uc.AddCost(ctx, scopeA, p.ID, *packagingCost("2", "2024-03-05"))
	require.NoError(t, err)

	hist, err := uc.ListCosts(ctx, scopeA, p.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, hist.Items, 2)
	assert.Equal(t, "2024-03-05", hist.Items[0].Date, "más reciente primero")
	assert.Equal(t, 2, hist.Page.Total)

	_, err = uc.ListCosts(ctx, scopeB, p.ID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackaging_ManoDeObra(t *testing.T) {
	ctx := context.Background()
	uc := newPackagingUC(memory.NewStore())

	_, err := uc.AddLaborCost(ctx, scopeA, dto.AddCostRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AddLaborCost(ctx, scopeA, dto.AddCostRequest{Cost: dec("15.001"), Date: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddLaborCost(ctx, scopeA, dto.AddCostRequest{Cost: dec("15"), Date: "2024-03-01"})
	require.NoError(t, err)
	_, err = uc.AddLaborCost(ctx, scopeA, dto.AddCostRequest{Cost: dec("16.50"), Date: "2024-04-01"})
	require.NoError(t, err)

	list, err := uc.ListLaborCosts(ctx, scopeA, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "2024-04-01", list.Items[0].Date)

	other, err := uc.ListLaborCosts(ctx, scopeB, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}
