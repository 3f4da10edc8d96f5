package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

type itemEnv struct {
	uc        *usecase.ItemUseCase
	raw       *usecase.RawProductUseCase
	packaging *usecase.PackagingUseCase
}

func newItemEnv() *itemEnv {
	store := memory.NewStore()
	return &itemEnv{
		uc: usecase.NewItemUseCase(usecase.ItemRepos{
			Items:          memory.NewItemRepository(store),
			RawProducts:    memory.NewRawProductRepository(store),
			Packaging:      memory.NewPackagingRepository(store),
			Costs:          memory.NewCostHistoryRepository(store),
			PackagingCosts: memory.NewPackagingCostRepository(store),
			Labor:          memory.NewLaborCostRepository(store),
		}),
		raw:       newRawProductUC(store, nil),
		packaging: newPackagingUC(store),
	}
}

// base crea dos materias primas con costo, un empaque con costo y una tarifa de mano de obra.
func (e *itemEnv) base(t *testing.T, scope tenant.Scope) (packagingID string, rawIDs []string) {
	t.Helper()
	ctx := context.Background()
	for _, in := range []dto.CreateRawProductRequest{
		{Name: "Zanahoria", InitialCost: dec("0.60"), CostDate: "2024-03-01"},
		{Name: "Apio", InitialCost: dec("1.20"), CostDate: "2024-03-01"},
	} {
		rp, err := e.raw.Create(ctx, scope, in)
		require.NoError(t, err)
		rawIDs = append(rawIDs, rp.ID)
	}
	p, err := e.packaging.Create(ctx, scope, dto.CreatePackagingRequest{Name: "Bandeja", InitialCost: packagingCost("1", "2024-03-01")})
	require.NoError(t, err)
	_, err = e.packaging.AddLaborCost(ctx, scope, dto.AddCostRequest{Cost: dec("18"), Date: "2024-03-01"})
	require.NoError(t, err)
	return p.ID, rawIDs
}

func itemRequest(packagingID string, rawIDs ...string) dto.ItemRequest {
	return dto.ItemRequest{
		Name:          "Mix de verduras",
		Code:          "MIX-10",
		UnitOfWeight:  "Pound",
		PackagingID:   packagingID,
		RawProductIDs: rawIDs,
		CaseWeight:    dec("10"),
		ProductYield:  dec("0.75"),
		LaborHours:    dec("0.25"),
	}
}

func TestItem_CreateYCosto(t *testing.T) {
	ctx := context.Background()
	e := newItemEnv()
	pID, raw := e.base(t, scopeA)

	it, err := e.uc.Create(ctx, scopeA, itemRequest(pID, raw[0], raw[0], " "))
	require.NoError(t, err)
	assert.Equal(t, "pound", it.UnitOfWeight)
	assert.Equal(t, "foodservice", it.Designation)
	assert.Equal(t, []string{raw[0]}, it.RawProductIDs, "ids repetidos o vacíos se descartan")

	cost, err := e.uc.Cost(ctx, scopeA, it.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	// 0.60 / 0.75 × 10 = 8.00; empaque 1.80; 0.25 h × 18 = 4.50
	assert.Equal(t, "8.00", cost.RawProductCost.StringFixed(2))
	assert.Equal(t, "1.80", cost.PackagingCost.StringFixed(2))
	assert.Equal(t, "4.50", cost.LaborCost.StringFixed(2))
	assert.Equal(t, "14.30", cost.TotalCost.StringFixed(2))
	assert.Equal(t, "2024-03-15", cost.AsOf)
	assert.Equal(t, 1, cost.RawProductsUsed)
	assert.NotNil(t, cost.Missing)
	assert.Empty(t, cost.Missing)
}

func TestItem_ComboPromediaMateriasPrimas(t *testing.T) {
	ctx := context.Background()
	e := newItemEnv()
	pID, raw := e.base(t, scopeA)

	in := itemRequest(pID, raw...)
	in.Designation = "combo"
	it, err := e.uc.Create(ctx, scopeA, in)
	require.NoError(t, err)

	cost, err := e.uc.Cost(ctx, scopeA, it.ID, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	// (8.00 + 16.00) / 2
	assert.Equal(t, "12.00", cost.RawProductCost.StringFixed(2))
	assert.Equal(t, 2, cost.RawProductsUsed)
}

func TestItem_CostoSinDatosListaFaltantes(t *testing.T) {
	ctx := context.Background()
	e := newItemEnv()
	pID, raw := e.base(t, scopeA)
	it, err := e.uc.Create(ctx, scopeA, itemRequest(pID, raw[0]))
	require.NoError(t, err)

	cost, err := e.uc.Cost(ctx, scopeA, it.ID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"raw_product_cost", "packaging_cost", "labor_cost"}, cost.Missing)
	assert.True(t, cost.TotalCost.IsZero())

	_, err = e.uc.Cost(ctx, scopeB, it.ID, time.Time{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_Validaciones(t *testing.T) {
	ctx := context.Background()
	e := newItemEnv()
	pID, raw := e.base(t, scopeA)
	pB, rawB := e.base(t, scopeB)

	cases := map[string]func(*dto.ItemRequest){
		"sin código":            func(r *dto.ItemRequest) { r.Code = " " },
		"unidad desconocida":    func(r *dto.ItemRequest) { r.UnitOfWeight = "arroba" },
		"designación inválida":  func(r *dto.ItemRequest) { r.Designation = "granel" },
		"sin peso de caja":      func(r *dto.ItemRequest) { r.CaseWeight = nil },
		"rendimiento cero":      func(r *dto.ItemRequest) { r.ProductYield = dec("0") },
		"rendimiento mayor a 1": func(r *dto.ItemRequest) { r.ProductYield = dec("1.01") },
		"horas negativas":       func(r *dto.ItemRequest) { r.LaborHours = dec("-1") },
		"peso 5 decimales":      func(r *dto.ItemRequest) { r.CaseWeight = dec("1.00001") },
		"sin materias primas":   func(r *dto.ItemRequest) { r.RawProductIDs = nil },
		"empaque de otra":       func(r *dto.ItemRequest) { r.PackagingID = pB },
		"materia prima de otra": func(r *dto.ItemRequest) { r.RawProductIDs = []string{rawB[0]} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := itemRequest(pID, raw[0])
			mutate(&in)
			_, err := e.uc.Create(ctx, scopeA, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestItem_UpdateListYDelete(t *testing.T) {
	ctx := context.Background()
	e := newItemEnv()
	pID, raw := e.base(t, scopeA)
	it, err := e.uc.Create(ctx, scopeA, itemRequest(pID, raw[0]))
	require.NoError(t, err)

	in := itemRequest(pID, raw[1])
	in.Name = "Apio en bastones"
	up, err := e.uc.Update(ctx, scopeA, it.ID, in)
	require.NoError(t, err)
	assert.Equal(t, []string{raw[1]}, up.RawProductIDs)
	assert.Equal(t, it.CreatedAt, up.CreatedAt)

	_, err = e.uc.Update(ctx, scopeB, it.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.uc.List(ctx, scopeA, dto.PageRequest{Query: "baston"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Apio en bastones", list.Items[0].Name)

	// el empaque en uso no se borra
	assert.ErrorIs(t, e.packaging.Delete(ctx, scopeA, pID), domain.ErrConflict)

	require.NoError(t, e.uc.Delete(ctx, scopeA, it.ID))
	got, err := e.uc.GetByID(ctx, scopeA, it.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, e.packaging.Delete(ctx, scopeA, pID))
}
