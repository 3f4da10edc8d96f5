package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

var scope = tenant.Scope{CompanyID: "company-a"}

type fakeSheetPDF struct {
	opts analytics.PriceSheetPDFOptions
}

func (f *fakeSheetPDF) GenerateRawPriceSheetPDF(_ context.Context, _ *dto.RawPriceSheetResponse, opts analytics.PriceSheetPDFOptions) ([]byte, error) {
	f.opts = opts
	return []byte("%PDF"), nil
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, memory.NewCompanyRepository(store).Create(ctx, &entity.Company{ID: scope.CompanyID, Name: "Frutas A", AdminEmail: "a@a.com"}))
	products := memory.NewRawProductRepository(store)
	costs := memory.NewCostHistoryRepository(store)
	for _, name := range []string{"Zanahoria", "Apio", "Betabel"} {
		require.NoError(t, products.Create(ctx, scope, &entity.RawProduct{ID: "rp-" + name, CompanyID: scope.CompanyID, Name: name, NameKey: name}))
	}
	add := func(id, product, cost string, date time.Time) {
		require.NoError(t, costs.Create(ctx, scope, &entity.CostHistory{
			ID: id, CompanyID: scope.CompanyID, RawProductID: product, Cost: decimal.RequireFromString(cost), Date: date,
		}))
	}
	add("c1", "rp-Apio", "3.00", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	add("c2", "rp-Apio", "3.50", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	add("c3", "rp-Apio", "4.00", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	add("c4", "rp-Zanahoria", "0", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	add("c5", "rp-Zanahoria", "2", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
}

func newUC(store *memory.Store, gen analytics.RawPriceSheetPDFGenerator) *analytics.PriceSheetUseCase {
	return analytics.NewPriceSheetUseCase(memory.NewPriceSheetRepository(store), memory.NewCompanyRepository(store), gen)
}

func TestGetRawPriceSheet(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)

	sheet, err := newUC(store, nil).GetRawPriceSheet(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, "Frutas A", sheet.CompanyName)
	require.Len(t, sheet.Items, 3)
	assert.Equal(t, []string{"Apio", "Betabel", "Zanahoria"}, []string{sheet.Items[0].Name, sheet.Items[1].Name, sheet.Items[2].Name})

	apio := sheet.Items[0]
	assert.Equal(t, 3, apio.EntryCount)
	assert.Equal(t, "2024-03-20", *apio.LatestDate)
	assert.Equal(t, "2024-03-10", *apio.PreviousDate)
	assert.True(t, decimal.RequireFromString("0.5").Equal(*apio.Change))
	assert.True(t, decimal.RequireFromString("14.29").Equal(*apio.ChangePercent))
	assert.True(t, decimal.RequireFromString("3.5").Equal(*apio.AverageCost))

	betabel := sheet.Items[1]
	assert.Zero(t, betabel.EntryCount)
	assert.Nil(t, betabel.LatestCost)
	assert.Nil(t, betabel.Change)

	zanahoria := sheet.Items[2]
	require.NotNil(t, zanahoria.Change)
	assert.Nil(t, zanahoria.ChangePercent, "sin porcentaje sobre un costo anterior de cero")
}

func TestGetRawPriceSheet_EmpresaInexistente(t *testing.T) {
	_, err := newUC(memory.NewStore(), nil).GetRawPriceSheet(context.Background(), tenant.Scope{CompanyID: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = newUC(memory.NewStore(), nil).GetRawPriceSheet(context.Background(), tenant.Scope{})
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestDownloadPDF(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	gen := &fakeSheetPDF{}

	b, name, err := newUC(store, gen).DownloadPDF(context.Background(), scope, true)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	assert.Contains(t, name, "hoja_precios_")
	assert.True(t, gen.opts.HidePrevious)
	assert.Contains(t, gen.opts.Title, "Hoja de precios")
}
