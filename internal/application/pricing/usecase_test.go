package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppricing "github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

var (
	scopeA = tenant.Scope{CompanyID: "company-a"}
	scopeB = tenant.Scope{CompanyID: "company-b"}
	asOf   = time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
)

type env struct {
	store *memory.Store
	uc    *apppricing.UseCase
}

func newEnv(windowDays int) *env {
	store := memory.NewStore()
	uc := apppricing.NewUseCase(
		memory.NewCostHistoryRepository(store),
		memory.NewReceivingLogRepository(store),
		memory.NewRawProductRepository(store),
		windowDays,
		nil,
	)
	return &env{store: store, uc: uc}
}

func (e *env) product(t *testing.T, scope tenant.Scope, id string) {
	t.Helper()
	require.NoError(t, memory.NewRawProductRepository(e.store).Create(context.Background(), scope, &entity.RawProduct{
		ID: id, CompanyID: scope.CompanyID, Name: id, NameKey: id,
	}))
}

func (e *env) cost(t *testing.T, scope tenant.Scope, id, product, cost string, date time.Time) {
	t.Helper()
	require.NoError(t, memory.NewCostHistoryRepository(e.store).Create(context.Background(), scope, &entity.CostHistory{
		ID: id, CompanyID: scope.CompanyID, RawProductID: product, Cost: decimal.RequireFromString(cost), Date: date,
	}))
}

func (e *env) receivingLog(t *testing.T, scope tenant.Scope, id, product string, price *decimal.Decimal) {
	t.Helper()
	require.NoError(t, memory.NewReceivingLogRepository(e.store).Create(context.Background(), scope, &entity.ReceivingLog{
		ID: id, CompanyID: scope.CompanyID, RawProductID: product, ReceivedAt: asOf, PricePaid: price,
		PackSize: decimal.NewFromInt(1), HoldOrUsed: entity.ReceivingUsed,
	}))
}

func day(n int) time.Time { return time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -n) }

func TestGetMasterCustomerPrice_AislamientoPorEmpresa(t *testing.T) {
	ctx := context.Background()
	e := newEnv(30)
	e.product(t, scopeA, "rp-a")
	e.product(t, scopeB, "rp-b")
	e.cost(t, scopeB, "c-b", "rp-b", "1.00", day(0))

	mc, err := e.uc.GetMasterCustomerPrice(ctx, scopeA, "rp-b", asOf)
	require.NoError(t, err)
	assert.Nil(t, mc, "una empresa nunca ve costos de otra")

	mc, err = e.uc.GetMasterCustomerPrice(ctx, scopeB, "rp-b", asOf)
	require.NoError(t, err)
	require.NotNil(t, mc)
	assert.Equal(t, "c-b", mc.EntryID)
}

func TestGetMasterCustomerPrice_SinTenant(t *testing.T) {
	_, err := newEnv(30).uc.GetMasterCustomerPrice(context.Background(), tenant.Scope{}, "rp", asOf)
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestGetMasterCustomerPrice_VentanaConfigurable(t *testing.T) {
	ctx := context.Background()
	e := newEnv(7)
	e.product(t, scopeA, "rp-a")
	e.cost(t, scopeA, "c-1", "rp-a", "2.00", day(8))

	mc, err := e.uc.GetMasterCustomerPrice(ctx, scopeA, "rp-a", asOf)
	require.NoError(t, err)
	assert.Nil(t, mc)

	e.cost(t, scopeA, "c-2", "rp-a", "3.00", day(7))
	mc, err = e.uc.GetMasterCustomerPrice(ctx, scopeA, "rp-a", asOf)
	require.NoError(t, err)
	require.NotNil(t, mc)
	assert.Equal(t, "c-2", mc.EntryID)
	assert.Equal(t, 7, e.uc.WindowDays())
}

func TestNewUseCase_VentanaPorDefecto(t *testing.T) {
	assert.Equal(t, 30, newEnv(0).uc.WindowDays())
}

func TestGetMarketCost(t *testing.T) {
	ctx := context.Background()
	e := newEnv(30)
	e.product(t, scopeA, "rp-a")
	e.cost(t, scopeA, "c-1", "rp-a", "4.10", day(3))

	out, err := e.uc.GetMarketCost(ctx, scopeA, "rp-a", asOf)
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, "2024-03-01", out.WindowStart)
	assert.Equal(t, "2024-03-31", out.WindowEnd)
	require.NotNil(t, out.Date)
	assert.Equal(t, "2024-03-28", *out.Date)

	_, err = e.uc.GetMarketCost(ctx, scopeB, "rp-a", asOf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPriceComparison(t *testing.T) {
	ctx := context.Background()
	e := newEnv(30)
	e.product(t, scopeA, "rp-a")
	e.cost(t, scopeA, "c-1", "rp-a", "10", day(1))
	price := decimal.RequireFromString("10")
	e.receivingLog(t, scopeA, "log-1", "rp-a", &price)

	out, err := e.uc.GetPriceComparison(ctx, scopeA, "log-1")
	require.NoError(t, err)
	assert.Equal(t, "at_market", out.Classification)
	assert.True(t, out.Delta.IsZero())

	_, err = e.uc.GetPriceComparison(ctx, scopeB, "log-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDebug(t *testing.T) {
	ctx := context.Background()
	e := newEnv(30)
	e.product(t, scopeA, "rp-a")
	e.cost(t, scopeA, "c-old", "rp-a", "7", day(40))
	e.cost(t, scopeA, "c-1", "rp-a", "8", day(10))
	e.cost(t, scopeA, "c-2", "rp-a", "9", day(2))
	price := decimal.RequireFromString("8.10")
	e.receivingLog(t, scopeA, "log-1", "rp-a", &price)

	out, err := e.uc.Debug(ctx, scopeA, "log-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", out.LogDate)
	assert.Equal(t, "2024-03-01", out.SearchWindowStart)
	assert.Len(t, out.AllCostHistory, 3)
	require.Len(t, out.RelevantCostHistory, 2)
	assert.Equal(t, "c-2", out.RelevantCostHistory[0].ID)
	require.NotNil(t, out.RelevantCostHistory[0].DaysBeforeLog)
	assert.Equal(t, 2, *out.RelevantCostHistory[0].DaysBeforeLog)
	require.NotNil(t, out.MarketCostUsed)
	assert.True(t, decimal.NewFromInt(9).Equal(*out.MarketCostUsed))
	assert.Equal(t, "below_market", out.Comparison.Classification)
}
