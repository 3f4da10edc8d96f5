package receiving_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	apppricing "github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/application/receiving"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

var (
	scopeA = tenant.Scope{CompanyID: "company-a"}
	scopeB = tenant.Scope{CompanyID: "company-b"}
	logAt  = time.Date(2024, 3, 31, 14, 0, 0, 0, time.UTC)
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func intPtr(n int) *int { return &n }

// fixture catálogo mínimo de una empresa: materia prima, marca, vendedor y productor.
type fixture struct {
	rawProductID string
	brandID      string
	sellerID     string
	growerID     string
}

type env struct {
	store     *memory.Store
	uc        *receiving.UseCase
	raw       *usecase.RawProductUseCase
	suppliers *usecase.SupplierUseCase
	companies *memory.CompanyRepo
}

func newEnv() *env {
	store := memory.NewStore()
	costs := memory.NewCostHistoryRepository(store)
	logs := memory.NewReceivingLogRepository(store)
	rawProducts := memory.NewRawProductRepository(store)
	brands := memory.NewBrandNameRepository(store)
	sellers := memory.NewSellerRepository(store)
	growers := memory.NewGrowerRepository(store)
	pricing := apppricing.NewUseCase(costs, logs, rawProducts, 30, nil)
	return &env{
		store:     store,
		uc:        receiving.NewUseCase(logs, rawProducts, brands, sellers, growers, pricing),
		raw:       usecase.NewRawProductUseCase(rawProducts, costs, memory.NewTxRunner(store)),
		suppliers: usecase.NewSupplierUseCase(brands, sellers, growers),
		companies: memory.NewCompanyRepository(store),
	}
}

func (e *env) seed(t *testing.T, scope tenant.Scope, product string) fixture {
	t.Helper()
	ctx := context.Background()
	rp, err := e.raw.Create(ctx, scope, dto.CreateRawProductRequest{Name: product})
	require.NoError(t, err)
	b, err := e.suppliers.CreateBrand(ctx, scope, dto.CreateSupplierRequest{Name: "Marca " + product})
	require.NoError(t, err)
	s, err := e.suppliers.CreateSeller(ctx, scope, dto.CreateSupplierRequest{Name: "Vendedor " + product})
	require.NoError(t, err)
	g, err := e.suppliers.CreateGrower(ctx, scope, dto.CreateGrowerRequest{Name: "Rancho " + product, City: "Culiacán", State: "Sinaloa"})
	require.NoError(t, err)
	return fixture{rawProductID: rp.ID, brandID: b.ID, sellerID: s.ID, growerID: g.ID}
}

func (e *env) addCost(t *testing.T, scope tenant.Scope, rawProductID, cost, date string) {
	t.Helper()
	_, err := e.raw.AddCost(context.Background(), scope, rawProductID, dto.AddCostRequest{Cost: dec(cost), Date: date})
	require.NoError(t, err)
}

func request(f fixture, price *decimal.Decimal) dto.CreateReceivingLogRequest {
	at := logAt
	return dto.CreateReceivingLogRequest{
		RawProductID:          f.rawProductID,
		PackSize:              dec("25"),
		PackSizeUnit:          "lb",
		BrandNameID:           f.brandID,
		QuantityReceived:      intPtr(40),
		SellerID:              f.sellerID,
		Temperature:           dec("38.5"),
		HoldOrUsed:            "used",
		GrowerOrDistributorID: f.growerID,
		CountryOfOrigin:       "México",
		ReceivedBy:            "Ana",
		ReceivedAt:            &at,
		PricePaid:             price,
	}
}

func TestReceiving_CreateClasificaContraMercado(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Tomate")
	e.addCost(t, scopeA, f.rawProductID, "10.00", "2024-03-20")
	e.addCost(t, scopeA, f.rawProductID, "12.00", "2024-03-25")

	out, err := e.uc.Create(ctx, scopeA, request(f, dec("11.00")))
	require.NoError(t, err)
	assert.Equal(t, "Tomate", out.RawProductName)
	assert.Equal(t, "Marca Tomate", out.BrandName)
	assert.Equal(t, "Rancho Tomate", out.GrowerOrDistributorName)
	require.NotNil(t, out.PriceComparison)
	assert.Equal(t, "below_market", out.PriceComparison.Classification)
	require.NotNil(t, out.PriceComparison.MarketCost)
	assert.True(t, dec("12").Equal(*out.PriceComparison.MarketCost))
	require.NotNil(t, out.PriceComparison.MarketCostDate)
	assert.Equal(t, "2024-03-25", *out.PriceComparison.MarketCostDate)
	assert.True(t, dec("-1").Equal(*out.PriceComparison.Delta))
	assert.True(t, dec("-8.33").Equal(*out.PriceComparison.Percentage))
}

func TestReceiving_SinPrecioYSinMercado(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Chile")

	noData, err := e.uc.Create(ctx, scopeA, request(f, dec("5")))
	require.NoError(t, err)
	assert.Equal(t, "no_market_data", noData.PriceComparison.Classification)

	noPrice, err := e.uc.Create(ctx, scopeA, request(f, nil))
	require.NoError(t, err)
	assert.Equal(t, "no_price", noPrice.PriceComparison.Classification)
}

func TestReceiving_CostoDeOtraEmpresaNoCuenta(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	fa := e.seed(t, scopeA, "Papaya")
	fb := e.seed(t, scopeB, "Papaya")
	e.addCost(t, scopeB, fb.rawProductID, "3.00", "2024-03-30")

	out, err := e.uc.Create(ctx, scopeA, request(fa, dec("4")))
	require.NoError(t, err)
	assert.Equal(t, "no_market_data", out.PriceComparison.Classification)
}

func TestReceiving_VentanaDe30Dias(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Mango")
	e.addCost(t, scopeA, f.rawProductID, "9.00", "2024-02-29") // 31 días antes

	out, err := e.uc.Create(ctx, scopeA, request(f, dec("9")))
	require.NoError(t, err)
	assert.Equal(t, "no_market_data", out.PriceComparison.Classification)

	e.addCost(t, scopeA, f.rawProductID, "9.00", "2024-03-01") // 30 días antes
	got, err := e.uc.Get(ctx, scopeA, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "at_market", got.PriceComparison.Classification)
}

func TestReceiving_ReferenciasDeOtraEmpresa(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	fa := e.seed(t, scopeA, "Uva")
	fb := e.seed(t, scopeB, "Uva")

	cases := map[string]func(*dto.CreateReceivingLogRequest){
		"raw_product_id":           func(r *dto.CreateReceivingLogRequest) { r.RawProductID = fb.rawProductID },
		"brand_name_id":            func(r *dto.CreateReceivingLogRequest) { r.BrandNameID = fb.brandID },
		"seller_id":                func(r *dto.CreateReceivingLogRequest) { r.SellerID = fb.sellerID },
		"grower_or_distributor_id": func(r *dto.CreateReceivingLogRequest) { r.GrowerOrDistributorID = fb.growerID },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := request(fa, nil)
			mutate(&in)
			_, err := e.uc.Create(ctx, scopeA, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestReceiving_Validaciones(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Kiwi")

	cases := map[string]func(*dto.CreateReceivingLogRequest){
		"pack_size cero":      func(r *dto.CreateReceivingLogRequest) { r.PackSize = dec("0") },
		"pack_size ausente":   func(r *dto.CreateReceivingLogRequest) { r.PackSize = nil },
		"unidad vacía":        func(r *dto.CreateReceivingLogRequest) { r.PackSizeUnit = " " },
		"cantidad negativa":   func(r *dto.CreateReceivingLogRequest) { r.QuantityReceived = intPtr(-1) },
		"hold_or_used":        func(r *dto.CreateReceivingLogRequest) { r.HoldOrUsed = "tirado" },
		"país vacío":          func(r *dto.CreateReceivingLogRequest) { r.CountryOfOrigin = "" },
		"precio negativo":     func(r *dto.CreateReceivingLogRequest) { r.PricePaid = dec("-1") },
		"precio 3 decimales":  func(r *dto.CreateReceivingLogRequest) { r.PricePaid = dec("1.005") },
		"precio 11 enteros":   func(r *dto.CreateReceivingLogRequest) { r.PricePaid = dec("10000000000") },
		"materia prima vacía": func(r *dto.CreateReceivingLogRequest) { r.RawProductID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := request(f, dec("1"))
			mutate(&in)
			_, err := e.uc.Create(ctx, scopeA, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestReceiving_UpdatePrice(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Pera")
	e.addCost(t, scopeA, f.rawProductID, "5.00", "2024-03-30")

	out, err := e.uc.Create(ctx, scopeA, request(f, nil))
	require.NoError(t, err)
	assert.Equal(t, "no_price", out.PriceComparison.Classification)

	up, err := e.uc.UpdatePrice(ctx, scopeA, out.ID, dto.UpdatePriceRequest{PricePaid: dec("6")})
	require.NoError(t, err)
	assert.Equal(t, "above_market", up.PriceComparison.Classification)
	assert.True(t, dec("20").Equal(*up.PriceComparison.Percentage))

	cleared, err := e.uc.UpdatePrice(ctx, scopeA, out.ID, dto.UpdatePriceRequest{})
	require.NoError(t, err)
	assert.Nil(t, cleared.PricePaid)
	assert.Equal(t, "no_price", cleared.PriceComparison.Classification)

	_, err = e.uc.UpdatePrice(ctx, scopeA, out.ID, dto.UpdatePriceRequest{PricePaid: dec("-2")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdatePrice(ctx, scopeA, out.ID, dto.UpdatePriceRequest{PricePaid: dec("6.125")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdatePrice(ctx, scopeA, out.ID, dto.UpdatePriceRequest{PricePaid: dec("10000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdatePrice(ctx, scopeB, out.ID, dto.UpdatePriceRequest{PricePaid: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiving_ListYAislamiento(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Naranja")
	for i := 0; i < 3; i++ {
		_, err := e.uc.Create(ctx, scopeA, request(f, nil))
		require.NoError(t, err)
	}

	list, err := e.uc.List(ctx, scopeA, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Page.Total)
	for _, it := range list.Items {
		assert.NotNil(t, it.PriceComparison)
	}

	other, err := e.uc.List(ctx, scopeB, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	_, err = e.uc.Get(ctx, scopeB, list.Items[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceiving_ProveedorEnUsoNoSeBorra(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Fresa")
	_, err := e.uc.Create(ctx, scopeA, request(f, nil))
	require.NoError(t, err)

	assert.ErrorIs(t, e.suppliers.DeleteBrand(ctx, scopeA, f.brandID), domain.ErrConflict)
	assert.ErrorIs(t, e.suppliers.DeleteSeller(ctx, scopeA, f.sellerID), domain.ErrConflict)
	assert.ErrorIs(t, e.suppliers.DeleteGrower(ctx, scopeA, f.growerID), domain.ErrConflict)

	libre, err := e.suppliers.CreateBrand(ctx, scopeA, dto.CreateSupplierRequest{Name: "Sin uso"})
	require.NoError(t, err)
	assert.NoError(t, e.suppliers.DeleteBrand(ctx, scopeA, libre.ID))
	assert.ErrorIs(t, e.suppliers.DeleteBrand(ctx, scopeA, libre.ID), domain.ErrNotFound)
}

// fakePDF registra lo que recibe y devuelve bytes fijos.
type fakePDF struct {
	company *entity.Company
	log     *dto.ReceivingLogResponse
	err     error
}

func (f *fakePDF) GenerateReceivingLogPDF(_ context.Context, company *entity.Company, log *dto.ReceivingLogResponse) ([]byte, error) {
	f.company, f.log = company, log
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestReceiving_PDF(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	require.NoError(t, e.companies.Create(ctx, &entity.Company{ID: scopeA.CompanyID, Name: "Frutas A", AdminEmail: "a@a.com"}))
	f := e.seed(t, scopeA, "Sandía")
	out, err := e.uc.Create(ctx, scopeA, request(f, dec("2")))
	require.NoError(t, err)

	gen := &fakePDF{}
	pdfUC := receiving.NewPDFUseCase(e.uc, e.companies, gen)

	b, name, err := pdfUC.Download(ctx, scopeA, out.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	assert.Contains(t, name, "recepcion_20240331_")
	assert.Equal(t, "Frutas A", gen.company.Name)
	require.NotNil(t, gen.log.PriceComparison)

	_, _, err = pdfUC.Download(ctx, scopeB, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gen.err = errors.New("sin fuente")
	_, _, err = pdfUC.Download(ctx, scopeA, out.ID)
	assert.Error(t, err)
}

func TestReceiving_DiaDeRecepcionDelCliente(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	f := e.seed(t, scopeA, "Mango")
	e.addCost(t, scopeA, f.rawProductID, "10", "2026-10-18")
	e.addCost(t, scopeA, f.rawProductID, "20", "2026-10-19")

	// 22:00 en UTC-5 ya es el 19 en UTC; el día de la recepción es el 18
	in := request(f, dec("10"))
	at := time.Date(2026, 10, 18, 22, 0, 0, 0, time.FixedZone("", -5*3600))
	in.ReceivedAt = &at

	out, err := e.uc.Create(ctx, scopeA, in)
	require.NoError(t, err)
	assert.Equal(t, "at_market", out.PriceComparison.Classification)
	require.NotNil(t, out.PriceComparison.MarketCostDate)
	assert.Equal(t, "2026-10-18", *out.PriceComparison.MarketCostDate)
	assert.True(t, out.ReceivedAt.Equal(at))
}
