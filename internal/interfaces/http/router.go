package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	"github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/application/receiving"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	RawProductUC *usecase.RawProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	PackagingUC  *usecase.PackagingUseCase
	ItemUC       *usecase.ItemUseCase
	APIKeyUC     *usecase.APIKeyUseCase
	PricingUC    *pricing.UseCase
	ReceivingUC  *receiving.UseCase
	ReceivingPDF *receiving.PDFUseCase
	PriceSheetUC *analytics.PriceSheetUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas de tenant: JWT o llave de dispositivo
	var keys APIKeyAuthenticator
	if deps.APIKeyUC != nil {
		keys = deps.APIKeyUC
	}
	tenantAuth := AuthMiddleware(deps.JWTSecret, keys)

	// Companies: el alta es pública (onboarding); la lectura solo ve la empresa propia
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", tenantAuth, companyHandler.List)
	companies.Get("/:id", tenantAuth, companyHandler.GetByID)

	rawProducts := api.Group("/raw-products", tenantAuth)
	rawProductHandler := NewRawProductHandler(deps.RawProductUC, deps.PricingUC)
	rawProducts.Get("/", rawProductHandler.List)
	rawProducts.Post("/", rawProductHandler.Create)
	rawProducts.Get("/:id", rawProductHandler.GetByID)
	rawProducts.Put("/:id", rawProductHandler.Update)
	rawProducts.Get("/:id/costs", rawProductHandler.ListCosts)
	rawProducts.Post("/:id/costs", rawProductHandler.AddCost)
	rawProducts.Get("/:id/market-cost", rawProductHandler.MarketCost)

	priceSheet := api.Group("/raw-price-sheet", tenantAuth)
	priceSheetHandler := NewPriceSheetHandler(deps.PriceSheetUC)
	priceSheet.Get("/", priceSheetHandler.Get)
	priceSheet.Get("/pdf", priceSheetHandler.DownloadPDF)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	brands := api.Group("/brand-names", tenantAuth)
	brands.Get("/", supplierHandler.ListBrands)
	brands.Post("/", supplierHandler.CreateBrand)
	brands.Delete("/:id", supplierHandler.DeleteBrand)

	sellers := api.Group("/sellers", tenantAuth)
	sellers.Get("/", supplierHandler.ListSellers)
	sellers.Post("/", supplierHandler.CreateSeller)
	sellers.Delete("/:id", supplierHandler.DeleteSeller)

	growers := api.Group("/growers-distributors", tenantAuth)
	growers.Get("/", supplierHandler.ListGrowers)
	growers.Post("/", supplierHandler.CreateGrower)
	growers.Delete("/:id", supplierHandler.DeleteGrower)

	packaging := api.Group("/packaging", tenantAuth)
	packagingHandler := NewPackagingHandler(deps.PackagingUC)
	packaging.Get("/", packagingHandler.List)
	packaging.Post("/", packagingHandler.Create)
	packaging.Get("/:id", packagingHandler.GetByID)
	packaging.Delete("/:id", packagingHandler.Delete)
	packaging.Get("/:id/costs", packagingHandler.ListCosts)
	packaging.Post("/:id/costs", packagingHandler.AddCost)

	labor := api.Group("/labor-costs", tenantAuth)
	labor.Get("/", packagingHandler.ListLaborCosts)
	labor.Post("/", packagingHandler.AddLaborCost)

	items := api.Group("/items", tenantAuth)
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/cost", itemHandler.Cost)

	logs := api.Group("/receiving-logs", tenantAuth)
	receivingHandler := NewReceivingLogHandler(deps.ReceivingUC, deps.PricingUC, deps.ReceivingPDF)
	logs.Get("/", receivingHandler.List)
	logs.Post("/", receivingHandler.Create)
	logs.Get("/:id", receivingHandler.GetByID)
	logs.Patch("/:id/price", receivingHandler.UpdatePrice)
	logs.Get("/:id/price-comparison", receivingHandler.PriceComparison)
	logs.Get("/:id/price-comparison/debug", receivingHandler.PriceComparisonDebug)
	logs.Get("/:id/pdf", receivingHandler.DownloadPDF)

	// Llaves de dispositivo: solo usuarios con JWT
	apiKeys := api.Group("/api-keys", tenantAuth, RequireUser())
	apiKeyHandler := NewAPIKeyHandler(deps.APIKeyUC)
	apiKeys.Get("/", apiKeyHandler.List)
	apiKeys.Post("/", apiKeyHandler.Create)
	apiKeys.Post("/:id/revoke", apiKeyHandler.Revoke)
	apiKeys.Post("/:id/activate", apiKeyHandler.Activate)
	apiKeys.Delete("/:id", apiKeyHandler.Delete)
}
