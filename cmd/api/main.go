package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/producepricer-api/docs"
	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	apppricing "github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/application/receiving"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/producepricer-api/internal/infrastructure/pdf"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/producepricer-api/internal/interfaces/http"
	"github.com/jhoicas/producepricer-api/pkg/apikey"
	"github.com/jhoicas/producepricer-api/pkg/config"
	"github.com/jhoicas/producepricer-api/pkg/logger"
)

// @title           ProducePricer API
// @version         1.0
// @description     Recepción de materia prima, historial de costos de mercado y comparación de precios por empresa.
// @BasePath        /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Bearer <jwt>" o "Bearer <llave de dispositivo>"

// repos adaptadores de persistencia según STORAGE_DRIVER.
type repos struct {
	companies   repository.CompanyRepository
	rawProducts repository.RawProductRepository
	costs       repository.CostHistoryRepository
	logs        repository.ReceivingLogRepository
	brands      repository.BrandNameRepository
	sellers     repository.SellerRepository
	growers     repository.GrowerRepository
	apiKeys     repository.APIKeyRepository
	priceSheet  repository.PriceSheetRepository
	packaging   repository.PackagingRepository
	packCosts   repository.PackagingCostRepository
	labor       repository.LaborCostRepository
	items       repository.ItemRepository
	tx          txRunner
}

// txRunner ambos adaptadores implementan las dos transacciones.
type txRunner interface {
	usecase.CatalogTxRunner
	usecase.PackagingTxRunner
}

func postgresRepos(pool *pgxpool.Pool) repos {
	return repos{
		companies:   postgres.NewCompanyRepository(pool),
		rawProducts: postgres.NewRawProductRepository(pool),
		costs:       postgres.NewCostHistoryRepository(pool),
		logs:        postgres.NewReceivingLogRepository(pool),
		brands:      postgres.NewBrandNameRepository(pool),
		sellers:     postgres.NewSellerRepository(pool),
		growers:     postgres.NewGrowerRepository(pool),
		apiKeys:     postgres.NewAPIKeyRepository(pool),
		priceSheet:  postgres.NewPriceSheetRepository(pool),
		packaging:   postgres.NewPackagingRepository(pool),
		packCosts:   postgres.NewPackagingCostRepository(pool),
		labor:       postgres.NewLaborCostRepository(pool),
		items:       postgres.NewItemRepository(pool),
		tx:          postgres.NewTxRunner(pool),
	}
}

func memoryRepos() repos {
	store := memory.NewStore()
	return repos{
		companies:   memory.NewCompanyRepository(store),
		rawProducts: memory.NewRawProductRepository(store),
		costs:       memory.NewCostHistoryRepository(store),
		logs:        memory.NewReceivingLogRepository(store),
		brands:      memory.NewBrandNameRepository(store),
		sellers:     memory.NewSellerRepository(store),
		growers:     memory.NewGrowerRepository(store),
		apiKeys:     memory.NewAPIKeyRepository(store),
		priceSheet:  memory.NewPriceSheetRepository(store),
		packaging:   memory.NewPackagingRepository(store),
		packCosts:   memory.NewPackagingCostRepository(store),
		labor:       memory.NewLaborCostRepository(store),
		items:       memory.NewItemRepository(store),
		tx:          memory.NewTxRunner(store),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Int("pricing_window_days", cfg.Pricing.WindowDays).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var r repos
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		r = memoryRepos()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = postgresRepos(pool)
	}

	pricingUC := apppricing.NewUseCase(r.costs, r.logs, r.rawProducts, cfg.Pricing.WindowDays, log)
	receivingUC := receiving.NewUseCase(r.logs, r.rawProducts, r.brands, r.sellers, r.growers, pricingUC)

	// PDF: comprobante de recepción y hoja de precios
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.DisplayName)

	deps := httpRouter.RouterDeps{
		CompanyUC:    usecase.NewCompanyUseCase(r.companies),
		RawProductUC: usecase.NewRawProductUseCase(r.rawProducts, r.costs, r.tx),
		SupplierUC:   usecase.NewSupplierUseCase(r.brands, r.sellers, r.growers),
		APIKeyUC:     usecase.NewAPIKeyUseCase(r.apiKeys, apikey.DefaultCost, log),
		PricingUC:    pricingUC,
		ReceivingUC:  receivingUC,
		ReceivingPDF: receiving.NewPDFUseCase(receivingUC, r.companies, pdfGenerator),
		PriceSheetUC: analytics.NewPriceSheetUseCase(r.priceSheet, r.companies, pdfGenerator),
		PackagingUC:  usecase.NewPackagingUseCase(r.packaging, r.packCosts, r.labor, r.tx),
		ItemUC: usecase.NewItemUseCase(usecase.ItemRepos{
			Items:          r.items,
			RawProducts:    r.rawProducts,
			Packaging:      r.packaging,
			Costs:          r.costs,
			PackagingCosts: r.packCosts,
			Labor:          r.labor,
		}),
		JWTSecret:    cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ProducePricer API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
