// migrate aplica el esquema embebido en PostgreSQL.
//
// Uso: go run ./cmd/migrate [-seed] [-email admin@demo.test]
// Con -seed crea (o reutiliza) una empresa demo con un catálogo mínimo e imprime
// un JWT de desarrollo para ella.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/postgres"
	"github.com/jhoicas/producepricer-api/pkg/config"
	"github.com/jhoicas/producepricer-api/pkg/jwt"
	"github.com/jhoicas/producepricer-api/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "crear empresa demo e imprimir un JWT de desarrollo")
	email := flag.String("email", "admin@demo.test", "email de administración de la empresa demo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	log.Info().Strs("applied", applied).Msg("esquema al día")

	if !*seed {
		return
	}
	token, err := seedDemo(ctx, pool, cfg, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("seed fallido")
	}
	fmt.Println(token)
}

// seedDemo crea la empresa y su catálogo si no existen y devuelve un JWT para ella.
func seedDemo(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, email string) (string, error) {
	companyRepo := postgres.NewCompanyRepository(pool)
	companies := usecase.NewCompanyUseCase(companyRepo)

	company, err := companyRepo.GetByAdminEmail(ctx, email)
	if err != nil {
		return "", err
	}
	var companyID string
	if company != nil {
		companyID = company.ID
	} else {
		out, err := companies.Create(ctx, dto.CreateCompanyRequest{Name: "Demo Produce", AdminEmail: email})
		if err != nil {
			return "", err
		}
		companyID = out.ID
	}
	scope, err := tenant.New(companyID)
	if err != nil {
		return "", err
	}

	if err := seedCatalog(ctx, pool, scope); err != nil {
		return "", err
	}
	return jwt.Generate(cfg.JWT.Secret, cfg.JWT.Issuer, jwt.Identity{
		UserID:    "seed-admin",
		CompanyID: companyID,
		Role:      "admin",
	}, cfg.JWT.Expiration)
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, scope tenant.Scope) error {
	rawProducts := usecase.NewRawProductUseCase(
		postgres.NewRawProductRepository(pool),
		postgres.NewCostHistoryRepository(pool),
		postgres.NewTxRunner(pool),
	)
	suppliers := usecase.NewSupplierUseCase(
		postgres.NewBrandNameRepository(pool),
		postgres.NewSellerRepository(pool),
		postgres.NewGrowerRepository(pool),
	)
	today := time.Now().Format(dto.DateLayout)
	for name, cost := range map[string]string{"Tomate Roma": "12.00", "Cebolla Blanca": "8.50", "Jalapeño": "15.25"} {
		c := decimal.RequireFromString(cost)
		if _, err := rawProducts.Create(ctx, scope, dto.CreateRawProductRequest{Name: name, InitialCost: &c, CostDate: today}); ignoreDup(err) != nil {
			return err
		}
	}
	if _, err := suppliers.CreateBrand(ctx, scope, dto.CreateSupplierRequest{Name: "Sol del Valle"}); ignoreDup(err) != nil {
		return err
	}
	if _, err := suppliers.CreateSeller(ctx, scope, dto.CreateSupplierRequest{Name: "Mercado Central"}); ignoreDup(err) != nil {
		return err
	}
	_, err := suppliers.CreateGrower(ctx, scope, dto.CreateGrowerRequest{Name: "Rancho Verde", City: "Culiacán", State: "Sinaloa"})
	return ignoreDup(err)
}

func ignoreDup(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	return err
}
