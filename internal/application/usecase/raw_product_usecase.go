package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

const maxNameLen = 100

// RawProductUseCase casos de uso de materias primas y su historial de costos.
// El historial solo crece: no hay edición ni borrado de costos.
type RawProductUseCase struct {
	repo  repository.RawProductRepository
	costs repository.CostHistoryRepository
	tx    CatalogTxRunner
}

// NewRawProductUseCase construye el caso de uso.
func NewRawProductUseCase(repo repository.RawProductRepository, costs repository.CostHistoryRepository, tx CatalogTxRunner) *RawProductUseCase {
	return &RawProductUseCase{repo: repo, costs: costs, tx: tx}
}

// Create crea una materia prima. El nombre es único por empresa sin importar
// mayúsculas, tildes ni espacios. Si viene initial_cost se registra en la misma transacción.
func (uc *RawProductUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateRawProductRequest) (*dto.RawProductResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	var initial *entity.CostHistory
	now := time.Now()
	if in.InitialCost != nil {
		date, err := parseDateOr(in.CostDate, now)
		if err != nil {
			return nil, err
		}
		if err := validCost(*in.InitialCost); err != nil {
			return nil, err
		}
		initial = &entity.CostHistory{
			ID:        entity.NewID(),
			CompanyID: scope.CompanyID,
			Cost:      *in.InitialCost,
			Date:      date,
			CreatedAt: now,
		}
	}

	existing, err := uc.repo.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	p := &entity.RawProduct{
		ID:        entity.NewID(),
		CompanyID: scope.CompanyID,
		Name:      name,
		NameKey:   key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.RunCatalog(ctx, func(products repository.RawProductRepository, costs repository.CostHistoryRepository) error {
		if err := products.Create(ctx, scope, p); err != nil {
			return err
		}
		if initial == nil {
			return nil
		}
		initial.RawProductID = p.ID
		return costs.Create(ctx, scope, initial)
	})
	if err != nil {
		return nil, err
	}
	return toRawProductResponse(p), nil
}

// GetByID obtiene una materia prima de la empresa. (nil, nil) si no existe.
func (uc *RawProductUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.RawProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toRawProductResponse(p), nil
}

// Update renombra una materia prima; misma regla de unicidad que Create.
func (uc *RawProductUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateRawProductRequest) (*dto.RawProductResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.repo.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != p.ID {
		return nil, domain.ErrDuplicate
	}
	p.Name = name
	p.NameKey = key
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, scope, p); err != nil {
		return nil, err
	}
	return toRawProductResponse(p), nil
}

// List lista materias primas por nombre con búsqueda q.
func (uc *RawProductUseCase) List(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.RawProductListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, scope, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toRawProductResponse(p))
	}
	return &dto.RawProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// AddCost registra un costo de mercado observado (cost >= 0, fecha YYYY-MM-DD).
func (uc *RawProductUseCase) AddCost(ctx context.Context, scope tenant.Scope, rawProductID string, in dto.AddCostRequest) (*dto.CostEntryResponse, error) {
	if in.Cost == nil {
		return nil, fmt.Errorf("%w: cost es requerido", domain.ErrInvalidInput)
	}
	if err := validCost(*in.Cost); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date es requerido (YYYY-MM-DD)", domain.ErrInvalidInput)
	}
	date, err := parseDateOr(in.Date, time.Time{})
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, scope, rawProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	e := &entity.CostHistory{
		ID:           entity.NewID(),
		CompanyID:    scope.CompanyID,
		RawProductID: p.ID,
		Cost:         *in.Cost,
		Date:         date,
		CreatedAt:    time.Now(),
	}
	if err := uc.costs.Create(ctx, scope, e); err != nil {
		return nil, err
	}
	out := toCostEntryResponse(e)
	return &out, nil
}

// ListCosts historial de costos de la materia prima (fecha desc).
func (uc *RawProductUseCase) ListCosts(ctx context.Context, scope tenant.Scope, rawProductID string, page dto.PageRequest) (*dto.CostHistoryResponse, error) {
	page.DefaultPage()
	p, err := uc.repo.GetByID(ctx, scope, rawProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.costs.ListByRawProduct(ctx, scope, p.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CostEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toCostEntryResponse(e))
	}
	return &dto.CostHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func validName(raw string) (name, key string, err error) {
	name = textnorm.Clean(raw)
	if name == "" || len(name) > maxNameLen {
		return "", "", fmt.Errorf("%w: name es requerido (máx. %d)", domain.ErrInvalidInput, maxNameLen)
	}
	return name, textnorm.Key(name), nil
}

func validCost(c decimal.Decimal) error {
	return validAmount("cost", c)
}

// validAmount importe >= 0 que quepa en NUMERIC(12,2).
func validAmount(field string, c decimal.Decimal) error {
	if c.IsNegative() {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	if !pricing.ValidAmount(c) {
		return fmt.Errorf("%w: %s admite máx. %d enteros y %d decimales", domain.ErrInvalidInput, field, pricing.MaxAmountDigits, pricing.MaxAmountScale)
	}
	return nil
}

// parseDateOr interpreta YYYY-MM-DD; vacío devuelve def truncado al día.
func parseDateOr(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return pricing.Day(def), nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida, formato YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func toRawProductResponse(p *entity.RawProduct) *dto.RawProductResponse {
	return &dto.RawProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toCostEntryResponse(e *entity.CostHistory) dto.CostEntryResponse {
	return dto.CostEntryResponse{
		ID:           e.ID,
		RawProductID: e.RawProductID,
		Cost:         e.Cost,
		Date:         pricing.Day(e.Date).Format(dto.DateLayout),
		CreatedAt:    e.CreatedAt,
	}
}
