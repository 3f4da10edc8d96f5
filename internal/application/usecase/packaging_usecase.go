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
)

// PackagingUseCase empaques con su historial de costos y tarifas de mano de obra.
// Ambos historiales solo crecen.
type PackagingUseCase struct {
	repo  repository.PackagingRepository
	costs repository.PackagingCostRepository
	labor repository.LaborCostRepository
	tx    PackagingTxRunner
}

// NewPackagingUseCase construye el caso de uso.
func NewPackagingUseCase(
	repo repository.PackagingRepository,
	costs repository.PackagingCostRepository,
	labor repository.LaborCostRepository,
	tx PackagingTxRunner,
) *PackagingUseCase {
	return &PackagingUseCase{repo: repo, costs: costs, labor: labor, tx: tx}
}

// Create crea un empaque con nombre único por empresa; initial_cost va en la misma transacción.
func (uc *PackagingUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreatePackagingRequest) (*dto.PackagingResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var initial *entity.PackagingCost
	if in.InitialCost != nil {
		if initial, err = buildPackagingCost(scope, "", *in.InitialCost, now); err != nil {
			return nil, err
		}
	}
	existing, err := uc.repo.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	p := &entity.Packaging{ID: entity.NewID(), CompanyID: scope.CompanyID, Name: name, NameKey: key, CreatedAt: now}
	err = uc.tx.RunPackaging(ctx, func(packaging repository.PackagingRepository, costs repository.PackagingCostRepository) error {
		if err := packaging.Create(ctx, scope, p); err != nil {
			return err
		}
		if initial == nil {
			return nil
		}
		initial.PackagingID = p.ID
		return costs.Create(ctx, scope, initial)
	})
	if err != nil {
		return nil, err
	}
	return toPackagingResponse(p), nil
}

// GetByID (nil, nil) si no existe en la empresa.
func (uc *PackagingUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.PackagingResponse, error) {
	p, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil || p == nil {
		return nil, err
	}
	return toPackagingResponse(p), nil
}

// List empaques por nombre.
func (uc *PackagingUseCase) List(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.PackagingListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, scope, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPackagingResponse(p))
	}
	return &dto.PackagingListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}, nil
}

// Delete borra el empaque y su historial. domain.ErrConflict si algún ítem lo usa.
func (uc *PackagingUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.repo.Delete(ctx, scope, id)
}

// AddCost registra un costo de empaque (date requerido).
func (uc *PackagingUseCase) AddCost(ctx context.Context, scope tenant.Scope, packagingID string, in dto.PackagingCostInput) (*dto.PackagingCostResponse, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, fmt.Errorf("%w: date es requerido (YYYY-MM-DD)", domain.ErrInvalidInput)
	}
	p, err := uc.repo.GetByID(ctx, scope, packagingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c, err := buildPackagingCost(scope, p.ID, in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.costs.Create(ctx, scope, c); err != nil {
		return nil, err
	}
	out := toPackagingCostResponse(c)
	return &out, nil
}

// ListCosts historial del empaque (fecha desc).
func (uc *PackagingUseCase) ListCosts(ctx context.Context, scope tenant.Scope, packagingID string, page dto.PageRequest) (*dto.PackagingCostHistoryResponse, error) {
	page.DefaultPage()
	p, err := uc.repo.GetByID(ctx, scope, packagingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	list, total, err := uc.costs.ListByPackaging(ctx, scope, p.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackagingCostResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toPackagingCostResponse(c))
	}
	return &dto.PackagingCostHistoryResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}, nil
}

// AddLaborCost registra la tarifa por hora vigente desde date (hoy si viene vacío).
func (uc *PackagingUseCase) AddLaborCost(ctx context.Context, scope tenant.Scope, in dto.AddCostRequest) (*dto.LaborCostResponse, error) {
	if in.Cost == nil {
		return nil, fmt.Errorf("%w: cost es requerido", domain.ErrInvalidInput)
	}
	if err := validCost(*in.Cost); err != nil {
		return nil, err
	}
	now := time.Now()
	date, err := parseDateOr(in.Date, now)
	if err != nil {
		return nil, err
	}
	c := &entity.LaborCost{ID: entity.NewID(), CompanyID: scope.CompanyID, Cost: *in.Cost, Date: date, CreatedAt: now}
	if err := uc.labor.Create(ctx, scope, c); err != nil {
		return nil, err
	}
	out := toLaborCostResponse(c)
	return &out, nil
}

// ListLaborCosts tarifas de la empresa (fecha desc).
func (uc *PackagingUseCase) ListLaborCosts(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.LaborCostListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.labor.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LaborCostResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toLaborCostResponse(c))
	}
	return &dto.LaborCostListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}, nil
}

// buildPackagingCost valida los cuatro componentes (requeridos, >= 0, NUMERIC(12,2)).
func buildPackagingCost(scope tenant.Scope, packagingID string, in dto.PackagingCostInput, now time.Time) (*entity.PackagingCost, error) {
	fields := []struct {
		name string
		v    *decimal.Decimal
	}{
		{"box_cost", in.BoxCost},
		{"bag_cost", in.BagCost},
		{"tray_andor_chemical_cost", in.TrayAndOrChemicalCost},
		{"label_andor_tape_cost", in.LabelAndOrTapeCost},
	}
	for _, f := range fields {
		if f.v == nil {
			return nil, fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, f.name)
		}
		if err := validAmount(f.name, *f.v); err != nil {
			return nil, err
		}
	}
	date, err := parseDateOr(in.Date, now)
	if err != nil {
		return nil, err
	}
	return &entity.PackagingCost{
		ID:                    entity.NewID(),
		CompanyID:             scope.CompanyID,
		PackagingID:           packagingID,
		BoxCost:               *in.BoxCost,
		BagCost:               *in.BagCost,
		TrayAndOrChemicalCost: *in.TrayAndOrChemicalCost,
		LabelAndOrTapeCost:    *in.LabelAndOrTapeCost,
		Date:                  date,
		CreatedAt:             now,
	}, nil
}

func toPackagingResponse(p *entity.Packaging) *dto.PackagingResponse {
	return &dto.PackagingResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toPackagingCostResponse(c *entity.PackagingCost) dto.PackagingCostResponse {
	return dto.PackagingCostResponse{
		ID:                    c.ID,
		PackagingID:           c.PackagingID,
		BoxCost:               c.BoxCost,
		BagCost:               c.BagCost,
		TrayAndOrChemicalCost: c.TrayAndOrChemicalCost,
		LabelAndOrTapeCost:    c.LabelAndOrTapeCost,
		Total:                 c.Total(),
		Date:                  pricing.Day(c.Date).Format(dto.DateLayout),
		CreatedAt:             c.CreatedAt,
	}
}

func toLaborCostResponse(c *entity.LaborCost) dto.LaborCostResponse {
	return dto.LaborCostResponse{
		ID:        c.ID,
		Cost:      c.Cost,
		Date:      pricing.Day(c.Date).Format(dto.DateLayout),
		CreatedAt: c.CreatedAt,
	}
}
