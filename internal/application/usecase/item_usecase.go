package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/costing"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

const maxCodeLen = 100

// ItemRepos repos que usa ItemUseCase.
type ItemRepos struct {
	Items          repository.ItemRepository
	RawProducts    repository.RawProductRepository
	Packaging      repository.PackagingRepository
	Costs          repository.CostHistoryRepository
	PackagingCosts repository.PackagingCostRepository
	Labor          repository.LaborCostRepository
}

// ItemUseCase ítems terminados y su costo total.
type ItemUseCase struct {
	r ItemRepos
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(r ItemRepos) *ItemUseCase {
	return &ItemUseCase{r: r}
}

// Create valida y crea el ítem. El empaque y cada materia prima deben ser de la empresa.
func (uc *ItemUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.ItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	it, err := uc.build(ctx, scope, in)
	if err != nil {
		return nil, err
	}
	it.ID = entity.NewID()
	it.CreatedAt = now
	it.UpdatedAt = now
	if err := uc.r.Items.Create(ctx, scope, it); err != nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// GetByID (nil, nil) si no existe en la empresa.
func (uc *ItemUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.ItemResponse, error) {
	it, err := uc.r.Items.GetByID(ctx, scope, id)
	if err != nil || it == nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// Update reemplaza todos los campos editables del ítem.
func (uc *ItemUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	cur, err := uc.r.Items.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNotFound
	}
	it, err := uc.build(ctx, scope, in)
	if err != nil {
		return nil, err
	}
	it.ID = cur.ID
	it.CreatedAt = cur.CreatedAt
	it.UpdatedAt = time.Now()
	if err := uc.r.Items.Update(ctx, scope, it); err != nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// List ítems por nombre; q busca en nombre y códigos.
func (uc *ItemUseCase) List(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.r.Items.List(ctx, scope, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}}, nil
}

// Delete borra el ítem.
func (uc *ItemUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.r.Items.Delete(ctx, scope, id)
}

// Cost calcula el costo total del ítem con los últimos costos conocidos a asOf (hoy si es cero).
// Las materias primas sin costo no cuentan; los componentes sin datos se listan en Missing.
func (uc *ItemUseCase) Cost(ctx context.Context, scope tenant.Scope, id string, asOf time.Time) (*dto.ItemCostResponse, error) {
	it, err := uc.r.Items.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	in := costing.Inputs{
		Designation:  it.Designation,
		CaseWeight:   it.CaseWeight,
		ProductYield: it.ProductYield,
		LaborHours:   it.LaborHours,
	}
	for _, rpID := range it.RawProductIDs {
		e, err := uc.r.Costs.Latest(ctx, scope, rpID, asOf)
		if err != nil {
			return nil, fmt.Errorf("costo materia prima %s: %w", rpID, err)
		}
		if e != nil {
			in.RawCosts = append(in.RawCosts, e.Cost)
		}
	}
	if in.Packaging, err = uc.r.PackagingCosts.Latest(ctx, scope, it.PackagingID, asOf); err != nil {
		return nil, fmt.Errorf("costo empaque: %w", err)
	}
	labor, err := uc.r.Labor.Latest(ctx, scope, asOf)
	if err != nil {
		return nil, fmt.Errorf("tarifa mano de obra: %w", err)
	}
	if labor != nil {
		in.LaborRate = &labor.Cost
	}

	b := costing.ItemCost(in)
	missing := b.Missing
	if missing == nil {
		missing = []string{}
	}
	return &dto.ItemCostResponse{
		ItemID:          it.ID,
		AsOf:            pricing.Day(asOf).Format(dto.DateLayout),
		RawProductCost:  b.RawProduct,
		PackagingCost:   b.Packaging,
		LaborCost:       b.Labor,
		TotalCost:       b.Total,
		RawProductsUsed: len(in.RawCosts),
		Missing:         missing,
	}, nil
}

// build valida la entrada y comprueba las referencias dentro de la empresa.
func (uc *ItemUseCase) build(ctx context.Context, scope tenant.Scope, in dto.ItemRequest) (*entity.Item, error) {
	name, _, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	code := textnorm.Clean(in.Code)
	if code == "" || len(code) > maxCodeLen {
		return nil, fmt.Errorf("%w: code es requerido (máx. %d)", domain.ErrInvalidInput, maxCodeLen)
	}
	alt := textnorm.Clean(in.AlternateCode)
	if len(alt) > maxCodeLen {
		return nil, fmt.Errorf("%w: alternate_code excede %d caracteres", domain.ErrInvalidInput, maxCodeLen)
	}
	unit := strings.ToLower(strings.TrimSpace(in.UnitOfWeight))
	if !slices.Contains(entity.UnitsOfWeight, unit) {
		return nil, fmt.Errorf("%w: unit_of_weight debe ser uno de %s", domain.ErrInvalidInput, strings.Join(entity.UnitsOfWeight, ", "))
	}
	designation := entity.DesignationFoodservice
	if s := strings.TrimSpace(in.Designation); s != "" {
		designation = entity.ItemDesignation(strings.ToLower(s))
	}
	if !designation.Valid() {
		return nil, fmt.Errorf("%w: item_designation inválido", domain.ErrInvalidInput)
	}

	if in.CaseWeight == nil || in.CaseWeight.IsNegative() {
		return nil, fmt.Errorf("%w: case_weight es requerido y no puede ser negativo", domain.ErrInvalidInput)
	}
	yield := decimal.NewFromInt(1)
	if in.ProductYield != nil {
		yield = *in.ProductYield
	}
	if !yield.IsPositive() || yield.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: product_yield debe estar en (0, 1]", domain.ErrInvalidInput)
	}
	hours := decimal.Zero
	if in.LaborHours != nil {
		hours = *in.LaborHours
	}
	if hours.IsNegative() {
		return nil, fmt.Errorf("%w: labor_hours no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, m := range []struct {
		field  string
		v      decimal.Decimal
		digits int32
	}{
		{"case_weight", *in.CaseWeight, 8},
		{"product_yield", yield, 2},
		{"labor_hours", hours, 4},
	} {
		if !fitsNumeric(m.v, m.digits, 4) {
			return nil, fmt.Errorf("%w: %s admite máx. %d enteros y 4 decimales", domain.ErrInvalidInput, m.field, m.digits)
		}
	}

	packagingID := strings.TrimSpace(in.PackagingID)
	if packagingID == "" {
		return nil, fmt.Errorf("%w: packaging_id es requerido", domain.ErrInvalidInput)
	}
	p, err := uc.r.Packaging.GetByID(ctx, scope, packagingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: packaging_id no existe en la empresa", domain.ErrInvalidInput)
	}

	var rawIDs []string
	for _, id := range in.RawProductIDs {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(rawIDs, id) {
			continue
		}
		rp, err := uc.r.RawProducts.GetByID(ctx, scope, id)
		if err != nil {
			return nil, err
		}
		if rp == nil {
			return nil, fmt.Errorf("%w: raw_product_id %s no existe en la empresa", domain.ErrInvalidInput, id)
		}
		rawIDs = append(rawIDs, id)
	}
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("%w: raw_product_ids requiere al menos una materia prima", domain.ErrInvalidInput)
	}

	return &entity.Item{
		CompanyID:     scope.CompanyID,
		Name:          name,
		Code:          code,
		AlternateCode: alt,
		UnitOfWeight:  unit,
		Designation:   designation,
		PackagingID:   p.ID,
		RawProductIDs: rawIDs,
		CaseWeight:    *in.CaseWeight,
		ProductYield:  yield,
		LaborHours:    hours,
	}, nil
}

// fitsNumeric informa si d cabe en una columna NUMERIC con esos dígitos enteros y decimales.
func fitsNumeric(d decimal.Decimal, intDigits, scale int32) bool {
	return d.Equal(d.Round(scale)) && d.Abs().LessThan(decimal.New(1, intDigits))
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Code:          it.Code,
		AlternateCode: it.AlternateCode,
		UnitOfWeight:  it.UnitOfWeight,
		Designation:   string(it.Designation),
		PackagingID:   it.PackagingID,
		RawProductIDs: slices.Clone(it.RawProductIDs),
		CaseWeight:    it.CaseWeight,
		ProductYield:  it.ProductYield,
		LaborHours:    it.LaborHours,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
