package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

// SupplierUseCase catálogos que alimentan los logs de recepción: marcas, vendedores
// y productores/distribuidores.
type SupplierUseCase struct {
	brands  repository.BrandNameRepository
	sellers repository.SellerRepository
	growers repository.GrowerRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(brands repository.BrandNameRepository, sellers repository.SellerRepository, growers repository.GrowerRepository) *SupplierUseCase {
	return &SupplierUseCase{brands: brands, sellers: sellers, growers: growers}
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// CreateBrand crea una marca; domain.ErrDuplicate si el nombre ya existe en la empresa.
func (uc *SupplierUseCase) CreateBrand(ctx context.Context, scope tenant.Scope, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	existing, err := uc.brands.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	b := &entity.BrandName{ID: entity.NewID(), CompanyID: scope.CompanyID, Name: name, NameKey: key, CreatedAt: time.Now()}
	if err := uc.brands.Create(ctx, scope, b); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt}, nil
}

// ListBrands marcas por nombre.
func (uc *SupplierUseCase) ListBrands(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.brands.List(ctx, scope, toFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, b := range list {
		items = append(items, dto.SupplierResponse{ID: b.ID, Name: b.Name, CreatedAt: b.CreatedAt})
	}
	return &dto.SupplierListResponse{Items: items, Page: toPage(page, total)}, nil
}

// DeleteBrand borra una marca sin recepciones asociadas.
func (uc *SupplierUseCase) DeleteBrand(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.brands.Delete(ctx, scope, id)
}

// ── Vendedores ────────────────────────────────────────────────────────────────

// CreateSeller crea un vendedor; domain.ErrDuplicate si el nombre ya existe en la empresa.
func (uc *SupplierUseCase) CreateSeller(ctx context.Context, scope tenant.Scope, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	existing, err := uc.sellers.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	s := &entity.Seller{ID: entity.NewID(), CompanyID: scope.CompanyID, Name: name, NameKey: key, CreatedAt: time.Now()}
	if err := uc.sellers.Create(ctx, scope, s); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt}, nil
}

// ListSellers vendedores por nombre.
func (uc *SupplierUseCase) ListSellers(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.sellers.List(ctx, scope, toFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.SupplierResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt})
	}
	return &dto.SupplierListResponse{Items: items, Page: toPage(page, total)}, nil
}

// DeleteSeller borra un vendedor sin recepciones asociadas.
func (uc *SupplierUseCase) DeleteSeller(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.sellers.Delete(ctx, scope, id)
}

// ── Productores / distribuidores ──────────────────────────────────────────────

// CreateGrower crea un productor/distribuidor. Ciudad y estado son obligatorios.
func (uc *SupplierUseCase) CreateGrower(ctx context.Context, scope tenant.Scope, in dto.CreateGrowerRequest) (*dto.GrowerResponse, error) {
	name, key, err := validName(in.Name)
	if err != nil {
		return nil, err
	}
	city, state := textnorm.Clean(in.City), textnorm.Clean(in.State)
	if city == "" || state == "" {
		return nil, fmt.Errorf("%w: city y state son requeridos", domain.ErrInvalidInput)
	}
	existing, err := uc.growers.GetByNameKey(ctx, scope, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	g := &entity.GrowerOrDistributor{
		ID:        entity.NewID(),
		CompanyID: scope.CompanyID,
		Name:      name,
		NameKey:   key,
		City:      city,
		State:     state,
		CreatedAt: time.Now(),
	}
	if err := uc.growers.Create(ctx, scope, g); err != nil {
		return nil, err
	}
	out := toGrowerResponse(g)
	return &out, nil
}

// ListGrowers productores por nombre; q busca en nombre, ciudad y estado.
func (uc *SupplierUseCase) ListGrowers(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.GrowerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.growers.List(ctx, scope, toFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.GrowerResponse, 0, len(list))
	for _, g := range list {
		items = append(items, toGrowerResponse(g))
	}
	return &dto.GrowerListResponse{Items: items, Page: toPage(page, total)}, nil
}

// DeleteGrower borra un productor sin recepciones asociadas.
func (uc *SupplierUseCase) DeleteGrower(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.growers.Delete(ctx, scope, id)
}

func toGrowerResponse(g *entity.GrowerOrDistributor) dto.GrowerResponse {
	return dto.GrowerResponse{ID: g.ID, Name: g.Name, City: g.City, State: g.State, CreatedAt: g.CreatedAt}
}

func toFilter(page dto.PageRequest) repository.ListFilter {
	return repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset}
}

func toPage(page dto.PageRequest, total int) dto.PageResponse {
	return dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}
}
