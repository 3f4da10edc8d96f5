package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el email de administración ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := textnorm.Clean(in.Name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: name es requerido (máx. 100)", domain.ErrInvalidInput)
	}
	email := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: admin_email inválido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByAdminEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:         entity.NewID(),
		Name:       name,
		AdminEmail: email,
		Status:     entity.CompanyStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene la empresa si es la del llamador. (nil, nil) si no existe o es de otra
// empresa: no se revela si el id existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.CompanyResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrMissingTenant
	}
	if !scope.Owns(id) {
		return nil, nil
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List devuelve solo la empresa del llamador, con la forma de un listado paginado.
func (uc *CompanyUseCase) List(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	own, err := uc.GetByID(ctx, scope, scope.CompanyID)
	if err != nil {
		return nil, err
	}
	items := []dto.CompanyResponse{}
	total := 0
	if own != nil {
		total = 1
		if page.Offset == 0 {
			items = append(items, *own)
		}
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:         c.ID,
		Name:       c.Name,
		AdminEmail: c.AdminEmail,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
