// Package receiving contiene los casos de uso de logs de recepción: alta con
// validación de referencias dentro de la empresa, listados, corrección de precio y PDF.
package receiving

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	apppricing "github.com/jhoicas/producepricer-api/internal/application/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

const (
	maxUnitLen     = 50
	maxCountryLen  = 100
	maxPersonLen   = 100
	maxReturnedLen = 100
)

// UseCase casos de uso de logs de recepción.
type UseCase struct {
	logs        repository.ReceivingLogRepository
	rawProducts repository.RawProductRepository
	brands      repository.BrandNameRepository
	sellers     repository.SellerRepository
	growers     repository.GrowerRepository
	pricing     *apppricing.UseCase
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	logs repository.ReceivingLogRepository,
	rawProducts repository.RawProductRepository,
	brands repository.BrandNameRepository,
	sellers repository.SellerRepository,
	growers repository.GrowerRepository,
	pricing *apppricing.UseCase,
) *UseCase {
	return &UseCase{
		logs:        logs,
		rawProducts: rawProducts,
		brands:      brands,
		sellers:     sellers,
		growers:     growers,
		pricing:     pricing,
	}
}

// Create registra una recepción. Cada id referenciado debe existir en la misma empresa;
// si no, domain.ErrInvalidInput indicando el campo.
func (uc *UseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateReceivingLogRequest) (*dto.ReceivingLogResponse, error) {
	l, err := buildLog(scope, in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, scope, l); err != nil {
		return nil, err
	}
	if err := uc.logs.Create(ctx, scope, l); err != nil {
		return nil, err
	}
	return uc.Get(ctx, scope, l.ID)
}

// Get detalle del log con su comparación de precio. domain.ErrNotFound si no existe en la empresa.
func (uc *UseCase) Get(ctx context.Context, scope tenant.Scope, id string) (*dto.ReceivingLogResponse, error) {
	d, err := uc.logs.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withComparison(ctx, scope, d)
}

// List logs más recientes primero; q busca en materia prima, recibido por y país de origen.
func (uc *UseCase) List(ctx context.Context, scope tenant.Scope, page dto.PageRequest) (*dto.ReceivingLogListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.logs.List(ctx, scope, repository.ListFilter{Query: page.Query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceivingLogResponse, 0, len(list))
	for _, d := range list {
		out, err := uc.withComparison(ctx, scope, d)
		if err != nil {
			return nil, err
		}
		items = append(items, *out)
	}
	return &dto.ReceivingLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdatePrice fija (>= 0) o borra (nil) el precio pagado y devuelve el log con la comparación recalculada.
func (uc *UseCase) UpdatePrice(ctx context.Context, scope tenant.Scope, id string, in dto.UpdatePriceRequest) (*dto.ReceivingLogResponse, error) {
	if err := validPrice(in.PricePaid); err != nil {
		return nil, err
	}
	if err := uc.logs.UpdatePrice(ctx, scope, id, in.PricePaid, time.Now()); err != nil {
		return nil, err
	}
	return uc.Get(ctx, scope, id)
}

func (uc *UseCase) withComparison(ctx context.Context, scope tenant.Scope, d *entity.ReceivingLogDetail) (*dto.ReceivingLogResponse, error) {
	c, err := uc.pricing.Compare(ctx, scope, &d.ReceivingLog)
	if err != nil {
		return nil, err
	}
	out := toResponse(d)
	cmp := apppricing.ComparisonToResponse(c)
	out.PriceComparison = &cmp
	return &out, nil
}

func (uc *UseCase) checkReferences(ctx context.Context, scope tenant.Scope, l *entity.ReceivingLog) error {
	rp, err := uc.rawProducts.GetByID(ctx, scope, l.RawProductID)
	if err != nil {
		return err
	}
	if rp == nil {
		return missingRef("raw_product_id")
	}
	b, err := uc.brands.GetByID(ctx, scope, l.BrandNameID)
	if err != nil {
		return err
	}
	if b == nil {
		return missingRef("brand_name_id")
	}
	s, err := uc.sellers.GetByID(ctx, scope, l.SellerID)
	if err != nil {
		return err
	}
	if s == nil {
		return missingRef("seller_id")
	}
	g, err := uc.growers.GetByID(ctx, scope, l.GrowerOrDistributorID)
	if err != nil {
		return err
	}
	if g == nil {
		return missingRef("grower_or_distributor_id")
	}
	return nil
}

func missingRef(field string) error {
	return fmt.Errorf("%w: %s no existe en la empresa", domain.ErrInvalidInput, field)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

// buildLog valida la entrada y arma la entidad (sin tocar persistencia).
func buildLog(scope tenant.Scope, in dto.CreateReceivingLogRequest) (*entity.ReceivingLog, error) {
	required := map[string]string{
		"raw_product_id":           in.RawProductID,
		"brand_name_id":            in.BrandNameID,
		"seller_id":                in.SellerID,
		"grower_or_distributor_id": in.GrowerOrDistributorID,
	}
	for _, field := range []string{"raw_product_id", "brand_name_id", "seller_id", "grower_or_distributor_id"} {
		if strings.TrimSpace(required[field]) == "" {
			return nil, invalid("%s es requerido", field)
		}
	}
	if in.PackSize == nil || !in.PackSize.IsPositive() {
		return nil, invalid("pack_size debe ser mayor que 0")
	}
	unit := textnorm.Clean(in.PackSizeUnit)
	if unit == "" || len(unit) > maxUnitLen {
		return nil, invalid("pack_size_unit es requerido (máx. %d)", maxUnitLen)
	}
	if in.QuantityReceived == nil || *in.QuantityReceived < 0 {
		return nil, invalid("quantity_received es requerido y no puede ser negativo")
	}
	holdOrUsed := strings.ToLower(strings.TrimSpace(in.HoldOrUsed))
	if holdOrUsed != entity.ReceivingHold && holdOrUsed != entity.ReceivingUsed {
		return nil, invalid("hold_or_used debe ser 'hold' o 'used'")
	}
	country := textnorm.Clean(in.CountryOfOrigin)
	if country == "" || len(country) > maxCountryLen {
		return nil, invalid("country_of_origin es requerido (máx. %d)", maxCountryLen)
	}
	receivedBy := textnorm.Clean(in.ReceivedBy)
	if len(receivedBy) > maxPersonLen {
		return nil, invalid("received_by excede %d caracteres", maxPersonLen)
	}
	returned := textnorm.Clean(in.Returned)
	if len(returned) > maxReturnedLen {
		return nil, invalid("returned excede %d caracteres", maxReturnedLen)
	}
	if err := validPrice(in.PricePaid); err != nil {
		return nil, err
	}

	now := time.Now()
	receivedAt := now
	if in.ReceivedAt != nil && !in.ReceivedAt.IsZero() {
		receivedAt = *in.ReceivedAt
	}
	return &entity.ReceivingLog{
		ID:                    entity.NewID(),
		CompanyID:             scope.CompanyID,
		RawProductID:          strings.TrimSpace(in.RawProductID),
		PackSize:              *in.PackSize,
		PackSizeUnit:          unit,
		BrandNameID:           strings.TrimSpace(in.BrandNameID),
		QuantityReceived:      *in.QuantityReceived,
		SellerID:              strings.TrimSpace(in.SellerID),
		Temperature:           copyDecimal(in.Temperature),
		HoldOrUsed:            holdOrUsed,
		GrowerOrDistributorID: strings.TrimSpace(in.GrowerOrDistributorID),
		CountryOfOrigin:       country,
		ReceivedBy:            receivedBy,
		Returned:              returned,
		ReceivedAt:            receivedAt.UTC(),
		ReceivedOn:            pricing.CalendarDay(receivedAt),
		PricePaid:             copyDecimal(in.PricePaid),
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// validPrice nil es válido (sin precio); si viene debe ser >= 0 y caber en NUMERIC(12,2).
func validPrice(p *decimal.Decimal) error {
	if p == nil {
		return nil
	}
	if p.IsNegative() {
		return invalid("price_paid no puede ser negativo")
	}
	if !pricing.ValidAmount(*p) {
		return invalid("price_paid admite máx. %d enteros y %d decimales", pricing.MaxAmountDigits, pricing.MaxAmountScale)
	}
	return nil
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func toResponse(d *entity.ReceivingLogDetail) dto.ReceivingLogResponse {
	return dto.ReceivingLogResponse{
		ID:                      d.ID,
		RawProductID:            d.RawProductID,
		RawProductName:          d.RawProductName,
		PackSize:                d.PackSize,
		PackSizeUnit:            d.PackSizeUnit,
		BrandNameID:             d.BrandNameID,
		BrandName:               d.BrandName,
		QuantityReceived:        d.QuantityReceived,
		SellerID:                d.SellerID,
		SellerName:              d.SellerName,
		Temperature:             d.Temperature,
		HoldOrUsed:              d.HoldOrUsed,
		GrowerOrDistributorID:   d.GrowerOrDistributorID,
		GrowerOrDistributorName: d.GrowerOrDistributorName,
		CountryOfOrigin:         d.CountryOfOrigin,
		ReceivedBy:              d.ReceivedBy,
		Returned:                d.Returned,
		ReceivedAt:              d.ReceivedAt,
		PricePaid:               d.PricePaid,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}
