package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

var _ repository.ReceivingLogRepository = (*ReceivingLogRepo)(nil)

// ReceivingLogRepo logs de recepción sobre PostgreSQL.
type ReceivingLogRepo struct {
	q Querier
}

// NewReceivingLogRepository construye el adaptador.
func NewReceivingLogRepository(q Querier) *ReceivingLogRepo {
	return &ReceivingLogRepo{q: q}
}

// receivingDetailSelect log con los nombres de sus catálogos. Las FKs compuestas garantizan
// que los JOIN quedan dentro de la misma empresa.
const receivingDetailSelect = `
	SELECT rl.id, rl.company_id, rl.raw_product_id, rl.pack_size, rl.pack_size_unit, rl.brand_name_id,
	       rl.quantity_received, rl.seller_id, rl.temperature, rl.hold_or_used, rl.grower_or_distributor_id,
	       rl.country_of_origin, rl.received_by, rl.returned, rl.received_at, rl.received_on, rl.price_paid,
	       rl.created_at, rl.updated_at,
	       rp.name, bn.name, s.name, g.name
	FROM receiving_logs rl
	JOIN raw_products rp ON rp.id = rl.raw_product_id
	JOIN brand_names bn ON bn.id = rl.brand_name_id
	JOIN sellers s ON s.id = rl.seller_id
	JOIN growers_distributors g ON g.id = rl.grower_or_distributor_id`

func scanReceivingDetail(row interface{ Scan(...any) error }) (*entity.ReceivingLogDetail, error) {
	var d entity.ReceivingLogDetail
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.RawProductID, &d.PackSize, &d.PackSizeUnit, &d.BrandNameID,
		&d.QuantityReceived, &d.SellerID, &d.Temperature, &d.HoldOrUsed, &d.GrowerOrDistributorID,
		&d.CountryOfOrigin, &d.ReceivedBy, &d.Returned, &d.ReceivedAt, &d.ReceivedOn, &d.PricePaid,
		&d.CreatedAt, &d.UpdatedAt,
		&d.RawProductName, &d.BrandName, &d.SellerName, &d.GrowerOrDistributorName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta el log. Una referencia fuera de la empresa viola una FK compuesta: domain.ErrInvalidInput.
func (r *ReceivingLogRepo) Create(ctx context.Context, scope tenant.Scope, l *entity.ReceivingLog) error {
	if !scope.Owns(l.CompanyID) {
		return domain.ErrForbidden
	}
	query := `
		INSERT INTO receiving_logs (
			id, company_id, raw_product_id, pack_size, pack_size_unit, brand_name_id, quantity_received,
			seller_id, temperature, hold_or_used, grower_or_distributor_id, country_of_origin,
			received_by, returned, received_at, received_on, price_paid, created_at, updated_at,
			received_by_key, country_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	receivedByKey, countryKey := receivingSearchKeys(l)
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.RawProductID, l.PackSize, l.PackSizeUnit, l.BrandNameID, l.QuantityReceived,
		l.SellerID, l.Temperature, l.HoldOrUsed, l.GrowerOrDistributorID, l.CountryOfOrigin,
		l.ReceivedBy, l.Returned, l.ReceivedAt, l.ReceiptDay(), l.PricePaid, l.CreatedAt, l.UpdatedAt,
		receivedByKey, countryKey,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia fuera de la empresa", domain.ErrInvalidInput)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert receiving log: %w", err)
	}
	return nil
}

// receivingSearchKeys llaves con la misma normalización que name_key, para que la
// búsqueda ignore tildes igual que el adaptador en memoria.
func receivingSearchKeys(l *entity.ReceivingLog) (receivedBy, country string) {
	return textnorm.Key(l.ReceivedBy), textnorm.Key(l.CountryOfOrigin)
}

// GetByID log con nombres resueltos.
func (r *ReceivingLogRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.ReceivingLogDetail, error) {
	d, err := scanReceivingDetail(r.q.QueryRow(ctx, receivingDetailSelect+` WHERE rl.id = $1 AND rl.company_id = $2`, id, scope.CompanyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receiving log: %w", err)
	}
	return d, nil
}

// List más recientes primero.
func (r *ReceivingLogRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.ReceivingLogDetail, int, error) {
	where := `rl.company_id = $1`
	args := []any{scope.CompanyID}
	if key := textnorm.Key(f.Query); key != "" {
		where += ` AND (rp.name_key LIKE $2 OR rl.received_by_key LIKE $2 OR rl.country_key LIKE $2)`
		args = append(args, likePattern(key))
	}

	var total int
	countQuery := `SELECT count(*) FROM receiving_logs rl JOIN raw_products rp ON rp.id = rl.raw_product_id WHERE ` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count receiving logs: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY rl.received_at DESC, rl.id DESC LIMIT $%d OFFSET $%d`,
		receivingDetailSelect, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limitArg(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list receiving logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReceivingLogDetail
	for rows.Next() {
		d, err := scanReceivingDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan receiving log: %w", err)
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// UpdatePrice fija o borra (price nil → NULL) el precio pagado.
func (r *ReceivingLogRepo) UpdatePrice(ctx context.Context, scope tenant.Scope, id string, price *decimal.Decimal, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE receiving_logs SET price_paid = $3, updated_at = $4 WHERE id = $1 AND company_id = $2`,
		id, scope.CompanyID, price, at,
	)
	if err != nil {
		return fmt.Errorf("update receiving log price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
