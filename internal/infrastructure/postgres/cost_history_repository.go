package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo historial de costos sobre PostgreSQL. Solo inserción.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

const costHistoryColumns = `id, company_id, raw_product_id, cost, date, created_at`

// Create inserta una entrada. La FK compuesta (raw_product_id, company_id) rechaza materias
// primas de otra empresa: se traduce a domain.ErrInvalidInput.
func (r *CostHistoryRepo) Create(ctx context.Context, scope tenant.Scope, e *entity.CostHistory) error {
	if !scope.Owns(e.CompanyID) {
		return domain.ErrForbidden
	}
	query := `
		INSERT INTO cost_history (` + costHistoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, e.ID, e.CompanyID, e.RawProductID, e.Cost, pricing.Day(e.Date), e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost history: %w", err)
	}
	return nil
}

// ListInWindow entradas con from <= date <= to, más recientes primero.
func (r *CostHistoryRepo) ListInWindow(ctx context.Context, scope tenant.Scope, rawProductID string, from, to time.Time) ([]*entity.CostHistory, error) {
	query := `
		SELECT ` + costHistoryColumns + `
		FROM cost_history
		WHERE company_id = $1 AND raw_product_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date DESC, id DESC`
	list, err := r.query(ctx, query, scope.CompanyID, rawProductID, pricing.Day(from), pricing.Day(to))
	if err != nil {
		return nil, fmt.Errorf("list cost history in window: %w", err)
	}
	return list, nil
}

// ListByRawProduct historial completo paginado.
func (r *CostHistoryRepo) ListByRawProduct(ctx context.Context, scope tenant.Scope, rawProductID string, limit, offset int) ([]*entity.CostHistory, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM cost_history WHERE company_id = $1 AND raw_product_id = $2`,
		scope.CompanyID, rawProductID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count cost history: %w", err)
	}
	query := `
		SELECT ` + costHistoryColumns + `
		FROM cost_history
		WHERE company_id = $1 AND raw_product_id = $2
		ORDER BY date DESC, id DESC
		LIMIT $3 OFFSET $4`
	list, err := r.query(ctx, query, scope.CompanyID, rawProductID, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list cost history: %w", err)
	}
	return list, total, nil
}

func (r *CostHistoryRepo) query(ctx context.Context, query string, args ...any) ([]*entity.CostHistory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*entity.CostHistory
	for rows.Next() {
		var e entity.CostHistory
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.RawProductID, &e.Cost, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = pricing.Day(e.Date)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Latest la entrada más reciente con date <= asOf, sin ventana.
func (r *CostHistoryRepo) Latest(ctx context.Context, scope tenant.Scope, rawProductID string, asOf time.Time) (*entity.CostHistory, error) {
	query := `
		SELECT ` + costHistoryColumns + `
		FROM cost_history
		WHERE company_id = $1 AND raw_product_id = $2 AND date <= $3
		ORDER BY date DESC, id DESC
		LIMIT 1`
	list, err := r.query(ctx, query, scope.CompanyID, rawProductID, pricing.Day(asOf))
	if err != nil {
		return nil, fmt.Errorf("latest cost history: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
