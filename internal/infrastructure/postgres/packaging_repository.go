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

var (
	_ repository.PackagingRepository     = (*PackagingRepo)(nil)
	_ repository.PackagingCostRepository = (*PackagingCostRepo)(nil)
	_ repository.LaborCostRepository     = (*LaborCostRepo)(nil)
)

// PackagingRepo empaques sobre PostgreSQL (usable con pool o tx).
type PackagingRepo struct {
	q Querier
}

// NewPackagingRepository construye el adaptador.
func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

func (r *PackagingRepo) Create(ctx context.Context, scope tenant.Scope, p *entity.Packaging) error {
	if !scope.Owns(p.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO packaging (`+simpleCatalogColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.CompanyID, p.Name, p.NameKey, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert packaging: %w", err)
	}
	return nil
}

func (r *PackagingRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Packaging, error) {
	return r.getOne(ctx, `id = $2`, scope, id)
}

func (r *PackagingRepo) GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.Packaging, error) {
	return r.getOne(ctx, `name_key = $2`, scope, nameKey)
}

func (r *PackagingRepo) getOne(ctx context.Context, cond string, scope tenant.Scope, arg string) (*entity.Packaging, error) {
	var p entity.Packaging
	err := r.q.QueryRow(ctx,
		`SELECT `+simpleCatalogColumns+` FROM packaging WHERE company_id = $1 AND `+cond, scope.CompanyID, arg,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &p.NameKey, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging: %w", err)
	}
	return &p, nil
}

func (r *PackagingRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Packaging, int, error) {
	where, args := nameFilter(scope, f.Query)
	total, err := count(ctx, r.q, "packaging", where, args)
	if err != nil {
		return nil, 0, err
	}
	n := len(args)
	rows, err := r.q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM packaging WHERE %s ORDER BY name_key, name LIMIT $%d OFFSET $%d`, simpleCatalogColumns, where, n+1, n+2),
		append(args, limitArg(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list packaging: %w", err)
	}
	defer rows.Close()
	var list []*entity.Packaging
	for rows.Next() {
		var p entity.Packaging
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.NameKey, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan packaging: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Delete borra el empaque; sus costos caen en cascada. Un ítem que lo usa da domain.ErrConflict.
func (r *PackagingRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return deleteCatalogRow(ctx, r.q, "packaging", scope, id)
}

// PackagingCostRepo historial de costos de empaque. Solo inserción.
type PackagingCostRepo struct {
	q Querier
}

// NewPackagingCostRepository construye el adaptador.
func NewPackagingCostRepository(q Querier) *PackagingCostRepo {
	return &PackagingCostRepo{q: q}
}

const packagingCostColumns = `id, company_id, packaging_id, box_cost, bag_cost, tray_andor_chemical_cost, label_andor_tape_cost, date, created_at`

// Create inserta una entrada; un empaque de otra empresa viola la FK compuesta.
func (r *PackagingCostRepo) Create(ctx context.Context, scope tenant.Scope, c *entity.PackagingCost) error {
	if !scope.Owns(c.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO packaging_costs (`+packagingCostColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.CompanyID, c.PackagingID, c.BoxCost, c.BagCost, c.TrayAndOrChemicalCost, c.LabelAndOrTapeCost,
		pricing.Day(c.Date), c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert packaging cost: %w", err)
	}
	return nil
}

func (r *PackagingCostRepo) Latest(ctx context.Context, scope tenant.Scope, packagingID string, asOf time.Time) (*entity.PackagingCost, error) {
	list, err := r.query(ctx, `
		SELECT `+packagingCostColumns+`
		FROM packaging_costs
		WHERE company_id = $1 AND packaging_id = $2 AND date <= $3
		ORDER BY date DESC, id DESC
		LIMIT 1`, scope.CompanyID, packagingID, pricing.Day(asOf))
	if err != nil {
		return nil, fmt.Errorf("latest packaging cost: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *PackagingCostRepo) ListByPackaging(ctx context.Context, scope tenant.Scope, packagingID string, limit, offset int) ([]*entity.PackagingCost, int, error) {
	where := `company_id = $1 AND packaging_id = $2`
	total, err := count(ctx, r.q, "packaging_costs", where, []any{scope.CompanyID, packagingID})
	if err != nil {
		return nil, 0, err
	}
	list, err := r.query(ctx, `
		SELECT `+packagingCostColumns+`
		FROM packaging_costs
		WHERE `+where+`
		ORDER BY date DESC, id DESC
		LIMIT $3 OFFSET $4`, scope.CompanyID, packagingID, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list packaging costs: %w", err)
	}
	return list, total, nil
}

func (r *PackagingCostRepo) query(ctx context.Context, query string, args ...any) ([]*entity.PackagingCost, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.PackagingCost
	for rows.Next() {
		var c entity.PackagingCost
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.PackagingID, &c.BoxCost, &c.BagCost,
			&c.TrayAndOrChemicalCost, &c.LabelAndOrTapeCost, &c.Date, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Date = pricing.Day(c.Date)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// LaborCostRepo tarifas de mano de obra. Solo inserción.
type LaborCostRepo struct {
	q Querier
}

// NewLaborCostRepository construye el adaptador.
func NewLaborCostRepository(q Querier) *LaborCostRepo {
	return &LaborCostRepo{q: q}
}

const laborCostColumns = `id, company_id, cost, date, created_at`

func (r *LaborCostRepo) Create(ctx context.Context, scope tenant.Scope, c *entity.LaborCost) error {
	if !scope.Owns(c.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO labor_costs (`+laborCostColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.CompanyID, c.Cost, pricing.Day(c.Date), c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert labor cost: %w", err)
	}
	return nil
}

func (r *LaborCostRepo) Latest(ctx context.Context, scope tenant.Scope, asOf time.Time) (*entity.LaborCost, error) {
	list, err := r.query(ctx, `
		SELECT `+laborCostColumns+`
		FROM labor_costs
		WHERE company_id = $1 AND date <= $2
		ORDER BY date DESC, id DESC
		LIMIT 1`, scope.CompanyID, pricing.Day(asOf))
	if err != nil {
		return nil, fmt.Errorf("latest labor cost: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *LaborCostRepo) List(ctx context.Context, scope tenant.Scope, limit, offset int) ([]*entity.LaborCost, int, error) {
	total, err := count(ctx, r.q, "labor_costs", `company_id = $1`, []any{scope.CompanyID})
	if err != nil {
		return nil, 0, err
	}
	list, err := r.query(ctx, `
		SELECT `+laborCostColumns+`
		FROM labor_costs
		WHERE company_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`, scope.CompanyID, limitArg(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list labor costs: %w", err)
	}
	return list, total, nil
}

func (r *LaborCostRepo) query(ctx context.Context, query string, args ...any) ([]*entity.LaborCost, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.LaborCost
	for rows.Next() {
		var c entity.LaborCost
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Cost, &c.Date, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Date = pricing.Day(c.Date)
		list = append(list, &c)
	}
	return list, rows.Err()
}
