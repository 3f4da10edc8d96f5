package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

var _ repository.RawProductRepository = (*RawProductRepo)(nil)

// RawProductRepo implementación del puerto RawProductRepository sobre PostgreSQL (usable con pool o tx).
type RawProductRepo struct {
	q Querier
}

// NewRawProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawProductRepository(q Querier) *RawProductRepo {
	return &RawProductRepo{q: q}
}

const rawProductColumns = `id, company_id, name, name_key, created_at, updated_at`

func scanRawProduct(row interface{ Scan(...any) error }) (*entity.RawProduct, error) {
	var p entity.RawProduct
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.NameKey, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una materia prima. domain.ErrDuplicate si el nombre normalizado ya existe.
func (r *RawProductRepo) Create(ctx context.Context, scope tenant.Scope, p *entity.RawProduct) error {
	if !scope.Owns(p.CompanyID) {
		return domain.ErrForbidden
	}
	query := `
		INSERT INTO raw_products (` + rawProductColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.Name, p.NameKey, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw product: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima de la empresa.
func (r *RawProductRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.RawProduct, error) {
	query := `SELECT ` + rawProductColumns + ` FROM raw_products WHERE id = $1 AND company_id = $2`
	p, err := scanRawProduct(r.q.QueryRow(ctx, query, id, scope.CompanyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw product: %w", err)
	}
	return p, nil
}

// GetByNameKey busca por nombre normalizado.
func (r *RawProductRepo) GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.RawProduct, error) {
	query := `SELECT ` + rawProductColumns + ` FROM raw_products WHERE company_id = $1 AND name_key = $2`
	p, err := scanRawProduct(r.q.QueryRow(ctx, query, scope.CompanyID, nameKey))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw product by name: %w", err)
	}
	return p, nil
}

// Update renombra la materia prima.
func (r *RawProductRepo) Update(ctx context.Context, scope tenant.Scope, p *entity.RawProduct) error {
	query := `
		UPDATE raw_products SET name = $3, name_key = $4, updated_at = $5
		WHERE id = $1 AND company_id = $2`
	cmd, err := r.q.Exec(ctx, query, p.ID, scope.CompanyID, p.Name, p.NameKey, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update raw product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List materias primas por nombre; Query filtra por nombre normalizado.
func (r *RawProductRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.RawProduct, int, error) {
	where := `company_id = $1`
	args := []any{scope.CompanyID}
	if key := textnorm.Key(f.Query); key != "" {
		where += ` AND name_key LIKE $2`
		args = append(args, likePattern(key))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM raw_products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count raw products: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM raw_products WHERE %s ORDER BY name_key, name LIMIT $%d OFFSET $%d`,
		rawProductColumns, where, n+1, n+2)
	rows, err := r.q.Query(ctx, query, append(args, limitArg(f.Limit), f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list raw products: %w", err)
	}
	defer rows.Close()

	var list []*entity.RawProduct
	for rows.Next() {
		p, err := scanRawProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan raw product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}
