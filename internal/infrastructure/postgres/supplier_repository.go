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

var (
	_ repository.BrandNameRepository = (*BrandNameRepo)(nil)
	_ repository.SellerRepository    = (*SellerRepo)(nil)
	_ repository.GrowerRepository    = (*GrowerRepo)(nil)
)

// deleteCatalogRow borra una fila de catálogo de la empresa. Los logs de recepción
// la referencian por FK: la violación se traduce a domain.ErrConflict.
func deleteCatalogRow(ctx context.Context, q Querier, table string, scope tenant.Scope, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1 AND company_id = $2`, id, scope.CompanyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nameFilter arma WHERE y args para listados por nombre normalizado.
func nameFilter(scope tenant.Scope, query string) (string, []any) {
	where := `company_id = $1`
	args := []any{scope.CompanyID}
	if key := textnorm.Key(query); key != "" {
		where += ` AND name_key LIKE $2`
		args = append(args, likePattern(key))
	}
	return where, args
}

func count(ctx context.Context, q Querier, table, where string, args []any) (int, error) {
	var total int
	if err := q.QueryRow(ctx, `SELECT count(*) FROM `+table+` WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// BrandNameRepo marcas sobre PostgreSQL.
type BrandNameRepo struct {
	q Querier
}

// NewBrandNameRepository construye el adaptador.
func NewBrandNameRepository(q Querier) *BrandNameRepo {
	return &BrandNameRepo{q: q}
}

const simpleCatalogColumns = `id, company_id, name, name_key, created_at`

func (r *BrandNameRepo) Create(ctx context.Context, scope tenant.Scope, b *entity.BrandName) error {
	if !scope.Owns(b.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO brand_names (`+simpleCatalogColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.CompanyID, b.Name, b.NameKey, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand name: %w", err)
	}
	return nil
}

func (r *BrandNameRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.BrandName, error) {
	return r.getOne(ctx, `id = $2`, scope, id)
}

func (r *BrandNameRepo) GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.BrandName, error) {
	return r.getOne(ctx, `name_key = $2`, scope, nameKey)
}

func (r *BrandNameRepo) getOne(ctx context.Context, cond string, scope tenant.Scope, arg string) (*entity.BrandName, error) {
	var b entity.BrandName
	err := r.q.QueryRow(ctx,
		`SELECT `+simpleCatalogColumns+` FROM brand_names WHERE company_id = $1 AND `+cond, scope.CompanyID, arg,
	).Scan(&b.ID, &b.CompanyID, &b.Name, &b.NameKey, &b.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand name: %w", err)
	}
	return &b, nil
}

func (r *BrandNameRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.BrandName, int, error) {
	where, args := nameFilter(scope, f.Query)
	total, err := count(ctx, r.q, "brand_names", where, args)
	if err != nil {
		return nil, 0, err
	}
	n := len(args)
	rows, err := r.q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM brand_names WHERE %s ORDER BY name_key, name LIMIT $%d OFFSET $%d`, simpleCatalogColumns, where, n+1, n+2),
		append(args, limitArg(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list brand names: %w", err)
	}
	defer rows.Close()
	var list []*entity.BrandName
	for rows.Next() {
		var b entity.BrandName
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.NameKey, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan brand name: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

func (r *BrandNameRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return deleteCatalogRow(ctx, r.q, "brand_names", scope, id)
}

// ── Vendedores ────────────────────────────────────────────────────────────────

// SellerRepo vendedores sobre PostgreSQL.
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador.
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

func (r *SellerRepo) Create(ctx context.Context, scope tenant.Scope, s *entity.Seller) error {
	if !scope.Owns(s.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO sellers (`+simpleCatalogColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.CompanyID, s.Name, s.NameKey, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

func (r *SellerRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Seller, error) {
	return r.getOne(ctx, `id = $2`, scope, id)
}

func (r *SellerRepo) GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.Seller, error) {
	return r.getOne(ctx, `name_key = $2`, scope, nameKey)
}

func (r *SellerRepo) getOne(ctx context.Context, cond string, scope tenant.Scope, arg string) (*entity.Seller, error) {
	var s entity.Seller
	err := r.q.QueryRow(ctx,
		`SELECT `+simpleCatalogColumns+` FROM sellers WHERE company_id = $1 AND `+cond, scope.CompanyID, arg,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.NameKey, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}

func (r *SellerRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Seller, int, error) {
	where, args := nameFilter(scope, f.Query)
	total, err := count(ctx, r.q, "sellers", where, args)
	if err != nil {
		return nil, 0, err
	}
	n := len(args)
	rows, err := r.q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM sellers WHERE %s ORDER BY name_key, name LIMIT $%d OFFSET $%d`, simpleCatalogColumns, where, n+1, n+2),
		append(args, limitArg(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Seller
	for rows.Next() {
		var s entity.Seller
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.NameKey, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan seller: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

func (r *SellerRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return deleteCatalogRow(ctx, r.q, "sellers", scope, id)
}

// ── Productores / distribuidores ──────────────────────────────────────────────

// GrowerRepo productores/distribuidores sobre PostgreSQL.
type GrowerRepo struct {
	q Querier
}

// NewGrowerRepository construye el adaptador.
func NewGrowerRepository(q Querier) *GrowerRepo {
	return &GrowerRepo{q: q}
}

const growerColumns = `id, company_id, name, name_key, city, state, created_at`

func (r *GrowerRepo) Create(ctx context.Context, scope tenant.Scope, g *entity.GrowerOrDistributor) error {
	if !scope.Owns(g.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO growers_distributors (`+growerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.CompanyID, g.Name, g.NameKey, g.City, g.State, g.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert grower: %w", err)
	}
	return nil
}

func (r *GrowerRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.GrowerOrDistributor, error) {
	return r.getOne(ctx, `id = $2`, scope, id)
}

func (r *GrowerRepo) GetByNameKey(ctx context.Context, scope tenant.Scope, nameKey string) (*entity.GrowerOrDistributor, error) {
	return r.getOne(ctx, `name_key = $2`, scope, nameKey)
}

func (r *GrowerRepo) getOne(ctx context.Context, cond string, scope tenant.Scope, arg string) (*entity.GrowerOrDistributor, error) {
	var g entity.GrowerOrDistributor
	err := r.q.QueryRow(ctx,
		`SELECT `+growerColumns+` FROM growers_distributors WHERE company_id = $1 AND `+cond, scope.CompanyID, arg,
	).Scan(&g.ID, &g.CompanyID, &g.Name, &g.NameKey, &g.City, &g.State, &g.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grower: %w", err)
	}
	return &g, nil
}

// List busca en nombre normalizado, ciudad y estado.
func (r *GrowerRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.GrowerOrDistributor, int, error) {
	where := `company_id = $1`
	args := []any{scope.CompanyID}
	if key := textnorm.Key(f.Query); key != "" {
		where += ` AND (name_key LIKE $2 OR lower(city) LIKE $2 OR lower(state) LIKE $2)`
		args = append(args, likePattern(key))
	}
	total, err := count(ctx, r.q, "growers_distributors", where, args)
	if err != nil {
		return nil, 0, err
	}
	n := len(args)
	rows, err := r.q.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM growers_distributors WHERE %s ORDER BY name_key, name LIMIT $%d OFFSET $%d`, growerColumns, where, n+1, n+2),
		append(args, limitArg(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list growers: %w", err)
	}
	defer rows.Close()
	var list []*entity.GrowerOrDistributor
	for rows.Next() {
		var g entity.GrowerOrDistributor
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Name, &g.NameKey, &g.City, &g.State, &g.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan grower: %w", err)
		}
		list = append(list, &g)
	}
	return list, total, rows.Err()
}

func (r *GrowerRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return deleteCatalogRow(ctx, r.q, "growers_distributors", scope, id)
}
