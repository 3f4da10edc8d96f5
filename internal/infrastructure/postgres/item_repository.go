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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems sobre PostgreSQL. Cada escritura es una sola sentencia (CTE) para que el
// ítem y sus materias primas queden consistentes aun fuera de una transacción.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemSelect = `
	SELECT i.id, i.company_id, i.name, i.code, i.alternate_code, i.unit_of_weight, i.designation,
	       i.packaging_id, i.case_weight, i.product_yield, i.labor_hours, i.created_at, i.updated_at,
	       ARRAY(SELECT irp.raw_product_id FROM item_raw_products irp
	             WHERE irp.item_id = i.id ORDER BY irp.position) AS raw_product_ids
	FROM items i`

func scanItem(row interface{ Scan(...any) error }) (*entity.Item, error) {
	var it entity.Item
	var designation string
	err := row.Scan(&it.ID, &it.CompanyID, &it.Name, &it.Code, &it.AlternateCode, &it.UnitOfWeight, &designation,
		&it.PackagingID, &it.CaseWeight, &it.ProductYield, &it.LaborHours, &it.CreatedAt, &it.UpdatedAt,
		&it.RawProductIDs)
	if err != nil {
		return nil, err
	}
	it.Designation = entity.ItemDesignation(designation)
	return &it, nil
}

// itemKeys llaves de búsqueda con la misma normalización del adaptador en memoria.
func itemKeys(it *entity.Item) (name, code, alt string) {
	return textnorm.Key(it.Name), textnorm.Key(it.Code), textnorm.Key(it.AlternateCode)
}

// Create inserta el ítem y sus materias primas. Un empaque o materia prima de otra
// empresa viola una FK compuesta: domain.ErrInvalidInput.
func (r *ItemRepo) Create(ctx context.Context, scope tenant.Scope, it *entity.Item) error {
	if !scope.Owns(it.CompanyID) {
		return domain.ErrForbidden
	}
	nameKey, codeKey, altKey := itemKeys(it)
	query := `
		WITH it AS (
			INSERT INTO items (id, company_id, name, name_key, code, code_key, alternate_code, alt_code_key,
			                   unit_of_weight, designation, packaging_id, case_weight, product_yield, labor_hours,
			                   created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			RETURNING id, company_id)
		INSERT INTO item_raw_products (item_id, raw_product_id, company_id, position)
		SELECT it.id, rp.raw_product_id, it.company_id, rp.position
		FROM it, unnest($17::text[]) WITH ORDINALITY AS rp(raw_product_id, position)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.Name, nameKey, it.Code, codeKey, it.AlternateCode, altKey,
		it.UnitOfWeight, string(it.Designation), it.PackagingID, it.CaseWeight, it.ProductYield, it.LaborHours,
		it.CreatedAt, it.UpdatedAt, it.RawProductIDs,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empaque o materia prima fuera de la empresa", domain.ErrInvalidInput)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1 AND i.company_id = $2`, id, scope.CompanyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update reemplaza los datos del ítem y su lista de materias primas.
func (r *ItemRepo) Update(ctx context.Context, scope tenant.Scope, it *entity.Item) error {
	nameKey, codeKey, altKey := itemKeys(it)
	query := `
		WITH up AS (
			UPDATE items SET name = $3, name_key = $4, code = $5, code_key = $6, alternate_code = $7,
			       alt_code_key = $8, unit_of_weight = $9, designation = $10, packaging_id = $11,
			       case_weight = $12, product_yield = $13, labor_hours = $14, updated_at = $15
			WHERE id = $1 AND company_id = $2
			RETURNING id, company_id),
		del AS (
			DELETE FROM item_raw_products
			WHERE item_id IN (SELECT id FROM up) AND raw_product_id <> ALL(COALESCE($16::text[], ARRAY[]::text[]))),
		ins AS (
			INSERT INTO item_raw_products (item_id, raw_product_id, company_id, position)
			SELECT up.id, rp.raw_product_id, up.company_id, rp.position
			FROM up, unnest($16::text[]) WITH ORDINALITY AS rp(raw_product_id, position)
			ON CONFLICT (item_id, raw_product_id) DO UPDATE SET position = EXCLUDED.position)
		SELECT count(*) FROM up`
	var n int
	err := r.q.QueryRow(ctx, query,
		it.ID, scope.CompanyID, it.Name, nameKey, it.Code, codeKey, it.AlternateCode, altKey,
		it.UnitOfWeight, string(it.Designation), it.PackagingID, it.CaseWeight, it.ProductYield, it.LaborHours,
		it.UpdatedAt, it.RawProductIDs,
	).Scan(&n)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: empaque o materia prima fuera de la empresa", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) List(ctx context.Context, scope tenant.Scope, f repository.ListFilter) ([]*entity.Item, int, error) {
	where := `i.company_id = $1`
	args := []any{scope.CompanyID}
	if key := textnorm.Key(f.Query); key != "" {
		where += ` AND (i.name_key LIKE $2 OR i.code_key LIKE $2 OR i.alt_code_key LIKE $2)`
		args = append(args, likePattern(key))
	}
	total, err := count(ctx, r.q, "items i", where, args)
	if err != nil {
		return nil, 0, err
	}
	n := len(args)
	rows, err := r.q.Query(ctx,
		fmt.Sprintf(`%s WHERE %s ORDER BY i.name_key, i.name, i.id LIMIT $%d OFFSET $%d`, itemSelect, where, n+1, n+2),
		append(args, limitArg(f.Limit), f.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, total, rows.Err()
}

func (r *ItemRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return deleteCatalogRow(ctx, r.q, "items", scope, id)
}
