package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.APIKeyRepository = (*APIKeyRepo)(nil)

// APIKeyRepo llaves de dispositivo sobre PostgreSQL.
type APIKeyRepo struct {
	q Querier
}

// NewAPIKeyRepository construye el adaptador.
func NewAPIKeyRepository(q Querier) *APIKeyRepo {
	return &APIKeyRepo{q: q}
}

const apiKeyColumns = `id, company_id, device_name, prefix, secret_hash, is_active, created_by_user_id, created_at, last_used_at`

func scanAPIKey(row interface{ Scan(...any) error }) (*entity.APIKey, error) {
	var k entity.APIKey
	if err := row.Scan(&k.ID, &k.CompanyID, &k.DeviceName, &k.Prefix, &k.SecretHash,
		&k.IsActive, &k.CreatedByUserID, &k.CreatedAt, &k.LastUsedAt); err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *APIKeyRepo) Create(ctx context.Context, scope tenant.Scope, k *entity.APIKey) error {
	if !scope.Owns(k.CompanyID) {
		return domain.ErrForbidden
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO api_keys (`+apiKeyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		k.ID, k.CompanyID, k.DeviceName, k.Prefix, k.SecretHash, k.IsActive, k.CreatedByUserID, k.CreatedAt, k.LastUsedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepo) GetByPrefix(ctx context.Context, prefix string) (*entity.APIKey, error) {
	k, err := scanAPIKey(r.q.QueryRow(ctx, `SELECT `+apiKeyColumns+` FROM api_keys WHERE prefix = $1`, prefix))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get api key by prefix: %w", err)
	}
	return k, nil
}

func (r *APIKeyRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.APIKey, error) {
	k, err := scanAPIKey(r.q.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1 AND company_id = $2`, id, scope.CompanyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get api key: %w", err)
	}
	return k, nil
}

func (r *APIKeyRepo) List(ctx context.Context, scope tenant.Scope) ([]*entity.APIKey, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE company_id = $1 ORDER BY created_at DESC, id DESC`, scope.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()
	var list []*entity.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

func (r *APIKeyRepo) SetActive(ctx context.Context, scope tenant.Scope, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE api_keys SET is_active = $3 WHERE id = $1 AND company_id = $2`, id, scope.CompanyID, active)
	if err != nil {
		return fmt.Errorf("update api key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *APIKeyRepo) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM api_keys WHERE id = $1 AND company_id = $2`, id, scope.CompanyID)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *APIKeyRepo) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}
