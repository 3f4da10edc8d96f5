package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/domain/pricing"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var _ repository.PriceSheetRepository = (*PriceSheetRepo)(nil)

// PriceSheetRepo consultas read-only de la hoja de precios.
type PriceSheetRepo struct {
	q Querier
}

// NewPriceSheetRepository construye el adaptador.
func NewPriceSheetRepository(q Querier) *PriceSheetRepo {
	return &PriceSheetRepo{q: q}
}

// GetRawPriceSheet una fila por materia prima con las dos entradas más recientes
// (mismo orden que la selección de costo de mercado: fecha desc, id desc) y el promedio.
func (r *PriceSheetRepo) GetRawPriceSheet(ctx context.Context, scope tenant.Scope) ([]repository.RawPriceSheetRow, error) {
	const query = `
		WITH ranked AS (
			SELECT raw_product_id, cost, date,
			       row_number() OVER (PARTITION BY raw_product_id ORDER BY date DESC, id DESC) AS rn
			FROM cost_history
			WHERE company_id = $1
		), stats AS (
			SELECT raw_product_id, avg(cost) AS avg_cost, count(*) AS entries
			FROM cost_history
			WHERE company_id = $1
			GROUP BY raw_product_id
		)
		SELECT rp.id, rp.name,
		       l.cost, l.date,
		       p.cost, p.date,
		       st.avg_cost, COALESCE(st.entries, 0)
		FROM raw_products rp
		LEFT JOIN ranked l ON l.raw_product_id = rp.id AND l.rn = 1
		LEFT JOIN ranked p ON p.raw_product_id = rp.id AND p.rn = 2
		LEFT JOIN stats st ON st.raw_product_id = rp.id
		WHERE rp.company_id = $1
		ORDER BY rp.name_key, rp.name`

	rows, err := r.q.Query(ctx, query, scope.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("raw price sheet: %w", err)
	}
	defer rows.Close()

	var out []repository.RawPriceSheetRow
	for rows.Next() {
		var (
			row                  repository.RawPriceSheetRow
			latestCost, prevCost *decimal.Decimal
			latestDate, prevDate *time.Time
			avg                  *decimal.Decimal
		)
		if err := rows.Scan(&row.RawProductID, &row.RawProductName,
			&latestCost, &latestDate, &prevCost, &prevDate, &avg, &row.EntryCount); err != nil {
			return nil, fmt.Errorf("scan raw price sheet: %w", err)
		}
		if latestCost != nil && latestDate != nil {
			row.Latest = &repository.CostPoint{Cost: *latestCost, Date: pricing.Day(*latestDate)}
		}
		if prevCost != nil && prevDate != nil {
			row.Previous = &repository.CostPoint{Cost: *prevCost, Date: pricing.Day(*prevDate)}
		}
		row.Average = avg
		out = append(out, row)
	}
	return out, rows.Err()
}
