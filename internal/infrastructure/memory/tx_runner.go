package memory

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
)

var (
	_ usecase.CatalogTxRunner   = (*TxRunner)(nil)
	_ usecase.PackagingTxRunner = (*TxRunner)(nil)
)

// TxRunner emula una transacción: serializa los callbacks y, si fn falla,
// deshace solo las claves que escribieron los repos de la transacción. Las
// escrituras concurrentes hechas fuera de fn se conservan.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunCatalog ejecuta fn con repos de materia prima e historial de costos.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	products repository.RawProductRepository,
	costs repository.CostHistoryRepository,
) error) error {
	return r.run(ctx, func(u *undoLog) error {
		return fn(&RawProductRepo{s: r.s, undo: u}, &CostHistoryRepo{s: r.s, undo: u})
	})
}

// RunPackaging ejecuta fn con repos de empaques y su historial de costos.
func (r *TxRunner) RunPackaging(ctx context.Context, fn func(
	packaging repository.PackagingRepository,
	costs repository.PackagingCostRepository,
) error) error {
	return r.run(ctx, func(u *undoLog) error {
		return fn(newPackagingRepo(r.s, u), &PackagingCostRepo{s: r.s, undo: u})
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(u *undoLog) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	u := &undoLog{}
	if err := fn(u); err != nil {
		r.s.mu.Lock()
		u.rollback()
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// undoLog pasos para revertir cada escritura, en orden de aplicación.
type undoLog struct {
	steps []func()
}

// rollback requiere el lock de escritura tomado.
func (u *undoLog) rollback() {
	for i := len(u.steps) - 1; i >= 0; i-- {
		u.steps[i]()
	}
	u.steps = nil
}

// put guarda v en m[key] y, si hay transacción, anota cómo volver al valor previo.
// Requiere el lock de escritura tomado.
func put[T any](u *undoLog, m map[string]*T, key string, v *T) {
	if u != nil {
		prev, had := m[key]
		u.steps = append(u.steps, func() {
			if had {
				m[key] = prev
			} else {
				delete(m, key)
			}
		})
	}
	m[key] = v
}
