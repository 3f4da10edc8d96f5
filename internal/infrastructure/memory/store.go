// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORAGE_DRIVER=memory para correr la API sin PostgreSQL.
// Los datos se pierden al reiniciar.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/pkg/textnorm"
)

// Store estado compartido por todos los repos en memoria.
// Las entidades guardadas nunca se mutan en sitio: cada escritura guarda una copia nueva.
// Los mapas no se reemplazan nunca; un rollback deshace clave por clave.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	companies   map[string]*entity.Company
	rawProducts map[string]*entity.RawProduct
	costs       map[string]*entity.CostHistory
	logs        map[string]*entity.ReceivingLog
	brands      map[string]*entity.BrandName
	sellers     map[string]*entity.Seller
	growers     map[string]*entity.GrowerOrDistributor
	apiKeys     map[string]*entity.APIKey

	packaging      map[string]*entity.Packaging
	packagingCosts map[string]*entity.PackagingCost
	laborCosts     map[string]*entity.LaborCost
	items          map[string]*entity.Item
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:   map[string]*entity.Company{},
		rawProducts: map[string]*entity.RawProduct{},
		costs:       map[string]*entity.CostHistory{},
		logs:        map[string]*entity.ReceivingLog{},
		brands:      map[string]*entity.BrandName{},
		sellers:     map[string]*entity.Seller{},
		growers:     map[string]*entity.GrowerOrDistributor{},
		apiKeys:     map[string]*entity.APIKey{},

		packaging:      map[string]*entity.Packaging{},
		packagingCosts: map[string]*entity.PackagingCost{},
		laborCosts:     map[string]*entity.LaborCost{},
		items:          map[string]*entity.Item{},
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// page aplica limit/offset; limit <= 0 devuelve desde offset hasta el final.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// matches compara por clave normalizada contra cualquiera de los campos.
func matches(query string, fields ...string) bool {
	if textnorm.Key(query) == "" {
		return true
	}
	for _, f := range fields {
		if textnorm.Contains(f, query) {
			return true
		}
	}
	return false
}

func sortByName[T any](items []*T, name func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ki, kj := textnorm.Key(name(items[i])), textnorm.Key(name(items[j]))
		if ki != kj {
			return ki < kj
		}
		return name(items[i]) < name(items[j])
	})
}

// sortNewestFirst fecha desc; empate por id desc (uuid v7 = orden de inserción).
func sortNewestFirst[T any](items []*T, key func(*T) (time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		di, idi := key(items[i])
		dj, idj := key(items[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return idi > idj
	})
}
