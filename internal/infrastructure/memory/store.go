// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Lo usan los tests y el modo demo sin base de datos; el TxRunner
// replica la semántica de Commit/Rollback con snapshot y restauración.
package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// Store estado compartido: productos indexados por ID y el libro de
// movimientos como slice append-only.
type Store struct {
	mu             sync.Mutex
	products       map[int64]*entity.Product
	movements      []*entity.Movement
	nextProductID  int64
	nextMovementID int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:       make(map[int64]*entity.Product),
		nextProductID:  1,
		nextMovementID: 1,
	}
}

// lock toma el mutex salvo que el caller ya lo tenga (repos atados a una tx).
func (s *Store) lock(held bool) func() {
	if held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// snapshot copia profunda del estado para poder restaurarlo en rollback.
// Los movimientos son inmutables, copiar el slice de punteros alcanza.
func (s *Store) snapshot() *storeSnapshot {
	products := make(map[int64]*entity.Product, len(s.products))
	for id, p := range s.products {
		products[id] = cloneProduct(p)
	}
	movements := make([]*entity.Movement, len(s.movements))
	copy(movements, s.movements)
	return &storeSnapshot{
		products:       products,
		movements:      movements,
		nextProductID:  s.nextProductID,
		nextMovementID: s.nextMovementID,
	}
}

func (s *Store) restore(snap *storeSnapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.nextProductID = snap.nextProductID
	s.nextMovementID = snap.nextMovementID
}

type storeSnapshot struct {
	products       map[int64]*entity.Product
	movements      []*entity.Movement
	nextProductID  int64
	nextMovementID int64
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// sortProducts orden estable por stock ascendente y nombre (reporte de stock bajo).
func sortProductsByStockThenName(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Stock != products[j].Stock {
			return products[i].Stock < products[j].Stock
		}
		return products[i].Name < products[j].Name
	})
}

func sortProductsByName(products []*entity.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
}
