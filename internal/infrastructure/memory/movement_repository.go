package memory

import (
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria, append-only.
type MovementRepo struct {
	store *Store
	inTx  bool
}

// NewMovementRepository construye el adaptador atado al almacén.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

// Create inserta el movimiento y asigna su ID.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	movement.ID = r.store.nextMovementID
	r.store.nextMovementID++
	r.store.movements = append(r.store.movements, cloneMovement(movement))
	return nil
}

// List devuelve los movimientos que cumplen el filtro, del más reciente al
// más antiguo. El slice interno crece en orden de inserción, así que basta
// recorrerlo al revés; el ID creciente desempata timestamps iguales.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	var list []*entity.Movement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		m := r.store.movements[i]
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Kind != nil && m.Kind != *filter.Kind {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	return list, nil
}

// SumByKind agrega las cantidades de un producto por tipo.
func (r *MovementRepo) SumByKind(productID int64) (int64, int64, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	var entries, exits int64
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			continue
		}
		switch m.Kind {
		case entity.KindEntry:
			entries += m.Quantity
		case entity.KindExit:
			exits += m.Quantity
		}
	}
	return entries, exits, nil
}
