package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// MovementFilter filtros opcionales para listar movimientos.
// nil = sin filtro para ese campo.
type MovementFilter struct {
	ProductID *int64
	Kind      *entity.MovementKind
}

// MovementRepository puerto del libro de movimientos: almacenamiento
// append-only con lectura ordenada. No re-valida reglas de negocio; el
// movimiento llega ya validado por el motor.
type MovementRepository interface {
	// Create inserta el movimiento y asigna su ID. Escritura única y durable.
	Create(movement *entity.Movement) error
	// List devuelve los movimientos que cumplen el filtro, del más reciente
	// al más antiguo (created_at DESC, id DESC para desempate estable).
	// Cada llamada re-consulta el estado vigente.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// SumByKind agrega las cantidades de un producto por tipo:
	// (total entradas, total salidas). Base del recálculo de saldo.
	SumByKind(productID int64) (entries int64, exits int64, err error)
}
