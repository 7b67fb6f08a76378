package entity

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain"
)

// MovementKind tipo cerrado de dos variantes. Cualquier otro valor se rechaza
// en la frontera (ParseMovementKind), nunca llega al libro.
type MovementKind string

const (
	KindEntry MovementKind = "entry" // entrada: suma stock
	KindExit  MovementKind = "exit"  // salida: resta stock, limitada por el saldo
)

// ParseMovementKind valida un tipo recibido como texto (HTTP, query string).
func ParseMovementKind(s string) (MovementKind, error) {
	switch MovementKind(s) {
	case KindEntry, KindExit:
		return MovementKind(s), nil
	default:
		return "", &domain.InvalidMovementError{Reason: "tipo de movimiento desconocido: " + s}
	}
}

// Valid indica si el tipo es una de las dos variantes permitidas.
func (k MovementKind) Valid() bool {
	return k == KindEntry || k == KindExit
}

// Movement registro inmutable de un cambio de stock. Una vez persistido no se
// modifica ni se borra: el libro es append-only.
type Movement struct {
	ID        int64
	ProductID int64
	Kind      MovementKind
	Quantity  int64 // estrictamente positiva
	Note      string
	CreatedAt time.Time
}

// NewMovement construye un movimiento con timestamp asignado.
func NewMovement(productID int64, kind MovementKind, quantity int64, note string) *Movement {
	return &Movement{
		ProductID: productID,
		Kind:      kind,
		Quantity:  quantity,
		Note:      note,
		CreatedAt: time.Now(),
	}
}

// Validate verifica los invariantes del movimiento antes de persistirlo.
func (m *Movement) Validate() error {
	if m.Quantity <= 0 {
		return &domain.InvalidMovementError{Reason: "la cantidad debe ser mayor que cero"}
	}
	if !m.Kind.Valid() {
		return &domain.InvalidMovementError{Reason: "tipo de movimiento desconocido: " + string(m.Kind)}
	}
	if m.ProductID == 0 {
		return &domain.InvalidMovementError{Reason: "el movimiento requiere un producto"}
	}
	return nil
}

// StockImpact efecto firmado sobre el stock: positivo para entrada, negativo para salida.
func (m *Movement) StockImpact() int64 {
	if m.Kind == KindEntry {
		return m.Quantity
	}
	return -m.Quantity
}
