package dto

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// RegisterMovementRequest alta de entrada o salida de stock.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Note      string `json:"note"`
}

// MovementResponse representación pública de un movimiento del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceResponse saldo recalculado desde el libro.
type BalanceResponse struct {
	ProductID int64 `json:"product_id"`
	Balance   int64 `json:"balance"`
}

// AvailabilityResponse resultado de la verificación de suficiencia.
type AvailabilityResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	Available bool  `json:"available"`
}

// ToMovementResponse mapea la entidad a su representación pública.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementResponses mapea una lista de movimientos.
func ToMovementResponses(movements []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
