package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos nunca se modifican ni se borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento y asigna su ID.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (product_id, kind, quantity, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductID, string(movement.Kind), movement.Quantity,
		movement.Note, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve los movimientos que cumplen el filtro, del más reciente al
// más antiguo. El desempate por id mantiene el orden determinista cuando dos
// movimientos comparten timestamp.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, kind, quantity, note, created_at
		FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *filter.ProductID)
		pos++
	}
	if filter.Kind != nil {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, string(*filter.Kind))
		pos++
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var kind string
		if err := rows.Scan(&m.ID, &m.ProductID, &kind, &m.Quantity, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByKind agrega las cantidades de un producto por tipo en una sola consulta.
func (r *MovementRepo) SumByKind(productID int64) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'entry' THEN quantity ELSE 0 END), 0) AS entries,
			COALESCE(SUM(CASE WHEN kind = 'exit' THEN quantity ELSE 0 END), 0) AS exits
		FROM movements
		WHERE product_id = $1`
	var entries, exits int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&entries, &exits); err != nil {
		return 0, 0, fmt.Errorf("sum movements by kind: %w", err)
	}
	return entries, exits, nil
}
