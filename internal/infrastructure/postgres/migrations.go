package postgres

import (
	"context"
	"fmt"
)

// Sentencias de creación del esquema. Los índices soportan las consultas de
// listado y agregación del libro; el borrado de un producto arrastra su
// historial (ON DELETE CASCADE).
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		unit_price  NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock       BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		kind       TEXT NOT NULL CHECK (kind IN ('entry', 'exit')),
		quantity   BIGINT NOT NULL CHECK (quantity > 0),
		note       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_id ON movements (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_kind ON movements (kind)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_created_at ON movements (created_at)`,
}

// CreateTables crea el esquema si no existe. Idempotente.
func CreateTables(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	return nil
}

// ResetDatabase borra y recrea el esquema. Solo para demos y entornos de prueba.
func ResetDatabase(ctx context.Context, q Querier) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS movements`,
		`DROP TABLE IF EXISTS products`,
	} {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset esquema: %w", err)
		}
	}
	return CreateTables(ctx, q)
}
