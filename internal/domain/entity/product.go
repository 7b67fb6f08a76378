package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
)

// Product representa un producto del catálogo. Stock es el contador vigente;
// solo el motor de movimientos lo modifica (vía SetStock) para que nunca se
// separe del libro de movimientos.
type Product struct {
	ID          int64
	Name        string // único, no vacío
	Description string
	UnitPrice   decimal.Decimal // precio unitario, inicia en 0
	Stock       int64           // invariante: >= 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct construye un producto con timestamps inicializados y stock inicial.
func NewProduct(name, description string, unitPrice decimal.Decimal, initialStock int64) *Product {
	now := time.Now()
	return &Product{
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		Stock:       initialStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasSufficientStock indica si alcanza el stock para retirar quantity unidades.
func (p *Product) HasSufficientStock(quantity int64) bool {
	return p.Stock >= quantity
}

// SetStock fija el contador de stock. Rechaza valores negativos: el invariante
// Stock >= 0 debe sostenerse ante cualquier lector.
func (p *Product) SetStock(quantity int64) error {
	if quantity < 0 {
		return &domain.InvalidStateError{Reason: "el stock no puede ser negativo"}
	}
	p.Stock = quantity
	p.UpdatedAt = time.Now()
	return nil
}
