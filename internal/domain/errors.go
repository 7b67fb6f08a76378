package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los que necesitan contexto
// para mensajes al usuario son structs; el resto son sentinelas.
var (
	ErrDuplicateName = errors.New("ya existe un producto con ese nombre")
	ErrInvalidInput  = errors.New("entrada inválida")
)

// ProductNotFoundError búsqueda por id o por nombre sin resultado.
type ProductNotFoundError struct {
	Identifier any // id (int64) o nombre (string)
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado: %v", e.Identifier)
}

// InvalidMovementError movimiento rechazado antes de cualquier escritura
// (cantidad <= 0 o tipo desconocido).
type InvalidMovementError struct {
	Reason string
}

func (e *InvalidMovementError) Error() string {
	return fmt.Sprintf("movimiento inválido: %s", e.Reason)
}

// InsufficientStockError una salida dejaría el stock negativo. Lleva el
// contexto completo para mensajes al usuario.
type InsufficientStockError struct {
	ProductName  string
	CurrentStock int64
	Requested    int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"stock insuficiente para el producto '%s': stock actual %d, cantidad solicitada %d",
		e.ProductName, e.CurrentStock, e.Requested,
	)
}

// InvalidStateError intento de persistir un estado prohibido (ej. stock negativo).
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("estado inválido: %s", e.Reason)
}
