package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ProductRepository puerto de persistencia para productos. Las implementaciones
// devuelven (nil, nil) cuando el producto no existe; el caso de uso lo traduce
// a ProductNotFoundError.
type ProductRepository interface {
	// Create persiste un producto nuevo y asigna su ID.
	// Devuelve domain.ErrDuplicateName si el nombre ya existe.
	Create(product *entity.Product) error
	// GetByID obtiene un producto por ID.
	GetByID(id int64) (*entity.Product, error)
	// GetByName obtiene un producto por nombre (único).
	GetByName(name string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila dentro de la
	// transacción vigente (SELECT FOR UPDATE). Solo tiene sentido con repos
	// atados a una tx.
	GetForUpdate(id int64) (*entity.Product, error)
	// Update actualiza los datos del producto (no el stock).
	Update(product *entity.Product) error
	// SetStock fija el contador de stock y refresca updated_at.
	SetStock(id int64, stock int64) error
	// ListAll lista todos los productos ordenados por nombre.
	ListAll() ([]*entity.Product, error)
	// ListLowStock lista productos con stock <= threshold,
	// ordenados por stock ascendente y luego por nombre.
	ListLowStock(threshold int64) ([]*entity.Product, error)
	// Delete elimina un producto; la base borra en cascada sus movimientos.
	Delete(id int64) error
}
