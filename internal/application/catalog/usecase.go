package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// UseCase CRUD de productos del catálogo. El stock de un producto no se edita
// por aquí salvo SetStock, la primitiva que usa el motor para reconciliación.
type UseCase struct {
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository) *UseCase {
	return &UseCase{productRepo: productRepo}
}

// Create registra un producto nuevo. El nombre es obligatorio y único.
func (uc *UseCase) Create(ctx context.Context, name, description string, unitPrice decimal.Decimal, initialStock int64) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if initialStock < 0 {
		return nil, &domain.InvalidStateError{Reason: "el stock no puede ser negativo"}
	}
	if unitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product := entity.NewProduct(name, description, unitPrice, initialStock)
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{Identifier: id}
	}
	return product, nil
}

// GetByName obtiene un producto por su nombre único.
func (uc *UseCase) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{Identifier: name}
	}
	return product, nil
}

// Update actualiza nombre, descripción y precio de un producto existente.
// El stock no se toca: eso es territorio del motor de movimientos.
func (uc *UseCase) Update(ctx context.Context, id int64, name, description string, unitPrice decimal.Decimal) (*entity.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = name
	product.Description = description
	product.UnitPrice = unitPrice
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SetStock fija el contador de stock de un producto. Rechaza valores
// negativos; es la primitiva que usa la reconciliación.
func (uc *UseCase) SetStock(ctx context.Context, id int64, quantity int64) (*entity.Product, error) {
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetStock(quantity); err != nil {
		return nil, err
	}
	if err := uc.productRepo.SetStock(id, quantity); err != nil {
		return nil, err
	}
	return product, nil
}

// List lista todos los productos ordenados por nombre.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListAll()
}

// Delete elimina un producto; sus movimientos se borran en cascada en la base.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}
