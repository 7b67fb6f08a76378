package memory

import (
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria del puerto ProductRepository.
type ProductRepo struct {
	store *Store
	inTx  bool // repos creados por el TxRunner operan con el mutex ya tomado
}

// NewProductRepository construye el adaptador atado al almacén.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un producto nuevo y asigna su ID.
func (r *ProductRepo) Create(product *entity.Product) error {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	for _, existing := range r.store.products {
		if existing.Name == product.Name {
			return domain.ErrDuplicateName
		}
	}
	product.ID = r.store.nextProductID
	r.store.nextProductID++
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()
	return cloneProduct(r.store.products[id]), nil
}

// GetByName obtiene un producto por nombre; (nil, nil) si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()
	for _, p := range r.store.products {
		if p.Name == name {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner retiene el mutex
// durante toda la transacción, que es un bloqueo más fuerte que el de fila.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

// Update actualiza los datos de un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	if _, ok := r.store.products[product.ID]; !ok {
		return nil
	}
	for id, existing := range r.store.products {
		if id != product.ID && existing.Name == product.Name {
			return domain.ErrDuplicateName
		}
	}
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

// SetStock fija el contador de stock de un producto.
func (r *ProductRepo) SetStock(id int64, stock int64) error {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil
	}
	return p.SetStock(stock)
}

// ListAll lista todos los productos ordenados por nombre.
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		list = append(list, cloneProduct(p))
	}
	sortProductsByName(list)
	return list, nil
}

// ListLowStock lista productos con stock <= threshold, ordenados por stock y nombre.
func (r *ProductRepo) ListLowStock(threshold int64) ([]*entity.Product, error) {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	var list []*entity.Product
	for _, p := range r.store.products {
		if p.Stock <= threshold {
			list = append(list, cloneProduct(p))
		}
	}
	sortProductsByStockThenName(list)
	return list, nil
}

// Delete elimina un producto y, en cascada, sus movimientos.
func (r *ProductRepo) Delete(id int64) error {
	unlock := r.store.lock(r.inTx)
	defer unlock()

	delete(r.store.products, id)
	kept := make([]*entity.Movement, 0, len(r.store.movements))
	for _, m := range r.store.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}
