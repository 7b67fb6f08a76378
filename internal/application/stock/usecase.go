package stock

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// UseCase motor de movimientos de stock: único camino por el que se crean
// movimientos que afectan el contador. Valida, inserta en el libro y actualiza
// el stock del producto como una sola unidad transaccional, con bloqueo de
// fila (SELECT FOR UPDATE) para que la verificación de suficiencia y la
// escritura observen el mismo saldo.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	catalog      *catalog.UseCase
}

// NewUseCase construye el motor. productRepo y movementRepo van atados al pool
// (solo lecturas); las escrituras pasan siempre por txRunner.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	catalogUC *catalog.UseCase,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		catalog:      catalogUC,
	}
}

// RegisterEntry registra una entrada: suma quantity al stock del producto y
// deja constancia en el libro. Sin tope superior para la cantidad.
func (uc *UseCase) RegisterEntry(ctx context.Context, productID, quantity int64, note string) (*entity.Movement, error) {
	return uc.register(ctx, productID, entity.KindEntry, quantity, note)
}

// RegisterExit registra una salida: resta quantity del stock si alcanza el
// saldo. Retirar exactamente el saldo deja el stock en 0 y no es un error.
func (uc *UseCase) RegisterExit(ctx context.Context, productID, quantity int64, note string) (*entity.Movement, error) {
	return uc.register(ctx, productID, entity.KindExit, quantity, note)
}

// register valida el movimiento antes de cualquier escritura y luego ejecuta
// inserción + actualización de stock dentro de una transacción. Si algo falla
// después de insertar el movimiento, el rollback evita movimientos huérfanos.
func (uc *UseCase) register(ctx context.Context, productID int64, kind entity.MovementKind, quantity int64, note string) (*entity.Movement, error) {
	mov := entity.NewMovement(productID, kind, quantity, note)
	if err := mov.Validate(); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: la verificación y la escritura ven el mismo saldo.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{Identifier: productID}
		}
		if kind == entity.KindExit && !product.HasSufficientStock(quantity) {
			return &domain.InsufficientStockError{
				ProductName:  product.Name,
				CurrentStock: product.Stock,
				Requested:    quantity,
			}
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		// Garantizado >= 0: las salidas ya pasaron la verificación de suficiencia.
		return productRepo.SetStock(productID, product.Stock+mov.StockImpact())
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements lista movimientos del libro, del más reciente al más antiguo.
func (uc *UseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	return uc.movementRepo.List(filter)
}

// BalanceFromLedger calcula el saldo de un producto solo desde el libro:
// suma de entradas menos suma de salidas. Es independiente del contador
// almacenado y sirve para detectar desvíos.
func (uc *UseCase) BalanceFromLedger(ctx context.Context, productID int64) (int64, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, &domain.ProductNotFoundError{Identifier: productID}
	}
	entries, exits, err := uc.movementRepo.SumByKind(productID)
	if err != nil {
		return 0, err
	}
	return entries - exits, nil
}

// Reconcile recalcula el saldo desde el libro y lo escribe como stock vigente
// a través del catálogo (que rechaza valores negativos). Pensado para reparar
// desvíos, no para operación normal; es idempotente.
func (uc *UseCase) Reconcile(ctx context.Context, productID int64) (*entity.Product, error) {
	balance, err := uc.BalanceFromLedger(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.catalog.SetStock(ctx, productID, balance)
}

// HasSufficientStock verificación de suficiencia sin efectos: la misma regla
// que aplica RegisterExit.
func (uc *UseCase) HasSufficientStock(ctx context.Context, productID, quantity int64) (bool, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, &domain.ProductNotFoundError{Identifier: productID}
	}
	return product.HasSufficientStock(quantity), nil
}

// LowStockProducts productos con stock <= threshold (inclusivo), ordenados por
// stock ascendente y nombre. El umbral lo decide siempre el caller.
func (uc *UseCase) LowStockProducts(ctx context.Context, threshold int64) ([]*entity.Product, error) {
	return uc.productRepo.ListLowStock(threshold)
}
