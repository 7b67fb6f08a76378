package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	catalog *catalog.UseCase
	stock   *stock.UseCase
	store   *memory.Store
}

// newFixture arma el motor completo sobre los adaptadores en memoria.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	catalogUC := catalog.NewUseCase(productRepo)
	stockUC := stock.NewUseCase(memory.NewTxRunner(store), productRepo, movementRepo, catalogUC)
	return &fixture{catalog: catalogUC, stock: stockUC, store: store}
}

// createProduct registra un producto con el stock inicial dado.
func (f *fixture) createProduct(t *testing.T, name string, initialStock int64) *entity.Product {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), name, "", decimal.Zero, initialStock)
	require.NoError(t, err)
	return p
}

// currentStock relee el contador vigente del producto.
func (f *fixture) currentStock(t *testing.T, id int64) int64 {
	t.Helper()
	p, err := f.catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

// movementCount cuenta los movimientos del producto en el libro.
func (f *fixture) movementCount(t *testing.T, id int64) int {
	t.Helper()
	movs, err := f.stock.ListMovements(context.Background(), repository.MovementFilter{ProductID: &id})
	require.NoError(t, err)
	return len(movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada suma exactamente la cantidad al contador y deja exactamente un
// movimiento de tipo entry en el libro.
func TestRegisterEntry_SumaStockYRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Mouse Logitech MX", 0)

	mov, err := f.stock.RegisterEntry(context.Background(), p.ID, 25, "compra inicial")
	require.NoError(t, err)

	assert.Equal(t, entity.KindEntry, mov.Kind)
	assert.Equal(t, int64(25), mov.Quantity)
	assert.NotZero(t, mov.ID, "el libro asigna el ID al persistir")
	assert.Equal(t, "compra inicial", mov.Note)
	assert.Equal(t, int64(25), f.currentStock(t, p.ID))
	assert.Equal(t, 1, f.movementCount(t, p.ID))
}

func TestRegisterEntry_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Teclado", 10)

	for _, qty := range []int64{0, -5} {
		_, err := f.stock.RegisterEntry(context.Background(), p.ID, qty, "")
		var invalid *domain.InvalidMovementError
		require.ErrorAs(t, err, &invalid, "cantidad %d", qty)
	}
	// Rechazo sin efectos: ni movimiento ni cambio de stock
	assert.Equal(t, int64(10), f.currentStock(t, p.ID))
	assert.Equal(t, 0, f.movementCount(t, p.ID))
}

func TestRegisterEntry_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.stock.RegisterEntry(context.Background(), 999, 5, "")
	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(999), notFound.Identifier)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterExit_RestaStockYRegistraMovimiento(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "SSD Samsung 500GB", 15)

	mov, err := f.stock.RegisterExit(context.Background(), p.ID, 5, "venta")
	require.NoError(t, err)

	assert.Equal(t, entity.KindExit, mov.Kind)
	assert.Equal(t, int64(5), mov.Quantity)
	assert.Equal(t, int64(10), f.currentStock(t, p.ID))
	assert.Equal(t, 1, f.movementCount(t, p.ID))
}

// Retirar exactamente el saldo deja el stock en 0; no es un error.
func TestRegisterExit_SaldoExacto(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Cable HDMI 2m", 8)

	_, err := f.stock.RegisterExit(context.Background(), p.ID, 8, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.currentStock(t, p.ID))
}

// El rechazo por stock insuficiente lleva el contexto completo y no deja
// ningún efecto observable (fallo idempotente).
func TestRegisterExit_StockInsuficiente(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Notebook Dell", 7)

	_, err := f.stock.RegisterExit(context.Background(), p.ID, 8, "")
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Notebook Dell", insufficient.ProductName)
	assert.Equal(t, int64(7), insufficient.CurrentStock)
	assert.Equal(t, int64(8), insufficient.Requested)

	assert.Equal(t, int64(7), f.currentStock(t, p.ID))
	assert.Equal(t, 0, f.movementCount(t, p.ID))
}

func TestRegisterExit_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Teclado", 10)

	_, err := f.stock.RegisterExit(context.Background(), p.ID, 0, "")
	var invalid *domain.InvalidMovementError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, int64(10), f.currentStock(t, p.ID))
	assert.Equal(t, 0, f.movementCount(t, p.ID))
}

// Escenario: "Cable" con stock 50; retirar 35 deja 15; un segundo retiro de 35
// se rechaza y el stock queda en 15.
func TestRegisterExit_EscenarioCable(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Cable", 50)
	ctx := context.Background()

	_, err := f.stock.RegisterExit(ctx, p.ID, 35, "")
	require.NoError(t, err)
	assert.Equal(t, int64(15), f.currentStock(t, p.ID))

	_, err = f.stock.RegisterExit(ctx, p.ID, 35, "")
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(15), insufficient.CurrentStock)
	assert.Equal(t, int64(35), insufficient.Requested)
	assert.Equal(t, int64(15), f.currentStock(t, p.ID))
}

// Escenario: "Mouse" desde 0: entra 25, sale 25 (saldo exacto), y el
// siguiente retiro de 1 se rechaza con el stock en 0.
func TestRegisterExit_EscenarioMouse(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Mouse", 0)
	ctx := context.Background()

	_, err := f.stock.RegisterEntry(ctx, p.ID, 25, "")
	require.NoError(t, err)
	assert.Equal(t, int64(25), f.currentStock(t, p.ID))

	_, err = f.stock.RegisterExit(ctx, p.ID, 25, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.currentStock(t, p.ID))

	_, err = f.stock.RegisterExit(ctx, p.ID, 1, "")
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(0), f.currentStock(t, p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// failingSetStockRepo simula un fallo de almacenamiento en la escritura del
// contador, después de que el movimiento ya se insertó en la tx.
type failingSetStockRepo struct {
	repository.ProductRepository
}

func (r failingSetStockRepo) SetStock(id int64, stock int64) error {
	return errors.New("disco lleno")
}

type failingTxRunner struct {
	inner stock.TxRunner
}

func (r failingTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		return fn(movRepo, failingSetStockRepo{productRepo})
	})
}

// Si la escritura del stock falla después de insertar el movimiento, el
// rollback no deja movimientos huérfanos ni cambios de contador.
func TestRegister_RollbackSinMovimientoHuerfano(t *testing.T) {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	movementRepo := memory.NewMovementRepository(store)
	catalogUC := catalog.NewUseCase(productRepo)
	runner := failingTxRunner{inner: memory.NewTxRunner(store)}
	stockUC := stock.NewUseCase(runner, productRepo, movementRepo, catalogUC)

	ctx := context.Background()
	p, err := catalogUC.Create(ctx, "Monitor", "", decimal.Zero, 4)
	require.NoError(t, err)

	_, err = stockUC.RegisterEntry(ctx, p.ID, 6, "")
	require.Error(t, err)

	after, err := catalogUC.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), after.Stock, "el contador no debe cambiar")

	movs, err := stockUC.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento insertado debe revertirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas: historial, saldo, suficiencia, stock bajo
// ──────────────────────────────────────────────────────────────────────────────

// Ley de conciliación: +10, -3, +2 desde 0 da saldo 9 tanto en el libro como
// en el contador, y el historial llega del más reciente al más antiguo.
func TestBalanceFromLedger_CoincideConContador(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Webcam", 0)
	ctx := context.Background()

	_, err := f.stock.RegisterEntry(ctx, p.ID, 10, "")
	require.NoError(t, err)
	_, err = f.stock.RegisterExit(ctx, p.ID, 3, "")
	require.NoError(t, err)
	_, err = f.stock.RegisterEntry(ctx, p.ID, 2, "")
	require.NoError(t, err)

	balance, err := f.stock.BalanceFromLedger(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), balance)
	assert.Equal(t, int64(9), f.currentStock(t, p.ID))

	movs, err := f.stock.ListMovements(ctx, repository.MovementFilter{ProductID: &p.ID})
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, []int64{2, 3, 10}, []int64{movs[0].Quantity, movs[1].Quantity, movs[2].Quantity},
		"el más reciente primero")
}

func TestBalanceFromLedger_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.stock.BalanceFromLedger(context.Background(), 42)
	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListMovements_Filtros(t *testing.T) {
	f := newFixture(t)
	a := f.createProduct(t, "A", 0)
	b := f.createProduct(t, "B", 0)
	ctx := context.Background()

	_, err := f.stock.RegisterEntry(ctx, a.ID, 10, "")
	require.NoError(t, err)
	_, err = f.stock.RegisterExit(ctx, a.ID, 4, "")
	require.NoError(t, err)
	_, err = f.stock.RegisterEntry(ctx, b.ID, 7, "")
	require.NoError(t, err)

	all, err := f.stock.ListMovements(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onlyA, err := f.stock.ListMovements(ctx, repository.MovementFilter{ProductID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)

	exitKind := entity.KindExit
	onlyExits, err := f.stock.ListMovements(ctx, repository.MovementFilter{Kind: &exitKind})
	require.NoError(t, err)
	require.Len(t, onlyExits, 1)
	assert.Equal(t, a.ID, onlyExits[0].ProductID)

	onlyAEntries, err := f.stock.ListMovements(ctx, repository.MovementFilter{ProductID: &a.ID, Kind: ptrKind(entity.KindEntry)})
	require.NoError(t, err)
	require.Len(t, onlyAEntries, 1)
	assert.Equal(t, int64(10), onlyAEntries[0].Quantity)
}

func ptrKind(k entity.MovementKind) *entity.MovementKind { return &k }

func TestHasSufficientStock(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Parlante", 3)
	ctx := context.Background()

	ok, err := f.stock.HasSufficientStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.stock.HasSufficientStock(ctx, p.ID, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.stock.HasSufficientStock(ctx, 77, 1)
	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación
// ──────────────────────────────────────────────────────────────────────────────

// Reconcile repara un contador desviado escribiendo el saldo del libro, y
// llamarlo de nuevo no cambia nada (idempotente).
func TestReconcile_ReparaDesvioYEsIdempotente(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Hub USB", 0)
	ctx := context.Background()

	_, err := f.stock.RegisterEntry(ctx, p.ID, 12, "")
	require.NoError(t, err)
	_, err = f.stock.RegisterExit(ctx, p.ID, 2, "")
	require.NoError(t, err)

	// Desvío simulado: alguien escribió el contador por fuera del motor
	_, err = f.catalog.SetStock(ctx, p.ID, 99)
	require.NoError(t, err)

	repaired, err := f.stock.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), repaired.Stock)

	again, err := f.stock.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Stock)
	assert.Equal(t, int64(10), f.currentStock(t, p.ID))
}

func TestReconcile_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.stock.Reconcile(context.Background(), 123)
	var notFound *domain.ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo
// ──────────────────────────────────────────────────────────────────────────────

// El umbral es inclusivo y el orden es stock ascendente con desempate por nombre.
func TestLowStockProducts_InclusivoYOrdenado(t *testing.T) {
	f := newFixture(t)
	f.createProduct(t, "Zapato", 5)
	f.createProduct(t, "Abrigo", 5)
	f.createProduct(t, "Gorra", 2)
	f.createProduct(t, "Camisa", 6)
	ctx := context.Background()

	low, err := f.stock.LowStockProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 3, "el umbral incluye a los que están exactamente en él")

	names := []string{low[0].Name, low[1].Name, low[2].Name}
	assert.Equal(t, []string{"Gorra", "Abrigo", "Zapato"}, names)
}

func TestLowStockProducts_SinProductos(t *testing.T) {
	f := newFixture(t)

	low, err := f.stock.LowStockProducts(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, low)
}
