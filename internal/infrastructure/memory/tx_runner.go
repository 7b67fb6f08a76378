package memory

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el almacén en memoria: toma el mutex durante
// toda la transacción, guarda un snapshot y lo restaura si fn falla. Con eso
// un fallo posterior a la inserción del movimiento no deja rastro, igual que
// el Rollback de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner atado al almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la "transacción" (mutex retenido).
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	movRepo := &MovementRepo{store: r.store, inTx: true}
	productRepo := &ProductRepo{store: r.store, inTx: true}

	if err := fn(movRepo, productRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
