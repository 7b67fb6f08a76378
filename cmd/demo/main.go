// Demo de punta a punta del motor de stock: siembra el catálogo, registra
// entradas y salidas, provoca el rechazo por stock insuficiente y cierra con
// los reportes de lectura (inventario valorizado, stock bajo, historial y
// verificación de saldo contra el libro).
//
// Con DEMO_MEMORY=1 corre sobre los adaptadores en memoria, sin PostgreSQL.
// Con --reset solo recrea el esquema y termina.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/almacen-api/pkg/config"
)

func main() {
	ctx := context.Background()

	catalogUC, stockUC, err := buildServices(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if catalogUC == nil {
		return // --reset
	}

	if err := run(ctx, catalogUC, stockUC); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildServices(ctx context.Context) (*catalog.UseCase, *stock.UseCase, error) {
	if os.Getenv("DEMO_MEMORY") == "1" {
		store := memory.NewStore()
		productRepo := memory.NewProductRepository(store)
		catalogUC := catalog.NewUseCase(productRepo)
		stockUC := stock.NewUseCase(memory.NewTxRunner(store), productRepo, memory.NewMovementRepository(store), catalogUC)
		return catalogUC, stockUC, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "--reset" {
		fmt.Println("Reseteando base de datos...")
		if err := postgres.ResetDatabase(ctx, pool); err != nil {
			return nil, nil, err
		}
		fmt.Println("Base reseteada.")
		return nil, nil, nil
	}

	if err := postgres.ResetDatabase(ctx, pool); err != nil {
		return nil, nil, err
	}
	productRepo := postgres.NewProductRepository(pool)
	catalogUC := catalog.NewUseCase(productRepo)
	stockUC := stock.NewUseCase(postgres.NewTxRunner(pool), productRepo, postgres.NewMovementRepository(pool), catalogUC)
	return catalogUC, stockUC, nil
}

type seedProduct struct {
	name        string
	description string
	price       string
}

type seedMovement struct {
	index    int
	quantity int64
	note     string
}

func run(ctx context.Context, catalogUC *catalog.UseCase, stockUC *stock.UseCase) error {
	fmt.Println("Sistema de control de stock")
	fmt.Println("==================================================")

	// 1. Alta de productos
	fmt.Println("\n1. REGISTRANDO PRODUCTOS")
	seeds := []seedProduct{
		{"Notebook Dell Inspiron", "Notebook para desarrollo", "2500.00"},
		{"Mouse Logitech MX", "Mouse inalámbrico", "350.00"},
		{"Cable HDMI 2m", "Cable HDMI 4K", "45.00"},
		{"SSD Samsung 500GB", "SSD NVMe", "380.00"},
		{"Teclado Mecánico", "Teclado mecánico RGB", "450.00"},
	}
	ids := make([]int64, 0, len(seeds))
	for _, s := range seeds {
		price, _ := decimal.NewFromString(s.price)
		p, err := catalogUC.Create(ctx, s.name, s.description, price, 0)
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
		fmt.Printf("   + %s - $%s\n", p.Name, p.UnitPrice.StringFixed(2))
	}

	// 2. Entradas
	fmt.Println("\n2. REGISTRANDO ENTRADAS DE STOCK")
	entries := []seedMovement{
		{0, 10, "Compra inicial"},
		{1, 25, "Stock de reposición"},
		{2, 50, "Lote grande"},
		{3, 15, "Compra mensual"},
		{4, 8, "Stock mínimo"},
	}
	for _, e := range entries {
		if _, err := stockUC.RegisterEntry(ctx, ids[e.index], e.quantity, e.note); err != nil {
			return err
		}
		p, err := catalogUC.GetByID(ctx, ids[e.index])
		if err != nil {
			return err
		}
		fmt.Printf("   -> %s: +%d unidades (total: %d)\n", p.Name, e.quantity, p.Stock)
	}

	// 3. Salidas
	fmt.Println("\n3. REGISTRANDO SALIDAS DE STOCK")
	exits := []seedMovement{
		{0, 3, "Venta cliente A"},
		{1, 10, "Venta local"},
		{2, 20, "Venta online"},
		{3, 5, "Instalación cliente"},
	}
	for _, e := range exits {
		if _, err := stockUC.RegisterExit(ctx, ids[e.index], e.quantity, e.note); err != nil {
			return err
		}
		p, err := catalogUC.GetByID(ctx, ids[e.index])
		if err != nil {
			return err
		}
		fmt.Printf("   <- %s: -%d unidades (total: %d)\n", p.Name, e.quantity, p.Stock)
	}

	// 4. Rechazo por stock insuficiente
	fmt.Println("\n4. REGLA DE NEGOCIO: STOCK INSUFICIENTE")
	cable, err := catalogUC.GetByID(ctx, ids[2])
	if err != nil {
		return err
	}
	fmt.Printf("   %s - stock actual: %d unidades; intentando retirar 35...\n", cable.Name, cable.Stock)
	if _, err := stockUC.RegisterExit(ctx, cable.ID, 35, "Intento de venta grande"); err != nil {
		fmt.Printf("   RECHAZADO: %v\n", err)
	} else {
		return fmt.Errorf("la salida debió rechazarse por stock insuficiente")
	}

	// 5. Reporte de inventario valorizado
	fmt.Println("\n5. REPORTE DE STOCK ACTUAL")
	products, err := catalogUC.List(ctx)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, p := range products {
		value := p.UnitPrice.Mul(decimal.NewFromInt(p.Stock))
		total = total.Add(value)
		fmt.Printf("   %-25s | stock: %3d | valor: $%10s\n", p.Name, p.Stock, value.StringFixed(2))
	}
	fmt.Printf("   VALOR TOTAL DEL STOCK: $%s\n", total.StringFixed(2))

	// 6. Stock bajo (umbral inclusivo, decidido acá)
	fmt.Println("\n6. PRODUCTOS CON STOCK BAJO (<= 10 unidades)")
	low, err := stockUC.LowStockProducts(ctx, 10)
	if err != nil {
		return err
	}
	if len(low) == 0 {
		fmt.Println("   Ningún producto con stock bajo.")
	}
	for _, p := range low {
		fmt.Printf("   ! %-25s | stock: %3d unidades\n", p.Name, p.Stock)
	}

	// 7. Historial
	fmt.Println("\n7. ÚLTIMOS MOVIMIENTOS")
	movements, err := stockUC.ListMovements(ctx, repository.MovementFilter{})
	if err != nil {
		return err
	}
	if len(movements) > 8 {
		movements = movements[:8]
	}
	for _, m := range movements {
		sign := "+"
		if m.StockImpact() < 0 {
			sign = "-"
		}
		fmt.Printf("   %s%3d | producto %d | %s | %s\n", sign, m.Quantity, m.ProductID, m.Kind, m.CreatedAt.Format("02/01 15:04"))
	}

	// 8. Saldo contra el libro
	fmt.Println("\n8. VERIFICACIÓN DE SALDO CONTRA EL LIBRO")
	for _, id := range ids {
		balance, err := stockUC.BalanceFromLedger(ctx, id)
		if err != nil {
			return err
		}
		p, err := stockUC.Reconcile(ctx, id)
		if err != nil {
			return err
		}
		status := "OK"
		if balance != p.Stock {
			status = "DESVÍO"
		}
		fmt.Printf("   producto %d: saldo libro %d, stock %d [%s]\n", id, balance, p.Stock, status)
	}

	fmt.Println("\nDemostración completada.")
	return nil
}
