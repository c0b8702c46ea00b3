// import_products carga productos y su stock inicial desde un CSV.
//
// Uso: go run ./cmd/import_products [-latin1] productos.csv
// Columnas: SKU, Name, Price, InitialQty (cabecera opcional).
// Los SKU ya registrados se omiten y se listan al final.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_products [-latin1] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("la importación requiere DB_DRIVER=postgres")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	entries, err := readEntries(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewLedgerUseCase(txRunner, postgres.NewProductRepository(pool), postgres.NewStockMovementRepository(pool))
	bulk := inventory.NewBulkImportUseCase(txRunner, ledger)

	res, err := bulk.BulkRegister(ctx, entries)
	if err != nil {
		logImportError(log.Zerolog(), res, err)
		return
	}
	log.Info().Int("added", res.Added).Strs("skipped", res.Skipped).Msg("importación terminada")
	fmt.Printf("Agregados: %d\n", res.Added)
	for _, sku := range res.Skipped {
		fmt.Printf("Omitido (ya existe): %s\n", sku)
	}
}

// logImportError distingue la validación previa (nada escrito) de un fallo a mitad de lote,
// donde las filas anteriores ya están confirmadas.
func logImportError(log zerolog.Logger, res *inventory.BulkResult, err error) {
	if res != nil {
		log.Error().Err(err).Int("added", res.Added).Msg("importación interrumpida, las filas anteriores ya quedaron registradas")
		return
	}
	log.Error().Err(err).Msg("validación fallida, no se escribió nada")
}
