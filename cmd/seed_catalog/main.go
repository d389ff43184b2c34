// seed_catalog carga el catálogo de productos de la óptica desde un CSV separado por ';'.
//
// Uso: go run ./cmd/seed_catalog [-latin1] catalogo.csv
// Usa la misma configuración de base de datos que la API (DB_*, DATABASE_URL).
// Los SKU ya existentes se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/jhoicas/optica-erp/internal/application/usecase"
	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/optica-erp/pkg/config"
	"github.com/jhoicas/optica-erp/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	path := "catalogo.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("abrir catálogo")
	}
	defer f.Close()

	items, err := readCatalog(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer catálogo")
	}

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("db_driver", cfg.DB.Driver).Msg("seed_catalog requiere DB_DRIVER=postgres")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	var created, skipped int
	for _, in := range items {
		if _, err := products.Create(ctx, in); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Error().Err(err).Str("sku", in.SKU).Msg("producto rechazado")
			skipped++
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Str("file", path).Msg("catálogo cargado")
}
