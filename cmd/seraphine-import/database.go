package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/seraphine/internal/infrastructure/postgres"
	"github.com/jhoicas/seraphine/pkg/config"
	"github.com/jhoicas/seraphine/pkg/logger"
)

type cliEnv struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// withDatabase abre el pool con la configuración del entorno (mismas variables DB_* que la API).
// No exige JWT_SECRET. Los logs van a stderr para no mezclarse con el JSON de salida.
func withDatabase(ctx context.Context, opts *options, fn func(context.Context, *cliEnv) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: opts.logLevel, Out: os.Stderr}).Component("import-cli")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	return fn(ctx, &cliEnv{pool: pool, log: log})
}
