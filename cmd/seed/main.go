// seed aplica las migraciones y crea los usuarios por defecto (admin/admin, user/user)
// si todavía no existen.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/winery-api/internal/application/usecase"
	"github.com/jhoicas/winery-api/internal/infrastructure/postgres"
	"github.com/jhoicas/winery-api/pkg/config"
	"github.com/jhoicas/winery-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := usecase.NewUserUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewTxRunner(pool),
		usecase.NewAuditUseCase(postgres.NewAuditLogRepository(pool), log),
	)
	created, err := users.EnsureDefaultUsers(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuarios por defecto")
	}
	if len(created) == 0 {
		log.Info().Msg("los usuarios por defecto ya existen")
		return
	}
	log.Info().Strs("users", created).Msg("usuarios por defecto creados")
}
