// seed siembra un catálogo JSON (productos, proveedores, clientes) en PostgreSQL
// y, si hay JWT_SECRET, imprime un token de prueba por rol para la tienda sembrada.
//
// Uso: go run ./cmd/seed [ruta/catalog.json]
// Por defecto busca catalog.json en el directorio actual.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/postgres"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/infrastructure/seed"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/config"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/jwt"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

func main() {
	path := "catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	cat, err := seed.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("catálogo inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	var sum seed.Summary
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var err error
		sum, err = seed.Apply(ctx, cat, postgres.NewCatalogRepository(tx))
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("siembra")
	}
	log.Info().
		Str("shop_id", cat.ShopID).
		Int("products", sum.Products).
		Int("suppliers", sum.Suppliers).
		Int("customers", sum.Customers).
		Msg("catálogo sembrado")

	if cfg.JWT.Secret == "" {
		return
	}
	for _, role := range []string{"admin", "manager", "staff"} {
		tok, err := jwt.Generate(cfg.JWT.Secret, "seed-"+role, cat.ShopID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Printf("%s\t%s\n", role, tok)
	}
}
