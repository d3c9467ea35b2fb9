package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	customerpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/persistence/postgres"
	productpostgres "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-orders-api/internal/platform/fixtures"
	"github.com/Apurer/go-gin-orders-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-orders-api/internal/platform/postgres"
)

func main() {
	file := flag.String("file", strings.TrimSpace(os.Getenv("SEED_FILE")), "path to a YAML catalog fixture")
	flag.Parse()
	if *file == "" {
		log.Fatal("fixture file required: pass -file or set SEED_FILE")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot seed catalog")
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	catalog, err := fixtures.LoadFile(*file)
	if err != nil {
		log.Fatalf("failed to load fixtures: %v", err)
	}
	summary, err := fixtures.Apply(ctx, catalog, customerpostgres.NewDirectory(db), productpostgres.NewCatalog(db))
	if err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	log.Printf("catalog seed completed: %d customers, %d products", summary.Customers, summary.Products)
}
