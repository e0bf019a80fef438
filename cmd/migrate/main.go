package main

import (
	"context"
	"flag"
	"log"

	"devshare/internal/config"
	"devshare/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before migrating (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: Cannot run --drop-tables in production environment")
	}

	log.Printf("Migrating database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("Dropping tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createContent := `
		CREATE TABLE IF NOT EXISTS ` + tables.Content + ` (
			id UUID PRIMARY KEY,
			creator_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			difficulty_level TEXT NOT NULL,
			content_type TEXT NOT NULL,
			payload JSONB NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			prerequisites TEXT[],
			resources JSONB,
			views BIGINT NOT NULL DEFAULT 0,
			likes TEXT[] NOT NULL DEFAULT '{}',
			like_count INTEGER NOT NULL DEFAULT 0,
			total_ratings BIGINT NOT NULL DEFAULT 0,
			total_rating_sum DOUBLE PRECISION NOT NULL DEFAULT 0,
			average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_published BOOLEAN NOT NULL DEFAULT FALSE,
			published_at TIMESTAMPTZ,
			version BIGINT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContent); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_creator_created ON ` + tables.Content + `(creator_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_type_published ON ` + tables.Content + `(content_type, is_published, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_tags ON ` + tables.Content + ` USING GIN (tags)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_trending ON ` + tables.Content + `(is_published, created_at DESC, views DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_related_question ON ` + tables.Content + `((payload->>'relatedQuestionId')) WHERE content_type = 'discussion'`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	dropSQL := "DROP TABLE IF EXISTS " + tables.Content + " CASCADE"
	if _, err := pool.Exec(ctx, dropSQL); err != nil {
		return err
	}
	log.Printf("  dropped %s", tables.Content)
	return nil
}
