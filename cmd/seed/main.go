package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"devshare/internal/config"
	"devshare/internal/domain/services"
	"devshare/internal/repository/postgres"
	contentsvc "devshare/internal/service/content"
	"devshare/internal/snippets"

	"github.com/joho/godotenv"
)

// seedEntry is one demo record. Payloads go through the same validation path
// as API traffic, so a bad entry fails loudly instead of landing in the table.
type seedEntry struct {
	contentType string
	title       string
	description string
	difficulty  string
	tags        []string
	payload     interface{}
}

var entries = []seedEntry{
	{
		contentType: "quick-tip",
		title:       "Run go vet before every commit",
		description: "Catches printf mismatches, copied locks and unreachable code before review does.",
		difficulty:  "beginner",
		tags:        []string{"go", "tooling"},
		payload:     map[string]any{"text": "Add `go vet ./...` to your pre-commit hook. It is fast enough to run on every commit and catches a surprising amount."},
	},
	{
		contentType: "code-snippet",
		title:       "Context with timeout for outbound calls",
		description: "A small pattern for bounding any outbound call with a deadline.",
		difficulty:  "intermediate",
		tags:        []string{"go", "context"},
		payload: map[string]any{
			"code":     "ctx, cancel := context.WithTimeout(ctx, 5*time.Second)\ndefer cancel()\nresp, err := client.Do(req.WithContext(ctx))",
			"language": "go",
		},
	},
	{
		contentType: "blog-post",
		title:       "Optimistic concurrency without the drama",
		description: "Why a version column and a bounded retry loop beat row locks for counters.",
		difficulty:  "advanced",
		tags:        []string{"postgres", "concurrency"},
		payload: map[string]any{
			"markdown": "# Optimistic concurrency\n\nRead the row, compute the next state, write it back conditioned on the version you read. If the write misses, somebody else got there first. Re-read and try again, a bounded number of times.",
		},
	},
	{
		contentType: "question",
		title:       "How do you structure table-driven tests for errors?",
		description: "Looking for conventions around asserting on wrapped error chains in table tests.",
		difficulty:  "intermediate",
		tags:        []string{"go", "testing"},
		payload:     map[string]any{"text": "Do you assert with errors.Is against sentinels, or errors.As against concrete types? Both feel clumsy in a table."},
	},
}

func main() {
	clearData := flag.Bool("clear-data", false, "Delete existing content rows before seeding")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" {
		log.Fatalf("BLOCKED: Cannot seed demo content in production environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *clearData {
		if _, err := pool.Exec(ctx, "DELETE FROM "+tables.Content); err != nil {
			log.Fatalf("Failed to clear content: %v", err)
		}
		log.Printf("Cleared %s", tables.Content)
	}

	repo := postgres.NewContentRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})

	languages, err := snippets.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load language registry: %v", err)
	}
	svc := contentsvc.NewContentService(repo, contentsvc.NewComposer(languages), logger)

	for _, entry := range entries {
		raw, err := json.Marshal(entry.payload)
		if err != nil {
			log.Fatalf("Failed to marshal payload for %q: %v", entry.title, err)
		}

		rec, err := svc.Create(ctx, &services.CreateContentRequest{
			CreatorID:       "seed-user",
			Title:           entry.title,
			Description:     entry.description,
			DifficultyLevel: entry.difficulty,
			ContentType:     entry.contentType,
			Payload:         raw,
			Tags:            entry.tags,
			IsPublished:     true,
		})
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", entry.title, err)
		}
		log.Printf("Seeded %s %q (%s)", rec.ContentType, rec.Title, rec.ID)
	}

	log.Printf("Seeded %d records", len(entries))
}
