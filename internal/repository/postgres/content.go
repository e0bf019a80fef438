package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
	"devshare/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// contentColumns is the column list shared by every SELECT against the
// content table, in scanRecord order.
const contentColumns = `id, creator_id, title, description, difficulty_level, content_type,
	payload, tags, prerequisites, resources,
	views, likes, like_count, total_ratings, total_rating_sum, average_rating,
	is_published, published_at, version, created_at, updated_at`

// PostgresContentRepository implements the ContentRepository interface
type PostgresContentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(config *RepositoryConfig) repositories.ContentRepository {
	return &PostgresContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create persists a newly validated record.
func (r *PostgresContentRepository) Create(ctx context.Context, rec *models.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, creator_id, title, description, difficulty_level, content_type,
			payload, tags, prerequisites, resources,
			views, likes, like_count, total_ratings, total_rating_sum, average_rating,
			is_published, published_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`, r.tables.Content)

	payloadJSON, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resourcesJSON, err := json.Marshal(rec.Resources)
	if err != nil {
		return fmt.Errorf("marshal resources: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		rec.ID,
		rec.CreatorID,
		rec.Title,
		rec.Description,
		rec.DifficultyLevel,
		rec.ContentType,
		payloadJSON,
		rec.Tags,
		rec.Prerequisites,
		resourcesJSON,
		rec.Views,
		rec.Likes,
		rec.LikeCount,
		rec.TotalRatings,
		rec.TotalRatingSum,
		rec.AverageRating,
		rec.IsPublished,
		rec.PublishedAt,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("content %s already exists: %w", rec.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create content: %w", err)
	}

	return nil
}

// GetByID retrieves a record, including its current version.
func (r *PostgresContentRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, contentColumns, r.tables.Content)

	rec, err := r.scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	return rec, nil
}

// UpdateEngagement writes engagement and publication state conditionally on
// the stored version. A version mismatch means another writer committed
// first; the caller re-reads and retries the whole transition, so the update
// is all-or-nothing.
func (r *PostgresContentRepository) UpdateEngagement(ctx context.Context, rec *models.Record, expectedVersion int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET views = $2, likes = $3, like_count = $4,
			total_ratings = $5, total_rating_sum = $6, average_rating = $7,
			is_published = $8, published_at = $9, updated_at = $10,
			version = version + 1
		WHERE id = $1 AND version = $11
	`, r.tables.Content)

	tag, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Views,
		rec.Likes,
		rec.LikeCount,
		rec.TotalRatings,
		rec.TotalRatingSum,
		rec.AverageRating,
		rec.IsPublished,
		rec.PublishedAt,
		rec.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update engagement: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the version moved or the record is gone; tell them apart.
		var exists bool
		checkQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Content)
		if err := r.pool.QueryRow(ctx, checkQuery, rec.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check content existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("content %s: %w", rec.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("content %s version %d: %w", rec.ID, expectedVersion, domain.ErrConflict)
	}

	return nil
}

// ContentTypeByID fetches only a record's discriminant (referential checker).
func (r *PostgresContentRepository) ContentTypeByID(ctx context.Context, id string) (models.ContentType, error) {
	query := fmt.Sprintf(`SELECT content_type FROM %s WHERE id = $1`, r.tables.Content)

	var ct models.ContentType
	err := r.pool.QueryRow(ctx, query, id).Scan(&ct)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get content type: %w", err)
	}

	return ct, nil
}

// ListByCreator lists a creator's published records, newest first.
func (r *PostgresContentRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE creator_id = $1 AND is_published
		ORDER BY created_at DESC
	`, contentColumns, r.tables.Content)

	return r.queryRecords(ctx, query, creatorID)
}

// ListByTags lists published records carrying any of the given tags.
func (r *PostgresContentRepository) ListByTags(ctx context.Context, tags []string) ([]models.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE tags && $1 AND is_published
		ORDER BY average_rating DESC, views DESC
	`, contentColumns, r.tables.Content)

	return r.queryRecords(ctx, query, tags)
}

// ListTrending lists published records created since the given time.
func (r *PostgresContentRepository) ListTrending(ctx context.Context, since time.Time, limit int) ([]models.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE is_published AND created_at >= $1
		ORDER BY views DESC, like_count DESC, average_rating DESC
		LIMIT $2
	`, contentColumns, r.tables.Content)

	return r.queryRecords(ctx, query, since, limit)
}

// ListQuestions lists published questions, newest first.
func (r *PostgresContentRepository) ListQuestions(ctx context.Context) ([]models.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE content_type = $1 AND is_published
		ORDER BY created_at DESC
	`, contentColumns, r.tables.Content)

	return r.queryRecords(ctx, query, models.TypeQuestion)
}

// ListDiscussionsByQuestion lists published discussions referencing a question.
func (r *PostgresContentRepository) ListDiscussionsByQuestion(ctx context.Context, questionID string) ([]models.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE content_type = $1 AND is_published AND payload->>'relatedQuestionId' = $2
		ORDER BY average_rating DESC, created_at DESC
	`, contentColumns, r.tables.Content)

	return r.queryRecords(ctx, query, models.TypeDiscussion, questionID)
}

// queryRecords runs a SELECT over contentColumns and scans all rows.
func (r *PostgresContentRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]models.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query content: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content: %w", err)
	}

	return records, nil
}

// scanRecord maps one row onto a Record, decoding the JSONB payload into the
// variant selected by the stored discriminant.
func (r *PostgresContentRepository) scanRecord(row pgx.Row) (*models.Record, error) {
	var (
		rec           models.Record
		payloadJSON   []byte
		resourcesJSON []byte
	)

	err := row.Scan(
		&rec.ID,
		&rec.CreatorID,
		&rec.Title,
		&rec.Description,
		&rec.DifficultyLevel,
		&rec.ContentType,
		&payloadJSON,
		&rec.Tags,
		&rec.Prerequisites,
		&resourcesJSON,
		&rec.Views,
		&rec.Likes,
		&rec.LikeCount,
		&rec.TotalRatings,
		&rec.TotalRatingSum,
		&rec.AverageRating,
		&rec.IsPublished,
		&rec.PublishedAt,
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Payload, err = models.DecodePayload(rec.ContentType, payloadJSON)
	if err != nil {
		return nil, err
	}
	if len(resourcesJSON) > 0 {
		if err := json.Unmarshal(resourcesJSON, &rec.Resources); err != nil {
			return nil, fmt.Errorf("decode resources: %w", err)
		}
	}
	if rec.Likes == nil {
		rec.Likes = []string{}
	}

	return &rec, nil
}
