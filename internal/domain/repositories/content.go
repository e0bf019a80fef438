package repositories

import (
	"context"
	"time"

	models "devshare/internal/domain/models/content"
)

// ContentRepository defines data access operations for content records.
// It is the persistence collaborator of the content engine: the engine never
// touches a connection object directly.
type ContentRepository interface {
	// Create persists a newly validated record.
	Create(ctx context.Context, rec *models.Record) error

	// GetByID retrieves a record, including its current version.
	GetByID(ctx context.Context, id string) (*models.Record, error)

	// UpdateEngagement writes a record's engagement and publication state
	// conditionally on expectedVersion being the stored version. Returns
	// domain.ErrConflict when another writer got there first; the caller
	// re-reads and retries the whole transition.
	UpdateEngagement(ctx context.Context, rec *models.Record, expectedVersion int64) error

	// ContentTypeByID fetches only a record's discriminant. Used by the
	// referential checker.
	ContentTypeByID(ctx context.Context, id string) (models.ContentType, error)

	// ListByCreator lists a creator's published records, newest first.
	ListByCreator(ctx context.Context, creatorID string) ([]models.Record, error)

	// ListByTags lists published records carrying any of the given tags,
	// best rated then most viewed first.
	ListByTags(ctx context.Context, tags []string) ([]models.Record, error)

	// ListTrending lists published records created since the given time,
	// ordered by views, likes and rating.
	ListTrending(ctx context.Context, since time.Time, limit int) ([]models.Record, error)

	// ListQuestions lists published questions, newest first.
	ListQuestions(ctx context.Context) ([]models.Record, error)

	// ListDiscussionsByQuestion lists published discussions referencing a
	// question, best rated first.
	ListDiscussionsByQuestion(ctx context.Context, questionID string) ([]models.Record, error)
}
