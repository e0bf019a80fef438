package services

import (
	"context"
	"encoding/json"

	models "devshare/internal/domain/models/content"
)

// ContentService handles content business logic: validation and referential
// checks on creation, and the engagement transitions afterwards.
type ContentService interface {
	// Create validates a candidate record and persists it. Structural
	// violations return a *domain.ValidationError listing every failing
	// field; a discussion with an unresolvable question returns a
	// *domain.ReferentialError.
	Create(ctx context.Context, req *CreateContentRequest) (*models.Record, error)

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (*models.Record, error)

	// RecordView counts one view. Every call counts.
	RecordView(ctx context.Context, id string) (*models.Record, error)

	// Like adds likerID to the record's like set (idempotent).
	Like(ctx context.Context, id, likerID string) (*models.Record, error)

	// Unlike removes likerID from the record's like set (idempotent).
	Unlike(ctx context.Context, id, likerID string) (*models.Record, error)

	// Rate records a rating in [0, 5] and recomputes the average.
	Rate(ctx context.Context, id string, rating float64) (*models.Record, error)

	// Publish marks the record published, stamping publishedAt exactly once.
	Publish(ctx context.Context, id string) (*models.Record, error)

	// ListByCreator lists a creator's published records, newest first.
	ListByCreator(ctx context.Context, creatorID string) ([]models.Record, error)

	// ListByTags lists published records matching any given tag.
	ListByTags(ctx context.Context, tags []string) ([]models.Record, error)

	// ListTrending lists recently created published records by engagement.
	ListTrending(ctx context.Context, limit int) ([]models.Record, error)

	// ListQuestions lists published questions, newest first.
	ListQuestions(ctx context.Context) ([]models.Record, error)

	// ListDiscussions lists published discussions referencing a question.
	ListDiscussions(ctx context.Context, questionID string) ([]models.Record, error)
}

// CreateContentRequest represents a content creation request. Payload stays
// raw until the discriminant selects which variant to decode it into.
type CreateContentRequest struct {
	CreatorID       string             `json:"-"` // Set by handler from auth context, not from request body
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	DifficultyLevel string             `json:"difficultyLevel"`
	ContentType     string             `json:"contentType"`
	Payload         json.RawMessage    `json:"payload"`
	Tags            []string           `json:"tags"`
	Prerequisites   []string           `json:"prerequisites,omitempty"`
	Resources       []models.Resource  `json:"resources,omitempty"`
	IsPublished     bool               `json:"isPublished"`
}

// RateContentRequest represents a rating submission.
type RateContentRequest struct {
	Rating float64 `json:"rating"`
}
