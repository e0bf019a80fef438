package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
	"devshare/internal/domain/repositories"
	"devshare/internal/domain/services"

	"github.com/google/uuid"
)

const (
	// maxUpdateAttempts bounds the optimistic-concurrency retry loop for
	// engagement updates. Exhaustion surfaces as a ConflictError.
	maxUpdateAttempts = 3

	// trendingWindow is how far back trending queries look.
	trendingWindow = 7 * 24 * time.Hour

	defaultTrendingLimit = 20
	maxTrendingLimit     = 100
)

// contentService implements the ContentService interface
type contentService struct {
	repo     repositories.ContentRepository
	composer *Composer
	logger   *slog.Logger
}

// NewContentService creates a new content service
func NewContentService(
	repo repositories.ContentRepository,
	composer *Composer,
	logger *slog.Logger,
) services.ContentService {
	return &contentService{
		repo:     repo,
		composer: composer,
		logger:   logger,
	}
}

// Create validates a candidate record, runs the discussion->question
// referential check, and persists the result.
func (s *contentService) Create(ctx context.Context, req *services.CreateContentRequest) (*models.Record, error) {
	ct := models.ContentType(req.ContentType)

	constraints, err := s.composer.Compose(ct)
	if err != nil {
		return nil, err
	}

	payload, err := models.DecodePayload(ct, req.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return nil, err
		}
		return nil, &domain.ValidationError{Fields: map[string]string{
			"payload": "must be a valid " + string(ct) + " payload",
		}}
	}

	candidate := &models.Record{
		CreatorID:       req.CreatorID,
		Title:           req.Title,
		Description:     req.Description,
		DifficultyLevel: models.DifficultyLevel(req.DifficultyLevel),
		ContentType:     ct,
		Payload:         payload,
		Tags:            req.Tags,
		Prerequisites:   req.Prerequisites,
		Resources:       req.Resources,
		IsPublished:     req.IsPublished,
	}

	rec, err := Validate(candidate, constraints)
	if err != nil {
		return nil, err
	}

	// Structural validity does not imply referential validity: the
	// discussion's related question is resolved against the store.
	if discussion, ok := rec.Payload.(*models.DiscussionPayload); ok {
		if err := CheckQuestionReference(ctx, s.repo, discussion.RelatedQuestionID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.Version = 1

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("content created",
		"id", rec.ID,
		"content_type", rec.ContentType,
		"creator_id", rec.CreatorID,
		"published", rec.IsPublished,
	)

	return rec, nil
}

// Get retrieves a record by id.
func (s *contentService) Get(ctx context.Context, id string) (*models.Record, error) {
	return s.repo.GetByID(ctx, id)
}

// RecordView counts one view.
func (s *contentService) RecordView(ctx context.Context, id string) (*models.Record, error) {
	return s.applyTransition(ctx, id, func(rec *models.Record) (*models.Record, error) {
		return AddView(rec), nil
	})
}

// Like adds likerID to the record's like set.
func (s *contentService) Like(ctx context.Context, id, likerID string) (*models.Record, error) {
	return s.applyTransition(ctx, id, func(rec *models.Record) (*models.Record, error) {
		return AddLike(rec, likerID), nil
	})
}

// Unlike removes likerID from the record's like set.
func (s *contentService) Unlike(ctx context.Context, id, likerID string) (*models.Record, error) {
	return s.applyTransition(ctx, id, func(rec *models.Record) (*models.Record, error) {
		return RemoveLike(rec, likerID), nil
	})
}

// Rate records a single rating.
func (s *contentService) Rate(ctx context.Context, id string, rating float64) (*models.Record, error) {
	return s.applyTransition(ctx, id, func(rec *models.Record) (*models.Record, error) {
		return AddRating(rec, rating)
	})
}

// Publish marks the record published.
func (s *contentService) Publish(ctx context.Context, id string) (*models.Record, error) {
	return s.applyTransition(ctx, id, func(rec *models.Record) (*models.Record, error) {
		return Publish(rec), nil
	})
}

// applyTransition runs the read -> transition -> conditional-write cycle for
// an engagement update. The write is conditioned on the version read; a
// conflict means another writer won the race, so the whole transition is
// recomputed from a fresh read. No transition ever partially applies.
func (s *contentService) applyTransition(
	ctx context.Context,
	id string,
	transition func(*models.Record) (*models.Record, error),
) (*models.Record, error) {
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		rec, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		next, err := transition(rec)
		if err != nil {
			return nil, err
		}

		err = s.repo.UpdateEngagement(ctx, next, rec.Version)
		if err == nil {
			next.Version = rec.Version + 1
			return next, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}

		s.logger.Debug("engagement update conflicted, retrying",
			"id", id,
			"attempt", attempt,
		)
	}

	return nil, &domain.ConflictError{ResourceID: id, Attempts: maxUpdateAttempts}
}

// ListByCreator lists a creator's published records.
func (s *contentService) ListByCreator(ctx context.Context, creatorID string) ([]models.Record, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", domain.ErrValidation)
	}
	return s.repo.ListByCreator(ctx, creatorID)
}

// ListByTags lists published records matching any given tag. Tags are
// normalized the same way they are at write time, so lookups are
// case-insensitive.
func (s *contentService) ListByTags(ctx context.Context, tags []string) ([]models.Record, error) {
	normalized := NormalizeTags(tags)
	if len(normalized) == 0 {
		return nil, fmt.Errorf("%w: at least one tag is required", domain.ErrValidation)
	}
	return s.repo.ListByTags(ctx, normalized)
}

// ListTrending lists recently created published records by engagement.
func (s *contentService) ListTrending(ctx context.Context, limit int) ([]models.Record, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	since := time.Now().UTC().Add(-trendingWindow)
	return s.repo.ListTrending(ctx, since, limit)
}

// ListQuestions lists published questions.
func (s *contentService) ListQuestions(ctx context.Context) ([]models.Record, error) {
	return s.repo.ListQuestions(ctx)
}

// ListDiscussions lists published discussions referencing a question.
func (s *contentService) ListDiscussions(ctx context.Context, questionID string) ([]models.Record, error) {
	if questionID == "" {
		return nil, fmt.Errorf("%w: question id is required", domain.ErrValidation)
	}
	return s.repo.ListDiscussionsByQuestion(ctx, questionID)
}
