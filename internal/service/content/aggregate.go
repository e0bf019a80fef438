package content

import (
	"math"
	"time"

	"devshare/internal/config"
	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
)

// Aggregate transitions: each takes the current record and returns the next
// one without mutating its input. Callers persist the result conditionally on
// the record version (see the service layer), so a transition either applies
// as a whole or not at all.

// AddView increments the view counter. Every call counts; there is no
// idempotency guard.
func AddView(rec *models.Record) *models.Record {
	next := rec.Clone()
	next.Views++
	next.UpdatedAt = time.Now().UTC()
	return next
}

// AddLike inserts likerID into the like set and recomputes the like count.
// A liker already present makes this a no-op.
func AddLike(rec *models.Record, likerID string) *models.Record {
	next := rec.Clone()
	if next.HasLike(likerID) {
		return next
	}

	next.Likes = append(next.Likes, likerID)
	next.LikeCount = len(next.Likes)
	next.UpdatedAt = time.Now().UTC()
	return next
}

// RemoveLike removes likerID from the like set and recomputes the like
// count. A liker not present makes this a no-op.
func RemoveLike(rec *models.Record, likerID string) *models.Record {
	next := rec.Clone()
	if !next.HasLike(likerID) {
		return next
	}

	likes := make([]string, 0, len(next.Likes)-1)
	for _, id := range next.Likes {
		if id != likerID {
			likes = append(likes, id)
		}
	}
	next.Likes = likes
	next.LikeCount = len(likes)
	next.UpdatedAt = time.Now().UTC()
	return next
}

// AddRating records a single rating in [0, 5] and recomputes the running
// average to one decimal place.
func AddRating(rec *models.Record, value float64) (*models.Record, error) {
	if value < config.MinRating || value > config.MaxRating {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"rating": "must be between 0 and 5",
		}}
	}

	next := rec.Clone()
	next.TotalRatings++
	next.TotalRatingSum += value
	next.AverageRating = round1(next.TotalRatingSum / float64(next.TotalRatings))
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// Publish marks the record published and stamps publishedAt exactly once.
// Publishing an already-published record is a no-op, publishedAt included.
func Publish(rec *models.Record) *models.Record {
	next := rec.Clone()
	if next.IsPublished {
		return next
	}

	now := time.Now().UTC()
	next.IsPublished = true
	next.PublishedAt = &now
	next.UpdatedAt = now
	return next
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
