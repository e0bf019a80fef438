package content

import (
	"errors"
	"testing"
	"time"

	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
)

func baseRecord() *models.Record {
	return &models.Record{
		ID:              "rec-1",
		CreatorID:       "creator-1",
		Title:           "A title",
		Description:     "A description",
		DifficultyLevel: models.DifficultyBeginner,
		ContentType:     models.TypeQuickTip,
		Payload:         &models.QuickTipPayload{Text: "tip"},
		Tags:            []string{"go"},
		Likes:           []string{},
		Version:         1,
		CreatedAt:       time.Now().UTC().Add(-time.Hour),
		UpdatedAt:       time.Now().UTC().Add(-time.Hour),
	}
}

func TestAddView(t *testing.T) {
	rec := baseRecord()
	rec.Views = 7

	next := AddView(rec)

	if next.Views != 8 {
		t.Errorf("Views = %d, want 8", next.Views)
	}
	if rec.Views != 7 {
		t.Errorf("input record mutated: Views = %d, want 7", rec.Views)
	}
	if !next.UpdatedAt.After(rec.UpdatedAt) {
		t.Error("UpdatedAt was not advanced")
	}
}

func TestAddLike(t *testing.T) {
	rec := baseRecord()

	next := AddLike(rec, "user-a")
	if next.LikeCount != 1 || !next.HasLike("user-a") {
		t.Fatalf("after first like: LikeCount = %d, likes = %v", next.LikeCount, next.Likes)
	}

	// Same liker again is a no-op.
	again := AddLike(next, "user-a")
	if again.LikeCount != 1 || len(again.Likes) != 1 {
		t.Errorf("duplicate like changed state: LikeCount = %d, likes = %v", again.LikeCount, again.Likes)
	}

	other := AddLike(next, "user-b")
	if other.LikeCount != 2 {
		t.Errorf("second liker: LikeCount = %d, want 2", other.LikeCount)
	}

	if len(rec.Likes) != 0 {
		t.Errorf("input record mutated: likes = %v", rec.Likes)
	}
}

func TestRemoveLike(t *testing.T) {
	rec := baseRecord()
	rec.Likes = []string{"user-a", "user-b"}
	rec.LikeCount = 2

	next := RemoveLike(rec, "user-a")
	if next.LikeCount != 1 || next.HasLike("user-a") {
		t.Fatalf("after remove: LikeCount = %d, likes = %v", next.LikeCount, next.Likes)
	}

	// Removing an absent liker is a no-op.
	again := RemoveLike(next, "user-z")
	if again.LikeCount != 1 || len(again.Likes) != 1 {
		t.Errorf("absent-liker removal changed state: LikeCount = %d, likes = %v", again.LikeCount, again.Likes)
	}

	if rec.LikeCount != 2 {
		t.Errorf("input record mutated: LikeCount = %d, want 2", rec.LikeCount)
	}
}

func TestAddRating(t *testing.T) {
	rec := baseRecord()

	first, err := AddRating(rec, 4)
	if err != nil {
		t.Fatalf("AddRating(4) error: %v", err)
	}
	second, err := AddRating(first, 5)
	if err != nil {
		t.Fatalf("AddRating(5) error: %v", err)
	}

	if second.TotalRatings != 2 {
		t.Errorf("TotalRatings = %d, want 2", second.TotalRatings)
	}
	if second.TotalRatingSum != 9 {
		t.Errorf("TotalRatingSum = %v, want 9", second.TotalRatingSum)
	}
	if second.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", second.AverageRating)
	}
}

func TestAddRatingRoundsToOneDecimal(t *testing.T) {
	rec := baseRecord()

	var err error
	next := rec
	for _, v := range []float64{5, 4, 4} {
		next, err = AddRating(next, v)
		if err != nil {
			t.Fatalf("AddRating(%v) error: %v", v, err)
		}
	}

	// 13/3 = 4.333... rounds to 4.3
	if next.AverageRating != 4.3 {
		t.Errorf("AverageRating = %v, want 4.3", next.AverageRating)
	}
}

func TestAddRatingRange(t *testing.T) {
	rec := baseRecord()

	for _, v := range []float64{-0.1, 5.1, 6} {
		_, err := AddRating(rec, v)
		if err == nil {
			t.Errorf("AddRating(%v) accepted an out-of-range value", v)
			continue
		}
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("AddRating(%v) error = %v, want *domain.ValidationError", v, err)
			continue
		}
		if _, ok := verr.Fields["rating"]; !ok {
			t.Errorf("AddRating(%v) fields = %v, want a rating key", v, verr.Fields)
		}
	}

	// Boundary values are accepted.
	for _, v := range []float64{0, 5} {
		if _, err := AddRating(rec, v); err != nil {
			t.Errorf("AddRating(%v) rejected a boundary value: %v", v, err)
		}
	}
}

func TestPublish(t *testing.T) {
	rec := baseRecord()

	published := Publish(rec)
	if !published.IsPublished {
		t.Fatal("record not marked published")
	}
	if published.PublishedAt == nil {
		t.Fatal("PublishedAt not stamped")
	}
	if rec.IsPublished {
		t.Error("input record mutated")
	}

	// Publishing again keeps the original timestamp.
	again := Publish(published)
	if !again.PublishedAt.Equal(*published.PublishedAt) {
		t.Errorf("PublishedAt changed on republish: %v -> %v", published.PublishedAt, again.PublishedAt)
	}
	if !again.UpdatedAt.Equal(published.UpdatedAt) {
		t.Errorf("UpdatedAt changed on republish: %v -> %v", published.UpdatedAt, again.UpdatedAt)
	}
}
