package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
	"devshare/internal/domain/services"
)

// memRepo is an in-memory ContentRepository with real version-check semantics,
// so the optimistic-concurrency retry loop can be exercised without a database.
type memRepo struct {
	mu      sync.Mutex
	records map[string]*models.Record

	lastTags  []string
	lastLimit int
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]*models.Record)}
}

func (m *memRepo) Create(_ context.Context, rec *models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return domain.ErrConflict
	}
	m.records[rec.ID] = rec.Clone()
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *memRepo) UpdateEngagement(_ context.Context, rec *models.Record, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.records[rec.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	next := rec.Clone()
	next.Version = expectedVersion + 1
	m.records[rec.ID] = next
	return nil
}

func (m *memRepo) ContentTypeByID(_ context.Context, id string) (models.ContentType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return rec.ContentType, nil
}

func (m *memRepo) ListByCreator(_ context.Context, creatorID string) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Record
	for _, rec := range m.records {
		if rec.CreatorID == creatorID && rec.IsPublished {
			out = append(out, *rec.Clone())
		}
	}
	return out, nil
}

func (m *memRepo) ListByTags(_ context.Context, tags []string) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTags = tags
	return nil, nil
}

func (m *memRepo) ListTrending(_ context.Context, _ time.Time, limit int) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	return nil, nil
}

func (m *memRepo) ListQuestions(_ context.Context) ([]models.Record, error) {
	return nil, nil
}

func (m *memRepo) ListDiscussionsByQuestion(_ context.Context, _ string) ([]models.Record, error) {
	return nil, nil
}

// conflictRepo refuses every engagement write, simulating a record under
// constant contention.
type conflictRepo struct {
	*memRepo
	attempts int
}

func (c *conflictRepo) UpdateEngagement(_ context.Context, _ *models.Record, _ int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	return domain.ErrConflict
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, repo *memRepo) services.ContentService {
	t.Helper()
	return NewContentService(repo, newTestComposer(t), testLogger())
}

func createRequest(ct models.ContentType, payload interface{}) *services.CreateContentRequest {
	raw, _ := json.Marshal(payload)
	return &services.CreateContentRequest{
		CreatorID:       "creator-1",
		Title:           "A perfectly fine title",
		Description:     "A description long enough to matter.",
		DifficultyLevel: "beginner",
		ContentType:     string(ct),
		Payload:         raw,
		Tags:            []string{"go"},
		IsPublished:     true,
	}
}

func TestServiceCreate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	rec, err := svc.Create(ctx, createRequest(models.TypeQuickTip, models.QuickTipPayload{Text: "use go vet"}))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if rec.ID == "" {
		t.Error("ID not assigned")
	}
	if rec.Version != 1 {
		t.Errorf("Version = %d, want 1", rec.Version)
	}
	if rec.PublishedAt == nil {
		t.Error("PublishedAt not stamped for a published record")
	}

	stored, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.ContentType != models.TypeQuickTip {
		t.Errorf("stored ContentType = %q", stored.ContentType)
	}
}

func TestServiceCreateQuestionThenDiscussion(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	question, err := svc.Create(ctx, createRequest(models.TypeQuestion,
		models.QuestionPayload{Text: "how do generics work?"}))
	if err != nil {
		t.Fatalf("creating question: %v", err)
	}

	discussion, err := svc.Create(ctx, createRequest(models.TypeDiscussion,
		models.DiscussionPayload{Text: "here is my take", RelatedQuestionID: question.ID}))
	if err != nil {
		t.Fatalf("creating discussion: %v", err)
	}

	got := discussion.Payload.(*models.DiscussionPayload)
	if got.RelatedQuestionID != question.ID {
		t.Errorf("RelatedQuestionID = %q, want %q", got.RelatedQuestionID, question.ID)
	}
}

func TestServiceCreateDiscussionReferentialFailure(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	t.Run("missing question", func(t *testing.T) {
		_, err := svc.Create(ctx, createRequest(models.TypeDiscussion,
			models.DiscussionPayload{Text: "take", RelatedQuestionID: "nope"}))
		var rerr *domain.ReferentialError
		if !errors.As(err, &rerr) {
			t.Fatalf("error = %v, want *domain.ReferentialError", err)
		}
	})

	t.Run("target is not a question", func(t *testing.T) {
		post, err := svc.Create(ctx, createRequest(models.TypeBlogPost,
			models.BlogPostPayload{Markdown: "# Hello\n\nText."}))
		if err != nil {
			t.Fatalf("creating blog post: %v", err)
		}

		_, err = svc.Create(ctx, createRequest(models.TypeDiscussion,
			models.DiscussionPayload{Text: "take", RelatedQuestionID: post.ID}))
		var rerr *domain.ReferentialError
		if !errors.As(err, &rerr) {
			t.Fatalf("error = %v, want *domain.ReferentialError", err)
		}
		if rerr.RelatedQuestionID != post.ID {
			t.Errorf("RelatedQuestionID = %q, want %q", rerr.RelatedQuestionID, post.ID)
		}
	})
}

func TestServiceCreateUnknownContentType(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	req := createRequest(models.TypeQuickTip, models.QuickTipPayload{Text: "tip"})
	req.ContentType = "photo-album"

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("error = %v, want domain.ErrConfiguration", err)
	}
}

func TestServiceCreateMalformedPayload(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	req := createRequest(models.TypeQuickTip, nil)
	req.Payload = json.RawMessage(`{"text": 42`)

	_, err := svc.Create(context.Background(), req)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *domain.ValidationError", err)
	}
	if _, ok := verr.Fields["payload"]; !ok {
		t.Errorf("fields = %v, want a payload key", verr.Fields)
	}
}

func TestServiceEngagementFlow(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	rec, err := svc.Create(ctx, createRequest(models.TypeQuickTip, models.QuickTipPayload{Text: "tip"}))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	viewed, err := svc.RecordView(ctx, rec.ID)
	if err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}
	if viewed.Views != 1 {
		t.Errorf("Views = %d, want 1", viewed.Views)
	}
	if viewed.Version != 2 {
		t.Errorf("Version = %d, want 2", viewed.Version)
	}

	liked, err := svc.Like(ctx, rec.ID, "user-a")
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if liked.LikeCount != 1 {
		t.Errorf("LikeCount = %d, want 1", liked.LikeCount)
	}

	// Liking twice stays at one.
	liked, err = svc.Like(ctx, rec.ID, "user-a")
	if err != nil {
		t.Fatalf("second Like failed: %v", err)
	}
	if liked.LikeCount != 1 {
		t.Errorf("LikeCount after duplicate like = %d, want 1", liked.LikeCount)
	}

	unliked, err := svc.Unlike(ctx, rec.ID, "user-a")
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if unliked.LikeCount != 0 {
		t.Errorf("LikeCount after unlike = %d, want 0", unliked.LikeCount)
	}

	for _, v := range []float64{4, 5} {
		if _, err := svc.Rate(ctx, rec.ID, v); err != nil {
			t.Fatalf("Rate(%v) failed: %v", v, err)
		}
	}
	rated, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rated.AverageRating != 4.5 {
		t.Errorf("AverageRating = %v, want 4.5", rated.AverageRating)
	}
}

func TestServicePublishIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	req := createRequest(models.TypeQuickTip, models.QuickTipPayload{Text: "tip"})
	req.IsPublished = false

	rec, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.IsPublished || rec.PublishedAt != nil {
		t.Fatal("draft created published")
	}

	first, err := svc.Publish(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !first.IsPublished || first.PublishedAt == nil {
		t.Fatal("record not published")
	}

	second, err := svc.Publish(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second Publish failed: %v", err)
	}
	if !second.PublishedAt.Equal(*first.PublishedAt) {
		t.Errorf("PublishedAt changed on republish: %v -> %v", first.PublishedAt, second.PublishedAt)
	}
}

func TestServiceConcurrentLikes(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	rec, err := svc.Create(ctx, createRequest(models.TypeQuickTip, models.QuickTipPayload{Text: "tip"}))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Two writers racing with the same liker: whichever loses the version
	// check re-reads and sees the like already present. Either way the like
	// set holds exactly one entry.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Like(ctx, rec.ID, "user-a")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Like failed: %v", err)
		}
	}

	final, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if final.LikeCount != 1 || len(final.Likes) != 1 {
		t.Errorf("LikeCount = %d, likes = %v, want exactly one like", final.LikeCount, final.Likes)
	}
}

func TestServiceRetryExhaustion(t *testing.T) {
	base := newMemRepo()
	seed := baseRecord()
	if err := base.Create(context.Background(), seed); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	repo := &conflictRepo{memRepo: base}
	svc := NewContentService(repo, newTestComposer(t), testLogger())

	_, err := svc.RecordView(context.Background(), seed.ID)
	var cerr *domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *domain.ConflictError", err)
	}
	if cerr.Attempts != maxUpdateAttempts {
		t.Errorf("Attempts = %d, want %d", cerr.Attempts, maxUpdateAttempts)
	}
	if repo.attempts != maxUpdateAttempts {
		t.Errorf("repository saw %d attempts, want %d", repo.attempts, maxUpdateAttempts)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Error("ConflictError does not match domain.ErrConflict")
	}
}

func TestServiceEngagementOnMissingRecord(t *testing.T) {
	svc := newTestService(t, newMemRepo())

	_, err := svc.RecordView(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want domain.ErrNotFound", err)
	}
}

func TestServiceListByTags(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.ListByTags(ctx, []string{"Go", " API ", "go"}); err != nil {
		t.Fatalf("ListByTags failed: %v", err)
	}
	if len(repo.lastTags) != 2 || repo.lastTags[0] != "go" || repo.lastTags[1] != "api" {
		t.Errorf("repository got tags %v, want [go api]", repo.lastTags)
	}

	_, err := svc.ListByTags(ctx, []string{"  ", ""})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want domain.ErrValidation", err)
	}
}

func TestServiceListTrendingClampsLimit(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	tests := []struct {
		limit int
		want  int
	}{
		{0, defaultTrendingLimit},
		{-5, defaultTrendingLimit},
		{40, 40},
		{500, maxTrendingLimit},
	}

	for _, tt := range tests {
		if _, err := svc.ListTrending(ctx, tt.limit); err != nil {
			t.Fatalf("ListTrending(%d) failed: %v", tt.limit, err)
		}
		if repo.lastLimit != tt.want {
			t.Errorf("ListTrending(%d) passed limit %d, want %d", tt.limit, repo.lastLimit, tt.want)
		}
	}
}

func TestServiceListValidation(t *testing.T) {
	svc := newTestService(t, newMemRepo())
	ctx := context.Background()

	if _, err := svc.ListByCreator(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ListByCreator(\"\") error = %v, want domain.ErrValidation", err)
	}
	if _, err := svc.ListDiscussions(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ListDiscussions(\"\") error = %v, want domain.ErrValidation", err)
	}
}
