package content

import (
	"time"
)

// DifficultyLevel is the closed difficulty enum shared by every content type.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// DifficultyLevels returns every valid difficulty level.
func DifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ContentType is the discriminant selecting which payload shape and
// constraint set apply to a record. Immutable after creation.
type ContentType string

const (
	TypeQuickTip        ContentType = "quick-tip"
	TypeCodeSnippet     ContentType = "code-snippet"
	TypeTutorialVideo   ContentType = "tutorial-video"
	TypeBlogPost        ContentType = "blog-post"
	TypeProjectShowcase ContentType = "project-showcase"
	TypeTechUpdate      ContentType = "tech-update"
	TypeQuestion        ContentType = "question"
	TypeDiscussion      ContentType = "discussion"
)

// Types returns every valid content type discriminant.
func Types() []ContentType {
	return []ContentType{
		TypeQuickTip,
		TypeCodeSnippet,
		TypeTutorialVideo,
		TypeBlogPost,
		TypeProjectShowcase,
		TypeTechUpdate,
		TypeQuestion,
		TypeDiscussion,
	}
}

// Resource is an external reference attached to a record.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Record is the central shared-content entity. JSON tags are camelCase for
// wire compatibility with the existing frontend.
type Record struct {
	ID              string          `json:"id"`
	CreatorID       string          `json:"creatorId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel"`
	ContentType     ContentType     `json:"contentType"`

	// Payload holds exactly the variant matching ContentType; fields
	// belonging to other variants are absent, not null-filled.
	Payload Payload `json:"payload"`

	Tags          []string   `json:"tags"`
	Prerequisites []string   `json:"prerequisites,omitempty"`
	Resources     []Resource `json:"resources,omitempty"`

	// Engagement aggregates. LikeCount and AverageRating are derived and
	// recomputed by the aggregate transitions, never supplied by callers.
	Views          int64    `json:"views"`
	Likes          []string `json:"likes"`
	LikeCount      int      `json:"likeCount"`
	TotalRatings   int64    `json:"totalRatings"`
	TotalRatingSum float64  `json:"totalRatingSum"`
	AverageRating  float64  `json:"averageRating"`

	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"` // set once, on the first false->true transition

	// Version backs the persistence layer's optimistic-concurrency check.
	Version int64 `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasLike reports whether likerID is already in the like set.
func (r *Record) HasLike(likerID string) bool {
	for _, id := range r.Likes {
		if id == likerID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record. Aggregate transitions operate on
// clones so the input record is never mutated in place.
func (r *Record) Clone() *Record {
	next := *r

	next.Tags = append([]string(nil), r.Tags...)
	next.Prerequisites = append([]string(nil), r.Prerequisites...)
	next.Resources = append([]Resource(nil), r.Resources...)
	next.Likes = append([]string(nil), r.Likes...)

	if r.PublishedAt != nil {
		at := *r.PublishedAt
		next.PublishedAt = &at
	}
	if r.Payload != nil {
		next.Payload = r.Payload.clone()
	}

	return &next
}
