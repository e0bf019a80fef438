package content

import (
	"encoding/json"
	"fmt"

	"devshare/internal/domain"
)

// Payload is the closed tagged-variant carried by a Record. Each content type
// is a distinct variant holding only its own fields; the validation engine
// matches on the discriminant rather than walking a shared field bag.
//
// The unexported clone method keeps the variant set closed to this package.
type Payload interface {
	ContentType() ContentType
	clone() Payload
}

// QuickTipPayload is the payload for quick-tip records.
type QuickTipPayload struct {
	Text string `json:"text"`
}

// TechUpdatePayload is the payload for tech-update records.
type TechUpdatePayload struct {
	Text string `json:"text"`
}

// QuestionPayload is the payload for question records.
type QuestionPayload struct {
	Text string `json:"text"`
}

// DiscussionPayload is the payload for discussion records. RelatedQuestionID
// must reference an existing record whose type is question; that check is
// referential, not structural, and runs after structural validation.
type DiscussionPayload struct {
	Text              string `json:"text"`
	RelatedQuestionID string `json:"relatedQuestionId"`
}

// BlogPostPayload is the payload for blog-post records. EstimatedReadTime is
// in minutes; zero means "not supplied" and it is derived from the markdown
// word count at creation.
type BlogPostPayload struct {
	Markdown          string `json:"markdown"`
	EstimatedReadTime int    `json:"estimatedReadTime,omitempty"`
}

// CodeSnippetPayload is the payload for code-snippet records. Language must
// belong to the configured snippet-language set.
type CodeSnippetPayload struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// TutorialVideoPayload is the payload for tutorial-video records.
type TutorialVideoPayload struct {
	VideoURL      string `json:"videoUrl"`
	VideoDuration int    `json:"videoDuration"` // seconds
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	SeriesID      string `json:"seriesId"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// ProjectShowcasePayload is the payload for project-showcase records.
type ProjectShowcasePayload struct {
	VideoURL      string `json:"videoUrl"`
	VideoDuration int    `json:"videoDuration"` // seconds
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	SourceCodeURL string `json:"sourceCodeUrl"`
	DemoURL       string `json:"demoUrl,omitempty"`
}

func (p *QuickTipPayload) ContentType() ContentType        { return TypeQuickTip }
func (p *TechUpdatePayload) ContentType() ContentType      { return TypeTechUpdate }
func (p *QuestionPayload) ContentType() ContentType        { return TypeQuestion }
func (p *DiscussionPayload) ContentType() ContentType      { return TypeDiscussion }
func (p *BlogPostPayload) ContentType() ContentType        { return TypeBlogPost }
func (p *CodeSnippetPayload) ContentType() ContentType     { return TypeCodeSnippet }
func (p *TutorialVideoPayload) ContentType() ContentType   { return TypeTutorialVideo }
func (p *ProjectShowcasePayload) ContentType() ContentType { return TypeProjectShowcase }

func (p *QuickTipPayload) clone() Payload        { c := *p; return &c }
func (p *TechUpdatePayload) clone() Payload      { c := *p; return &c }
func (p *QuestionPayload) clone() Payload        { c := *p; return &c }
func (p *DiscussionPayload) clone() Payload      { c := *p; return &c }
func (p *BlogPostPayload) clone() Payload        { c := *p; return &c }
func (p *CodeSnippetPayload) clone() Payload     { c := *p; return &c }
func (p *TutorialVideoPayload) clone() Payload   { c := *p; return &c }
func (p *ProjectShowcasePayload) clone() Payload { c := *p; return &c }

// NewPayload returns a zero-valued payload variant for the given discriminant.
// An unknown discriminant is a caller/schema mismatch, not a per-request
// condition, and surfaces as a configuration error.
func NewPayload(ct ContentType) (Payload, error) {
	switch ct {
	case TypeQuickTip:
		return &QuickTipPayload{}, nil
	case TypeTechUpdate:
		return &TechUpdatePayload{}, nil
	case TypeQuestion:
		return &QuestionPayload{}, nil
	case TypeDiscussion:
		return &DiscussionPayload{}, nil
	case TypeBlogPost:
		return &BlogPostPayload{}, nil
	case TypeCodeSnippet:
		return &CodeSnippetPayload{}, nil
	case TypeTutorialVideo:
		return &TutorialVideoPayload{}, nil
	case TypeProjectShowcase:
		return &ProjectShowcasePayload{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown content type %q", domain.ErrConfiguration, ct)
	}
}

// DecodePayload unmarshals raw JSON into the payload variant selected by the
// discriminant. Used for both request bodies and the stored JSONB column.
func DecodePayload(ct ContentType, raw []byte) (Payload, error) {
	p, err := NewPayload(ct)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", ct, err)
	}
	return p, nil
}

// FormatDuration renders a video duration in seconds as h:mm:ss, or m:ss when
// under an hour. Derived at read time, never persisted.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormattedDuration returns the human-readable episode length.
func (p *TutorialVideoPayload) FormattedDuration() string {
	return FormatDuration(p.VideoDuration)
}

// FormattedDuration returns the human-readable demo video length.
func (p *ProjectShowcasePayload) FormattedDuration() string {
	return FormatDuration(p.VideoDuration)
}
