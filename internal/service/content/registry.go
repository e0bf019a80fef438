package content

import (
	"fmt"
	"regexp"

	"devshare/internal/config"
	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"
	"devshare/internal/snippets"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// urlPattern is the single well-formedness pattern shared by every
// URL-bearing field (videoUrl, thumbnailUrl, sourceCodeUrl, demoUrl,
// resource urls). Optional fields skip it when empty; any non-empty value
// must match.
var urlPattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

// urlRule is the shared Match rule built from urlPattern.
var urlRule = validation.Match(urlPattern).Error("must be a well-formed URL")

// TypeSpec is the registry entry for one discriminant: which payload variant
// it carries and the constraints on that variant's fields. Entries are static;
// the registry is never mutated at runtime.
type TypeSpec struct {
	Type models.ContentType

	// payloadRules evaluates the type-specific constraints against the
	// payload, returning violations keyed by dotted field path. Every rule
	// is evaluated; nothing short-circuits.
	payloadRules func(p models.Payload, languages *snippets.Registry) map[string]error
}

// registry is the static table mapping each discriminant to its field
// specification. Completeness is checked once at startup (VerifyRegistry);
// a lookup miss afterwards is a configuration error, never a per-request one.
var registry = map[models.ContentType]*TypeSpec{
	models.TypeQuickTip: {
		Type: models.TypeQuickTip,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			tip := p.(*models.QuickTipPayload)
			return map[string]error{
				"content.text": validation.Validate(tip.Text,
					validation.Required,
					validation.Length(1, config.MaxTextLength),
				),
			}
		},
	},

	models.TypeTechUpdate: {
		Type: models.TypeTechUpdate,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			update := p.(*models.TechUpdatePayload)
			return map[string]error{
				"content.text": validation.Validate(update.Text,
					validation.Required,
					validation.Length(1, config.MaxTextLength),
				),
			}
		},
	},

	models.TypeQuestion: {
		Type: models.TypeQuestion,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			question := p.(*models.QuestionPayload)
			return map[string]error{
				"content.text": validation.Validate(question.Text,
					validation.Required,
					validation.Length(1, config.MaxQuestionLength),
				),
			}
		},
	},

	models.TypeDiscussion: {
		Type: models.TypeDiscussion,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			discussion := p.(*models.DiscussionPayload)
			// relatedQuestionId is only checked for presence here; whether it
			// resolves to an actual question is the referential checker's job.
			return map[string]error{
				"content.text": validation.Validate(discussion.Text,
					validation.Required,
					validation.Length(1, config.MaxDiscussionLength),
				),
				"relatedQuestionId": validation.Validate(discussion.RelatedQuestionID,
					validation.Required,
				),
			}
		},
	},

	models.TypeBlogPost: {
		Type: models.TypeBlogPost,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			post := p.(*models.BlogPostPayload)
			errs := map[string]error{
				"content.markdown": validation.Validate(post.Markdown,
					validation.Required,
					validation.Length(1, config.MaxMarkdownLength),
				),
			}
			// Zero means "derive from word count"; an explicit value is bounded.
			if post.EstimatedReadTime != 0 {
				errs["estimatedReadTime"] = validation.Validate(post.EstimatedReadTime,
					validation.Min(config.MinReadTime),
					validation.Max(config.MaxReadTime),
				)
			}
			return errs
		},
	},

	models.TypeCodeSnippet: {
		Type: models.TypeCodeSnippet,
		payloadRules: func(p models.Payload, languages *snippets.Registry) map[string]error {
			snippet := p.(*models.CodeSnippetPayload)
			return map[string]error{
				"codeSnippet.code": validation.Validate(snippet.Code,
					validation.Required,
					validation.Length(1, config.MaxCodeLength),
				),
				"codeSnippet.language": validation.Validate(snippet.Language,
					validation.Required,
					validation.In(languageValues(languages)...).Error("must be a valid snippet language"),
				),
			}
		},
	},

	models.TypeTutorialVideo: {
		Type: models.TypeTutorialVideo,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			video := p.(*models.TutorialVideoPayload)
			return map[string]error{
				"videoUrl": validation.Validate(video.VideoURL,
					validation.Required,
					urlRule,
				),
				"videoDuration": validation.Validate(video.VideoDuration,
					validation.Required,
					validation.Min(config.MinVideoDuration),
					validation.Max(config.MaxVideoDuration),
				),
				"thumbnailUrl": validation.Validate(video.ThumbnailURL, urlRule),
				"seriesId":     validation.Validate(video.SeriesID, validation.Required),
				"episodeNumber": validation.Validate(video.EpisodeNumber,
					validation.Required,
					validation.Min(config.MinEpisodeNumber),
				),
			}
		},
	},

	models.TypeProjectShowcase: {
		Type: models.TypeProjectShowcase,
		payloadRules: func(p models.Payload, _ *snippets.Registry) map[string]error {
			showcase := p.(*models.ProjectShowcasePayload)
			return map[string]error{
				"videoUrl": validation.Validate(showcase.VideoURL,
					validation.Required,
					urlRule,
				),
				"videoDuration": validation.Validate(showcase.VideoDuration,
					validation.Required,
					validation.Min(config.MinVideoDuration),
					validation.Max(config.MaxVideoDuration),
				),
				"thumbnailUrl":  validation.Validate(showcase.ThumbnailURL, urlRule),
				"sourceCodeUrl": validation.Validate(showcase.SourceCodeURL, validation.Required, urlRule),
				"demoUrl":       validation.Validate(showcase.DemoURL, urlRule),
			}
		},
	},
}

// lookupSpec returns the registry entry for a discriminant. A miss means a
// caller/schema mismatch and surfaces as a fatal configuration error.
func lookupSpec(ct models.ContentType) (*TypeSpec, error) {
	spec, ok := registry[ct]
	if !ok {
		return nil, fmt.Errorf("%w: no type spec registered for content type %q", domain.ErrConfiguration, ct)
	}
	return spec, nil
}

// VerifyRegistry checks at startup that every discriminant has a registry
// entry. Call it from main; a failure is fatal.
func VerifyRegistry() error {
	for _, ct := range models.Types() {
		if _, ok := registry[ct]; !ok {
			return fmt.Errorf("%w: content type %q has no registry entry", domain.ErrConfiguration, ct)
		}
	}
	return nil
}

// languageValues adapts the configured language set for validation.In.
func languageValues(languages *snippets.Registry) []interface{} {
	langs := languages.Languages()
	values := make([]interface{}, len(langs))
	for i, lang := range langs {
		values[i] = lang
	}
	return values
}
