package content

import (
	"fmt"
	"strings"
	"time"

	"devshare/internal/config"
	"devshare/internal/domain"
	models "devshare/internal/domain/models/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate applies a composed constraint set to a candidate record. Every
// constraint is evaluated independently and all violations are collected, so
// one call reports every failing field rather than just the first.
//
// On success it returns a new record with normalized tags and defaulted
// aggregates; the candidate itself is never mutated. The discussion->question
// referential check is NOT performed here - a record can be structurally
// valid and still fail referential integrity.
func Validate(candidate *models.Record, cs *ConstraintSet) (*models.Record, error) {
	rec := candidate.Clone()

	rec.Title = strings.TrimSpace(rec.Title)
	rec.Description = strings.TrimSpace(rec.Description)
	// Normalization runs before per-tag length validation.
	rec.Tags = NormalizeTags(rec.Tags)

	fields := make(map[string]string)

	flatten(fields, "", validation.ValidateStruct(rec,
		validation.Field(&rec.CreatorID, validation.Required),
		validation.Field(&rec.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&rec.Description, validation.Required, validation.Length(1, config.MaxDescriptionLength)),
		validation.Field(&rec.DifficultyLevel,
			validation.Required,
			validation.In(models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced).
				Error("must be beginner, intermediate or advanced"),
		),
		validation.Field(&rec.Tags,
			validation.Length(0, config.MaxTags),
			validation.Each(validation.Length(1, config.MaxTagLength)),
		),
		validation.Field(&rec.Prerequisites,
			validation.Each(validation.Required, validation.Length(1, config.MaxPrerequisiteLength)),
		),
	))

	validateResources(fields, rec.Resources)

	switch {
	case rec.Payload == nil:
		fields["payload"] = "cannot be blank"
	case rec.Payload.ContentType() != cs.Type:
		fields["payload"] = fmt.Sprintf("payload shape %s does not match content type %s",
			rec.Payload.ContentType(), cs.Type)
	default:
		for field, err := range cs.spec.payloadRules(rec.Payload, cs.languages) {
			flatten(fields, field, err)
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	applyDefaults(rec)
	return rec, nil
}

// NormalizeTags lowercases, trims and deduplicates tags, preserving first
// insertion order. Empty entries are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	return normalized
}

// validateResources checks each resource entry, keying violations by index
// ("resources.0.url").
func validateResources(fields map[string]string, resources []models.Resource) {
	for i, res := range resources {
		prefix := fmt.Sprintf("resources.%d", i)
		flatten(fields, prefix+".title", validation.Validate(res.Title,
			validation.Required,
			validation.Length(1, config.MaxResourceTitleLength),
		))
		flatten(fields, prefix+".url", validation.Validate(res.URL,
			validation.Required,
			urlRule,
		))
		flatten(fields, prefix+".description", validation.Validate(res.Description,
			validation.Length(0, config.MaxResourceDescriptionLength),
		))
	}
}

// applyDefaults fills the derived and defaulted fields of a structurally
// valid record: zeroed engagement aggregates, the one-time publish stamp when
// a record is created already published, and the blog-post read time when it
// was not supplied.
func applyDefaults(rec *models.Record) {
	rec.Views = 0
	rec.Likes = []string{}
	rec.LikeCount = 0
	rec.TotalRatings = 0
	rec.TotalRatingSum = 0
	rec.AverageRating = 0

	if rec.IsPublished && rec.PublishedAt == nil {
		now := time.Now().UTC()
		rec.PublishedAt = &now
	}

	if post, ok := rec.Payload.(*models.BlogPostPayload); ok && post.EstimatedReadTime == 0 {
		post.EstimatedReadTime = EstimateReadTime(post.Markdown)
	}
}

// flatten folds an ozzo validation result into the collected field map,
// expanding nested validation.Errors into dotted paths.
func flatten(fields map[string]string, prefix string, err error) {
	if err == nil {
		return
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		fields[prefix] = err.Error()
		return
	}

	for key, nested := range verrs {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		flatten(fields, path, nested)
	}
}
