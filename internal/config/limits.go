package config

const (
	// MaxTitleLength is the maximum length for content titles.
	MaxTitleLength = 150

	// MaxDescriptionLength is the maximum length for content descriptions.
	MaxDescriptionLength = 2000

	// MaxTags is the maximum number of tags on a single record.
	MaxTags = 10

	// MaxTagLength is the maximum length of a single (lowercased) tag.
	MaxTagLength = 30

	// MaxPrerequisiteLength is the maximum length of a prerequisite entry.
	MaxPrerequisiteLength = 100

	// MaxResourceTitleLength is the maximum length of a resource title.
	MaxResourceTitleLength = 100

	// MaxResourceDescriptionLength is the maximum length of a resource description.
	MaxResourceDescriptionLength = 200

	// MaxTextLength bounds quick-tip and tech-update body text.
	MaxTextLength = 10000

	// MaxQuestionLength bounds question body text.
	MaxQuestionLength = 1000

	// MaxDiscussionLength bounds discussion body text.
	MaxDiscussionLength = 5000

	// MaxMarkdownLength bounds blog-post markdown.
	MaxMarkdownLength = 50000

	// MaxCodeLength bounds code snippet source.
	MaxCodeLength = 10000

	// MinVideoDuration and MaxVideoDuration bound video lengths in seconds
	// (one second to four hours).
	MinVideoDuration = 1
	MaxVideoDuration = 14400

	// MinEpisodeNumber is the lowest valid tutorial episode number.
	MinEpisodeNumber = 1

	// MinRating and MaxRating bound a single rating value.
	MinRating = 0
	MaxRating = 5

	// MinReadTime and MaxReadTime bound an explicitly supplied estimated
	// read time in minutes (one minute to five hours).
	MinReadTime = 1
	MaxReadTime = 300

	// ReadingWordsPerMinute is the assumed reading speed used to derive
	// estimated read time from blog-post word counts.
	ReadingWordsPerMinute = 200
)
