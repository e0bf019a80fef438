package content

import (
	"strings"

	"devshare/internal/config"
)

// CountWords counts whitespace-separated words in markdown text.
func CountWords(markdown string) int {
	return len(strings.Fields(markdown))
}

// EstimateReadTime derives the estimated read time in minutes from a
// blog post's markdown, assuming the configured reading speed. Always at
// least one minute for non-empty text.
func EstimateReadTime(markdown string) int {
	words := CountWords(markdown)
	if words == 0 {
		return 0
	}

	minutes := (words + config.ReadingWordsPerMinute - 1) / config.ReadingWordsPerMinute
	if minutes < config.MinReadTime {
		return config.MinReadTime
	}
	return minutes
}
