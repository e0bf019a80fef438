package content

import (
	"strings"
	"testing"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 1},
		{"multiple spaces", "one   two\nthree", 3},
		{"markdown syntax counts as words", "# Title\n\nSome *bold* text", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.markdown); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.markdown, got, tt.want)
			}
		})
	}
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty markdown", 0, 0},
		{"single word rounds up to a minute", 1, 1},
		{"exactly one minute", 200, 1},
		{"just over one minute", 201, 2},
		{"four hundred words", 400, 2},
		{"one thousand words", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markdown := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := EstimateReadTime(markdown); got != tt.want {
				t.Errorf("EstimateReadTime(%d words) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}
