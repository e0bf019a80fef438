package snippets

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}

	if len(reg.Languages()) == 0 {
		t.Fatal("NewRegistry() returned empty language set")
	}
}

func TestContains(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}

	tests := []struct {
		name string
		lang string
		want bool
	}{
		{"go is configured", "go", true},
		{"typescript is configured", "typescript", true},
		{"other is configured", "other", true},
		{"cobol is not configured", "cobol", false},
		{"empty string", "", false},
		{"case sensitive", "Go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Contains(tt.lang); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestLanguagesReturnsCopy(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() unexpected error: %v", err)
	}

	langs := reg.Languages()
	langs[0] = "mutated"

	if reg.Languages()[0] == "mutated" {
		t.Error("Languages() exposed internal slice")
	}
}
