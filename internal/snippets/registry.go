package snippets

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the enumerated set of valid code-snippet languages. The set
// is configuration data, not validation logic, so new languages ship as a
// YAML change without touching the validation engine.
type Registry struct {
	languages []string
	index     map[string]struct{}
	mu        sync.RWMutex
}

type languageFile struct {
	Languages []string `yaml:"languages"`
}

// NewRegistry creates a language registry from the embedded YAML file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/languages.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read languages.yaml: %w", err)
	}

	var file languageFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal languages.yaml: %w", err)
	}
	if len(file.Languages) == 0 {
		return nil, fmt.Errorf("languages.yaml defines no languages")
	}

	index := make(map[string]struct{}, len(file.Languages))
	for _, lang := range file.Languages {
		index[lang] = struct{}{}
	}

	return &Registry{
		languages: file.Languages,
		index:     index,
	}, nil
}

// Contains reports whether lang belongs to the configured set.
func (r *Registry) Contains(lang string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[lang]
	return ok
}

// Languages returns all configured languages (ordered as defined in YAML).
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.languages...)
}
