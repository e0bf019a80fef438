package content

import (
	"sync"

	models "devshare/internal/domain/models/content"
	"devshare/internal/snippets"
)

// ConstraintSet is the full rule set for one discriminant: the common
// constraints shared by every content type merged with the type-specific
// payload constraints from the registry.
type ConstraintSet struct {
	Type      models.ContentType
	spec      *TypeSpec
	languages *snippets.Registry
}

// Composer builds constraint sets per discriminant. Composition is pure and
// the result never changes at runtime, so composed sets are cached.
type Composer struct {
	languages *snippets.Registry

	mu    sync.RWMutex
	cache map[models.ContentType]*ConstraintSet
}

// NewComposer creates a composer bound to the configured snippet-language set.
func NewComposer(languages *snippets.Registry) *Composer {
	return &Composer{
		languages: languages,
		cache:     make(map[models.ContentType]*ConstraintSet),
	}
}

// Compose returns the constraint set for a discriminant. An unknown
// discriminant is a configuration error (caller/schema mismatch), not a
// per-request condition.
func (c *Composer) Compose(ct models.ContentType) (*ConstraintSet, error) {
	c.mu.RLock()
	cs, ok := c.cache[ct]
	c.mu.RUnlock()
	if ok {
		return cs, nil
	}

	spec, err := lookupSpec(ct)
	if err != nil {
		return nil, err
	}

	cs = &ConstraintSet{
		Type:      ct,
		spec:      spec,
		languages: c.languages,
	}

	c.mu.Lock()
	c.cache[ct] = cs
	c.mu.Unlock()

	return cs, nil
}
