// Package catalog provides the curated set of canonical question templates.
// The catalog is seeded once and read-only at request time.
package catalog

import (
	"sort"

	"github.com/jonathan/apply-autofill/internal/types"
)

// Catalog is an immutable, in-memory snapshot of the template catalog.
// Build one at startup and share it across requests; it requires no
// locking because it is never mutated after construction.
type Catalog struct {
	templates  []types.QuestionTemplate
	byID       map[int64]int
	byCategory map[string][]int
}

// New builds a Catalog from a template list. Templates are ordered by id;
// duplicate ids keep the first occurrence.
func New(templates []types.QuestionTemplate) *Catalog {
	ordered := append([]types.QuestionTemplate(nil), templates...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	c := &Catalog{
		byID:       make(map[int64]int),
		byCategory: make(map[string][]int),
	}
	for _, tmpl := range ordered {
		if _, exists := c.byID[tmpl.ID]; exists {
			continue
		}
		c.templates = append(c.templates, tmpl)
		idx := len(c.templates) - 1
		c.byID[tmpl.ID] = idx
		c.byCategory[tmpl.Category] = append(c.byCategory[tmpl.Category], idx)
	}

	return c
}

// FindByID returns the template with the given id, or nil if absent.
// A nil return is a normal not-found outcome, not a failure.
func (c *Catalog) FindByID(id int64) *types.QuestionTemplate {
	idx, ok := c.byID[id]
	if !ok {
		return nil
	}
	tmpl := c.templates[idx]
	return &tmpl
}

// ListByCategory returns the templates in a category, ordered by id.
func (c *Catalog) ListByCategory(category string) []types.QuestionTemplate {
	indices := c.byCategory[category]
	result := make([]types.QuestionTemplate, 0, len(indices))
	for _, idx := range indices {
		result = append(result, c.templates[idx])
	}
	return result
}

// All returns every template, ordered by id.
func (c *Catalog) All() []types.QuestionTemplate {
	return append([]types.QuestionTemplate(nil), c.templates...)
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.templates)
}
