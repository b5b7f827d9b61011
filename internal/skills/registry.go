// Package skills holds the automation skill handlers and the
// category-keyed registry the executor dispatches through.
package skills

import (
	"fmt"
	"strings"
	"sync"

	"aura/internal/executor"
	"aura/internal/logging"
)

// Skill is the typed capability every handler implements. Alias of the
// executor's contract so registrations satisfy dispatch directly.
type Skill = executor.Skill

// entry pairs a handler with the keywords that hint at it.
type entry struct {
	skill    Skill
	keywords []string
}

// Registry maps categories to skills. Built at startup, read-mostly
// afterwards.
type Registry struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// NewRegistry creates an empty skill registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a skill for a category. Keywords are free-text hints
// used by keyword fallback when the AI tier is unavailable.
func (r *Registry) Register(category string, s Skill, keywords []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[category]; exists {
		return fmt.Errorf("skill already registered: %s", category)
	}
	r.entries[category] = entry{skill: s, keywords: keywords}
	return nil
}

// MustRegister adds a skill and logs a warning on error.
func (r *Registry) MustRegister(category string, s Skill, keywords []string) {
	if err := r.Register(category, s, keywords); err != nil {
		logging.Warn("skill registration failed", "category", category, "error", err)
	}
}

// Resolve returns the skill for a category.
func (r *Registry) Resolve(category string) (executor.Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[category]
	if !ok {
		return nil, false
	}
	return e.skill, true
}

// Categories returns the registered category names.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.entries))
	for c := range r.entries {
		out = append(out, c)
	}
	return out
}

// MatchKeyword returns the category whose keyword appears in the query,
// along with the keyword that matched. Used as a last resort when
// neither rules nor the AI tier produced a decision.
func (r *Registry) MatchKeyword(query string) (category, keyword string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for category, e := range r.entries {
		for _, kw := range e.keywords {
			if kw != "" && strings.Contains(query, kw) {
				return category, kw, true
			}
		}
	}
	return "", "", false
}
