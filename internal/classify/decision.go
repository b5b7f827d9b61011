// Package classify turns a normalized utterance into a structured Decision,
// first through deterministic rules, then through an AI backend.
package classify

// Category names the closed set of actions the executor can dispatch.
const (
	CategoryOpen       = "open"
	CategoryClose      = "close"
	CategoryPlay       = "play"
	CategorySearch     = "search"
	CategoryFileSearch = "file_search"
	CategoryVolume     = "volume"
	CategoryScreenshot = "screenshot"
	CategoryGeneral    = "general"
)

// Categories is the closed category set, in the order presented to the
// AI backend's response schema.
var Categories = []string{
	CategoryOpen, CategoryClose, CategoryPlay, CategorySearch,
	CategoryFileSearch, CategoryVolume, CategoryScreenshot, CategoryGeneral,
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Step is one step of a multi-action plan.
type Step struct {
	Category string `json:"category"`
	Args     string `json:"args"`
}

// Decision is the structured output of classification. A Decision carries
// either a single category/args pair or a multi-step Plan, never both.
// Immutable once produced.
type Decision struct {
	Category     string   `json:"category"`
	Args         string   `json:"args"`
	Confidence   float64  `json:"confidence"`
	Alternatives []string `json:"alternatives,omitempty"`
	Plan         []Step   `json:"plan,omitempty"`

	// NeedsClarification is set by rules that matched a pattern but could
	// not extract a usable argument (e.g. a bare pronoun target).
	NeedsClarification bool `json:"-"`
}

// HasPlan reports whether the decision is a multi-step plan.
func (d *Decision) HasPlan() bool {
	return len(d.Plan) > 0
}
