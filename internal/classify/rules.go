package classify

import (
	"strings"

	"aura/internal/logging"
)

// RuleConfidence is the confidence assigned to deterministic rule matches.
const RuleConfidence = 0.95

// Pronouns are referential tokens that need an antecedent to resolve.
var Pronouns = []string{"it", "this", "that", "them", "those"}

// IsPronoun reports whether tok is a bare referential pronoun.
func IsPronoun(tok string) bool {
	for _, p := range Pronouns {
		if tok == p {
			return true
		}
	}
	return false
}

// ActionVerbs are verbs that imply a side-effecting command. Used by the
// ambiguity guard to name the intended action, and by the executor to
// keep misclassified commands out of the conversational path.
var ActionVerbs = []string{"open", "close", "play", "search", "find", "launch", "start", "quit", "kill", "mute"}

// FirstActionVerb returns the single action verb present in the token
// list, or "" when none or more than one is present.
func FirstActionVerb(tokens []string) string {
	found := ""
	for _, tok := range tokens {
		for _, v := range ActionVerbs {
			if tok == v {
				if found != "" && found != v {
					return ""
				}
				found = v
			}
		}
	}
	return found
}

// ContainsActionVerb reports whether any token is an action verb.
func ContainsActionVerb(tokens []string) bool {
	for _, tok := range tokens {
		for _, v := range ActionVerbs {
			if tok == v {
				return true
			}
		}
	}
	return false
}

// multi-step connectives; rules refuse these so the AI tier can plan.
var connectives = []string{" and ", " then ", ","}

// file-search cues; these need structured argument extraction, so rules
// leave them to the AI tier.
var fileCues = []string{"pdf", "doc", "docx", "txt", "file", "files", "folder", "document", "documents", "downloaded", "download", "downloads"}

// prefixRules maps imperative prefixes to categories, checked in order.
var prefixRules = []struct {
	prefix   string
	category string
}{
	{"open ", CategoryOpen},
	{"launch ", CategoryOpen},
	{"close ", CategoryClose},
	{"quit ", CategoryClose},
	{"play ", CategoryPlay},
	{"search for ", CategorySearch},
	{"search ", CategorySearch},
	{"google ", CategorySearch},
	{"look up ", CategorySearch},
}

// Match applies the deterministic rule tier to a normalized query.
// Returns nil when no rule fires; the caller then consults the AI tier.
func Match(query string) *Decision {
	if query == "" {
		return nil
	}

	// Multi-step requests are out of rule territory: they need a plan.
	if hasConnective(query) {
		return nil
	}

	tokens := strings.Fields(query)

	// File-search intents need structured argument extraction.
	if hasFileCue(tokens) {
		return nil
	}

	// Keyword rules before prefix rules so "turn the volume up" and
	// "take a screenshot" match regardless of phrasing.
	if arg := volumeArg(query); arg != "" {
		return ruleDecision(CategoryVolume, arg)
	}
	if strings.Contains(query, "screenshot") {
		return ruleDecision(CategoryScreenshot, "")
	}

	for _, r := range prefixRules {
		if !strings.HasPrefix(query, r.prefix) {
			continue
		}
		target := strings.TrimSpace(strings.TrimPrefix(query, r.prefix))
		if target == "" {
			continue
		}
		if IsPronoun(target) {
			// The pattern matched but the argument is unusable; ask
			// rather than guess the referent.
			logging.Debug("rule matched bare pronoun", "category", r.category, "query", query)
			return &Decision{
				Category:           r.category,
				Confidence:         0,
				NeedsClarification: true,
			}
		}
		return ruleDecision(r.category, target)
	}

	return nil
}

func ruleDecision(category, args string) *Decision {
	logging.Debug("rule matched", "category", category, "args", args)
	return &Decision{
		Category:   category,
		Args:       args,
		Confidence: RuleConfidence,
	}
}

func hasConnective(query string) bool {
	for _, c := range connectives {
		if strings.Contains(query, c) {
			return true
		}
	}
	return false
}

func hasFileCue(tokens []string) bool {
	for _, tok := range tokens {
		for _, cue := range fileCues {
			if tok == cue {
				return true
			}
		}
	}
	return false
}

func volumeArg(query string) string {
	switch {
	case strings.Contains(query, "volume up"), strings.Contains(query, "louder"):
		return "up"
	case strings.Contains(query, "volume down"), strings.Contains(query, "quieter"):
		return "down"
	case strings.Contains(query, "mute"):
		return "mute"
	}
	return ""
}
