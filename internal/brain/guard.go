package brain

import (
	"fmt"
	"strings"

	"aura/internal/classify"
	"aura/internal/snapshot"
)

// hasBarePronoun reports whether any token is an unresolved referential
// pronoun, and returns the co-occurring action verb when exactly one is
// present.
func hasBarePronoun(tokens []string) (found bool, verb string) {
	for _, tok := range tokens {
		if classify.IsPronoun(tok) {
			return true, classify.FirstActionVerb(tokens)
		}
	}
	return false, ""
}

// clarifyQuestion phrases the guard's clarifying question. When a single
// action verb co-occurs with the pronoun the question names it; all
// verbs get the same treatment.
func clarifyQuestion(verb string) string {
	if verb != "" {
		return fmt.Sprintf("What do you want me to %s?", verb)
	}
	return "What are you referring to?"
}

// resolveReferent substitutes pronoun tokens with the known referent:
// the session's recent entity first, else the active application. The
// guard guarantees one of them exists before this runs.
func resolveReferent(query string, referent string) string {
	tokens := strings.Fields(query)
	for i, tok := range tokens {
		if classify.IsPronoun(tok) {
			tokens[i] = referent
		}
	}
	return strings.Join(tokens, " ")
}

// referentFor picks the referent used for pronoun substitution.
func referentFor(recentEntity string, snap snapshot.Snapshot) string {
	if recentEntity != "" {
		return recentEntity
	}
	if snap.AppName != "" {
		return strings.ToLower(snap.AppName)
	}
	if snap.ProcessName != "" {
		return strings.ToLower(snap.ProcessName)
	}
	return strings.ToLower(snap.ActiveWindow)
}
