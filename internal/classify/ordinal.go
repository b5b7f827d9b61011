package classify

import "strconv"

// ordinalWords maps ordinal tokens to 1-based positions.
var ordinalWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"1st": 1, "2nd": 2, "3rd": 3, "4th": 4, "5th": 5,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
}

// ParseOrdinal extracts a 1-based option selection from tokens like
// "the first one" or "option 2". Returns 0 when no ordinal is present.
func ParseOrdinal(tokens []string) int {
	for i, tok := range tokens {
		if n, ok := ordinalWords[tok]; ok {
			// Bare "one" is usually the pronoun ("the first one"), only
			// treat digits-as-words as ordinals after "option"/"number".
			if tok == "one" || tok == "two" || tok == "three" || tok == "four" || tok == "five" {
				if i == 0 || (tokens[i-1] != "option" && tokens[i-1] != "number") {
					continue
				}
			}
			return n
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= 20 {
			return n
		}
	}
	return 0
}

// confirmations are tokens that accept a proposed action.
var confirmations = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "sure": true, "ok": true,
	"okay": true, "confirm": true, "correct": true,
}

// IsConfirmation reports whether the tokens amount to accepting a
// proposal ("yes", "sure", "do it", "go ahead").
func IsConfirmation(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) <= 3 {
		joined := ""
		for i, t := range tokens {
			if i > 0 {
				joined += " "
			}
			joined += t
		}
		switch joined {
		case "do it", "go ahead", "please do", "yes please", "go for it":
			return true
		}
	}
	return confirmations[tokens[0]]
}
