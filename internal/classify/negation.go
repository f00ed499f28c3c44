package classify

import "regexp"

// Fixed keyword list, not a parser. Whole-word and case-insensitive, so
// "notable" or "nothingness" do not count as negation cues.
var negationRe = regexp.MustCompile(`(?i)\b(no|not|never|none|nothing|nobody|noone|can't|cannot|won't|don't|doesn't|didn't|isn't|aren't|wasn't|weren't|without)\b`)

// HasNegation reports whether text contains a negation cue as a separate word.
func HasNegation(text string) bool {
	return negationRe.MatchString(text)
}
