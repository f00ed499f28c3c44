package classify

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`[a-z0-9']+`)

// Tokenize lowercases text and extracts alphanumeric word tokens.
// Apostrophes are kept so contractions stay single tokens ("don't").
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// TokenSet returns the set of distinct tokens in text.
func TokenSet(text string) map[string]struct{} {
	return toSet(Tokenize(text))
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Jaccard computes |A∩B| / |A∪B| over the token sets of a and b.
// Two empty texts are defined as 0.0, not 1.0.
func Jaccard(a, b string) float64 {
	return jaccardSets(TokenSet(a), TokenSet(b))
}

func jaccardSets(sa, sb map[string]struct{}) float64 {
	if len(sa) == 0 && len(sb) == 0 {
		return 0.0
	}
	inter := 0
	for t := range sa {
		if _, ok := sb[t]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return float64(inter) / float64(union)
}
