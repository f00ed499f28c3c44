package classify

import (
	"github.com/nlitools/slicereport/internal/cache"
)

// Classifier assigns examples to slice buckets, memoizing token sets through
// an optional cache. All classification is pure; the cache only avoids
// re-tokenizing texts that repeat across examples.
type Classifier struct {
	tokens cache.TokenCache
}

// NewClassifier creates a classifier. A nil cache disables memoization.
func NewClassifier(tokens cache.TokenCache) *Classifier {
	return &Classifier{tokens: tokens}
}

// Tokens returns the word tokens of text, consulting the cache first.
func (c *Classifier) Tokens(text string) []string {
	if c.tokens == nil {
		return Tokenize(text)
	}
	key := cache.Key(text)
	if toks, ok := c.tokens.Get(key); ok {
		return toks
	}
	toks := Tokenize(text)
	c.tokens.Set(key, toks)
	return toks
}

// NegationBucket classifies a premise/hypothesis pair by negation-cue presence.
func (c *Classifier) NegationBucket(premise, hypothesis string) string {
	return NegationBucket(premise, hypothesis)
}

// LengthBucket classifies text by token count.
func (c *Classifier) LengthBucket(text string) string {
	return lengthBucket(len(c.Tokens(text)))
}

// OverlapBucket classifies a premise/hypothesis pair by Jaccard overlap.
func (c *Classifier) OverlapBucket(premise, hypothesis string) string {
	sa := toSet(c.Tokens(premise))
	sb := toSet(c.Tokens(hypothesis))
	return overlapBucket(jaccardSets(sa, sb))
}
