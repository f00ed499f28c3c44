package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenCache memoizes computed token sets. NLI prediction files repeat
// premises (SNLI/MNLI pair several hypotheses with one premise), so the
// classifier asks the cache before re-tokenizing.
type TokenCache interface {
	Get(key string) ([]string, bool)
	Set(key string, tokens []string)
}

// Key derives a cache key from the raw text.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "slicereport:v1:" + hex.EncodeToString(hash[:])
}
