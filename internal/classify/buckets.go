package classify

// Bucket labels. The ranges are embedded in the labels so reports stay
// self-describing.
const (
	BucketNegation   = "negation"
	BucketNoNegation = "no_negation"

	BucketShort  = "short(<=5)"
	BucketMedium = "medium(6-15)"
	BucketLong   = "long(>15)"

	BucketLowOverlap  = "low(<0.2)"
	BucketMidOverlap  = "mid(0.2-0.5)"
	BucketHighOverlap = "high(>=0.5)"
)

// NegationBucket maps a premise/hypothesis pair to the negation bucket when
// either text contains a negation cue.
func NegationBucket(premise, hypothesis string) string {
	if HasNegation(premise) || HasNegation(hypothesis) {
		return BucketNegation
	}
	return BucketNoNegation
}

// LengthBucket maps text to a tier by word-token count:
// short (<=5), medium (6-15), long (>15). Every text lands in exactly one.
func LengthBucket(text string) string {
	return lengthBucket(len(Tokenize(text)))
}

func lengthBucket(n int) string {
	switch {
	case n <= 5:
		return BucketShort
	case n <= 15:
		return BucketMedium
	default:
		return BucketLong
	}
}

// OverlapBucket maps a premise/hypothesis pair to a tier by Jaccard token
// overlap: low (<0.2), mid (0.2-0.5), high (>=0.5).
func OverlapBucket(premise, hypothesis string) string {
	return overlapBucket(Jaccard(premise, hypothesis))
}

func overlapBucket(j float64) string {
	switch {
	case j >= 0.5:
		return BucketHighOverlap
	case j >= 0.2:
		return BucketMidOverlap
	default:
		return BucketLowOverlap
	}
}
