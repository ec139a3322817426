package compdb

// Weights for guessScore. Directory mismatches are penalized as heavily
// as prefix bytes are rewarded, so a long shared prefix never drags a
// guess across unrelated subtrees. The suffix weight is a weak tiebreaker
// favoring same-named files (foo_unittest.cc conventions) when directory
// proximity is equal.
const (
	matchPrefixWeight       = 100
	mismatchDirectoryWeight = 100
	matchPostfixWeight      = 1
)

// guessScore computes how well two filenames match. Used for argument
// guessing when a file has no entry in the index. Scores may be negative.
func guessScore(a string, b string) int {
	score := 0
	i := 0

	// Increase score based on matching prefix.
	for ; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			break
		}
		score += matchPrefixWeight
	}

	// Reduce score based on mismatched directory distance.
	for j := i; j < len(a); j++ {
		if a[j] == '/' {
			score -= mismatchDirectoryWeight
		}
	}
	for j := i; j < len(b); j++ {
		if b[j] == '/' {
			score -= mismatchDirectoryWeight
		}
	}

	// Increase score based on common ending, much more weakly than the
	// prefix and directory terms.
	for offset := 1; offset <= len(a) && offset <= len(b); offset++ {
		if a[len(a)-offset] != b[len(b)-offset] {
			break
		}
		score += matchPostfixWeight
	}

	return score
}
