package retrieve

import (
	"strings"
	"unicode/utf8"

	"github.com/solhealth/consulta/internal/analyze"
)

// NameSimilarity estimates in [0,1] how likely two name strings refer to
// the same person.
//
// The partial-match branch is intentionally asymmetric: substring
// containment is only checked between words of length >= 3 on both
// sides, so sim(a, b) and sim(b, a) can differ when word sets differ.
// This mirrors the scoring the retrieval strategies were tuned against.
func NameSimilarity(queryName, storedName string) float64 {
	q := analyze.Normalize(queryName)
	s := analyze.Normalize(storedName)

	if q == "" || s == "" {
		return 0.0
	}
	if q == s {
		return 1.0
	}

	qWords := strings.Fields(q)
	sWords := strings.Fields(s)

	common := 0
	for _, qw := range qWords {
		for _, sw := range sWords {
			if qw == sw {
				common++
				break
			}
		}
	}

	if common == 0 {
		return containmentScore(qWords, sWords)
	}

	score := float64(common) / float64(len(qWords))

	allCovered := common == len(qWords)
	if allCovered {
		score += 0.4
	}
	score += 0.1 * float64(common)

	if wordInSet(qWords[0], sWords) {
		score += 0.1
	}

	if extra := len(sWords) - len(qWords); extra > 1 {
		score -= 0.05 * float64(extra-1)
	}

	return clamp01(score)
}

// containmentScore handles names with no exact word in common: partial
// word containment between any query word and any stored word, both at
// least three characters long.
func containmentScore(qWords, sWords []string) float64 {
	matches := 0
	for _, qw := range qWords {
		if utf8.RuneCountInString(qw) < 3 {
			continue
		}
		for _, sw := range sWords {
			if utf8.RuneCountInString(sw) < 3 {
				continue
			}
			if strings.Contains(sw, qw) || strings.Contains(qw, sw) {
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0.0
	}

	score := 0.4 + 0.1*float64(matches)
	if score > 0.7 {
		score = 0.7
	}
	return score
}

func wordInSet(word string, set []string) bool {
	for _, w := range set {
		if w == word {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
