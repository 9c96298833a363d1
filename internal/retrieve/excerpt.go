package retrieve

import (
	"strings"
	"unicode/utf8"
)

const excerptLength = 200

// makeExcerpt extracts the most query-relevant window of text. It slides
// a window over the content, counts query-word hits, and returns the
// best-scoring fragment adjusted to a word boundary.
func makeExcerpt(text, query string) string {
	if len(text) <= excerptLength {
		return text
	}

	var queryWords []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 2 {
			queryWords = append(queryWords, w)
		}
	}
	if len(queryWords) == 0 {
		return cutAtRune(text, excerptLength) + "..."
	}

	lower := strings.ToLower(text)
	bestStart, bestScore := 0, 0
	for i := 0; i+50 < len(lower); i += 10 {
		end := i + excerptLength
		if end > len(lower) {
			end = len(lower)
		}
		window := lower[i:end]

		score := 0
		for _, w := range queryWords {
			if strings.Contains(window, w) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestStart = i
		}
	}

	// Back up to a word boundary so the fragment does not start mid-word.
	for bestStart > 0 && text[bestStart] != ' ' && text[bestStart] != '.' && text[bestStart] != '\n' {
		bestStart--
	}

	end := bestStart + excerptLength
	if end > len(text) {
		end = len(text)
	}
	for end > bestStart && end < len(text) && !utf8.RuneStart(text[end]) {
		end--
	}
	excerpt := strings.TrimSpace(text[bestStart:end])

	if bestStart > 0 {
		excerpt = "..." + excerpt
	}
	if end < len(text) {
		excerpt += "..."
	}
	return excerpt
}

// cutAtRune truncates s to at most n bytes without splitting a rune.
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
