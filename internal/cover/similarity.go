package cover

import (
	"strings"
)

// TitleSimilarity scores how closely a candidate title matches the searched
// title, in [0,1]. Exact match scores 1.0, containment scores just below,
// and everything else falls into bucketed word-overlap ratios. The buckets
// are deliberately coarse: external result titles carry volume numbers and
// edition suffixes that make fine-grained edit distances misleading.
func TitleSimilarity(search, candidate string) float64 {
	a := normalizeTitle(search)
	b := normalizeTitle(candidate)

	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1.0
	}
	// "One Piece, Vol. 1" contains "One Piece": near-exact.
	if strings.Contains(b, a) {
		return 0.95
	}
	if strings.Contains(a, b) {
		return 0.98
	}

	overlap := wordOverlap(a, b)
	switch {
	case overlap >= 0.9:
		return 0.9
	case overlap >= 0.8:
		return 0.85
	case overlap >= 0.7:
		return 0.8
	case overlap >= 0.6:
		return 0.75
	default:
		return 0
	}
}

// normalizeTitle lowercases and strips punctuation, collapsing whitespace.
func normalizeTitle(title string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// wordOverlap returns the fraction of the search title's significant words
// (longer than 2 characters) that appear in the candidate title.
func wordOverlap(search, candidate string) float64 {
	searchWords := significantWords(search)
	if len(searchWords) == 0 {
		return 0
	}
	candidateWords := make(map[string]bool)
	for _, w := range significantWords(candidate) {
		candidateWords[w] = true
	}

	matched := 0
	for _, w := range searchWords {
		if candidateWords[w] {
			matched++
		}
	}
	return float64(matched) / float64(len(searchWords))
}

func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// AuthorMatches reports whether the searched author matches any of the
// candidate's authors: exact (case-insensitive), substring in either
// direction, or at least 70% word overlap. Handles "Eiichiro Oda" vs
// "Oda, Eiichiro" style reordering via the word-overlap path.
func AuthorMatches(author string, candidates []string) bool {
	search := normalizeTitle(author)
	if search == "" {
		return false
	}

	for _, c := range candidates {
		name := normalizeTitle(c)
		if name == "" {
			continue
		}
		if name == search {
			return true
		}
		if strings.Contains(name, search) || strings.Contains(search, name) {
			return true
		}
		if wordOverlap(search, name) >= 0.7 {
			return true
		}
	}
	return false
}
