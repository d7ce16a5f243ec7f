package cover

import (
	"log/slog"
)

// Similarity levels at which stricter checks are waived: a near-exact title
// match is strong enough evidence on its own.
const (
	contentCheckWaiver = 0.95
	authorCheckWaiver  = 0.9
	minTitleSimilarity = 0.7
)

// Selector filters raw candidates and picks the best-scoring survivor.
type Selector struct {
	content *MangaContentChecker
}

// NewSelector builds a Selector whose manga-content heuristic recognizes the
// canonical series names of the given alias table.
func NewSelector(aliases AliasTable) *Selector {
	return &Selector{content: NewMangaContentChecker(aliases)}
}

// Scored pairs a surviving candidate with its confidence score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// Select filters candidates against title/author and returns the
// best-scoring survivor, or nil when none reaches minScore. Pass
// BestMatchThreshold unless a looser per-query acceptance is wanted.
func (s *Selector) Select(candidates []Candidate, title, author string, minScore float64) *Scored {
	var best *Scored

	for _, c := range candidates {
		if c.Title == "" {
			continue
		}
		// English editions only.
		if c.Language != "en" {
			continue
		}

		text := c.Title + " " + c.Subtitle + " " + c.Description
		firstVolume := IsFirstVolume(text)
		if !firstVolume {
			continue
		}

		similarity := TitleSimilarity(title, c.Title)

		if similarity < contentCheckWaiver && !s.content.IsManga(c.Categories, text) {
			continue
		}

		if author != "" && len(c.Authors) > 0 && similarity < authorCheckWaiver {
			if !AuthorMatches(author, c.Authors) {
				continue
			}
		}

		if IsCompleteSet(text) {
			continue
		}

		if similarity < minTitleSimilarity {
			continue
		}

		score := Score(c, author, similarity, firstVolume)
		if best == nil || score > best.Score {
			best = &Scored{Candidate: c, Score: score}
		}
	}

	if best == nil {
		return nil
	}
	if best.Score < minScore {
		slog.Debug("Best candidate below acceptance threshold",
			"title", title, "candidate", best.Candidate.Title, "score", best.Score, "min", minScore)
		return nil
	}
	return best
}
