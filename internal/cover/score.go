package cover

// Scoring weights and acceptance thresholds. These are empirically tuned;
// treat them as knobs, not derived truths.
const (
	// PerQueryThreshold is the minimum score at which the primary adapter
	// accepts a query's best result and stops issuing further queries.
	PerQueryThreshold = 0.4
	// BestMatchThreshold is the default minimum score for a candidate to be
	// selected at all.
	BestMatchThreshold = 0.6

	weightTitleSimilarity = 0.5
	bonusFirstVolume      = 0.3
	penaltyNotFirstVolume = 0.2
	bonusEnglish          = 0.15
	penaltyJapanese       = 0.3
	penaltyOtherLanguage  = 0.15
	bonusEnglishEdition   = 0.1
	bonusAuthorMatch      = 0.1
	bonusPageCount        = 0.05
	bonusModernPrint      = 0.05

	// Typical English single-volume manga runs 150-400 pages.
	pageCountMin = 150
	pageCountMax = 400
	// English manga editions from the big publishers date from 2000 on.
	modernPrintYear = 2000
)

// Score computes the confidence score in [0,1] for a candidate against the
// searched title/author. similarity and firstVolume are precomputed by the
// caller so the filter chain and scorer agree on them.
func Score(c Candidate, author string, similarity float64, firstVolume bool) float64 {
	score := similarity * weightTitleSimilarity

	if firstVolume {
		score += bonusFirstVolume
	} else {
		score -= penaltyNotFirstVolume
	}

	switch c.Language {
	case "en":
		score += bonusEnglish
	case "ja":
		score -= penaltyJapanese
	case "":
		// No signal either way.
	default:
		score -= penaltyOtherLanguage
	}

	if HasEnglishEditionPhrase(c.Title + " " + c.Subtitle + " " + c.Description) {
		score += bonusEnglishEdition
	}

	if author != "" && AuthorMatches(author, c.Authors) {
		score += bonusAuthorMatch
	}

	if c.PageCount >= pageCountMin && c.PageCount <= pageCountMax {
		score += bonusPageCount
	}

	if c.PublishedYear >= modernPrintYear {
		score += bonusModernPrint
	}

	return clamp01(score)
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
