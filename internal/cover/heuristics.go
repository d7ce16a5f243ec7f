package cover

import (
	"regexp"
	"strings"
)

// Pure string classifiers for search results. Each predicate is independent
// of the scoring function so it can be tested in isolation.

var firstVolumePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bvolume\s*1\b`),
	regexp.MustCompile(`(?i)\bvol\.?\s*1\b`),
	regexp.MustCompile(`(?i)\bfirst\s+volume\b`),
	regexp.MustCompile(`(?i)\b1st\s+volume\b`),
	regexp.MustCompile(`(?i)\bvolume\s+one\b`),
	regexp.MustCompile(`(?i)\bbook\s*(?:1|one)\b`),
	regexp.MustCompile(`(?i)\bchapter\s*(?:1|one)\b`),
	regexp.MustCompile(`(?i)english\s+(?:edition|version).{0,20}\bvol\.?(?:ume)?\s*1\b`),
}

var laterVolumePatterns = []*regexp.Regexp{
	// Volumes 2-10, "vol. 3", "volume 7" etc.
	regexp.MustCompile(`(?i)\bvol(?:ume)?\.?\s*(?:[2-9]|10)\b`),
	// Ordinal words and 2nd-10th.
	regexp.MustCompile(`(?i)\b(?:second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth)\s+volume\b`),
	regexp.MustCompile(`(?i)\b(?:2nd|3rd|[4-9]th|10th)\s+volume\b`),
	// Ranges like "volume 1-5" and multi-volume bundles "vol 1 & 2".
	regexp.MustCompile(`(?i)\bvol(?:ume)?s?\.?\s*\d+\s*[-–]\s*\d+\b`),
	regexp.MustCompile(`(?i)\bvol(?:ume)?s?\.?\s*\d+\s*&\s*\d+\b`),
}

// IsFirstVolume reports whether the text plausibly describes volume one of a
// series. A positive pattern must match and no later-volume or multi-volume
// pattern may match.
func IsFirstVolume(text string) bool {
	for _, neg := range laterVolumePatterns {
		if neg.MatchString(text) {
			return false
		}
	}
	for _, pos := range firstVolumePatterns {
		if pos.MatchString(text) {
			return true
		}
	}
	return false
}

var completeSetKeywords = []string{
	"complete set",
	"complete collection",
	"complete series",
	"complete box",
	"collection set",
	"box set",
	"boxset",
	"boxed set",
	"omnibus",
	"deluxe edition",
	"collector's edition",
	"collectors edition",
}

// IsCompleteSet reports whether the text describes a multi-volume bundle
// rather than a single first volume.
func IsCompleteSet(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range completeSetKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var mangaKeywords = []string{
	"manga",
	"comic",
	"graphic novel",
	"japanese",
	"anime",
	"volume",
	"shonen",
	"shounen",
	"shoujo",
	"shojo",
	"seinen",
	"josei",
}

// MangaContentChecker reports whether a candidate plausibly is a manga or
// comic, based on its categories and free text. Known series names from the
// alias table count as evidence too.
type MangaContentChecker struct {
	seriesNames []string
}

// NewMangaContentChecker builds a checker that recognizes the canonical
// series names of the given alias table.
func NewMangaContentChecker(aliases AliasTable) *MangaContentChecker {
	names := aliases.CanonicalNames()
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	return &MangaContentChecker{seriesNames: lowered}
}

// IsManga checks categories first, then the combined text.
func (c *MangaContentChecker) IsManga(categories []string, text string) bool {
	for _, cat := range categories {
		lower := strings.ToLower(cat)
		for _, kw := range mangaKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range mangaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, name := range c.seriesNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

var englishEditionPattern = regexp.MustCompile(`(?i)\benglish\s+(?:edition|version|language)\b`)

// HasEnglishEditionPhrase reports whether the text explicitly calls out an
// English edition or version.
func HasEnglishEditionPhrase(text string) bool {
	return englishEditionPattern.MatchString(text)
}
