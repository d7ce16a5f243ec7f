package cover

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AliasTable maps a normalized title key (lowercase, non-alphanumeric runs
// collapsed to hyphens) to one or more canonical English titles. Searching
// with the canonical name instead of the user-supplied one dramatically
// improves hit rates for series known under romaji or shortened names.
type AliasTable map[string][]string

// DefaultAliases covers series that are commonly requested under a name that
// differs from the title printed on the English edition.
var DefaultAliases = AliasTable{
	"one-piece":                {"One Piece"},
	"naruto":                   {"Naruto"},
	"attack-on-titan":          {"Attack on Titan"},
	"shingeki-no-kyojin":       {"Attack on Titan"},
	"demon-slayer":             {"Demon Slayer: Kimetsu no Yaiba"},
	"kimetsu-no-yaiba":         {"Demon Slayer: Kimetsu no Yaiba"},
	"my-hero-academia":         {"My Hero Academia"},
	"boku-no-hero":             {"My Hero Academia"},
	"jujutsu-kaisen":           {"Jujutsu Kaisen"},
	"chainsaw-man":             {"Chainsaw Man"},
	"death-note":               {"Death Note"},
	"fullmetal-alchemist":      {"Fullmetal Alchemist"},
	"hagane-no-renkinjutsushi": {"Fullmetal Alchemist"},
	"dragon-ball":              {"Dragon Ball"},
	"hunter-x-hunter":          {"Hunter x Hunter"},
	"tokyo-ghoul":              {"Tokyo Ghoul"},
	"spy-x-family":             {"Spy x Family"},
	"one-punch-man":            {"One-Punch Man"},
	"berserk":                  {"Berserk"},
	"vinland-saga":             {"Vinland Saga"},
	"vagabond":                 {"Vagabond"},
	"slam-dunk":                {"Slam Dunk"},
	"bleach":                   {"Bleach"},
	"haikyu":                   {"Haikyu!!"},
	"haikyuu":                  {"Haikyu!!"},
	"fruits-basket":            {"Fruits Basket"},
	"sailor-moon":              {"Sailor Moon", "Pretty Guardian Sailor Moon"},
	"cardcaptor-sakura":        {"Cardcaptor Sakura"},
	"the-promised-neverland":   {"The Promised Neverland"},
	"yakusoku-no-neverland":    {"The Promised Neverland"},
}

// NormalizeKey converts a title to its alias lookup key: lowercase with every
// run of non-alphanumeric characters collapsed to a single hyphen.
func NormalizeKey(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Lookup returns the canonical names for a title, or nil when unknown.
func (t AliasTable) Lookup(title string) []string {
	if t == nil {
		return nil
	}
	return t[NormalizeKey(title)]
}

// CanonicalNames returns the deduplicated set of all canonical titles in the
// table. Used by the manga-content heuristic to recognize well-known series.
func (t AliasTable) CanonicalNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(t))
	for _, aliases := range t {
		for _, name := range aliases {
			lower := strings.ToLower(name)
			if !seen[lower] {
				seen[lower] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// LoadAliasFile reads alias overrides from a YAML file mapping normalized
// keys to lists of canonical titles. Entries merge over the defaults,
// replacing any key that appears in both.
func LoadAliasFile(path string) (AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}

	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}

	merged := make(AliasTable, len(DefaultAliases)+len(overrides))
	for key, names := range DefaultAliases {
		merged[key] = names
	}
	for key, names := range overrides {
		merged[NormalizeKey(key)] = names
	}
	return merged, nil
}
