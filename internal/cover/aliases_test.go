package cover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Naruto", "naruto"},
		{"uppercase with space", "ONE PIECE", "one-piece"},
		{"punctuation", "Haikyu!!", "haikyu"},
		{"colon subtitle", "Demon Slayer: Kimetsu no Yaiba", "demon-slayer-kimetsu-no-yaiba"},
		{"surrounding whitespace", "  Attack on Titan  ", "attack-on-titan"},
		{"multiple separators", "Spy x Family -- vol", "spy-x-family-vol"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeKey(tt.title))
		})
	}
}

func TestAliasLookup(t *testing.T) {
	require.Equal(t, []string{"One Piece"}, DefaultAliases.Lookup("ONE PIECE"))
	require.Equal(t, []string{"Attack on Titan"}, DefaultAliases.Lookup("Shingeki no Kyojin"))
	require.Nil(t, DefaultAliases.Lookup("Some Unknown Series"))

	var empty AliasTable
	require.Nil(t, empty.Lookup("One Piece"))
}

func TestCanonicalNamesDeduplicates(t *testing.T) {
	table := AliasTable{
		"demon-slayer":     {"Demon Slayer: Kimetsu no Yaiba"},
		"kimetsu-no-yaiba": {"Demon Slayer: Kimetsu no Yaiba"},
		"one-piece":        {"One Piece"},
	}

	names := table.CanonicalNames()
	require.Len(t, names, 2)
	require.Contains(t, names, "Demon Slayer: Kimetsu no Yaiba")
	require.Contains(t, names, "One Piece")
}

func TestLoadAliasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	content := `
"Berserk of Gluttony":
  - Berserk of Gluttony
one-piece:
  - One Piece (Omnibus Edition)
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadAliasFile(path)
	require.NoError(t, err)

	// Override replaces the default for the same key.
	require.Equal(t, []string{"One Piece (Omnibus Edition)"}, table.Lookup("One Piece"))
	// New keys are normalized on load.
	require.Equal(t, []string{"Berserk of Gluttony"}, table.Lookup("berserk of gluttony"))
	// Untouched defaults survive the merge.
	require.Equal(t, []string{"Naruto"}, table.Lookup("Naruto"))
}

func TestLoadAliasFileErrors(t *testing.T) {
	_, err := LoadAliasFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))
	_, err = LoadAliasFile(path)
	require.Error(t, err)
}
