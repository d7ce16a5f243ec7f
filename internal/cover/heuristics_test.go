package cover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsFirstVolume(t *testing.T) {
	accepted := []string{
		"Attack on Titan, Vol. 1",
		"Attack on Titan Volume 1",
		"One Piece, Vol.1: Romance Dawn",
		"Naruto volume one",
		"Berserk first volume",
		"Berserk 1st volume",
		"Death Note Book 1",
		"Dragon Ball Chapter 1",
		"Demon Slayer english edition vol. 1",
	}
	for _, text := range accepted {
		require.True(t, IsFirstVolume(text), "expected first-volume match for %q", text)
	}

	rejected := []string{
		"Attack on Titan, Vol. 3",
		"One Piece Volume 7",
		"Naruto vol. 10",
		"Berserk second volume",
		"Bleach tenth volume",
		"Death Note 3rd volume",
		"One Piece volumes 1-5",
		"Naruto vol 1 & 2",
		"Attack on Titan",
		"",
	}
	for _, text := range rejected {
		require.False(t, IsFirstVolume(text), "expected rejection for %q", text)
	}
}

func TestIsFirstVolumeNegativeWinsOverPositive(t *testing.T) {
	// A range mentions volume 1 but is still a bundle.
	require.False(t, IsFirstVolume("One Piece Volume 1-3 collection"))
	require.False(t, IsFirstVolume("Naruto vol. 1 & 2 double pack"))
}

func TestIsCompleteSet(t *testing.T) {
	require.True(t, IsCompleteSet("One Piece Complete Set"))
	require.True(t, IsCompleteSet("Naruto Box Set 1"))
	require.True(t, IsCompleteSet("Death Note omnibus"))
	require.True(t, IsCompleteSet("Berserk Deluxe Edition Volume 1"))
	require.True(t, IsCompleteSet("Akira Collector's Edition"))

	require.False(t, IsCompleteSet("One Piece, Vol. 1"))
	require.False(t, IsCompleteSet(""))
}

func TestMangaContentChecker(t *testing.T) {
	checker := NewMangaContentChecker(DefaultAliases)

	// Category evidence.
	require.True(t, checker.IsManga([]string{"Comics & Graphic Novels"}, ""))
	require.True(t, checker.IsManga([]string{"Manga"}, ""))

	// Text evidence.
	require.True(t, checker.IsManga(nil, "a shonen manga about pirates"))
	require.True(t, checker.IsManga(nil, "the first volume of the series"))
	require.True(t, checker.IsManga(nil, "Japanese bestseller"))

	// Known series names count as evidence even without keywords.
	require.True(t, checker.IsManga(nil, "One Piece: Romance Dawn"))

	require.False(t, checker.IsManga([]string{"Cooking"}, "a book about gardening"))
	require.False(t, checker.IsManga(nil, ""))
}

func TestHasEnglishEditionPhrase(t *testing.T) {
	require.True(t, HasEnglishEditionPhrase("One Piece english edition"))
	require.True(t, HasEnglishEditionPhrase("English Version of the classic"))
	require.True(t, HasEnglishEditionPhrase("english language release"))

	require.False(t, HasEnglishEditionPhrase("englishedition"))
	require.False(t, HasEnglishEditionPhrase("in English"))
}
