// Package fileutil provides filesystem helpers for saving resolved covers.
package fileutil

import (
	"os"
	"strings"
)

// FileExists reports whether the path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// invalidFilenameChars are stripped or replaced when building filenames
// from titles.
var invalidFilenameChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", " -",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
)

// SanitizeFilename makes a title safe to use as a filename.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(invalidFilenameChars.Replace(name))
}

// BuildCoverFilename creates a standard cover filename from a title.
// Returns: "Title - cover.jpg"
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
