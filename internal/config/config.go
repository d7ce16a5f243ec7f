// Package config holds the small amount of global configuration shared
// across commands. Everything else is read straight from viper where needed.
package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// UpdateCovers forces re-downloading cover files even if they already exist
	UpdateCovers bool
	// GoogleBooksAPIKey is the optional API key for the Google Books API
	GoogleBooksAPIKey string
)

// InitConfig initializes the global configuration
func InitConfig() {
	viper.SetDefault("CoverOutputDir", "./covers/")
	viper.SetDefault("UpdateCovers", false)

	UpdateCovers = viper.GetBool("UpdateCovers")
	GoogleBooksAPIKey = viper.GetString("googlebooks.apikey")
}

// SetUpdateCovers sets the UpdateCovers flag
func SetUpdateCovers(update bool) {
	UpdateCovers = update
}
