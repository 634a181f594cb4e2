package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// DBFile is the path to the SQLite database holding the book records.
	DBFile string
	// GoogleBooksAPIKey is the API key for the Google Books lookup source.
	// Empty disables keyed requests.
	GoogleBooksAPIKey string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("dbfile", "./books.db")

	// Get values from viper
	DBFile = viper.GetString("dbfile")
	GoogleBooksAPIKey = viper.GetString("googlebooks.apikey")
}

// SetDBFile sets the database path
func SetDBFile(path string) {
	DBFile = path
}
