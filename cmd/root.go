package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/booktracer/internal/config"
	"github.com/lepinkainen/booktracer/internal/store"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the booktracer application
type CLI struct {
	// Global flags
	DBFile string `help:"Path to the book database file (defaults to dbfile in config)"`

	Add    AddCmd    `cmd:"" help:"Add a book, optionally fetching metadata by ISBN"`
	Lookup LookupCmd `cmd:"" help:"Look up book metadata by ISBN without saving"`
	List   ListCmd   `cmd:"" help:"List tracked books"`
	Search SearchCmd `cmd:"" help:"Search books by title or author substring"`
	Update UpdateCmd `cmd:"" help:"Update the current page of a book"`
	Mark   MarkCmd   `cmd:"" help:"Set the status of a book"`
	Rm     RmCmd     `cmd:"" help:"Delete a book"`
	Rate   RateCmd   `cmd:"" help:"Show or set the daily reading rate (pages/day)"`
	Export ExportCmd `cmd:"" help:"Export all books to a CSV file"`
	Import ImportCmd `cmd:"" help:"Import books from a CSV file"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("booktracer"),
		kong.Description("A personal reading tracker with ISBN metadata lookup."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("dbfile", "./books.db")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("googlebooks.apikey", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults")
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.DBFile != "" {
		viper.Set("dbfile", cli.DBFile)
		config.SetDBFile(cli.DBFile)
	}
}

// openStore opens the configured database. Failure here is fatal for the
// command; nothing interactive has happened yet.
func openStore() (*store.Store, error) {
	return store.Open(config.DBFile)
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
