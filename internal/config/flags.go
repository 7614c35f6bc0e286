package config

import (
	"flag"
	"os"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the local database file (default from Config)
//	-l string   minimum log level (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "minimum log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
