package config

import (
	"flag"
	"os"
	"time"

	"github.com/dberzins/stockroom/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-k string   project API key
//	-s int      staleness window in seconds (default from Config)
//	-d string   path of the local SQLite database
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "project API key")
	staleAfter := fs.Int("s", int(cfg.StaleAfter.Seconds()), "staleness window (in seconds)")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path of the local SQLite database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StaleAfter = time.Duration(*staleAfter) * time.Second
}
