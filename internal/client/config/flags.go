package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/questionnaire/internal/flagx"
)

var knownFlags = []string{"-a", "-s", "-t", "-p", "-l"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the questionnaire API
//	-s string   path of the local session database
//	-t int      request timeout (in seconds)
//	-p string   route to open on startup
//	-l string   log level
//
// Unknown arguments (such as -c) are filtered out beforehand. -t only
// replaces RequestTimeout when it is given, so a sub-second value from the
// JSON file survives.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the questionnaire API")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "path of the local session database")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")
	fs.StringVar(&cfg.StartPath, "p", cfg.StartPath, "route to open on startup")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
