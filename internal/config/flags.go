package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/medialert/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory for the embedded store
//	-m int      minimum reminder delay in minutes
//	-v          verbose (debug) logging
//
// Arguments are pre-filtered with flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	minDelay := fs.Int("m", int(cfg.MinReminderDelay.Minutes()), "minimum reminder delay (in minutes)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.MinReminderDelay = time.Duration(*minDelay) * time.Minute
}
