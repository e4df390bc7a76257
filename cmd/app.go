// Package cmd implements the CLI application to manage the crypto ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/coinledger/coinledger"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "import")
	c.Register(&importBinanceCmd{}, "import")
	c.Register(&importBitpandaCmd{}, "import")
	c.Register(&exportCmd{}, "import")

	c.Register(&recordCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")
	c.Register(&linkCmd{}, "transactions")
	c.Register(&unlinkCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&expiringCmd{}, "reports")

	c.Register(&configCmd{}, "settings")
	c.Register(&topicCmd{}, "settings")
	c.Register(&watchCmd{}, "settings")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var profileDir = flag.String("dir", "", "Directory holding the profile files (default: $COINLEDGER_HOME or ~/.coinledger)")
var profileName = flag.String("profile", "default", "Name of the profile to operate on")
var verbose = flag.Bool("v", false, "Enable debug logging")

// Logger builds the CLI logger. Quiet unless -v is given.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// OpenProfile is the central function to open the active profile.
func OpenProfile() (*coinledger.Profile, error) {
	dir := *profileDir
	if dir == "" {
		var err error
		dir, err = coinledger.DefaultProfileDir()
		if err != nil {
			return nil, err
		}
	}
	return coinledger.OpenProfile(dir, *profileName)
}

// SaveProfile persists the active profile back to disk.
func SaveProfile(p *coinledger.Profile) subcommands.ExitStatus {
	if err := p.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// reportResult prints an import outcome, errors first.
func reportResult(result coinledger.ImportResult) {
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, msg)
	}
	fmt.Printf("Imported %d transactions (%d messages)\n", result.Imported, len(result.Errors))
}
