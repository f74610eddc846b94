// Package main implements a command line client for the Emlee viewer core
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitosaur/emlee/pkg/attachment"
	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/viewer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

var attachDir = flag.String("attachdir", "",
	"attachment scratch dir, defaults beneath the system temp dir")

func main() {
	// Quiet the core packages unless something goes wrong.
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	// Important top-level flags
	subcommands.ImportantFlag("attachdir")

	// Setup standard helpers
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	// Setup my commands
	subcommands.Register(&showCmd{}, "")
	subcommands.Register(&attachCmd{}, "")
	subcommands.Register(&lsCmd{}, "")

	// Parse and execute
	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

// newManager builds a viewer session writing attachments to the configured
// scratch dir.
func newManager() (viewer.Manager, error) {
	dir := *attachDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "emlee")
	}
	materializer, err := attachment.New(dir)
	if err != nil {
		return nil, err
	}
	return &viewer.Session{
		Normalizer:   &email.Normalizer{Container: email.Container()},
		Materializer: materializer,
	}, nil
}

func fatal(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}

func usage(msg string) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, msg)
	return subcommands.ExitUsageError
}
