package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/bitosaur/emlee/pkg/email"
	"github.com/bitosaur/emlee/pkg/nav"
	"github.com/google/subcommands"
)

type lsCmd struct{}

func (*lsCmd) Name() string {
	return "ls"
}

func (*lsCmd) Synopsis() string {
	return "list email files alongside the named file"
}

func (*lsCmd) Usage() string {
	return `ls <file>:
	list the eligible email files in the directory of file, marking it
`
}

func (l *lsCmd) SetFlags(f *flag.FlagSet) {}

func (l *lsCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file := f.Arg(0)
	if file == "" {
		return usage("file required")
	}

	normalizer := &email.Normalizer{Container: email.Container()}
	state, err := nav.Scan(file, normalizer.Extensions())
	if err != nil {
		return fatal("Scan failed", err)
	}

	for i, path := range state.Paths {
		marker := " "
		if i == state.Index {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, filepath.Base(path))
	}

	return subcommands.ExitSuccess
}
