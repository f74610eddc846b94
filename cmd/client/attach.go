package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type attachCmd struct{}

func (*attachCmd) Name() string {
	return "attach"
}

func (*attachCmd) Synopsis() string {
	return "extract attachments from an email file"
}

func (*attachCmd) Usage() string {
	return `attach <file>:
	write the attachments of an email file to the scratch dir
`
}

func (a *attachCmd) SetFlags(f *flag.FlagSet) {}

func (a *attachCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file := f.Arg(0)
	if file == "" {
		return usage("file required")
	}

	manager, err := newManager()
	if err != nil {
		return fatal("Couldn't build viewer", err)
	}
	load, err := manager.Open(file)
	if err != nil {
		return fatal("Open failed", err)
	}

	for _, att := range load.Email.Attachments {
		if path, ok := load.Attachments[att.FileName]; ok {
			fmt.Println(path)
		}
	}
	status := subcommands.ExitSuccess
	for _, werr := range load.AttachmentErrors {
		fmt.Fprintf(os.Stderr, "failed: %v\n", werr)
		status = subcommands.ExitFailure
	}

	return status
}
