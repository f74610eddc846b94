package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bitosaur/emlee/pkg/email"
	"github.com/google/subcommands"
)

type showCmd struct {
	source bool
}

func (*showCmd) Name() string {
	return "show"
}

func (*showCmd) Synopsis() string {
	return "display an email file"
}

func (*showCmd) Usage() string {
	return `show [-source] <file>:
	display the headers and body of an email file
`
}

func (s *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.source, "source", false, "print the raw message source instead")
}

func (s *showCmd) Execute(
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

	if s.source {
		r, err := manager.SourceReader()
		if err != nil {
			return fatal("Source unavailable", err)
		}
		defer r.Close()
		if _, err := io.Copy(os.Stdout, r); err != nil {
			return fatal("Copy failed", err)
		}
		return subcommands.ExitSuccess
	}

	for _, key := range email.HeaderKeys {
		fmt.Printf("%s: %s\n", key, load.Email.Headers[key])
	}
	fmt.Println()
	fmt.Println(load.Email.Body)
	if len(load.Email.Attachments) > 0 {
		fmt.Println()
		for _, att := range load.Email.Attachments {
			fmt.Printf("attachment: %s (%d bytes)\n", att.FileName, len(att.Content))
		}
	}

	return subcommands.ExitSuccess
}
