package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `cpl topic [<topic>]

  Shows the manual page for a topic. Without an argument, lists the
  available topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println("Available topics:")
		for _, name := range docs.Topics() {
			fmt.Printf("  %s\n", name)
		}
		return subcommands.ExitSuccess
	}

	name := strings.TrimSpace(f.Arg(0))
	doc := docs.Topic(name)
	if doc == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown topic %q, try 'cpl topic'\n", name)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
