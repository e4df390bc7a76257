package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/subcommands"

	"github.com/coinledger/coinledger"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "watch the ledger file and re-validate it on change" }
func (*watchCmd) Usage() string {
	return `cpl watch

  Watches the profile's ledger file and reloads it whenever it changes,
  reporting link repairs and parse errors. Useful while editing the file
  by hand in another window. Stop with Ctrl-C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := OpenProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		return subcommands.ExitFailure
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		return subcommands.ExitFailure
	}
	defer watcher.Close()

	// watch the directory, not the file: editors replace files by rename
	if err := watcher.Add(filepath.Dir(p.LedgerPath())); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", p.Dir, err)
		return subcommands.ExitFailure
	}

	log := Logger()
	fmt.Printf("Watching %s\n", p.LedgerPath())
	check(p.LedgerPath())

	// editors fire several events per save; debounce them
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case event, ok := <-watcher.Events:
			if !ok {
				return subcommands.ExitSuccess
			}
			if event.Name != p.LedgerPath() {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(200 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return subcommands.ExitSuccess
			}
			log.Warn().Err(err).Msg("watch error")
		case <-pending:
			pending = nil
			check(p.LedgerPath())
		}
	}
}

// check reloads the ledger file and reports its state.
func check(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("%s: %v\n", time.Now().Format("15:04:05"), err)
		return
	}
	defer f.Close()

	ledger, err := coinledger.DecodeLedger(f)
	if err != nil {
		fmt.Printf("%s: INVALID: %v\n", time.Now().Format("15:04:05"), err)
		return
	}
	fmt.Printf("%s: OK, %d transactions\n", time.Now().Format("15:04:05"), ledger.Len())
}
