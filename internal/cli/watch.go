package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/embedsync/internal/config"
	"github.com/mvp-joe/embedsync/internal/docsync"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [patterns]",
	Short: "Watch for changes and re-sync automatically",
	Long: `Watch performs an initial sync, then watches the working tree and
re-runs the sync whenever files change, after a debounce window.

Each pass runs with fresh source caches, so edits to referenced source
files are always picked up.

Examples:
  # Watch the configured document set
  embedsync watch

  # Watch a specific pattern
  embedsync watch "docs/**/*.md"
`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output and the run summary")
}

func runWatch(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Paths.Docs
	}
	discovery, err := docsync.NewDiscovery(root, patterns, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("compiling patterns: %w", err)
	}
	if !discovery.HasPatterns() {
		fmt.Fprintln(os.Stderr, "no input patterns supplied")
		return errRunIssues
	}

	runPass := func() {
		if err := syncOnce(root, args, false, quietFlag); err != nil && !errors.Is(err, errRunIssues) {
			log.Printf("Sync failed: %v", err)
		}
	}

	// Initial pass before watching.
	runPass()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Stopping watch...")
		cancel()
	}()

	debounce := time.Duration(cfg.Sync.DebounceMs) * time.Millisecond
	watcher, err := docsync.NewWatcher(root, discovery, debounce, runPass)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	if !quietFlag {
		fmt.Printf("Watching %s (debounce %v). Press Ctrl+C to stop.\n", root, debounce)
	}
	watcher.Start(ctx)
	<-ctx.Done()
	return nil
}
