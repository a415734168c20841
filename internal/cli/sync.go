package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/embedsync/internal/config"
	"github.com/mvp-joe/embedsync/internal/docsync"
)

var (
	checkFlag bool
	quietFlag bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [patterns]",
	Short: "Rewrite embedded code blocks from their source declarations",
	Long: `Sync scans the matched documents for embed markers, extracts the
referenced declarations from their source files, and rewrites each
marker body in place.

Patterns are comma-separated globs resolved against the current
directory. Without arguments, the patterns from .embedsync.yml (or the
built-in default **/*.md) are used.

Examples:
  # Sync every Markdown file under docs/
  embedsync sync "docs/**/*.md"

  # Sync two pattern sets at once
  embedsync sync "docs/**/*.md,guides/**/*.md"

  # Verify documents are current without writing (CI)
  embedsync sync --check
`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&checkFlag, "check", false, "Report stale documents without rewriting them")
	syncCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output and the run summary")
}

func runSync(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	return syncOnce(root, args, checkFlag, quietFlag)
}

// syncOnce performs one full sync pass rooted at root. It is shared by
// the sync and watch commands; watch re-invokes it with fresh caches so
// every pass sees current source files.
func syncOnce(root string, args []string, check, quiet bool) error {
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

	docs, err := discovery.Documents()
	if err != nil {
		return fmt.Errorf("discovering documents: %w", err)
	}
	if len(docs) == 0 {
		if !quiet {
			fmt.Println("No documents matched; nothing to do.")
		}
		return nil
	}
	if verbose {
		log.Printf("Processing %d document(s)", len(docs))
	}

	engine, err := docsync.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	summary, err := engine.SyncDocuments(docs, docsync.Options{
		Check:    check,
		Progress: newProgressReporter(quiet),
	})
	if err != nil {
		return err
	}

	printReports(summary)
	if verbose {
		for _, doc := range summary.Documents {
			log.Printf("%s: %d directive(s), rewritten=%v", doc.Path, doc.Directives, doc.Rewritten)
		}
	}
	if !quiet {
		printSummary(summary, check)
	}

	if len(summary.Reports) > 0 {
		return errRunIssues
	}
	if check && summary.Updated > 0 {
		return errRunIssues
	}
	return nil
}
