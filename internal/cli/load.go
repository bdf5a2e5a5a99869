package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"paydocs/config"
	"paydocs/internal/adapter/chunker"
	"paydocs/internal/adapter/fs"
	"paydocs/internal/adapter/store"
	"paydocs/internal/usecase"
)

var loadDocsDir string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a documentation corpus",
	Long: `Walk a documentation directory, store the raw markdown pages in the
corpus database, and report how many documents were indexed.

Examples:
  paydocs load
  paydocs load --docs ./payments-docs`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVar(&loadDocsDir, "docs", "", "documentation directory (default from config)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	docsDir := cfg.Corpus.Dir
	if loadDocsDir != "" {
		docsDir = loadDocsDir
	}

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	st, err := store.NewBoltStore(config.CorpusDBPath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer st.Close()

	// A load replaces the stored corpus wholesale; ids are reassigned.
	if err := st.Clear(); err != nil {
		return fmt.Errorf("failed to clear corpus store: %w", err)
	}

	loader := newLoader(cfg, docsDir, st)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil && total > 0 {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Loading"),
			)
		}
		if bar != nil {
			_ = bar.Set(done)
		}
	}

	result, err := loader.Load(cmd.Context(), progress)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	fmt.Println()

	fmt.Printf("Loaded %d documents (%d skipped)\n", result.Loaded, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  warning: %s\n", e)
	}
	return nil
}

// newLoader wires the filesystem fetcher and markdown chunker from config.
func newLoader(cfg *config.Config, docsDir string, st *store.BoltStore) *usecase.Loader {
	return usecase.NewLoader(
		fs.NewDocsFetcher(docsDir, cfg.Corpus.Includes, cfg.Corpus.Excludes),
		chunker.NewMarkdownChunker(cfg.Chunker.HeadingDepth),
		st,
	)
}
