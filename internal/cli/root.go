package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paydocs/config"
	"paydocs/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "paydocs",
	Short: "Payments documentation retrieval - chunk, rank and pack context for LLM prompting",
	Long: `paydocs indexes payments documentation pages into header-scoped chunks,
ranks them against keyword queries with a mode-tuned BM25 model, and
assembles a token-budgeted context string for downstream prompting.

Example usage:
  paydocs load --dir ./docs            # Load a documentation corpus
  paydocs query -q "카드,결제"          # Retrieve context for keywords
  paydocs show --id 3                  # Show one document's summary`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Init(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./paydocs.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
