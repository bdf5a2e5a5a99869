package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paydocs/config"
	"paydocs/internal/adapter/store"
	"paydocs/internal/adapter/synonym"
	"paydocs/internal/adapter/weighter"
	"paydocs/internal/domain"
	"paydocs/internal/usecase"
)

var (
	queryKeywords  string
	queryMode      string
	queryMaxTokens int
	queryVersion   string
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve documentation context for keywords",
	Long: `Rank the loaded corpus against a comma-separated keyword list and
assemble a token-budgeted context string.

Examples:
  paydocs query -q "카드,결제"
  paydocs query -q "billing,webhook" --version v2 --mode precise --max-tokens 8000`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryKeywords, "query", "q", "", "comma-separated keywords (required)")
	queryCmd.Flags().StringVar(&queryMode, "mode", "", "search mode: broad, balanced, precise (default from config)")
	queryCmd.Flags().IntVar(&queryMaxTokens, "max-tokens", 0, "context token budget (default from config)")
	queryCmd.Flags().StringVar(&queryVersion, "version", "v1", "document version partition: v1 or v2")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	dbPath := config.CorpusDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no corpus found. Run 'paydocs load' first")
	}
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer st.Close()

	orch, err := buildOrchestrator(cmd, cfg, st)
	if err != nil {
		return err
	}

	keywords := splitKeywords(queryKeywords)
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords given")
	}

	mode := domain.ParseSearchMode(queryMode)
	if queryMode == "" {
		mode = domain.ParseSearchMode(cfg.Search.Mode)
	}
	maxTokens := queryMaxTokens
	if maxTokens == 0 {
		maxTokens = cfg.Search.MaxTokens
	}

	var context string
	switch strings.ToLower(queryVersion) {
	case "v2":
		context, err = orch.FindV2DocumentsByKeyword(cmd.Context(), keywords, mode, maxTokens)
	default:
		context, err = orch.FindV1DocumentsByKeyword(cmd.Context(), keywords, mode, maxTokens)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		out := struct {
			Keywords  []string `json:"keywords"`
			Mode      string   `json:"mode"`
			MaxTokens int      `json:"max_tokens"`
			Context   string   `json:"context"`
		}{keywords, string(mode), maxTokens, context}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	if context == "" {
		fmt.Println("No matching documents.")
		return nil
	}
	fmt.Println(context)
	return nil
}

// buildOrchestrator rebuilds the in-memory index from the stored corpus.
func buildOrchestrator(cmd *cobra.Command, cfg *config.Config, st *store.BoltStore) (*usecase.Orchestrator, error) {
	loader := newLoader(cfg, cfg.Corpus.Dir, st)
	result, err := loader.LoadFromStore(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}
	return usecase.NewOrchestrator(
		result.Documents,
		synonym.New(cfg.Synonyms),
		weighter.NewIdentity(),
	), nil
}

func splitKeywords(raw string) []string {
	var keywords []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
