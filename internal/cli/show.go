package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paydocs/config"
	"paydocs/internal/adapter/store"
)

var showID int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one document's public summary",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showID, "id", 0, "document id (required)")
	showCmd.MarkFlagRequired("id")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	doc, err := orch.FindOneByID(showID)
	if err != nil {
		return err
	}

	summary := doc.Summary()
	data, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(data))
	fmt.Printf("\nVersion: %s  Category: %s  Chunks: %d\n",
		doc.Version(), doc.Category(), doc.ChunkCount())
	if vocab := orch.KeywordVocabulary(doc.Version()); len(vocab) > 0 {
		fmt.Printf("Partition vocabulary: %s\n", strings.Join(vocab, ", "))
	}
	return nil
}
