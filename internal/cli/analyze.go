package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solhealth/consulta/internal/analyze"
	"github.com/solhealth/consulta/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "Show how a question would be interpreted",
	Long: `Analyze classifies the question, extracts the medical entities and
prints the derived search terms and filters without running retrieval.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := args[0]
	if v := pipeline.ValidateQuery(question); !v.Valid {
		return fmt.Errorf("invalid query: %s", v.Reason)
	}

	cfg := loadConfig()
	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	analyzer := analyze.NewAnalyzer(analyze.DefaultLexicon(), logger)
	analysis := analyzer.Analyze(question)

	out, err := yaml.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
