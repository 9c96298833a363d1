package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solhealth/consulta/internal/ingest"
	"github.com/solhealth/consulta/internal/llm"
	"github.com/solhealth/consulta/internal/model"
	"github.com/solhealth/consulta/internal/pipeline"
	"github.com/solhealth/consulta/internal/store"
)

var (
	corpusPaths []string
	maxResults  int
	askTimeout  time.Duration
	llmProvider string
	llmModel    string
	embedModel  string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question against a conversation corpus",
	Long: `Ask ingests the conversation corpus, retrieves the fragments relevant
to the question and composes a grounded answer with sources and a
confidence score.

Example:
  consulta ask --corpus ./conversations "¿Qué enfermedad tiene Pepito Gómez?"
  consulta ask --corpus visita.yaml --max-results 3 "Listame los pacientes con diabetes"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringSliceVar(&corpusPaths, "corpus", nil, "conversation corpus files or directories (yaml, txt, html)")
	askCmd.Flags().IntVar(&maxResults, "max-results", 5, "maximum retrieval results (1-20)")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "overall query timeout")
	askCmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (openai, ollama)")
	askCmd.Flags().StringVar(&llmModel, "model", "", "chat model name")
	askCmd.Flags().StringVar(&embedModel, "embed-model", "", "embedding model name")
	_ = askCmd.MarkFlagRequired("corpus")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	if v := pipeline.ValidateQuery(question); !v.Valid {
		return fmt.Errorf("invalid query: %s", v.Reason)
	}

	cfg := loadConfig()
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if embedModel != "" {
		cfg.LLM.EmbedModel = embedModel
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	files, err := collectCorpus(corpusPaths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no corpus files found in %s", strings.Join(corpusPaths, ", "))
	}

	memStore := store.NewMemoryStore()
	ingester := ingest.NewIngester(provider, memStore, cfg.Ingest, logger)
	result, err := ingester.IngestFiles(ctx, files)
	if err != nil {
		return fmt.Errorf("ingest corpus: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Corpus: %d records loaded, %d ingested, %d failed\n",
			result.Loaded, result.Ingested, result.Failed)
	}

	p := pipeline.NewPipeline(cfg, provider, memStore, logger)
	response, err := p.ProcessQuery(ctx, question, maxResults, nil)
	if err != nil {
		return err
	}

	printResponse(response)
	return nil
}

func printResponse(response *model.ChatResponse) {
	fmt.Println(response.Answer)
	fmt.Println()
	fmt.Printf("Confianza: %.2f · Intención: %s · %d ms\n",
		response.Confidence, response.Intent, response.ProcessingTimeMS)

	if len(response.Sources) > 0 {
		fmt.Println("\nFuentes:")
		for i, src := range response.Sources {
			name := src.PatientName
			if name == "" {
				name = "paciente no identificado"
			}
			fmt.Printf("  %d. %s (%s, relevancia %.2f)\n", i+1, name, src.ConversationID, src.RelevanceScore)
		}
	}

	if len(response.FollowUpSuggestions) > 0 {
		fmt.Println("\nSugerencias:")
		for _, s := range response.FollowUpSuggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
}

// collectCorpus expands directories into their corpus files.
func collectCorpus(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("corpus path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".yaml", ".yml", ".txt", ".html", ".htm":
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk corpus dir %s: %w", path, err)
		}
	}
	return files, nil
}
