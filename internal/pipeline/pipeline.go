// Package pipeline wires the query-to-context retrieval pipeline:
// analyze → retrieve → rank → assemble. The pipeline is stateless and
// re-entrant; concurrent requests share it without locking.
package pipeline

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/solhealth/consulta/internal/analyze"
	"github.com/solhealth/consulta/internal/assemble"
	"github.com/solhealth/consulta/internal/cache"
	"github.com/solhealth/consulta/internal/llm"
	"github.com/solhealth/consulta/internal/model"
	"github.com/solhealth/consulta/internal/rank"
	"github.com/solhealth/consulta/internal/retrieve"
)

const (
	minQueryLen   = 3
	maxQueryLen   = 1000
	minMaxResults = 1
	maxMaxResults = 20
)

// Pipeline orchestrates the complete chat query process.
type Pipeline struct {
	analyzer     *analyze.Analyzer
	orchestrator *retrieve.Orchestrator
	ranker       *rank.Ranker
	assembler    *assemble.Assembler
	log          *zap.Logger
}

// NewPipeline builds a pipeline from its two external capabilities: the
// LLM provider (embedding + generation) and the semantic store. When
// the cache is enabled, embedding calls go through a TTL cache.
func NewPipeline(cfg *model.Config, provider llm.Provider, semanticStore retrieve.SemanticStore, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	var embedder retrieve.Embedder = provider
	if cfg.Cache.Enabled {
		embedder = llm.NewCachedEmbedder(
			provider,
			cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
			cfg.Cache.TTL,
		)
	}

	return &Pipeline{
		analyzer:     analyze.NewAnalyzer(analyze.DefaultLexicon(), log),
		orchestrator: retrieve.NewOrchestrator(semanticStore, embedder, cfg.Retrieval, log),
		ranker:       rank.NewRanker(),
		assembler:    assemble.NewAssembler(provider, log),
		log:          log,
	}
}

// ValidateQuery checks whether a query can be processed at all.
func ValidateQuery(query string) model.QueryValidation {
	n := utf8.RuneCountInString(query)
	switch {
	case n < minQueryLen:
		return model.QueryValidation{Valid: false, Reason: "La consulta debe tener al menos 3 caracteres"}
	case n > maxQueryLen:
		return model.QueryValidation{Valid: false, Reason: "La consulta no puede exceder 1000 caracteres"}
	}
	return model.QueryValidation{Valid: true}
}

// ProcessQuery runs the full pipeline for one query. maxResults is
// clamped to [1, 20]. Stage-level faults degrade the response; anything
// that still escapes is wrapped into a PipelineError.
func (p *Pipeline) ProcessQuery(ctx context.Context, query string, maxResults int, userFilters map[string]model.Filter) (resp *model.ChatResponse, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = &PipelineError{Stage: "pipeline", Err: fmt.Errorf("panic: %v", r)}
			p.log.Error("chat query processing failed",
				zap.String("query", query),
				zap.Any("cause", r))
		}
	}()

	if v := ValidateQuery(query); !v.Valid {
		return nil, &PipelineError{Stage: "validate", Err: fmt.Errorf("%s", v.Reason)}
	}
	if maxResults < minMaxResults {
		maxResults = minMaxResults
	}
	if maxResults > maxMaxResults {
		maxResults = maxMaxResults
	}

	analysis := p.analyzer.Analyze(query)
	items := p.orchestrator.Retrieve(ctx, analysis, maxResults, userFilters)
	ranked := p.ranker.Rank(items, analysis)
	response := p.assembler.Assemble(ctx, ranked, analysis)
	response.ProcessingTimeMS = time.Since(start).Milliseconds()

	p.log.Info("chat query processed",
		zap.String("query", query),
		zap.String("intent", string(response.Intent)),
		zap.Int("sources", len(response.Sources)),
		zap.Float64("confidence", response.Confidence),
		zap.Int64("processing_time_ms", response.ProcessingTimeMS))

	return &response, nil
}
