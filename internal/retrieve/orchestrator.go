package retrieve

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/solhealth/consulta/internal/model"
)

const (
	defaultSimilarityThreshold = 0.6
	defaultNameMatchThreshold  = 0.3
	generalSearchTerms         = 3
)

// Orchestrator selects a retrieval strategy from the query analysis and
// executes it against the semantic store. Stateless and safe for
// concurrent use.
type Orchestrator struct {
	store    SemanticStore
	embedder Embedder
	log      *zap.Logger

	similarityThreshold float64
	nameMatchThreshold  float64
}

// NewOrchestrator creates an Orchestrator with the given capabilities.
func NewOrchestrator(store SemanticStore, embedder Embedder, cfg model.RetrievalConfig, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	simThreshold := cfg.SimilarityThreshold
	if simThreshold <= 0 {
		simThreshold = defaultSimilarityThreshold
	}
	nameThreshold := cfg.NameMatchThreshold
	if nameThreshold <= 0 {
		nameThreshold = defaultNameMatchThreshold
	}
	return &Orchestrator{
		store:               store,
		embedder:            embedder,
		log:                 log,
		similarityThreshold: simThreshold,
		nameMatchThreshold:  nameThreshold,
	}
}

// Retrieve runs the strategy dispatch: targeted patient lookup, condition
// lookup, or general semantic search, in that order of preference. A
// store or embedding fault is logged and yields an empty result list,
// never an error to the caller.
func (o *Orchestrator) Retrieve(ctx context.Context, analysis model.QueryAnalysis, maxResults int, userFilters map[string]model.Filter) []model.ContextItem {
	filters := model.MergeFilters(analysis.AutoFilters, userFilters)

	var (
		items []model.ContextItem
		err   error
	)
	switch {
	case analysis.Intent == model.IntentPatientInfo && analysis.Entities.First(model.EntityPatients) != "":
		items, err = o.patientLookup(ctx, analysis.Entities.First(model.EntityPatients))
	case analysis.Intent == model.IntentConditionList && analysis.Entities.First(model.EntityConditions) != "":
		items, err = o.conditionLookup(ctx, analysis.Entities.First(model.EntityConditions), maxResults)
	default:
		items, err = o.generalSearch(ctx, analysis, maxResults, filters)
	}
	if err != nil {
		o.log.Error("context retrieval failed",
			zap.String("intent", string(analysis.Intent)),
			zap.Error(err))
		return []model.ContextItem{}
	}

	o.log.Debug("context retrieval completed",
		zap.String("intent", string(analysis.Intent)),
		zap.Int("results", len(items)))
	return items
}

// patientLookup scans every stored item and scores its patient name
// against the queried name. Items above the fuzzy-match threshold are
// kept, ordered by name similarity. No cap is applied here; the ranker
// and assembler bound the final output.
func (o *Orchestrator) patientLookup(ctx context.Context, patientName string) ([]model.ContextItem, error) {
	stored, err := o.store.Get(ctx, nil, 0)
	if err != nil {
		return nil, err
	}

	var items []model.ContextItem
	for _, it := range stored {
		sim := NameSimilarity(patientName, it.Metadata[model.MetaPatientName])
		if sim <= o.nameMatchThreshold {
			continue
		}
		item := itemFromMetadata(it.ID, it.Content, it.Metadata)
		item.BaseSimilarity = sim
		item.Excerpt = makeExcerpt(it.Content, patientName)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].BaseSimilarity > items[j].BaseSimilarity
	})
	return items, nil
}

// conditionLookup runs a semantic search seeded with the condition and
// keeps the first result per distinct patient whose record textually
// mentions the condition. This deduplicates by patient.
func (o *Orchestrator) conditionLookup(ctx context.Context, condition string, maxResults int) ([]model.ContextItem, error) {
	searchQuery := "diagnóstico " + condition + " enfermedad"
	embedding, err := o.embedder.Embed(ctx, searchQuery)
	if err != nil {
		return nil, err
	}

	hits, err := o.store.Query(ctx, embedding, maxResults*2, nil)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(condition)
	seen := make(map[string]struct{})
	var items []model.ContextItem
	for _, hit := range hits {
		similarity := 1 - hit.Distance
		if similarity < o.similarityThreshold {
			continue
		}
		patient := hit.Metadata[model.MetaPatientName]
		if patient == "" {
			continue
		}
		if _, dup := seen[patient]; dup {
			continue
		}

		haystack := strings.ToLower(hit.Metadata[model.MetaDiagnosis] + " " +
			hit.Metadata[model.MetaSymptoms] + " " + hit.Content)
		if !strings.Contains(haystack, needle) {
			continue
		}

		seen[patient] = struct{}{}
		item := itemFromMetadata(hit.ID, hit.Content, hit.Metadata)
		item.BaseSimilarity = similarity
		item.Excerpt = makeExcerpt(hit.Content, condition)
		items = append(items, item)
		if len(items) >= maxResults {
			break
		}
	}
	return items, nil
}

// generalSearch embeds the top search terms and queries the store with
// the merged metadata filters.
func (o *Orchestrator) generalSearch(ctx context.Context, analysis model.QueryAnalysis, maxResults int, filters map[string]model.Filter) ([]model.ContextItem, error) {
	terms := analysis.SearchTerms
	if len(terms) > generalSearchTerms {
		terms = terms[:generalSearchTerms]
	}
	searchQuery := strings.Join(terms, " ")
	if searchQuery == "" {
		searchQuery = analysis.NormalizedQuery
	}

	embedding, err := o.embedder.Embed(ctx, searchQuery)
	if err != nil {
		return nil, err
	}

	hits, err := o.store.Query(ctx, embedding, maxResults, filters)
	if err != nil {
		return nil, err
	}

	var items []model.ContextItem
	for _, hit := range hits {
		similarity := 1 - hit.Distance
		if similarity < o.similarityThreshold {
			continue
		}
		item := itemFromMetadata(hit.ID, hit.Content, hit.Metadata)
		item.BaseSimilarity = similarity
		item.Excerpt = makeExcerpt(hit.Content, analysis.OriginalQuery)
		items = append(items, item)
	}
	return items, nil
}

func itemFromMetadata(id, content string, meta map[string]string) model.ContextItem {
	conversationID := meta[model.MetaConversationID]
	if conversationID == "" {
		conversationID = id
	}
	return model.ContextItem{
		ConversationID: conversationID,
		PatientName:    meta[model.MetaPatientName],
		Diagnosis:      meta[model.MetaDiagnosis],
		Symptoms:       meta[model.MetaSymptoms],
		Date:           meta[model.MetaDate],
		Content:        content,
	}
}
