// Package rank fuses retrieval similarity with entity-overlap signals
// into a single ordered relevance list.
package rank

import (
	"sort"
	"strings"

	"github.com/solhealth/consulta/internal/model"
)

const (
	patientBonus   = 0.10
	conditionBonus = 0.15
	symptomBonus   = 0.05

	// Flat signal for dated items. There is no real recency decay;
	// the constant stands in until one exists.
	dateBonus = 0.02
)

// Ranker computes final relevance scores. It is a pure function of its
// inputs: the input slice is not mutated and the output preserves input
// order on score ties.
type Ranker struct{}

// NewRanker creates a Ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Rank annotates every item with a final score in [0,1] and returns the
// items in descending score order. Output length always equals input
// length.
func (r *Ranker) Rank(items []model.ContextItem, analysis model.QueryAnalysis) []model.RankedContext {
	ranked := make([]model.RankedContext, len(items))
	for i, item := range items {
		ranked[i] = model.RankedContext{
			ContextItem: item,
			FinalScore:  r.score(item, analysis),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})
	return ranked
}

func (r *Ranker) score(item model.ContextItem, analysis model.QueryAnalysis) float64 {
	content := strings.ToLower(item.Content)

	bonus := 0.0
	for _, patient := range analysis.Entities[model.EntityPatients] {
		if strings.Contains(content, strings.ToLower(patient)) {
			bonus += patientBonus
		}
	}
	for _, condition := range analysis.Entities[model.EntityConditions] {
		if strings.Contains(content, strings.ToLower(condition)) {
			bonus += conditionBonus
		}
	}
	for _, symptom := range analysis.Entities[model.EntitySymptoms] {
		if strings.Contains(content, strings.ToLower(symptom)) {
			bonus += symptomBonus
		}
	}

	score := item.BaseSimilarity + bonus
	if item.Date != "" {
		score += dateBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}
