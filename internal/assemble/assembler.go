package assemble

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/solhealth/consulta/internal/llm"
	"github.com/solhealth/consulta/internal/model"
)

const (
	maxSources     = 5
	maxFollowUps   = 3
	maxAnswerLen   = 2000
	maxExcerptLen  = 200
	maxConfidence  = 0.95
	noContextScore = 0.1

	disclaimer = "\n\n⚠️ Esta información proviene de conversaciones registradas. " +
		"Para decisiones médicas, consulte siempre con un profesional de la salud."
)

// Answers touching these topics get the clinical disclaimer appended.
var disclaimerKeywords = []string{"diagnóstico", "medicamento", "tratamiento", "enfermedad"}

// Generator is the text-completion capability the assembler consumes.
type Generator interface {
	Generate(ctx context.Context, messages []llm.ChatMessage) (string, error)
}

// Assembler turns ranked context into the final ChatResponse: bounded
// prompt context, intent-specific template, generation with fallback,
// answer validation, confidence, sources and follow-up suggestions.
type Assembler struct {
	gen Generator
	log *zap.Logger
}

// NewAssembler creates an Assembler using the given generator.
func NewAssembler(gen Generator, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{gen: gen, log: log}
}

// Assemble builds the ChatResponse for the ranked retrieval results.
// Generation failure degrades to a fixed fallback answer; it never
// propagates. ProcessingTimeMS is left for the caller to fill in.
func (a *Assembler) Assemble(ctx context.Context, ranked []model.RankedContext, analysis model.QueryAnalysis) model.ChatResponse {
	promptContext := BuildContext(ranked)
	answer := a.generateAnswer(ctx, analysis, promptContext)

	return model.ChatResponse{
		Answer:              validateAnswer(answer),
		Sources:             buildSources(ranked),
		Confidence:          calculateConfidence(ranked, analysis),
		Intent:              analysis.Intent,
		FollowUpSuggestions: followUpSuggestions(analysis),
		QueryClassification: model.QueryClassification{
			Entities:        analysis.Entities,
			SearchTerms:     analysis.SearchTerms,
			NormalizedQuery: analysis.NormalizedQuery,
		},
	}
}

func (a *Assembler) generateAnswer(ctx context.Context, analysis model.QueryAnalysis, promptContext string) string {
	answer, err := a.gen.Generate(ctx, []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: systemPrompt},
		{Role: llm.RoleUser, Content: buildPrompt(analysis, promptContext)},
	})
	if err != nil {
		a.log.Warn("answer generation failed, using fallback",
			zap.String("intent", string(analysis.Intent)),
			zap.Error(err))
		return fallbackAnswer
	}
	return answer
}

// validateAnswer trims the answer, appends the clinical disclaimer when
// medical keywords are present and hard-caps the length.
func validateAnswer(answer string) string {
	cleaned := strings.TrimSpace(answer)

	lower := strings.ToLower(cleaned)
	for _, keyword := range disclaimerKeywords {
		if strings.Contains(lower, keyword) {
			cleaned += disclaimer
			break
		}
	}

	if len(cleaned) > maxAnswerLen {
		cleaned = cutAtRune(cleaned, maxAnswerLen) + "..."
	}
	return cleaned
}

// calculateConfidence fuses the average top-3 score with an entity bonus
// and a source-count bonus, capped at 0.95 and rounded to 2 decimals.
// An empty retrieval yields a fixed 0.1.
func calculateConfidence(ranked []model.RankedContext, analysis model.QueryAnalysis) float64 {
	if len(ranked) == 0 {
		return noContextScore
	}

	top := len(ranked)
	if top > 3 {
		top = 3
	}
	sum := 0.0
	for _, item := range ranked[:top] {
		sum += item.FinalScore
	}
	confidence := sum / float64(top)

	if len(analysis.Entities[model.EntityPatients]) > 0 || len(analysis.Entities[model.EntityConditions]) > 0 {
		confidence += 0.1
	}

	sourceBonus := 0.05 * float64(len(ranked))
	if sourceBonus > 0.2 {
		sourceBonus = 0.2
	}
	confidence += sourceBonus

	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	return math.Round(confidence*100) / 100
}

func buildSources(ranked []model.RankedContext) []model.ChatSource {
	sources := make([]model.ChatSource, 0, maxSources)
	for i, item := range ranked {
		if i >= maxSources {
			break
		}

		excerpt := item.Excerpt
		if excerpt == "" {
			excerpt = item.Content
		}
		if len(excerpt) > maxExcerptLen {
			excerpt = cutAtRune(excerpt, maxExcerptLen)
		}

		sources = append(sources, model.ChatSource{
			ConversationID: item.ConversationID,
			PatientName:    item.PatientName,
			RelevanceScore: item.FinalScore,
			Excerpt:        excerpt,
			Date:           item.Date,
			Metadata: map[string]string{
				model.MetaDiagnosis: item.Diagnosis,
				model.MetaSymptoms:  item.Symptoms,
			},
		})
	}
	return sources
}

func followUpSuggestions(analysis model.QueryAnalysis) []string {
	patient := analysis.Entities.First(model.EntityPatients)
	condition := analysis.Entities.First(model.EntityConditions)

	switch {
	case analysis.Intent == model.IntentPatientInfo && patient != "":
		return []string{
			fmt.Sprintf("¿Qué tratamiento se recomendó para %s?", patient),
			fmt.Sprintf("¿Cuándo fue la última consulta de %s?", patient),
			fmt.Sprintf("¿Qué síntomas reportó %s?", patient),
		}
	case analysis.Intent == model.IntentConditionList && condition != "":
		return []string{
			fmt.Sprintf("¿Qué tratamientos hay para %s?", condition),
			fmt.Sprintf("¿Cuántos pacientes nuevos con %s hay este mes?", condition),
			fmt.Sprintf("¿Qué síntomas son más comunes en %s?", condition),
		}
	default:
		return []string{
			"¿Puedes mostrarme información de un paciente específico?",
			"¿Qué pacientes tienen una condición particular?",
			"¿Cuáles son los síntomas más reportados?",
		}
	}
}
