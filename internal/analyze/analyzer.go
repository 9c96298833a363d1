package analyze

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/solhealth/consulta/internal/model"
)

const (
	maxSearchTerms    = 10
	minTermLength     = 3 // runes
	synonymsPerMatch  = 3
	minPatientNameLen = 3
)

// intentGroup pairs an intent with the patterns that signal it.
type intentGroup struct {
	intent   model.Intent
	patterns []*regexp.Regexp
}

// Analyzer classifies intent and extracts entities, search terms and
// automatic filters from raw query text. It holds no mutable state and
// is safe for concurrent use.
type Analyzer struct {
	lex *Lexicon
	log *zap.Logger

	// Intent groups evaluated top-down against the normalized query.
	// First group with a matching pattern wins; ties are resolved
	// purely by group order, there is no scoring.
	intents []intentGroup

	titleCaseRe *regexp.Regexp
	cueWordRe   *regexp.Regexp
	dateRes     []*regexp.Regexp
}

// NewAnalyzer creates an Analyzer backed by the given lexicon.
func NewAnalyzer(lex *Lexicon, log *zap.Logger) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if log == nil {
		log = zap.NewNop()
	}

	compile := func(exprs ...string) []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(exprs))
		for i, e := range exprs {
			res[i] = regexp.MustCompile(e)
		}
		return res
	}

	return &Analyzer{
		lex: lex,
		log: log,
		intents: []intentGroup{
			{model.IntentPatientInfo, compile(
				`que.*(enfermedad|tiene|diagnostico)`,
				`informacion.*(paciente|de)`,
				`que.*(le pasa|padece)`,
				`.+que.*(tiene|enfermedad|diagnostico)`,
			)},
			{model.IntentConditionList, compile(
				`lista\w*.*pacientes.*(con|que tienen)`,
				`quienes.*(tienen|padecen)`,
				`pacientes con \w+`,
				`cuantos.*pacientes`,
			)},
			{model.IntentSymptomSearch, compile(
				`quien.*(tiene|reporto).*(dolor|sintoma|molestia|fiebre|tos)`,
				`pacientes.*(dolor|sintoma|molestia|fiebre|tos)`,
				`(fiebre|tos|dolor de cabeza|mareos).*paciente`,
			)},
			{model.IntentMedicationInfo, compile(
				`que.*(medicamento|medicina|tratamiento).*toma`,
				`medicamentos.*para`,
				`tratamiento.*(de|para)`,
				`que.*(medicina|medicamento).*(receto|recetaron)`,
			)},
			{model.IntentTemporalQuery, compile(
				`(ayer|hoy|semana pasada|mes pasado).*(paciente|consulta)`,
				`ultima.*(consulta|visita)`,
				`cuando.*fue`,
			)},
		},
		// Title-case runs on the original query: accents preserved, so
		// "Pepito Gómez" is captured whole.
		titleCaseRe: regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*`),
		cueWordRe:   regexp.MustCompile(`(?:^|\s)(?:paciente|de|tiene)\s+(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*)`),
		dateRes: compile(
			`\b(ayer|hoy|manana)\b`,
			`\b(?:semana|mes|ano) (?:pasad[ao]|anterior|ultim[ao])\b`,
			`\b\d{1,2}/\d{1,2}/\d{4}\b`,
			`\b\d{4}-\d{2}-\d{2}\b`,
		),
	}
}

// Analyze turns a raw query into a QueryAnalysis. It never fails outward:
// any internal fault degrades to a minimal analysis with general intent.
func (a *Analyzer) Analyze(query string) (analysis model.QueryAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("query analysis degraded", zap.String("query", query), zap.Any("cause", r))
			analysis = degraded(query)
		}
	}()

	normalized := Normalize(query)
	intent := a.classifyIntent(normalized)
	entities := a.extractEntities(query, normalized)
	terms := a.searchTerms(query, normalized, entities)
	filters := autoFilters(intent, entities)

	return model.QueryAnalysis{
		OriginalQuery:   query,
		NormalizedQuery: normalized,
		Intent:          intent,
		Entities:        entities,
		SearchTerms:     terms,
		AutoFilters:     filters,
	}
}

func degraded(query string) model.QueryAnalysis {
	return model.QueryAnalysis{
		OriginalQuery:   query,
		NormalizedQuery: strings.ToLower(strings.TrimSpace(query)),
		Intent:          model.IntentGeneralQuery,
		Entities:        model.NewEntitySet(),
		SearchTerms:     []string{query},
	}
}

func (a *Analyzer) classifyIntent(normalized string) model.Intent {
	for _, group := range a.intents {
		for _, re := range group.patterns {
			if re.MatchString(normalized) {
				return group.intent
			}
		}
	}
	return model.IntentGeneralQuery
}

// extractEntities is presence-based: it only records strings that occur
// in the query text, never inferred ones. It runs independent of intent.
func (a *Analyzer) extractEntities(original, normalized string) model.EntitySet {
	entities := model.NewEntitySet()

	for _, candidate := range a.titleCaseRe.FindAllString(original, -1) {
		if name := a.trimNameCandidate(candidate); name != "" {
			entities.Add(model.EntityPatients, name)
		}
	}
	for _, m := range a.cueWordRe.FindAllStringSubmatch(original, -1) {
		if name := a.trimNameCandidate(m[1]); name != "" {
			entities.Add(model.EntityPatients, name)
		}
	}

	for _, cond := range a.lex.Conditions {
		for _, syn := range cond.Synonyms {
			if strings.Contains(normalized, Normalize(syn)) {
				entities.Add(model.EntityConditions, cond.Name)
				break
			}
		}
	}

	for _, symptom := range a.lex.SymptomKeywords {
		if strings.Contains(normalized, symptom) {
			entities.Add(model.EntitySymptoms, symptom)
		}
	}

	for _, re := range a.dateRes {
		for _, m := range re.FindAllString(normalized, -1) {
			entities.Add(model.EntityDates, m)
		}
	}

	return entities
}

// trimNameCandidate drops leading question words from a capitalized
// sequence and rejects candidates that are stopwords or too short.
func (a *Analyzer) trimNameCandidate(candidate string) string {
	words := strings.Fields(candidate)
	for len(words) > 0 && a.lex.IsNameStopword(words[0]) {
		words = words[1:]
	}
	name := strings.Join(words, " ")
	if utf8.RuneCountInString(name) < minPatientNameLen {
		return ""
	}
	return name
}

// searchTerms builds the ordered, de-duplicated term list: original
// query first, then extracted entities, then up to three synonyms per
// matched condition. Terms shorter than three runes are dropped and the
// list is capped at ten.
func (a *Analyzer) searchTerms(original, normalized string, entities model.EntitySet) []string {
	terms := make([]string, 0, maxSearchTerms)
	seen := make(map[string]struct{})

	add := func(term string) {
		if len(terms) >= maxSearchTerms || utf8.RuneCountInString(term) <= minTermLength-1 {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	add(original)
	for _, category := range []string{
		model.EntityPatients, model.EntityConditions, model.EntitySymptoms,
		model.EntityMedications, model.EntityDates,
	} {
		for _, v := range entities[category] {
			add(v)
		}
	}

	for _, cond := range a.lex.Conditions {
		matched := false
		for _, syn := range cond.Synonyms {
			if strings.Contains(normalized, Normalize(syn)) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		for i, syn := range cond.Synonyms {
			if i >= synonymsPerMatch {
				break
			}
			add(syn)
		}
	}

	return terms
}

func autoFilters(intent model.Intent, entities model.EntitySet) map[string]model.Filter {
	switch {
	case intent == model.IntentPatientInfo && len(entities[model.EntityPatients]) == 1:
		return map[string]model.Filter{
			model.MetaPatientName: {Op: model.FilterEq, Value: entities.First(model.EntityPatients)},
		}
	case intent == model.IntentConditionList && len(entities[model.EntityConditions]) > 0:
		return map[string]model.Filter{
			model.MetaDiagnosis: {Op: model.FilterContains, Value: entities.First(model.EntityConditions)},
		}
	}
	return nil
}
