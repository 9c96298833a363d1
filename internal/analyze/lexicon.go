package analyze

// Condition maps a canonical condition name to the synonyms that may
// appear in a query. A match on any synonym records the canonical name.
type Condition struct {
	Name     string
	Synonyms []string
}

// Lexicon holds the read-only dictionaries used by the Analyzer.
// It is built once at startup and shared by all requests.
type Lexicon struct {
	Conditions      []Condition
	SymptomKeywords []string

	// nameStopwords are capitalized words that start Spanish questions
	// and must not be mistaken for patient names. Normalized forms.
	nameStopwords map[string]struct{}
}

// DefaultLexicon returns the built-in medical term dictionaries.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		Conditions: []Condition{
			{Name: "diabetes", Synonyms: []string{"diabetes", "diabético", "glucosa", "azúcar", "insulina"}},
			{Name: "hipertensión", Synonyms: []string{"hipertensión", "presión alta", "presión arterial", "hipertenso"}},
			{Name: "asma", Synonyms: []string{"asma", "asmático", "bronquial", "respiratorio"}},
			{Name: "migraña", Synonyms: []string{"migraña", "jaqueca", "dolor de cabeza", "cefalea"}},
			{Name: "covid", Synonyms: []string{"covid", "coronavirus", "sars-cov-2", "pandemia"}},
			{Name: "gripe", Synonyms: []string{"gripe", "influenza", "resfriado", "catarro"}},
		},
		SymptomKeywords: []string{
			"dolor", "fiebre", "tos", "mareos", "nausea", "vomito",
			"diarrea", "estrenimiento", "fatiga", "cansancio", "debilidad",
		},
		nameStopwords: make(map[string]struct{}),
	}

	for _, w := range []string{
		"que", "cual", "cuales", "quien", "quienes", "cuando", "cuanto",
		"cuantos", "donde", "como", "el", "la", "los", "las", "un", "una",
		"informacion", "paciente", "pacientes", "lista", "listame", "dime",
		"dame", "muestrame", "consulta", "consultas", "sintomas", "doctor",
	} {
		lex.nameStopwords[w] = struct{}{}
	}

	return lex
}

// IsNameStopword reports whether word (any casing or accents) is a known
// question word rather than a plausible name part.
func (l *Lexicon) IsNameStopword(word string) bool {
	_, ok := l.nameStopwords[Normalize(word)]
	return ok
}
