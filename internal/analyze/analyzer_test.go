package analyze

import (
	"reflect"
	"testing"

	"github.com/solhealth/consulta/internal/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  Hola Mundo  ", "hola mundo"},
		{"strips accents", "diagnóstico de migraña", "diagnostico de migrana"},
		{"strips question marks", "¿Qué enfermedad tiene?", "que enfermedad tiene"},
		{"strips exclamation marks", "¡Urgente!", "urgente"},
		{"collapses whitespace", "uno   dos\t tres", "uno dos tres"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAnalyzer_ClassifyIntent(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	tests := []struct {
		query string
		want  model.Intent
	}{
		{"¿Qué enfermedad tiene Pepito Gómez?", model.IntentPatientInfo},
		{"Dame información del paciente Juan", model.IntentPatientInfo},
		{"Listame los pacientes con diabetes", model.IntentConditionList},
		{"¿Quiénes padecen hipertensión?", model.IntentConditionList},
		{"¿Cuántos pacientes hay con asma?", model.IntentConditionList},
		{"¿Quién reportó dolor de cabeza?", model.IntentSymptomSearch},
		{"¿Qué medicamento toma María?", model.IntentMedicationInfo},
		{"¿Cuándo fue la última consulta de María?", model.IntentTemporalQuery},
		{"El clima está bueno", model.IntentGeneralQuery},
		{"xyz", model.IntentGeneralQuery},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			if analysis.Intent != tt.want {
				t.Errorf("Analyze(%q).Intent = %s, want %s", tt.query, analysis.Intent, tt.want)
			}
		})
	}
}

func TestAnalyzer_ExtractPatientNames(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "accented name preserved verbatim",
			query: "¿Qué enfermedad tiene Pepito Gómez?",
			want:  []string{"Pepito Gómez"},
		},
		{
			name:  "leading question word is not a name",
			query: "Listame los pacientes con diabetes",
			want:  []string{},
		},
		{
			name:  "sentence-initial article is not a name",
			query: "El clima está bueno",
			want:  []string{},
		},
		{
			name:  "name after cue word",
			query: "información de María Fernández por favor",
			want:  []string{"María Fernández"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			got := analysis.Entities[model.EntityPatients]
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("patients = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzer_ExtractConditions(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	// Synonym in the query maps to the canonical condition name.
	analysis := analyzer.Analyze("pacientes con presión alta")
	if got := analysis.Entities.First(model.EntityConditions); got != "hipertensión" {
		t.Errorf("conditions = %v, want [hipertensión]", analysis.Entities[model.EntityConditions])
	}

	analysis = analyzer.Analyze("Listame los pacientes con diabetes")
	if got := analysis.Entities.First(model.EntityConditions); got != "diabetes" {
		t.Errorf("conditions = %v, want [diabetes]", analysis.Entities[model.EntityConditions])
	}
}

func TestAnalyzer_ExtractSymptoms(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	analysis := analyzer.Analyze("pacientes que reportaron fiebre y tos")
	symptoms := analysis.Entities[model.EntitySymptoms]

	want := map[string]bool{"fiebre": true, "tos": true}
	if len(symptoms) != 2 {
		t.Fatalf("symptoms = %v, want fiebre and tos", symptoms)
	}
	for _, s := range symptoms {
		if !want[s] {
			t.Errorf("unexpected symptom %q", s)
		}
	}
}

func TestAnalyzer_ExtractDates(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	tests := []struct {
		query string
		want  string
	}{
		{"consultas de ayer", "ayer"},
		{"pacientes de la semana pasada", "semana pasada"},
		{"consulta del 15/03/2024", "15/03/2024"},
		{"consulta del 2024-03-15", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			analysis := analyzer.Analyze(tt.query)
			if got := analysis.Entities.First(model.EntityDates); got != tt.want {
				t.Errorf("dates = %v, want [%s]", analysis.Entities[model.EntityDates], tt.want)
			}
		})
	}
}

func TestAnalyzer_SearchTerms(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	analysis := analyzer.Analyze("Listame los pacientes con diabetes")
	terms := analysis.SearchTerms

	if len(terms) == 0 || terms[0] != "Listame los pacientes con diabetes" {
		t.Fatalf("search terms should start with the original query, got %v", terms)
	}
	if len(terms) > 10 {
		t.Errorf("search terms exceed cap of 10: %v", terms)
	}

	seen := make(map[string]int)
	hasCondition := false
	for _, term := range terms {
		seen[term]++
		if term == "diabetes" {
			hasCondition = true
		}
		if n := len([]rune(term)); n <= 2 {
			t.Errorf("term %q shorter than 3 runes", term)
		}
	}
	if !hasCondition {
		t.Errorf("search terms missing extracted condition: %v", terms)
	}
	for term, n := range seen {
		if n > 1 {
			t.Errorf("duplicate search term %q", term)
		}
	}
}

func TestAnalyzer_AutoFilters(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	// Single patient on a patient_info query pins the patient filter.
	analysis := analyzer.Analyze("¿Qué enfermedad tiene Pepito Gómez?")
	f, ok := analysis.AutoFilters[model.MetaPatientName]
	if !ok {
		t.Fatalf("expected auto filter on %s, got %v", model.MetaPatientName, analysis.AutoFilters)
	}
	if f.Op != model.FilterEq || f.Value != "Pepito Gómez" {
		t.Errorf("patient filter = %+v, want eq Pepito Gómez", f)
	}

	// Condition list gets a substring filter on the diagnosis.
	analysis = analyzer.Analyze("Listame los pacientes con diabetes")
	f, ok = analysis.AutoFilters[model.MetaDiagnosis]
	if !ok {
		t.Fatalf("expected auto filter on %s, got %v", model.MetaDiagnosis, analysis.AutoFilters)
	}
	if f.Op != model.FilterContains || f.Value != "diabetes" {
		t.Errorf("diagnosis filter = %+v, want contains diabetes", f)
	}

	// General queries carry no automatic filters.
	analysis = analyzer.Analyze("El clima está bueno")
	if len(analysis.AutoFilters) != 0 {
		t.Errorf("expected no auto filters, got %v", analysis.AutoFilters)
	}
}

func TestAnalyzer_GeneralQueryFallback(t *testing.T) {
	analyzer := NewAnalyzer(nil, nil)

	analysis := analyzer.Analyze("El clima está bueno")

	if analysis.Intent != model.IntentGeneralQuery {
		t.Errorf("intent = %s, want %s", analysis.Intent, model.IntentGeneralQuery)
	}
	if analysis.Entities.Count() != 0 {
		t.Errorf("expected no entities, got %v", analysis.Entities)
	}
	if len(analysis.SearchTerms) != 1 || analysis.SearchTerms[0] != "El clima está bueno" {
		t.Errorf("search terms = %v, want just the original query", analysis.SearchTerms)
	}
}

func TestEntitySet_AddDeduplicates(t *testing.T) {
	entities := model.NewEntitySet()
	entities.Add(model.EntityPatients, "Ana")
	entities.Add(model.EntityPatients, "Ana")
	entities.Add(model.EntityPatients, "Luis")

	if got := entities[model.EntityPatients]; len(got) != 2 {
		t.Errorf("patients = %v, want [Ana Luis]", got)
	}
	if entities.Count() != 2 {
		t.Errorf("Count() = %d, want 2", entities.Count())
	}
}
