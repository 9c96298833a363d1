package retrieve

import "testing"

func TestNameSimilarity_ExactMatch(t *testing.T) {
	tests := []struct {
		query  string
		stored string
	}{
		{"Pepito Gómez", "Pepito Gómez"},
		{"Pepito Gómez", "pepito gomez"},
		{"  María  Luisa ", "maría luisa"},
	}

	for _, tt := range tests {
		if got := NameSimilarity(tt.query, tt.stored); got != 1.0 {
			t.Errorf("NameSimilarity(%q, %q) = %v, want 1.0", tt.query, tt.stored, got)
		}
	}
}

func TestNameSimilarity_EmptyInput(t *testing.T) {
	if got := NameSimilarity("", "Pepito"); got != 0.0 {
		t.Errorf("empty query: got %v, want 0", got)
	}
	if got := NameSimilarity("Pepito", ""); got != 0.0 {
		t.Errorf("empty stored: got %v, want 0", got)
	}
}

func TestNameSimilarity_PartialNames(t *testing.T) {
	// First name alone fully covers the query words.
	if got := NameSimilarity("Pepito", "Pepito Gómez"); got != 1.0 {
		t.Errorf("NameSimilarity(Pepito, Pepito Gómez) = %v, want 1.0", got)
	}

	// One of two query words present: 0.5 coverage + 0.1 common +
	// 0.1 first-word bonus.
	got := NameSimilarity("Pepito Gómez", "Pepito García")
	if got < 0.69 || got > 0.71 {
		t.Errorf("NameSimilarity(Pepito Gómez, Pepito García) = %v, want 0.7", got)
	}
}

func TestNameSimilarity_Asymmetry(t *testing.T) {
	// Extra stored words are free (one direction) while extra query
	// words dilute coverage (the other). The function is deliberately
	// not symmetric.
	forward := NameSimilarity("Ana", "Ana Maria Lopez")
	backward := NameSimilarity("Ana Maria Lopez", "Ana")

	if forward <= backward {
		t.Errorf("expected forward > backward, got forward=%v backward=%v", forward, backward)
	}
}

func TestNameSimilarity_Containment(t *testing.T) {
	// No exact word overlap, but one name contains the other as a
	// substring of a longer word.
	got := NameSimilarity("Jose", "Josefina Lopez")
	if got < 0.49 || got > 0.51 {
		t.Errorf("NameSimilarity(Jose, Josefina Lopez) = %v, want 0.5", got)
	}

	// Containment is capped at 0.7 no matter how many words match.
	got = NameSimilarity("Mari Ferna Gonza", "Marina Fernanda Gonzalez")
	if got > 0.7 {
		t.Errorf("containment score %v exceeds 0.7 cap", got)
	}
}

func TestNameSimilarity_Unrelated(t *testing.T) {
	tests := []struct {
		query  string
		stored string
	}{
		{"Juan Pérez", "Rosa Díaz"},
		{"Pedro", "Luz"},
	}

	for _, tt := range tests {
		if got := NameSimilarity(tt.query, tt.stored); got != 0.0 {
			t.Errorf("NameSimilarity(%q, %q) = %v, want 0", tt.query, tt.stored, got)
		}
	}
}

func TestNameSimilarity_ExtraWordPenalty(t *testing.T) {
	// Extra stored words beyond the first cost 0.05 each.
	short := NameSimilarity("Ana Sofia", "Ana Lopez")
	long := NameSimilarity("Ana Sofia", "Ana Lopez Garcia Perez")

	if long >= short {
		t.Errorf("expected penalty for extra stored words, got short=%v long=%v", short, long)
	}
}
