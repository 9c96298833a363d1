package assemble

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/solhealth/consulta/internal/model"
)

const (
	maxContextItems   = 5
	maxItemContentLen = 500
	maxContextLen     = 4000

	truncationMarker = "\n\n[Contexto truncado...]"
	emptyContext     = "No se encontró información relevante en las conversaciones médicas."
)

// BuildContext renders the top ranked items into the bounded prompt
// context. The combined context never exceeds maxContextLen plus the
// truncation marker.
func BuildContext(ranked []model.RankedContext) string {
	if len(ranked) == 0 {
		return emptyContext
	}

	var parts []string
	for i, item := range ranked {
		if i >= maxContextItems {
			break
		}

		patient := item.PatientName
		if patient == "" {
			patient = "Paciente no identificado"
		}
		date := item.Date
		if date == "" {
			date = "Fecha no disponible"
		}

		content := item.Content
		if len(content) > maxItemContentLen {
			content = cutAtRune(content, maxItemContentLen) + "..."
		}

		parts = append(parts, fmt.Sprintf(
			"CONVERSACIÓN %d:\nPaciente: %s\nFecha: %s\nRelevancia: %.2f\nContenido: %s",
			i+1, patient, date, item.FinalScore, content))
	}

	context := strings.Join(parts, "\n\n")
	if len(context) > maxContextLen {
		context = cutAtRune(context, maxContextLen) + truncationMarker
	}
	return context
}

// cutAtRune truncates s to at most n bytes without splitting a rune.
func cutAtRune(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
