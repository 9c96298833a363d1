package ingest

import (
	"strings"

	"github.com/solhealth/consulta/internal/model"
)

// maxEmbedTextLen caps the combined text sent to the embedding model.
const maxEmbedTextLen = 8000

// ConversationRecord is one recorded patient conversation as loaded
// from a corpus file.
type ConversationRecord struct {
	ConversationID string   `yaml:"conversation_id"`
	PatientName    string   `yaml:"patient_name"`
	Diagnosis      string   `yaml:"diagnosis"`
	Symptoms       []string `yaml:"symptoms"`
	Date           string   `yaml:"date"`
	Content        string   `yaml:"content"`
}

// EmbeddingText combines the transcript with the structured fields so
// the stored vector is rich in clinical signal.
func (r ConversationRecord) EmbeddingText() string {
	parts := []string{r.Content}
	if r.PatientName != "" {
		parts = append(parts, "Paciente: "+r.PatientName)
	}
	if r.Diagnosis != "" {
		parts = append(parts, "Diagnóstico: "+r.Diagnosis)
	}
	if len(r.Symptoms) > 0 {
		parts = append(parts, "Síntomas: "+strings.Join(r.Symptoms, ", "))
	}

	combined := strings.Join(parts, " | ")
	if len(combined) > maxEmbedTextLen {
		combined = combined[:maxEmbedTextLen] + "..."
	}
	return combined
}

// Metadata builds the store metadata for the record.
func (r ConversationRecord) Metadata() map[string]string {
	meta := map[string]string{
		model.MetaConversationID: r.ConversationID,
	}
	if r.PatientName != "" {
		meta[model.MetaPatientName] = r.PatientName
	}
	if r.Diagnosis != "" {
		meta[model.MetaDiagnosis] = r.Diagnosis
	}
	if len(r.Symptoms) > 0 {
		meta[model.MetaSymptoms] = strings.Join(r.Symptoms, ", ")
	}
	if r.Date != "" {
		meta[model.MetaDate] = r.Date
	}
	return meta
}
