package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFile_YAMLList(t *testing.T) {
	path := writeFile(t, "consultas.yaml", `
- conversation_id: conv-1
  patient_name: Pepito Gómez
  diagnosis: diabetes tipo 2
  symptoms: [sed excesiva, fatiga]
  date: "2024-03-15"
  content: Control de diabetes.
- patient_name: Ana Torres
  diagnosis: asma
  content: Crisis de asma nocturna.
`)

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	if records[0].ConversationID != "conv-1" {
		t.Errorf("explicit id = %s, want conv-1", records[0].ConversationID)
	}
	if records[0].PatientName != "Pepito Gómez" {
		t.Errorf("patient = %s", records[0].PatientName)
	}
	if len(records[0].Symptoms) != 2 {
		t.Errorf("symptoms = %v", records[0].Symptoms)
	}

	// Missing ids derive from the filename and position.
	if records[1].ConversationID != "consultas-2" {
		t.Errorf("derived id = %s, want consultas-2", records[1].ConversationID)
	}
}

func TestLoadFile_YAMLSingle(t *testing.T) {
	path := writeFile(t, "visita.yml", `
patient_name: Luis Mora
diagnosis: migraña
content: Consulta por jaqueca recurrente.
`)

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].ConversationID != "visita-1" {
		t.Errorf("derived id = %s, want visita-1", records[0].ConversationID)
	}
}

func TestLoadFile_HTML(t *testing.T) {
	path := writeFile(t, "export.html", `<html>
<head><title>Expediente</title><script>var x = "ignorado";</script></head>
<body>
  <style>.a { color: red }</style>
  <h1>Consulta médica</h1>
  <p>El paciente reporta fiebre y tos.</p>
</body>
</html>`)

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	text := records[0].Content
	if !strings.Contains(text, "fiebre y tos") {
		t.Errorf("visible text missing body content: %q", text)
	}
	if strings.Contains(text, "ignorado") || strings.Contains(text, "color: red") {
		t.Errorf("script/style content leaked into %q", text)
	}
}

func TestLoadFile_PlainText(t *testing.T) {
	path := writeFile(t, "nota.txt", "El paciente acude a control rutinario.")

	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 1 || records[0].Content != "El paciente acude a control rutinario." {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "datos.csv", "a,b,c")

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for unsupported file type")
	}
}

func TestConversationRecord_EmbeddingText(t *testing.T) {
	rec := ConversationRecord{
		PatientName: "Ana",
		Diagnosis:   "asma",
		Symptoms:    []string{"tos", "disnea"},
		Content:     "Consulta de control.",
	}

	text := rec.EmbeddingText()
	for _, want := range []string{"Consulta de control.", "Paciente: Ana", "Diagnóstico: asma", "Síntomas: tos, disnea"} {
		if !strings.Contains(text, want) {
			t.Errorf("embedding text missing %q: %q", want, text)
		}
	}
}

func TestConversationRecord_Metadata(t *testing.T) {
	rec := ConversationRecord{
		ConversationID: "c1",
		PatientName:    "Ana",
		Date:           "2024-01-01",
	}

	meta := rec.Metadata()
	if meta["conversation_id"] != "c1" || meta["patient_name"] != "Ana" || meta["conversation_date"] != "2024-01-01" {
		t.Errorf("metadata = %v", meta)
	}
	if _, ok := meta["diagnosis"]; ok {
		t.Errorf("empty diagnosis should be omitted, got %v", meta)
	}
}
