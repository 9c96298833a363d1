package ingest

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/solhealth/consulta/internal/model"
	"github.com/solhealth/consulta/internal/store"
)

type fakeEmbedder struct {
	calls   int64
	failFor string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.failFor != "" && strings.Contains(text, f.failFor) {
		return nil, errors.New("embedding rejected")
	}
	return []float32{1, 0, 0}, nil
}

func testRecords(n int) []ConversationRecord {
	records := make([]ConversationRecord, n)
	for i := range records {
		records[i] = ConversationRecord{
			ConversationID: string(rune('a' + i)),
			PatientName:    "Paciente " + string(rune('A'+i)),
			Content:        "consulta " + string(rune('a'+i)),
		}
	}
	return records
}

func fastConfig() model.IngestConfig {
	return model.IngestConfig{Workers: 3, RequestsPerSecond: 10000}
}

func TestIngester_IngestRecords(t *testing.T) {
	embedder := &fakeEmbedder{}
	st := store.NewMemoryStore()
	ingester := NewIngester(embedder, st, fastConfig(), nil)

	result, err := ingester.IngestRecords(context.Background(), testRecords(6))
	if err != nil {
		t.Fatalf("IngestRecords: %v", err)
	}

	if result.Loaded != 6 || result.Ingested != 6 || result.Failed != 0 {
		t.Errorf("result = %+v, want 6 loaded and ingested", result)
	}
	if st.Count() != 6 {
		t.Errorf("store count = %d, want 6", st.Count())
	}
	if atomic.LoadInt64(&embedder.calls) != 6 {
		t.Errorf("embed calls = %d, want 6", embedder.calls)
	}
}

func TestIngester_SkipsFailedEmbeddings(t *testing.T) {
	embedder := &fakeEmbedder{failFor: "consulta c"}
	st := store.NewMemoryStore()
	ingester := NewIngester(embedder, st, fastConfig(), nil)

	result, err := ingester.IngestRecords(context.Background(), testRecords(4))
	if err != nil {
		t.Fatalf("IngestRecords: %v", err)
	}

	if result.Ingested != 3 || result.Failed != 1 {
		t.Errorf("result = %+v, want 3 ingested 1 failed", result)
	}
	if st.Count() != 3 {
		t.Errorf("store count = %d, want 3", st.Count())
	}
}

func TestIngester_EmptyInput(t *testing.T) {
	ingester := NewIngester(&fakeEmbedder{}, store.NewMemoryStore(), fastConfig(), nil)

	result, err := ingester.IngestRecords(context.Background(), nil)
	if err != nil {
		t.Fatalf("IngestRecords: %v", err)
	}
	if result.Loaded != 0 || result.Ingested != 0 {
		t.Errorf("result = %+v, want zeroes", result)
	}
}

func TestIngester_CancelledContext(t *testing.T) {
	ingester := NewIngester(&fakeEmbedder{}, store.NewMemoryStore(), fastConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ingester.IngestRecords(ctx, testRecords(3))
	if err == nil {
		t.Error("expected context error")
	}
}
