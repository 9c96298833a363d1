package ingest

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/solhealth/consulta/internal/model"
	"github.com/solhealth/consulta/internal/retrieve"
	"github.com/solhealth/consulta/internal/store"
)

// Result summarizes one ingestion run.
type Result struct {
	Loaded   int
	Ingested int
	Failed   int
}

// Ingester embeds conversation records concurrently and adds them to
// the store. Embedding calls are rate limited to respect provider
// quotas; individual failures are logged and skipped.
type Ingester struct {
	embedder retrieve.Embedder
	store    *store.MemoryStore
	workers  int
	limiter  *rate.Limiter
	log      *zap.Logger
}

// NewIngester creates an Ingester.
func NewIngester(embedder retrieve.Embedder, st *store.MemoryStore, cfg model.IngestConfig, log *zap.Logger) *Ingester {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{
		embedder: embedder,
		store:    st,
		workers:  workers,
		limiter:  rate.NewLimiter(rate.Limit(rps), workers),
		log:      log,
	}
}

// IngestFiles loads every corpus file and stores the embedded records.
func (in *Ingester) IngestFiles(ctx context.Context, paths []string) (Result, error) {
	var records []ConversationRecord
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return Result{}, err
		}
		records = append(records, loaded...)
	}
	return in.IngestRecords(ctx, records)
}

// IngestRecords embeds and stores the given records concurrently.
func (in *Ingester) IngestRecords(ctx context.Context, records []ConversationRecord) (Result, error) {
	result := Result{Loaded: len(records)}
	if len(records) == 0 {
		return result, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, in.workers)
	)

	for _, rec := range records {
		wg.Add(1)
		go func(rec ConversationRecord) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			ok := in.ingestOne(ctx, rec)

			mu.Lock()
			if ok {
				result.Ingested++
			} else {
				result.Failed++
			}
			mu.Unlock()
		}(rec)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (in *Ingester) ingestOne(ctx context.Context, rec ConversationRecord) bool {
	if err := in.limiter.Wait(ctx); err != nil {
		return false
	}

	vector, err := in.embedder.Embed(ctx, rec.EmbeddingText())
	if err != nil {
		in.log.Warn("embedding failed, skipping record",
			zap.String("conversation_id", rec.ConversationID),
			zap.Error(err))
		return false
	}

	err = in.store.Add(store.Item{
		ID:       rec.ConversationID,
		Content:  rec.Content,
		Metadata: rec.Metadata(),
		Vector:   vector,
	})
	if err != nil {
		in.log.Warn("store add failed, skipping record",
			zap.String("conversation_id", rec.ConversationID),
			zap.Error(err))
		return false
	}
	return true
}
