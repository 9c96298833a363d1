package model

// StoredItem is one raw record held by the semantic store, as returned
// by a metadata scan (Get).
type StoredItem struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// StoreHit is one nearest-neighbor result from the semantic store.
// Distance converts to similarity as 1 - distance.
type StoreHit struct {
	ID       string
	Content  string
	Metadata map[string]string
	Distance float64
}

// Metadata keys written at ingestion time and read back by retrieval.
const (
	MetaConversationID = "conversation_id"
	MetaPatientName    = "patient_name"
	MetaDiagnosis      = "diagnosis"
	MetaSymptoms       = "symptoms"
	MetaDate           = "conversation_date"
)

// ContextItem is one retrieved conversation fragment with its relevance
// signals attached. Produced by the retrieval orchestrator.
type ContextItem struct {
	ConversationID string  `json:"conversation_id"`
	PatientName    string  `json:"patient_name,omitempty"`
	Diagnosis      string  `json:"diagnosis,omitempty"`
	Symptoms       string  `json:"symptoms,omitempty"`
	Date           string  `json:"date,omitempty"`
	Content        string  `json:"content"`
	BaseSimilarity float64 `json:"base_similarity"`
	Excerpt        string  `json:"excerpt,omitempty"`
}

// RankedContext is a ContextItem annotated with its fused final score.
type RankedContext struct {
	ContextItem
	FinalScore float64 `json:"final_score"`
}

// ChatSource is one cited source in a ChatResponse.
type ChatSource struct {
	ConversationID string            `json:"conversation_id"`
	PatientName    string            `json:"patient_name,omitempty"`
	RelevanceScore float64           `json:"relevance_score"`
	Excerpt        string            `json:"excerpt"`
	Date           string            `json:"date,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ChatResponse is the final answer produced for one query.
// Constructed once per query; immutable.
type ChatResponse struct {
	Answer              string              `json:"answer"`
	Sources             []ChatSource        `json:"sources"`
	Confidence          float64             `json:"confidence"`
	Intent              Intent              `json:"intent"`
	FollowUpSuggestions []string            `json:"follow_up_suggestions"`
	QueryClassification QueryClassification `json:"query_classification"`
	ProcessingTimeMS    int64               `json:"processing_time_ms"`
}

// QueryClassification echoes back how the query was understood.
type QueryClassification struct {
	Entities        EntitySet `json:"entities"`
	SearchTerms     []string  `json:"search_terms"`
	NormalizedQuery string    `json:"normalized_query"`
}
