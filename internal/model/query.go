package model

// FilterOp is the comparison applied by a metadata filter.
type FilterOp string

const (
	FilterEq       FilterOp = "eq"       // exact match
	FilterContains FilterOp = "contains" // case-insensitive substring
)

// Filter is a single metadata filter clause.
type Filter struct {
	Op    FilterOp `json:"op" yaml:"op"`
	Value string   `json:"value" yaml:"value"`
}

// MergeFilters combines automatic and user-supplied filters.
// User filters win on key collision.
func MergeFilters(auto, user map[string]Filter) map[string]Filter {
	if len(auto) == 0 && len(user) == 0 {
		return nil
	}
	merged := make(map[string]Filter, len(auto)+len(user))
	for k, f := range auto {
		merged[k] = f
	}
	for k, f := range user {
		merged[k] = f
	}
	return merged
}

// QueryAnalysis is the result of analyzing a raw query.
// It is created fresh per request and never mutated afterwards.
type QueryAnalysis struct {
	OriginalQuery   string            `json:"original_query" yaml:"original_query"`
	NormalizedQuery string            `json:"normalized_query" yaml:"normalized_query"`
	Intent          Intent            `json:"intent" yaml:"intent"`
	Entities        EntitySet         `json:"entities" yaml:"entities"`
	SearchTerms     []string          `json:"search_terms" yaml:"search_terms"`
	AutoFilters     map[string]Filter `json:"auto_filters,omitempty" yaml:"auto_filters,omitempty"`
}

// QueryValidation is the result of pre-flight query validation.
type QueryValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}
