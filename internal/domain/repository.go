package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// QuoteClient defines the interface for the external quote analysis API.
// FetchQuotes returns matcher-ready quotes (features already canonical,
// price-less records dropped); FetchAnalysis returns the full scored payload.
type QuoteClient interface {
	FetchQuotes(ctx context.Context, details InsuranceDetails, preferences string) ([]Quote, error)
	FetchAnalysis(ctx context.Context, details InsuranceDetails, preferences string) (*AnalysisResponse, error)
}

// PreferenceExtractor turns free-text preferences into a structured
// Requirement. Implementations must be total: malformed input degrades to an
// absent budget / empty feature set, never an error. The stub alias-based
// extractor satisfies this; a language-model backend can be dropped in behind
// the same contract.
type PreferenceExtractor interface {
	Extract(text string) Requirement
}
