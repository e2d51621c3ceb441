package domain

import "time"

// Requirement is the structured budget + feature constraints extracted from a
// user's free-text preferences. Built once per schedule run and read-only after.
type Requirement struct {
	Budget           *float64 `json:"budget,omitempty"`
	RequiredFeatures []string `json:"requiredFeatures"`
	RawText          string   `json:"rawText,omitempty"`
}

// Quote is a single insurer quote with canonical feature identifiers.
// Feature names are normalized at the fetch boundary; the matcher assumes
// everything it sees is already canonical.
type Quote struct {
	Insurer  string   `json:"insurer"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// HasFeature reports whether the quote carries the given canonical feature.
func (q Quote) HasFeature(feature string) bool {
	for _, f := range q.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// InsuranceDetails carries the caller's current policy metadata, forwarded
// verbatim to the quote API. Missing fields are filled with placeholders by the
// API client, not by the core.
type InsuranceDetails struct {
	CurrentProvider string `json:"current_insurance_provider,omitempty"`
	PolicyID        string `json:"policy_id,omitempty"`
	PolicyType      string `json:"policy_type,omitempty"`
	PolicyStartDate string `json:"policy_start_date,omitempty"`
	PolicyEndDate   string `json:"policy_end_date,omitempty"`
}

// ScheduleRequest is the input to a schedule run. Preference text may be
// empty: extraction degrades to an unconstrained requirement.
type ScheduleRequest struct {
	InsuranceDetails InsuranceDetails `json:"insurance_details"`
	PreferenceText   string           `json:"user_preferences"`
	StartDate        string           `json:"start_date" binding:"required"`
	Iterations       int              `json:"iterations" binding:"required"`
}

// ScheduledOutcome is the result of one scheduled evaluation date.
type ScheduledOutcome struct {
	Date    string `json:"date"` // ISO 8601 calendar date
	Matched bool   `json:"matched"`
	Message string `json:"message"`
}

// ScoredQuoteRecord is a quote insight carrying a precomputed score, used as
// input to top-N ranking.
type ScoredQuoteRecord struct {
	Insurer           string   `json:"insurer_name"`
	Score             float64  `json:"touch_score"`
	Rating            *float64 `json:"rating,omitempty"`
	Message           string   `json:"message,omitempty"`
	MatchedFeatures   []string `json:"features_matched,omitempty"`
	MissingFeatures   []string `json:"features_missing,omitempty"`
	AvailableFeatures []string `json:"available_features,omitempty"`
}

// RankedQuoteEntry is one projected entry of a top-N ranking report.
type RankedQuoteEntry struct {
	Insurer  string           `json:"insurer_name"`
	Score    float64          `json:"touch_score"`
	Rating   *float64         `json:"trustpilot_rating,omitempty"`
	Message  string           `json:"message,omitempty"`
	Features FeatureBreakdown `json:"features"`
}

// FeatureBreakdown details how a quote's features lined up with the requirement.
type FeatureBreakdown struct {
	Matched   []string `json:"features_matched"`
	Missing   []string `json:"features_missing"`
	Available []string `json:"available_features"`
}

// TopQuotesResult is the response shape of a ranking request.
type TopQuotesResult struct {
	TopQuotes []RankedQuoteEntry `json:"top_quotes"`
	CachedAt  time.Time          `json:"cachedAt,omitempty"`
	Source    string             `json:"source,omitempty"` // "API" or "Cache"
}

// RankingRequest asks for the top-scored quotes for a set of preferences.
type RankingRequest struct {
	InsuranceDetails InsuranceDetails `json:"insurance_details"`
	PreferenceText   string           `json:"user_preferences" binding:"required"`
}
