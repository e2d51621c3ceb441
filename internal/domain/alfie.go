package domain

// Wire types for the Alfie complete-analysis API. Prices and scores use
// pointers where the upstream payload may omit them.

// AnalysisResponse is the top-level response of the complete-analysis endpoint.
type AnalysisResponse struct {
	QuotesWithInsights []QuoteInsight `json:"quotes_with_insights"`
}

// QuoteInsight is one analyzed quote as returned by the API.
type QuoteInsight struct {
	InsurerName       string            `json:"insurer_name"`
	TouchScore        float64           `json:"alfie_touch_score"`
	Message           string            `json:"alfie_message,omitempty"`
	PriceAnalysis     *PriceAnalysis    `json:"price_analysis,omitempty"`
	OriginalQuote     *OriginalQuote    `json:"original_quote,omitempty"`
	TrustPilot        *TrustPilotInfo   `json:"trust_pilot_context,omitempty"`
	FeatureMatch      *FeatureMatchInfo `json:"features_matching_requirements,omitempty"`
	AvailableFeatures []string          `json:"available_features,omitempty"`
}

// PriceAnalysis carries the analyzed price of a quote.
type PriceAnalysis struct {
	QuotePrice *float64 `json:"quote_price,omitempty"`
}

// OriginalQuote wraps the raw quote the analysis was derived from.
type OriginalQuote struct {
	Output OriginalQuoteOutput `json:"output"`
}

// OriginalQuoteOutput is the inner payload of the raw quote.
type OriginalQuoteOutput struct {
	InsurerName string   `json:"insurer_name,omitempty"`
	PolicyCost  *float64 `json:"policy_cost,omitempty"`
}

// TrustPilotInfo carries third-party rating context for an insurer.
type TrustPilotInfo struct {
	Rating *float64 `json:"rating,omitempty"`
}

// FeatureMatchInfo lists which required features a quote matched or missed.
type FeatureMatchInfo struct {
	MatchedRequired []string `json:"matched_required,omitempty"`
	MissingRequired []string `json:"missing_required,omitempty"`
}
