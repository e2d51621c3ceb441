package alfie

import (
	"github.com/quotewatch/backend/internal/domain"
)

// MapToQuotes converts analyzed quote insights into matcher-ready domain
// quotes. Records without a usable price are skipped rather than treated as
// errors, and feature names are canonicalized so nothing raw crosses into the
// matcher.
func MapToQuotes(analysis *domain.AnalysisResponse) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(analysis.QuotesWithInsights))
	for _, insight := range analysis.QuotesWithInsights {
		price, ok := quotePrice(insight)
		if !ok {
			continue
		}

		features := make([]string, 0, len(insight.AvailableFeatures))
		for _, raw := range insight.AvailableFeatures {
			features = append(features, domain.NormalizeFeature(raw))
		}

		quotes = append(quotes, domain.Quote{
			Insurer:  insurerName(insight),
			Price:    price,
			Features: features,
		})
	}
	return quotes
}

// quotePrice resolves the price of an insight: the analyzed quote price when
// present and non-zero, otherwise the raw policy cost. A zero analyzed price
// means the analysis did not produce one, not a free policy.
func quotePrice(insight domain.QuoteInsight) (float64, bool) {
	if insight.PriceAnalysis != nil && insight.PriceAnalysis.QuotePrice != nil && *insight.PriceAnalysis.QuotePrice != 0 {
		return *insight.PriceAnalysis.QuotePrice, true
	}
	if insight.OriginalQuote != nil && insight.OriginalQuote.Output.PolicyCost != nil {
		return *insight.OriginalQuote.Output.PolicyCost, true
	}
	return 0, false
}

// insurerName resolves the insurer of an insight, falling back to the raw
// quote payload and finally "Unknown".
func insurerName(insight domain.QuoteInsight) string {
	if insight.InsurerName != "" {
		return insight.InsurerName
	}
	if insight.OriginalQuote != nil && insight.OriginalQuote.Output.InsurerName != "" {
		return insight.OriginalQuote.Output.InsurerName
	}
	return "Unknown"
}
