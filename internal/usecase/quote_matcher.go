package usecase

import "github.com/quotewatch/backend/internal/domain"

// Matches reports whether a quote satisfies the requirement:
//   - the price must not exceed the budget when one is set (equal passes)
//   - every required feature must be present on the quote (extra features
//     on the quote are fine)
//
// Both sides are assumed canonical; normalization happens at the fetch
// boundary, not here.
func Matches(quote domain.Quote, req domain.Requirement) bool {
	if req.Budget != nil && quote.Price > *req.Budget {
		return false
	}
	for _, feature := range req.RequiredFeatures {
		if !quote.HasFeature(feature) {
			return false
		}
	}
	return true
}

// BestMatch returns the cheapest quote passing Matches. Ties on price keep
// the first candidate in input order. Returns nil when the input is empty or
// nothing passes.
func BestMatch(quotes []domain.Quote, req domain.Requirement) *domain.Quote {
	var best *domain.Quote
	for i := range quotes {
		if !Matches(quotes[i], req) {
			continue
		}
		if best == nil || quotes[i].Price < best.Price {
			best = &quotes[i]
		}
	}
	return best
}
