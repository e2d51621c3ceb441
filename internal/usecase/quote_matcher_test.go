package usecase

import (
	"testing"

	"github.com/quotewatch/backend/internal/domain"
)

func TestMatches(t *testing.T) {
	testCases := []struct {
		name  string
		quote domain.Quote
		req   domain.Requirement
		want  bool
	}{
		{
			name:  "passes with no constraints",
			quote: domain.Quote{Insurer: "A", Price: 300},
			req:   domain.Requirement{},
			want:  true,
		},
		{
			name:  "fails when price exceeds budget",
			quote: domain.Quote{Insurer: "A", Price: 501},
			req:   domain.Requirement{Budget: floatPtr(500)},
			want:  false,
		},
		{
			name:  "passes at exact budget",
			quote: domain.Quote{Insurer: "A", Price: 500},
			req:   domain.Requirement{Budget: floatPtr(500)},
			want:  true,
		},
		{
			name:  "fails when a required feature is missing",
			quote: domain.Quote{Insurer: "A", Price: 100, Features: []string{domain.FeatureBreakdownCover}},
			req:   domain.Requirement{RequiredFeatures: []string{domain.FeatureLegalCover}},
			want:  false,
		},
		{
			name: "subset test, extra quote features are fine",
			quote: domain.Quote{Insurer: "A", Price: 100, Features: []string{
				domain.FeatureLegalCover, domain.FeatureBreakdownCover, domain.FeatureCourtesyCar,
			}},
			req:  domain.Requirement{RequiredFeatures: []string{domain.FeatureLegalCover}},
			want: true,
		},
		{
			name:  "no budget means any price passes",
			quote: domain.Quote{Insurer: "A", Price: 99999},
			req:   domain.Requirement{RequiredFeatures: []string{}},
			want:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.quote, tc.req); got != tc.want {
				t.Errorf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBestMatch(t *testing.T) {
	t.Run("returns nil for empty input", func(t *testing.T) {
		if got := BestMatch(nil, domain.Requirement{}); got != nil {
			t.Errorf("BestMatch() = %+v, want nil", got)
		}
	})

	t.Run("returns nil when nothing passes", func(t *testing.T) {
		quotes := []domain.Quote{
			{Insurer: "A", Price: 600},
			{Insurer: "B", Price: 700},
		}
		if got := BestMatch(quotes, domain.Requirement{Budget: floatPtr(500)}); got != nil {
			t.Errorf("BestMatch() = %+v, want nil", got)
		}
	})

	t.Run("picks the cheapest passing quote", func(t *testing.T) {
		quotes := []domain.Quote{
			{Insurer: "A", Price: 450},
			{Insurer: "B", Price: 380},
			{Insurer: "C", Price: 520},
		}
		got := BestMatch(quotes, domain.Requirement{Budget: floatPtr(500)})
		if got == nil || got.Insurer != "B" {
			t.Errorf("BestMatch() = %+v, want insurer B", got)
		}
	})

	t.Run("tie on price keeps the first candidate in input order", func(t *testing.T) {
		quotes := []domain.Quote{
			{Insurer: "first-100", Price: 100},
			{Insurer: "first-80", Price: 80},
			{Insurer: "second-80", Price: 80},
		}
		got := BestMatch(quotes, domain.Requirement{})
		if got == nil || got.Insurer != "first-80" {
			t.Errorf("BestMatch() = %+v, want first-80", got)
		}
	})

	t.Run("cheapest quote missing a feature loses to pricier complete one", func(t *testing.T) {
		req := domain.Requirement{
			Budget:           floatPtr(500),
			RequiredFeatures: []string{domain.FeatureLegalCover},
		}
		quotes := []domain.Quote{
			{Insurer: "A", Price: 450, Features: []string{domain.FeatureLegalCover, domain.FeatureBreakdownCover}},
			{Insurer: "B", Price: 400, Features: []string{domain.FeatureBreakdownCover}},
		}
		got := BestMatch(quotes, req)
		if got == nil || got.Insurer != "A" {
			t.Errorf("BestMatch() = %+v, want insurer A", got)
		}
	})
}
