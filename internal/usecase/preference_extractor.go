package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/quotewatch/backend/internal/domain"
)

// budgetPattern matches the first integer or decimal token in the text.
// Thousands separators are stripped before scanning.
var budgetPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// featureAlias maps one raw phrase (including common typos) to its canonical
// feature identifier. The pattern is a whole-phrase, case-insensitive match
// compiled once at startup.
type featureAlias struct {
	phrase    string
	canonical string
	pattern   *regexp.Regexp
}

// featureAliases is the static alias table. Scan order is fixed so extracted
// features come out in deterministic first-seen order; several spellings map
// to one canonical identifier.
var featureAliases = buildAliasTable([]struct{ phrase, canonical string }{
	{"windshield", domain.FeatureWindshieldCover},
	{"windscreen", domain.FeatureWindshieldCover},
	{"windshield cover", domain.FeatureWindshieldCover},
	{"windscreen cover", domain.FeatureWindshieldCover},
	{"windshield_cover", domain.FeatureWindshieldCover},
	{"windscreen_cover", domain.FeatureWindshieldCover},
	{"legal", domain.FeatureLegalCover},
	{"legal cover", domain.FeatureLegalCover},
	{"legul cover", domain.FeatureLegalCover},
	{"courtesy car", domain.FeatureCourtesyCar},
	{"courtesy_car", domain.FeatureCourtesyCar},
	{"breakdown", domain.FeatureBreakdownCover},
	{"breakdown cover", domain.FeatureBreakdownCover},
	{"breakdown_cover", domain.FeatureBreakdownCover},
	{"european", domain.FeatureEuropeanCover},
	{"european cover", domain.FeatureEuropeanCover},
	{"european_cover", domain.FeatureEuropeanCover},
	{"europe", domain.FeatureEuropeanCover},
})

func buildAliasTable(entries []struct{ phrase, canonical string }) []featureAlias {
	table := make([]featureAlias, 0, len(entries))
	for _, e := range entries {
		table = append(table, featureAlias{
			phrase:    e.phrase,
			canonical: e.canonical,
			pattern:   regexp.MustCompile(`\b` + regexp.QuoteMeta(e.phrase) + `\b`),
		})
	}
	return table
}

// AliasExtractor is a stand-in for a language-model preference extractor.
// It picks the first number in the text as the budget and scans for known
// feature aliases. A real backend only needs to honor the same
// domain.PreferenceExtractor contract to replace it.
type AliasExtractor struct {
	enableDebugLogging bool
}

var _ domain.PreferenceExtractor = (*AliasExtractor)(nil)

// NewAliasExtractor creates the alias-based preference extractor
func NewAliasExtractor(enableDebugLogging bool) *AliasExtractor {
	return &AliasExtractor{enableDebugLogging: enableDebugLogging}
}

// Extract turns free-text preferences into a structured Requirement.
// Total: input with no usable budget or features yields an absent budget and
// an empty feature set, never an error.
func (e *AliasExtractor) Extract(text string) domain.Requirement {
	req := domain.Requirement{RawText: text}

	if token := budgetPattern.FindString(strings.ReplaceAll(text, ",", "")); token != "" {
		if value, err := strconv.ParseFloat(token, 64); err == nil {
			req.Budget = &value
		}
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	for _, alias := range featureAliases {
		if !alias.pattern.MatchString(lower) {
			continue
		}
		if seen[alias.canonical] {
			continue
		}
		seen[alias.canonical] = true
		req.RequiredFeatures = append(req.RequiredFeatures, alias.canonical)
	}

	if e.enableDebugLogging {
		log.Printf("[EXTRACT] Input: %q | Budget: %v | Features: %v", text, req.Budget, req.RequiredFeatures)
	}

	return req
}
