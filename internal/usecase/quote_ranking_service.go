package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/quotewatch/backend/internal/domain"
)

// Package-level compiled regex patterns for cache-key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// defaultTopN is how many ranked quotes a report surfaces
const defaultTopN = 3

// QuoteRankingServiceConfig holds configuration for the ranking service
type QuoteRankingServiceConfig struct {
	CacheTTL time.Duration
	TopN     int
}

// QuoteRankingService ranks analyzed quotes by their precomputed score and
// surfaces the top N with supporting detail, caching ranked results.
type QuoteRankingService struct {
	cache    domain.CacheRepository
	client   domain.QuoteClient
	cacheTTL time.Duration
	topN     int
}

// NewQuoteRankingService creates a ranking service with dependencies
func NewQuoteRankingService(
	cache domain.CacheRepository,
	client domain.QuoteClient,
	config QuoteRankingServiceConfig,
) *QuoteRankingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	return &QuoteRankingService{
		cache:    cache,
		client:   client,
		cacheTTL: cacheTTL,
		topN:     topN,
	}
}

// TopQuotes returns the highest-scored quotes for the request.
// Flow: check cache -> fetch analysis -> rank -> cache -> return
func (s *QuoteRankingService) TopQuotes(ctx context.Context, request *domain.RankingRequest) (*domain.TopQuotesResult, error) {
	if request == nil || request.PreferenceText == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := s.generateCacheKey(request)

	// Serve a copy on a hit: the cached object is shared across requests and
	// must never be written to after it has been handed out.
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		hit := *cached
		hit.Source = "Cache"
		return &hit, nil
	}

	analysis, err := s.client.FetchAnalysis(ctx, request.InsuranceDetails, request.PreferenceText)
	if err != nil {
		return nil, err
	}

	// An empty batch ranks to an empty report, not an error
	result := &domain.TopQuotesResult{
		TopQuotes: TopN(scoredRecords(analysis), s.topN),
		Source:    "API",
	}

	if err := s.setInCache(ctx, cacheKey, result); err != nil {
		log.Printf("[RANK] cache write failed: %v", err)
	}

	return result, nil
}

// TopN returns the n highest-scored records projected into report entries.
// The sort is stable: records with equal score keep their relative input
// order. Fewer than n records come back as-is, no padding. The input slice is
// not mutated.
func TopN(records []domain.ScoredQuoteRecord, n int) []domain.RankedQuoteEntry {
	if n <= 0 {
		return []domain.RankedQuoteEntry{}
	}

	ranked := make([]domain.ScoredQuoteRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	entries := make([]domain.RankedQuoteEntry, 0, len(ranked))
	for _, record := range ranked {
		entries = append(entries, projectEntry(record))
	}
	return entries
}

// projectEntry builds a report entry, defaulting absent nested fields to
// empty values rather than failing.
func projectEntry(record domain.ScoredQuoteRecord) domain.RankedQuoteEntry {
	return domain.RankedQuoteEntry{
		Insurer: record.Insurer,
		Score:   record.Score,
		Rating:  record.Rating,
		Message: record.Message,
		Features: domain.FeatureBreakdown{
			Matched:   orEmpty(record.MatchedFeatures),
			Missing:   orEmpty(record.MissingFeatures),
			Available: orEmpty(record.AvailableFeatures),
		},
	}
}

func orEmpty(features []string) []string {
	if features == nil {
		return []string{}
	}
	return features
}

// scoredRecords flattens analyzed quote insights into ranking input
func scoredRecords(analysis *domain.AnalysisResponse) []domain.ScoredQuoteRecord {
	records := make([]domain.ScoredQuoteRecord, 0, len(analysis.QuotesWithInsights))
	for _, insight := range analysis.QuotesWithInsights {
		record := domain.ScoredQuoteRecord{
			Insurer:           insight.InsurerName,
			Score:             insight.TouchScore,
			Message:           insight.Message,
			AvailableFeatures: insight.AvailableFeatures,
		}
		if insight.TrustPilot != nil {
			record.Rating = insight.TrustPilot.Rating
		}
		if insight.FeatureMatch != nil {
			record.MatchedFeatures = insight.FeatureMatch.MatchedRequired
			record.MissingFeatures = insight.FeatureMatch.MissingRequired
		}
		records = append(records, record)
	}
	return records
}

// generateCacheKey creates a normalized cache key from the ranking request.
// Format: "topquotes:{normalized_preference_text}"
func (s *QuoteRankingService) generateCacheKey(request *domain.RankingRequest) string {
	return fmt.Sprintf("topquotes:%s", normalizeForCacheKey(request.PreferenceText))
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a ranked result from cache
func (s *QuoteRankingService) getFromCache(ctx context.Context, key string) (*domain.TopQuotesResult, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	result, ok := value.(*domain.TopQuotesResult)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return result, nil
}

// setInCache stores a copy of a ranked result in cache. The caller keeps the
// original, so the cached object is never aliased by an in-flight response.
func (s *QuoteRankingService) setInCache(ctx context.Context, key string, result *domain.TopQuotesResult) error {
	stored := *result
	stored.CachedAt = time.Now()
	return s.cache.Set(ctx, key, &stored, s.cacheTTL)
}
