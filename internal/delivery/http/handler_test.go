package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quotewatch/backend/config"
	"github.com/quotewatch/backend/internal/domain"
	"github.com/quotewatch/backend/internal/infrastructure/cache"
	"github.com/quotewatch/backend/internal/usecase"
)

// TestMain sets up the test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeQuoteClient serves canned quote data to the real usecase services
type fakeQuoteClient struct {
	quotes   []domain.Quote
	analysis *domain.AnalysisResponse
	err      error
}

func (f *fakeQuoteClient) FetchQuotes(ctx context.Context, details domain.InsuranceDetails, preferences string) ([]domain.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes, nil
}

func (f *fakeQuoteClient) FetchAnalysis(ctx context.Context, details domain.InsuranceDetails, preferences string) (*domain.AnalysisResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func setupTestRouter(t *testing.T, client domain.QuoteClient) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8090",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
		},
	}

	memoryCache := cache.NewMemoryCache()
	t.Cleanup(memoryCache.Close)

	schedule := usecase.NewScheduleService(client, usecase.NewAliasExtractor(false), usecase.ScheduleServiceConfig{})
	ranking := usecase.NewQuoteRankingService(memoryCache, client, usecase.QuoteRankingServiceConfig{})

	return SetupRouter(cfg, NewHandler(schedule, ranking))
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t, &fakeQuoteClient{})

	w := doRequest(router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestRunScheduleEndpoint(t *testing.T) {
	client := &fakeQuoteClient{quotes: []domain.Quote{
		{Insurer: "Acme", Price: 450, Features: []string{domain.FeatureLegalCover}},
	}}
	router := setupTestRouter(t, client)

	t.Run("returns one outcome per scheduled date", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{
			"user_preferences": "under 500 with legal cover",
			"start_date": "2025-11-23",
			"iterations": 3
		}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
		}

		var body struct {
			Outcomes []domain.ScheduledOutcome `json:"outcomes"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if len(body.Outcomes) != 3 {
			t.Fatalf("got %d outcomes, want 3", len(body.Outcomes))
		}
		if body.Outcomes[0].Date != "2025-11-23" || !body.Outcomes[0].Matched {
			t.Errorf("first outcome = %+v", body.Outcomes[0])
		}
	})

	t.Run("accepts a request without preference text", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{
			"start_date": "2025-11-23",
			"iterations": 1
		}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
		}

		var body struct {
			Outcomes []domain.ScheduledOutcome `json:"outcomes"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if len(body.Outcomes) != 1 || !body.Outcomes[0].Matched {
			t.Errorf("outcomes = %+v, want a single match with no constraints", body.Outcomes)
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{not json`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{"user_preferences": "x"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects invalid start date", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{
			"user_preferences": "x",
			"start_date": "not-a-date",
			"iterations": 3
		}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestRunScheduleEndpointFetchFailure(t *testing.T) {
	router := setupTestRouter(t, &fakeQuoteClient{err: domain.ErrQuoteAPIFailure})

	w := doRequest(router, http.MethodPost, "/api/v1/schedule/run", `{
		"user_preferences": "under 500",
		"start_date": "2025-11-23",
		"iterations": 1
	}`)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestTopQuotesEndpoint(t *testing.T) {
	client := &fakeQuoteClient{analysis: &domain.AnalysisResponse{
		QuotesWithInsights: []domain.QuoteInsight{
			{InsurerName: "Acme", TouchScore: 72},
			{InsurerName: "Budget Co", TouchScore: 91},
			{InsurerName: "Middling", TouchScore: 80},
			{InsurerName: "Last", TouchScore: 10},
		},
	}}
	router := setupTestRouter(t, client)

	w := doRequest(router, http.MethodPost, "/api/v1/quotes/top", `{"user_preferences": "legal cover"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var result domain.TopQuotesResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(result.TopQuotes) != 3 {
		t.Fatalf("got %d entries, want 3", len(result.TopQuotes))
	}
	if result.TopQuotes[0].Insurer != "Budget Co" {
		t.Errorf("top insurer = %s, want Budget Co", result.TopQuotes[0].Insurer)
	}
}

func TestTopQuotesEndpointNoQuotes(t *testing.T) {
	router := setupTestRouter(t, &fakeQuoteClient{analysis: &domain.AnalysisResponse{}})

	w := doRequest(router, http.MethodPost, "/api/v1/quotes/top", `{"user_preferences": "anything"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var result domain.TopQuotesResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.TopQuotes == nil || len(result.TopQuotes) != 0 {
		t.Errorf("top_quotes = %v, want empty list", result.TopQuotes)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := setupTestRouter(t, &fakeQuoteClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/schedule/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	router := setupTestRouter(t, &fakeQuoteClient{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want unset", got)
	}
}
