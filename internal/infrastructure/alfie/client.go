package alfie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/quotewatch/backend/internal/domain"
	"golang.org/x/time/rate"
)

// maxAttempts bounds the retry loop for transient upstream failures.
// Retry policy belongs to this client, not to the schedule core.
const maxAttempts = 3

// Client handles communication with the Alfie complete-analysis API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

var _ domain.QuoteClient = (*Client)(nil)

// analysisRequest is the POST body of the complete-analysis endpoint.
// ConversationHistory must be present (the API rejects null), so it is always
// sent as an empty array.
type analysisRequest struct {
	InsuranceDetails    domain.InsuranceDetails `json:"insurance_details"`
	UserPreferences     string                  `json:"user_preferences"`
	ConversationHistory []string                `json:"conversation_history"`
}

// NewClient creates a new Alfie API client. requestsPerMinute throttles calls
// to the analysis service; it runs close by but is expensive per request.
func NewClient(baseURL string, timeout time.Duration, requestsPerMinute int) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchAnalysis posts the insurance details and preference text to the
// complete-analysis endpoint and returns the scored quote payload.
// Transient failures are retried with exponential backoff.
func (c *Client) FetchAnalysis(ctx context.Context, details domain.InsuranceDetails, preferences string) (*domain.AnalysisResponse, error) {
	endpoint := fmt.Sprintf("%s/complete-analysis", c.baseURL)

	payload, err := json.Marshal(analysisRequest{
		InsuranceDetails:    ensureInsuranceFields(details),
		UserPreferences:     preferences,
		ConversationHistory: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, endpoint, payload)
		if err != nil {
			if c.debug {
				log.Printf("[ALFIE] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if attempt < maxAttempts {
				sleepBackoff(ctx, attempt)
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[ALFIE] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrQuoteAPIFailure, resp.StatusCode)
			if attempt < maxAttempts {
				sleepBackoff(ctx, attempt)
			}
			continue
		}

		var analysis domain.AnalysisResponse
		if err := json.Unmarshal(body, &analysis); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrQuoteAPIFailure, err)
		}

		if c.debug {
			log.Printf("[ALFIE] Received %d quote insights", len(analysis.QuotesWithInsights))
		}
		return &analysis, nil
	}

	return nil, lastErr
}

// FetchQuotes fetches an analysis and maps it to matcher-ready quotes.
// Records without a usable price are dropped; feature names come back
// canonical.
func (c *Client) FetchQuotes(ctx context.Context, details domain.InsuranceDetails, preferences string) ([]domain.Quote, error) {
	analysis, err := c.FetchAnalysis(ctx, details, preferences)
	if err != nil {
		return nil, err
	}
	return MapToQuotes(analysis), nil
}

// doRequest executes an HTTP POST with the JSON payload
func (c *Client) doRequest(ctx context.Context, endpoint string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "QuoteWatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteAPIFailure, err)
	}
	return resp, nil
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

func sleepBackoff(ctx context.Context, attempt int) {
	select {
	case <-time.After(exponentialBackoff(attempt)):
	case <-ctx.Done():
	}
}

// ensureInsuranceFields fills minimal placeholders for fields the API
// requires. This is client policy: the matching core never sees or depends on
// these defaults.
func ensureInsuranceFields(details domain.InsuranceDetails) domain.InsuranceDetails {
	if details.CurrentProvider == "" {
		details.CurrentProvider = "Unknown"
	}
	if details.PolicyID == "" {
		details.PolicyID = "UNKNOWN"
	}
	if details.PolicyType == "" {
		details.PolicyType = "car"
	}
	return details
}
