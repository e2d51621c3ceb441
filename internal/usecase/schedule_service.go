package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quotewatch/backend/internal/domain"
)

// dateLayout is the ISO 8601 calendar date format used throughout the API
const dateLayout = "2006-01-02"

// defaultIntervalDays is the spacing between scheduled evaluation dates
const defaultIntervalDays = 7

// ScheduleServiceConfig holds configuration for the schedule service
type ScheduleServiceConfig struct {
	IntervalDays       int
	EnableDebugLogging bool
}

// ScheduleService evaluates quote availability against an extracted
// requirement over a sequence of future dates.
type ScheduleService struct {
	client             domain.QuoteClient
	extractor          domain.PreferenceExtractor
	intervalDays       int
	enableDebugLogging bool
}

// NewScheduleService creates a schedule service with dependencies
func NewScheduleService(
	client domain.QuoteClient,
	extractor domain.PreferenceExtractor,
	config ScheduleServiceConfig,
) *ScheduleService {
	interval := config.IntervalDays
	if interval <= 0 {
		interval = defaultIntervalDays
	}

	return &ScheduleService{
		client:             client,
		extractor:          extractor,
		intervalDays:       interval,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// RunSchedule evaluates the request once per scheduled date, strictly in
// order: extract requirement -> per date: fetch -> best match -> outcome.
// Dates are evaluated sequentially; evaluation for a date begins only after
// the previous date's outcome is produced.
//
// A failed fetch aborts the whole run and the error, wrapped with the date it
// occurred on, propagates to the caller. It is never reported as a "no match"
// outcome.
func (s *ScheduleService) RunSchedule(ctx context.Context, request *domain.ScheduleRequest) ([]domain.ScheduledOutcome, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}
	start, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q is not a valid date", domain.ErrInvalidRequest, request.StartDate)
	}
	if request.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", domain.ErrInvalidRequest, request.Iterations)
	}

	requirement := s.extractor.Extract(request.PreferenceText)

	if s.enableDebugLogging {
		log.Printf("[SCHEDULE] Requirement: budget=%v features=%v", requirement.Budget, requirement.RequiredFeatures)
	}

	outcomes := make([]domain.ScheduledOutcome, 0, request.Iterations)
	for _, runDate := range scheduleDates(start, request.Iterations, s.intervalDays) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		quotes, err := s.client.FetchQuotes(ctx, request.InsuranceDetails, request.PreferenceText)
		if err != nil {
			return nil, fmt.Errorf("fetch for %s: %w", runDate.Format(dateLayout), err)
		}

		match := BestMatch(quotes, requirement)
		outcome := domain.ScheduledOutcome{
			Date:    runDate.Format(dateLayout),
			Matched: match != nil,
			Message: outcomeMessage(match, requirement),
		}

		if s.enableDebugLogging {
			log.Printf("[SCHEDULE] %s matched=%v: %s", outcome.Date, outcome.Matched, outcome.Message)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// scheduleDates returns n dates spaced intervalDays apart, starting at and
// including start.
func scheduleDates(start time.Time, n, intervalDays int) []time.Time {
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, start.AddDate(0, 0, i*intervalDays))
	}
	return dates
}

// outcomeMessage builds the per-date report line. A miss lists the applicable
// reasons joined conjunctively; with no budget and no required features a
// miss means the fetch simply returned nothing usable.
func outcomeMessage(match *domain.Quote, req domain.Requirement) string {
	if match != nil {
		if req.Budget != nil {
			return fmt.Sprintf("found %s quote for £%.2f, below budget £%.2f with all requested features",
				match.Insurer, match.Price, *req.Budget)
		}
		return fmt.Sprintf("found %s quote for £%.2f with requested features", match.Insurer, match.Price)
	}

	var reasons []string
	if req.Budget != nil {
		reasons = append(reasons, "no quote within budget")
	}
	if len(req.RequiredFeatures) > 0 {
		reasons = append(reasons, "missing required features")
	}
	if len(reasons) == 0 {
		return "no quotes available"
	}
	return strings.Join(reasons, " and ")
}
