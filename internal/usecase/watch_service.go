package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/quotewatch/backend/internal/domain"
)

// WatchService re-runs a schedule request loaded from a JSON file. It backs
// the cron-driven watch mode, where the same check is evaluated periodically
// without an HTTP caller.
type WatchService struct {
	schedule    *ScheduleService
	requestPath string
}

// NewWatchService creates a watch service reading its request from path
func NewWatchService(schedule *ScheduleService, requestPath string) *WatchService {
	return &WatchService{schedule: schedule, requestPath: requestPath}
}

// RunOnce loads the request file, runs the schedule, and logs each outcome.
func (w *WatchService) RunOnce(ctx context.Context) error {
	request, err := loadRequest(w.requestPath)
	if err != nil {
		return err
	}

	outcomes, err := w.schedule.RunSchedule(ctx, request)
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		log.Printf("[WATCH] date: %s, match_found: %v, message: %s", outcome.Date, outcome.Matched, outcome.Message)
	}
	return nil
}

// loadRequest reads and decodes a schedule request from a JSON file
func loadRequest(path string) (*domain.ScheduleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watch request: %w", err)
	}

	var request domain.ScheduleRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("%w: watch request file %s is not valid JSON", domain.ErrInvalidRequest, path)
	}
	return &request, nil
}
