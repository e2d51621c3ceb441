package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quotewatch/backend/internal/domain"
	"github.com/quotewatch/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	schedule *usecase.ScheduleService
	ranking  *usecase.QuoteRankingService
}

// NewHandler creates a new HTTP handler
func NewHandler(schedule *usecase.ScheduleService, ranking *usecase.QuoteRankingService) *Handler {
	return &Handler{
		schedule: schedule,
		ranking:  ranking,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quotewatch-backend",
		"version": "1.0.0",
	})
}

// RunSchedule evaluates a schedule request and returns one outcome per
// scheduled date, in ascending date order.
func (h *Handler) RunSchedule(c *gin.Context) {
	var request domain.ScheduleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	outcomes, err := h.schedule.RunSchedule(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

// TopQuotes returns the highest-scored quotes for a preference text
func (h *Handler) TopQuotes(c *gin.Context) {
	var request domain.RankingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.ranking.TopQuotes(c.Request.Context(), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrQuoteAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
