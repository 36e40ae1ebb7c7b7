package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const (
	timeoutDuration     = 10 * time.Second
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type lookupService interface {
	Lookup(ctx context.Context, city string) (models.Report, error)
}

type historyLister interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	RecentCities(ctx context.Context, limit int) ([]string, error)
}

type Handler struct {
	service lookupService
	history historyLister
	logger  zerolog.Logger
}

// NewHandler builds the API handler. history may be nil when storage is disabled.
func NewHandler(svc lookupService, history historyLister, logger zerolog.Logger) *Handler {
	return &Handler{
		service: svc,
		history: history,
		logger:  logger.With().Str("component", "HTTPHandler").Logger(),
	}
}

// GetWeather
// @Summary Get current weather and daily forecast
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} models.Report
// @Failure 400
// @Failure 404
// @Failure 502
// @Failure 500
// @Router /api/weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city query parameter is required"})
		return
	}
	ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	report, err := h.service.Lookup(ctxWithTimeout, city)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "City not found"})
		case errors.Is(err, models.ErrWeatherUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Weather unavailable"})
		default:
			h.logger.Error().
				Ctx(c.Request.Context()).
				Err(err).
				Str("city", city).
				Str("request_id", RequestIDFrom(c)).
				Msg("lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Network error"})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetHistory
// @Summary Recent successful lookups
// @Tags history
// @Produce json
// @Param limit query int false "Number of entries (1-100)"
// @Success 200 {array} models.HistoryEntry
// @Router /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		limit = n
	}

	if h.history == nil {
		c.JSON(http.StatusOK, []models.HistoryEntry{})
		return
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Ctx(c.Request.Context()).Err(err).Msg("history query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
