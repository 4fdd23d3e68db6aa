package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// defaultAnalyticsWindow bounds unqualified analytics queries to the last
// 30 days.
const defaultAnalyticsWindow = 30 * 24 * time.Hour

// AnalyticsHandler handles the read-side aggregate endpoints.
type AnalyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// registerAnalyticsRoutes sets up the analytics routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := NewAnalyticsHandler(analyticsService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/summary", h.GetSummary)
		analytics.GET("/correlation", h.GetCorrelation)
		analytics.GET("/export", h.ExportCSV)
	}
}

func resolveRange(from, to *string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	fromT := now.Add(-defaultAnalyticsWindow)
	toT := now

	if from != nil {
		t, err := time.ParseInLocation(domain.EntryDateLayout, *from, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be formatted YYYY-MM-DD")
		}
		fromT = t
	}
	if to != nil {
		t, err := time.ParseInLocation(domain.EntryDateLayout, *to, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be formatted YYYY-MM-DD")
		}
		toT = t
	}
	return fromT, toT, nil
}

// GetSummary godoc
// @Summary Analytics summary
// @Description Per-metric averages and per-habit completion rates over a date range (defaults to the last 30 days).
// @Tags analytics
// @Produce json
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.AnalyticsSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.AnalyticsRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, err := resolveRange(req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	summary, err := h.analyticsService.GetSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCorrelation godoc
// @Summary Metric correlation
// @Description Pearson correlation of two metric keys paired by entry date.
// @Tags analytics
// @Produce json
// @Param metricA query string true "First metric key"
// @Param metricB query string true "Second metric key"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} domain.MetricCorrelation
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/correlation [get]
func (h *AnalyticsHandler) GetCorrelation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CorrelationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, err := resolveRange(req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	correlation, err := h.analyticsService.GetCorrelation(c.Request.Context(), userID, req.MetricA, req.MetricB, from, to)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute correlation"})
		return
	}
	c.JSON(http.StatusOK, correlation)
}

// ExportCSV godoc
// @Summary Export entries as CSV
// @Description Streams the user's entries and metrics for a date range as CSV.
// @Tags analytics
// @Produce text/csv
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/export [get]
func (h *AnalyticsHandler) ExportCSV(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.AnalyticsRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, err := resolveRange(req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="daybook-export.csv"`)
	if err := h.analyticsService.ExportCSV(c.Request.Context(), userID, from, to, c.Writer); err != nil {
		// Headers may already be written; log and drop the connection.
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("CSV export failed", "error", err)
		c.Abort()
	}
}
