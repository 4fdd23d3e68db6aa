package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// EntryHandler handles journal entry requests, including the sync upsert.
type EntryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(es portssvc.EntrySvcFacade) *EntryHandler {
	return &EntryHandler{entryService: es}
}

// RegisterEntryRoutes sets up the entry routes.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := NewEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.PUT("", h.UpsertEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/:entryID", h.GetEntry)
	}
}

// UpsertEntry godoc
// @Summary Create or update the entry for a date
// @Description Applies a sync write for (user, entryDate). The write always lands; a collision with a newer journal text additionally records a conflict whose id is returned.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.UpsertEntryRequest true "Entry payload"
// @Success 200 {object} dto.UpsertEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries [put]
func (h *EntryHandler) UpsertEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpsertEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, conflictID, err := h.entryService.UpsertEntry(c.Request.Context(), userID, req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to upsert entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save entry"})
		return
	}

	c.JSON(http.StatusOK, dto.UpsertEntryResponse{
		Entry:      dto.ToEntryResponse(*entry),
		ConflictID: conflictID,
	})
}

// ListEntries godoc
// @Summary List entries
// @Description Returns a page of the user's entries, newest first.
// @Tags entries
// @Produce json
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 50)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, to, err := parseDateRangePtr(req.From, req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), userID, from, to, req.Limit, req.NextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list entries"})
		return
	}

	resp := dto.ListEntriesResponse{Entries: make([]dto.EntryResponse, 0, len(entries)), NextToken: nextToken}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

// GetEntry godoc
// @Summary Get one entry
// @Description Returns an entry with its metrics, habit marks and open conflicts.
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryDetailResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *EntryHandler) GetEntry(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	detail, err := h.entryService.GetEntryByID(c.Request.Context(), userID, c.Param("entryID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch entry"})
		return
	}

	c.JSON(http.StatusOK, dto.EntryDetailResponse{
		Entry:     dto.ToEntryResponse(detail.Entry),
		Metrics:   detail.Metrics,
		Habits:    detail.Habits,
		Conflicts: dto.ToConflictResponses(detail.Conflicts),
	})
}

// parseDateRangePtr parses optional YYYY-MM-DD bounds into UTC times.
func parseDateRangePtr(from, to *string) (*time.Time, *time.Time, error) {
	var fromT, toT *time.Time
	if from != nil {
		t, err := time.ParseInLocation(domain.EntryDateLayout, *from, time.UTC)
		if err != nil {
			return nil, nil, errors.New("from must be formatted YYYY-MM-DD")
		}
		fromT = &t
	}
	if to != nil {
		t, err := time.ParseInLocation(domain.EntryDateLayout, *to, time.UTC)
		if err != nil {
			return nil, nil, errors.New("to must be formatted YYYY-MM-DD")
		}
		toT = &t
	}
	return fromT, toT, nil
}
