package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ConflictHandler handles sync conflict listing and resolution.
type ConflictHandler struct {
	entryService portssvc.EntrySvcFacade
}

// NewConflictHandler creates a new ConflictHandler.
func NewConflictHandler(es portssvc.EntrySvcFacade) *ConflictHandler {
	return &ConflictHandler{entryService: es}
}

// RegisterConflictRoutes sets up the conflict routes.
func RegisterConflictRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := NewConflictHandler(entryService)

	conflicts := rg.Group("/conflicts")
	{
		conflicts.GET("", h.ListConflicts)
		conflicts.POST("/:conflictID/resolve", h.ResolveConflict)
	}
}

// ListConflicts godoc
// @Summary List unresolved conflicts
// @Description Returns the user's open sync conflicts, newest first.
// @Tags conflicts
// @Produce json
// @Success 200 {array} dto.ConflictResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflicts [get]
func (h *ConflictHandler) ListConflicts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	conflicts, err := h.entryService.ListUnresolvedConflicts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list conflicts"})
		return
	}
	c.JSON(http.StatusOK, dto.ToConflictResponses(conflicts))
}

// ResolveConflict godoc
// @Summary Resolve a conflict
// @Description Applies keep_current, use_other, or merge_manual to an unresolved conflict.
// @Tags conflicts
// @Accept json
// @Produce json
// @Param conflictID path string true "Conflict ID"
// @Param resolution body dto.ResolveConflictRequest true "Resolution action"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown, foreign, or already-resolved conflict"
// @Security BearerAuth
// @Router /conflicts/{conflictID}/resolve [post]
func (h *ConflictHandler) ResolveConflict(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.ResolveConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resolved, err := h.entryService.ResolveConflict(c.Request.Context(), userID, c.Param("conflictID"), req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to resolve conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve conflict"})
		return
	}
	if !resolved {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No unresolved conflict with that id"})
		return
	}
	c.Status(http.StatusNoContent)
}
