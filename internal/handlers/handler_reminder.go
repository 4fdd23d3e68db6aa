package handlers

import (
	"errors"
	"net/http"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder scheduling and push token registration.
type ReminderHandler struct {
	reminderService     portssvc.ReminderSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(rs portssvc.ReminderSvcFacade, ns portssvc.NotificationSvcFacade) *ReminderHandler {
	return &ReminderHandler{
		reminderService:     rs,
		notificationService: ns,
	}
}

// registerReminderRoutes sets up the reminder and notification token routes.
func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade, notificationService portssvc.NotificationSvcFacade) {
	h := NewReminderHandler(reminderService, notificationService)

	reminders := rg.Group("/reminders")
	{
		reminders.PUT("", h.UpsertReminder)
		reminders.GET("", h.ListReminders)
		reminders.POST("/:reminderID/disable", h.DisableReminder)
	}
	rg.POST("/notifications/tokens", h.RegisterToken)
	rg.POST("/notifications/push", h.SendPush)
}

// UpsertReminder godoc
// @Summary Schedule the daily reminder
// @Description Creates or reschedules the user's daily journaling reminder.
// @Tags reminders
// @Accept json
// @Produce json
// @Param reminder body dto.UpsertReminderRequest true "Reminder schedule"
// @Success 200 {object} dto.ReminderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [put]
func (h *ReminderHandler) UpsertReminder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpsertReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	reminder, err := h.reminderService.UpsertReminder(c.Request.Context(), userID, req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to schedule reminder"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReminderResponse(*reminder))
}

// ListReminders godoc
// @Summary List reminders
// @Tags reminders
// @Produce json
// @Success 200 {array} dto.ReminderResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders [get]
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	reminders, err := h.reminderService.ListReminders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list reminders"})
		return
	}

	resp := make([]dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		resp = append(resp, dto.ToReminderResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// DisableReminder godoc
// @Summary Disable a reminder
// @Tags reminders
// @Param reminderID path string true "Reminder ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminders/{reminderID}/disable [post]
func (h *ReminderHandler) DisableReminder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.reminderService.DisableReminder(c.Request.Context(), userID, c.Param("reminderID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to disable reminder"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterToken godoc
// @Summary Register a push token
// @Description Stores a device push token for the authenticated user.
// @Tags notifications
// @Accept json
// @Produce json
// @Param token body dto.RegisterTokenRequest true "Device token"
// @Success 201 {object} domain.NotificationToken
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/tokens [post]
func (h *ReminderHandler) RegisterToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.notificationService.RegisterToken(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register token"})
		return
	}
	c.JSON(http.StatusCreated, token)
}

// SendPush godoc
// @Summary Send an instant push
// @Description Delivers a notification to the caller's registered devices.
// @Tags notifications
// @Accept json
// @Produce json
// @Param push body dto.SendPushRequest true "Notification content"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No registered devices"
// @Security BearerAuth
// @Router /notifications/push [post]
func (h *ReminderHandler) SendPush(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.notificationService.SendPush(c.Request.Context(), userID, req); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code < 500 {
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send notification"})
		return
	}
	c.Status(http.StatusAccepted)
}
