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

// TemplateHandler handles journaling template requests.
type TemplateHandler struct {
	templateService portssvc.TemplateSvcFacade
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(ts portssvc.TemplateSvcFacade) *TemplateHandler {
	return &TemplateHandler{templateService: ts}
}

// registerTemplateRoutes sets up the template routes.
func registerTemplateRoutes(rg *gin.RouterGroup, templateService portssvc.TemplateSvcFacade) {
	h := NewTemplateHandler(templateService)

	templates := rg.Group("/templates")
	{
		templates.GET("", h.ListTemplates)
		templates.POST("", h.CreateTemplate)
		templates.PUT("/:templateID", h.UpdateTemplate)
		templates.DELETE("/:templateID", h.DeleteTemplate)
	}
}

// ListTemplates godoc
// @Summary List templates
// @Tags templates
// @Produce json
// @Success 200 {array} dto.TemplateResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list templates"})
		return
	}

	resp := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, dto.ToTemplateResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTemplate godoc
// @Summary Create a template
// @Tags templates
// @Accept json
// @Produce json
// @Param template body dto.CreateTemplateRequest true "Template"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create template"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToTemplateResponse(*template))
}

// UpdateTemplate godoc
// @Summary Update a template
// @Tags templates
// @Accept json
// @Produce json
// @Param templateID path string true "Template ID"
// @Param template body dto.UpdateTemplateRequest true "Template"
// @Success 200 {object} dto.TemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /templates/{templateID} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), userID, c.Param("templateID"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update template"})
		return
	}
	c.JSON(http.StatusOK, dto.ToTemplateResponse(*template))
}

// DeleteTemplate godoc
// @Summary Delete a template
// @Tags templates
// @Param templateID path string true "Template ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /templates/{templateID} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, c.Param("templateID")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete template"})
		return
	}
	c.Status(http.StatusNoContent)
}
