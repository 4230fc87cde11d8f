package handlers

import (
	"net/http"

	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/andestrack/field-service-api/internal/middleware"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/andestrack/field-service-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// InstanceHandler coordinates the worker-facing task instance handlers.
type InstanceHandler struct {
	instanceService *services.InstanceService
}

// NewInstanceHandler creates a new InstanceHandler
func NewInstanceHandler(instanceService *services.InstanceService) *InstanceHandler {
	return &InstanceHandler{instanceService: instanceService}
}

// ListMyInstances returns the caller's task instances
func (h *InstanceHandler) ListMyInstances(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)
	instances, total, err := h.instanceService.ListMyInstances(userID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instances": instances,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ListDayInstances returns every task instance on a day
func (h *InstanceHandler) ListDayInstances(c *gin.Context) {
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	instances, err := h.instanceService.ListDayInstances(dayID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

// GetInstance returns one of the caller's task instances with its responses
func (h *InstanceHandler) GetInstance(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := h.instanceService.GetInstance(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}

// StartInstance marks when the worker began the task
func (h *InstanceHandler) StartInstance(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := h.instanceService.StartInstance(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}

// SaveFieldResponse records the worker's answer to one form field
func (h *InstanceHandler) SaveFieldResponse(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type SaveResponseRequest struct {
		FieldTemplateID uint64 `json:"field_template_id" binding:"required"`
		Value           string `json:"value"`
	}

	var req SaveResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.instanceService.SaveFieldResponse(id, userID, req.FieldTemplateID, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CompleteInstance marks the instance completed once its required fields are
// answered
func (h *InstanceHandler) CompleteInstance(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := h.instanceService.CompleteInstance(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}

// ReopenInstance moves a completed instance back to draft
func (h *InstanceHandler) ReopenInstance(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	instance, err := h.instanceService.ReopenInstance(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instance)
}
