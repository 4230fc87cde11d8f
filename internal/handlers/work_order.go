package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/andestrack/field-service-api/internal/dto"
	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/repository"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/andestrack/field-service-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// WorkOrderHandler coordinates work order, day and day-linkage HTTP handlers.
type WorkOrderHandler struct {
	workOrderService *services.WorkOrderService
	linkageService   *services.LinkageService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(workOrderService *services.WorkOrderService, linkageService *services.LinkageService) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService: workOrderService,
		linkageService:   linkageService,
	}
}

// CreateWorkOrder creates a work order, expanding its date range into days
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	type CreateWorkOrderRequest struct {
		CustomerID     uint64    `json:"customer_id" binding:"required"`
		FaenaID        uint64    `json:"faena_id" binding:"required"`
		ServiceID      *uint64   `json:"service_id"`
		Name           string    `json:"name" binding:"required"`
		StartDate      time.Time `json:"start_date" binding:"required"`
		EndDate        time.Time `json:"end_date" binding:"required"`
		RequiredPeople *int      `json:"required_people"`
		Notes          string    `json:"notes"`
	}

	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	wo, err := h.workOrderService.CreateWorkOrder(c.Request.Context(), services.CreateWorkOrderInput{
		CustomerID:     req.CustomerID,
		FaenaID:        req.FaenaID,
		ServiceID:      req.ServiceID,
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RequiredPeople: req.RequiredPeople,
		Notes:          req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wo)
}

// GetWorkOrder returns a work order with its days and relations
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wo, err := h.workOrderService.GetWorkOrder(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

// ListWorkOrders returns work orders filtered by customer, faena, status and
// date range
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := repository.WorkOrderFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid customer_id")
			return
		}
		filter.CustomerID = &id
	}
	if v := c.Query("faena_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid faena_id")
			return
		}
		filter.FaenaID = &id
	}
	if v := c.Query("status"); v != "" {
		status := models.WorkOrderStatus(v)
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	workOrders, total, err := h.workOrderService.ListWorkOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work_orders": workOrders,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateWorkOrderStatus moves a work order to a new lifecycle status
func (h *WorkOrderHandler) UpdateWorkOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	wo, err := h.workOrderService.UpdateStatus(id, models.WorkOrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

// DeleteWorkOrder removes a draft or cancelled work order with everything
// under it
func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workOrderService.DeleteWorkOrder(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work order deleted successfully",
	})
}

// ListDays returns a work order's days in day-number order
func (h *WorkOrderHandler) ListDays(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	days, err := h.workOrderService.ListDays(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// GetDay returns one work order day
func (h *WorkOrderHandler) GetDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	day, err := h.workOrderService.GetDay(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

// GetApplicableTasks resolves the routine and standalone tasks applying to a
// day
func (h *WorkOrderHandler) GetApplicableTasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.workOrderService.GetApplicableTasksForDay(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// AssignUsers assigns workers to a day; their task instances materialize
func (h *WorkOrderHandler) AssignUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignUsersRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workOrderService.AssignUsers(c.Request.Context(), services.AssignUsersInput{
		DayID:   id,
		UserIDs: req.UserIDs,
	}); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users assigned successfully",
	})
}

// UnassignUsers removes workers from a day; their instances are preserved
func (h *WorkOrderHandler) UnassignUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UnassignUsersRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required"`
	}

	var req UnassignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.workOrderService.UnassignUsers(id, req.UserIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users unassigned successfully",
	})
}

// ListDayServices returns a day's service links in order
func (h *WorkOrderHandler) ListDayServices(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active", "true") != "false"
	links, err := h.linkageService.ListDayServices(id, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": links})
}

// AddServiceToDay links a service to a day
func (h *WorkOrderHandler) AddServiceToDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddServiceRequest struct {
		ServiceID uint64 `json:"service_id" binding:"required"`
		Order     *int   `json:"order"`
	}

	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkageService.AddServiceToDay(c.Request.Context(), id, req.ServiceID, req.Order)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// RemoveServiceFromDay deactivates a day-service link and reports how many
// instances under it already carry recorded work
func (h *WorkOrderHandler) RemoveServiceFromDay(c *gin.Context) {
	linkID, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	orphaned, err := h.linkageService.RemoveServiceFromDay(linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemoveLinkResponse{
		Message:       "Service removed from day",
		OrphanedCount: orphaned,
	})
}

// ReorderDayServices re-numbers a day's service links by positional index
func (h *WorkOrderHandler) ReorderDayServices(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ReorderRequest struct {
		LinkIDs []uint64 `json:"link_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.linkageService.ReorderServices(id, req.LinkIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Services reordered",
	})
}

// ListDayTaskTemplates returns a day's standalone task links in order
func (h *WorkOrderHandler) ListDayTaskTemplates(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activeOnly := c.DefaultQuery("active", "true") != "false"
	links, err := h.linkageService.ListDayTaskTemplates(id, activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_templates": links})
}

// AddTaskTemplateToDay links a task template directly to a day
func (h *WorkOrderHandler) AddTaskTemplateToDay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddTaskTemplateRequest struct {
		TaskTemplateID uint64 `json:"task_template_id" binding:"required"`
		Order          *int   `json:"order"`
		IsRequired     bool   `json:"is_required"`
	}

	var req AddTaskTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkageService.AddTaskTemplateToDay(c.Request.Context(),
		id, req.TaskTemplateID, req.Order, req.IsRequired)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// RemoveTaskTemplateFromDay deactivates a standalone day-task link
func (h *WorkOrderHandler) RemoveTaskTemplateFromDay(c *gin.Context) {
	linkID, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	orphaned, err := h.linkageService.RemoveTaskTemplateFromDay(linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemoveLinkResponse{
		Message:       "Task template removed from day",
		OrphanedCount: orphaned,
	})
}

// ReorderDayTaskTemplates re-numbers a day's standalone task links
func (h *WorkOrderHandler) ReorderDayTaskTemplates(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ReorderRequest struct {
		LinkIDs []uint64 `json:"link_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.linkageService.ReorderTaskTemplates(id, req.LinkIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task templates reordered",
	})
}
