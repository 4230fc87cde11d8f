package handlers

import (
	"net/http"

	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/andestrack/field-service-api/internal/models"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CatalogHandler coordinates service, task template, field template and
// lookup HTTP handlers, plus the service-level linkage operations (routine
// task links and dependency edges).
type CatalogHandler struct {
	catalogService *services.CatalogService
	linkageService *services.LinkageService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *services.CatalogService, linkageService *services.LinkageService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		linkageService: linkageService,
	}
}

// CreateService creates a new service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	type CreateServiceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.CreateService(req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetService returns a service with its routine task links
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogService.GetService(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// ListServices returns all services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.catalogService.ListServices()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": list})
}

// UpdateService updates a service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateServiceRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	service, err := h.catalogService.UpdateService(id, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// AddTaskTemplateToService links a task template to a service as a routine
// task, backfilling instances on days already using the service.
func (h *CatalogHandler) AddTaskTemplateToService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddTaskTemplateRequest struct {
		TaskTemplateID uint64 `json:"task_template_id" binding:"required"`
		Order          *int   `json:"order"`
		IsRequired     bool   `json:"is_required"`
		DayNumber      *int   `json:"day_number"`
	}

	var req AddTaskTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkageService.AddTaskTemplateToService(c.Request.Context(),
		serviceID, req.TaskTemplateID, req.Order, req.IsRequired, req.DayNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// UpdateServiceTaskTemplate updates a routine task link
func (h *CatalogHandler) UpdateServiceTaskTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	type UpdateLinkRequest struct {
		IsRequired bool `json:"is_required"`
		DayNumber  *int `json:"day_number"`
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkageService.UpdateServiceTaskTemplate(id, req.IsRequired, req.DayNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// RemoveTaskTemplateFromService deletes a routine task link
func (h *CatalogHandler) RemoveTaskTemplateFromService(c *gin.Context) {
	id, ok := parseIDParam(c, "linkId")
	if !ok {
		return
	}

	if err := h.linkageService.RemoveTaskTemplateFromService(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task template removed from service",
	})
}

// CreateDependency adds a prerequisite edge between two routine task links
func (h *CatalogHandler) CreateDependency(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateDependencyRequest struct {
		DependentID    uint64 `json:"dependent_id" binding:"required"`
		PrerequisiteID uint64 `json:"prerequisite_id" binding:"required"`
	}

	var req CreateDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dep, err := h.linkageService.CreateServiceTaskDependency(services.CreateDependencyInput{
		ServiceID:      serviceID,
		DependentID:    req.DependentID,
		PrerequisiteID: req.PrerequisiteID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dep)
}

// ListDependencies returns a service's dependency edges
func (h *CatalogHandler) ListDependencies(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	deps, err := h.linkageService.ListServiceTaskDependencies(serviceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dependencies": deps})
}

// DeleteDependency removes one dependency edge
func (h *CatalogHandler) DeleteDependency(c *gin.Context) {
	id, ok := parseIDParam(c, "depId")
	if !ok {
		return
	}

	if err := h.linkageService.RemoveServiceTaskDependency(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dependency deleted successfully",
	})
}

// CreateTaskTemplate creates a new task template
func (h *CatalogHandler) CreateTaskTemplate(c *gin.Context) {
	type CreateTaskTemplateRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.catalogService.CreateTaskTemplate(req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTaskTemplate returns a task template with its form fields
func (h *CatalogHandler) GetTaskTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.catalogService.GetTaskTemplate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// ListTaskTemplates returns all task templates
func (h *CatalogHandler) ListTaskTemplates(c *gin.Context) {
	templates, err := h.catalogService.ListTaskTemplates()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_templates": templates})
}

// UpdateTaskTemplate renames a task template
func (h *CatalogHandler) UpdateTaskTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskTemplateRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateTaskTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.catalogService.UpdateTaskTemplate(id, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTaskTemplate removes a task template with its fields and links
func (h *CatalogHandler) DeleteTaskTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTaskTemplate(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task template deleted successfully",
	})
}

// CreateFieldTemplate appends a field to a task template's form
func (h *CatalogHandler) CreateFieldTemplate(c *gin.Context) {
	taskTemplateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateFieldTemplateRequest struct {
		Label          string  `json:"label" binding:"required"`
		FieldType      string  `json:"field_type" binding:"required"`
		IsRequired     bool    `json:"is_required"`
		ValueSchema    string  `json:"value_schema"`
		LookupEntityID *uint64 `json:"lookup_entity_id"`
	}

	var req CreateFieldTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	field, err := h.catalogService.CreateFieldTemplate(services.CreateFieldTemplateInput{
		TaskTemplateID: taskTemplateID,
		Label:          req.Label,
		FieldType:      models.FieldType(req.FieldType),
		IsRequired:     req.IsRequired,
		ValueSchema:    req.ValueSchema,
		LookupEntityID: req.LookupEntityID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, field)
}

// ListFieldTemplates returns a task template's fields in form order
func (h *CatalogHandler) ListFieldTemplates(c *gin.Context) {
	taskTemplateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fields, err := h.catalogService.ListFieldTemplates(taskTemplateID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"field_templates": fields})
}

// UpdateFieldTemplate updates a form field
func (h *CatalogHandler) UpdateFieldTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "fieldId")
	if !ok {
		return
	}

	type UpdateFieldTemplateRequest struct {
		Label       string `json:"label" binding:"required"`
		IsRequired  bool   `json:"is_required"`
		ValueSchema string `json:"value_schema"`
	}

	var req UpdateFieldTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	field, err := h.catalogService.UpdateFieldTemplate(id, req.Label, req.IsRequired, req.ValueSchema)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, field)
}

// DeleteFieldTemplate removes a form field; sibling order is compacted
func (h *CatalogHandler) DeleteFieldTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "fieldId")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteFieldTemplate(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Field template deleted successfully",
	})
}

// CreateLookupEntity creates a named option list
func (h *CatalogHandler) CreateLookupEntity(c *gin.Context) {
	type CreateLookupEntityRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateLookupEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entity, err := h.catalogService.CreateLookupEntity(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity)
}

// GetLookupEntity returns a lookup entity with its options
func (h *CatalogHandler) GetLookupEntity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entity, err := h.catalogService.GetLookupEntity(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}

// AddLookupOption appends an option to a lookup entity
func (h *CatalogHandler) AddLookupOption(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddLookupOptionRequest struct {
		Value string `json:"value" binding:"required"`
	}

	var req AddLookupOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	option, err := h.catalogService.AddLookupOption(id, req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, option)
}

// DeleteLookupEntity removes a lookup entity and its options
func (h *CatalogHandler) DeleteLookupEntity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteLookupEntity(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lookup entity deleted successfully",
	})
}

// DeleteLookupOption removes one option; sibling order is compacted
func (h *CatalogHandler) DeleteLookupOption(c *gin.Context) {
	id, ok := parseIDParam(c, "optionId")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteLookupOption(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lookup option deleted successfully",
	})
}
