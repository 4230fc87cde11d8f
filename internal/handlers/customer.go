package handlers

import (
	"net/http"

	apierrors "github.com/andestrack/field-service-api/internal/errors"
	"github.com/andestrack/field-service-api/internal/services"
	"github.com/andestrack/field-service-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// CustomerHandler coordinates customer and faena HTTP handlers.
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	type CreateCustomerRequest struct {
		Name    string `json:"name" binding:"required"`
		TaxID   string `json:"tax_id"`
		Contact string `json:"contact"`
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(req.Name, req.TaxID, req.Contact)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomer returns a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ListCustomers returns customers with pagination
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.ListCustomers(params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateCustomer updates a customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateCustomerRequest struct {
		Name    string `json:"name" binding:"required"`
		TaxID   string `json:"tax_id"`
		Contact string `json:"contact"`
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(id, req.Name, req.TaxID, req.Contact)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted successfully",
	})
}

// CreateFaena creates a work site under a customer
func (h *CustomerHandler) CreateFaena(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateFaenaRequest struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
	}

	var req CreateFaenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	faena, err := h.customerService.CreateFaena(customerID, req.Name, req.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, faena)
}

// ListFaenas returns a customer's work sites
func (h *CustomerHandler) ListFaenas(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	faenas, err := h.customerService.ListFaenas(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"faenas": faenas})
}

// UpdateFaena updates a faena
func (h *CustomerHandler) UpdateFaena(c *gin.Context) {
	id, ok := parseIDParam(c, "faenaId")
	if !ok {
		return
	}

	type UpdateFaenaRequest struct {
		Name     string `json:"name" binding:"required"`
		Location string `json:"location"`
	}

	var req UpdateFaenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	faena, err := h.customerService.UpdateFaena(id, req.Name, req.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faena)
}

// DeleteFaena removes a faena
func (h *CustomerHandler) DeleteFaena(c *gin.Context) {
	id, ok := parseIDParam(c, "faenaId")
	if !ok {
		return
	}

	if err := h.customerService.DeleteFaena(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Faena deleted successfully",
	})
}
