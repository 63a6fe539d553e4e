package http

import (
	"net/http"

	"github.com/iguana/koalashop/internal/dto"
	"github.com/iguana/koalashop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	svc service.CustomerService
	log *zap.Logger
}

func NewCustomerHandler(svc service.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log}
}

func toCustomerInput(req dto.CustomerRequest) service.CustomerInput {
	return service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	customer, err := h.svc.CreateCustomer(c.Request.Context(), toCustomerInput(req))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// SearchCustomers matches ?q= against name, email and phone.
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.svc.SearchCustomers(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	customer, err := h.svc.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	customer, err := h.svc.UpdateCustomer(c.Request.Context(), id, toCustomerInput(req))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	if err := h.svc.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted successfully"})
}

// ListCustomerOrders returns the customer's most recent orders with items.
func (h *CustomerHandler) ListCustomerOrders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	orders, err := h.svc.ListCustomerOrders(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
