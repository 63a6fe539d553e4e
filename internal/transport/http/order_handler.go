package http

import (
	"net/http"

	"github.com/iguana/koalashop/internal/dto"
	"github.com/iguana/koalashop/internal/models"
	"github.com/iguana/koalashop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func toOrderInput(req dto.OrderRequest) (service.OrderInput, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return service.OrderInput{}, &service.ValidationError{Field: "customer_id", Reason: "must be a uuid"}
	}
	items := make([]service.LineItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return service.OrderInput{}, &service.ValidationError{Field: "order_items.product_id", Reason: "must be a uuid"}
		}
		items = append(items, service.LineItemInput{
			ProductID: productID,
			Quantity:  it.Quantity,
			WeightOz:  it.WeightOz,
			UnitPrice: it.UnitPrice,
		})
	}
	return service.OrderInput{
		CustomerID: customerID,
		OrderName:  req.OrderName,
		Status:     models.OrderStatus(req.Status),
		Items:      items,
	}, nil
}

// CreateOrder godoc
// @Summary Create an order with its line items
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.OrderRequest true "Proposed order"
// @Success 201 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/v1/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in, err := toOrderInput(req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	order, err := h.svc.CreateOrder(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders godoc
// @Summary List all orders with customer and line items
// @Tags orders
// @Produce json
// @Success 200 {object} map[string][]models.Order
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder godoc
// @Summary Fetch one order with customer and line items
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} models.Order
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	order, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrder godoc
// @Summary Replace an order and its full line item set
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Param order body dto.OrderRequest true "Replacement order"
// @Success 200 {object} models.Order
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in, err := toOrderInput(req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	order, err := h.svc.UpdateOrder(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder godoc
// @Summary Delete an order and its line items
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.log, &service.ValidationError{Field: "id", Reason: "must be a uuid"})
		return
	}

	if err := h.svc.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted successfully"})
}
