package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/iguana/koalashop/internal/dto"
	"github.com/iguana/koalashop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service errors onto the error envelope. Store
// failures are logged with full context but surface as a generic kind.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("validation failed", []dto.FieldError{
			{Field: verr.Field, Message: verr.Reason},
		}))
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrCustomerHasOrders),
		errors.Is(err, service.ErrProductInUse):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out against the store", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewUnavailableError("store temporarily unavailable, retry later"))
	default:
		log.Error("store operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError())
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
}
