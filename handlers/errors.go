package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"quotations/repository"
	"quotations/services"
)

// respondError maps a service or repository error onto a JSON error response.
func respondError(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, services.ErrForbidden):
		status, msg = http.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNoRecipient):
		status, msg = http.StatusUnprocessableEntity, "Quotation has no customer email"
	case errors.Is(err, services.ErrMailDisabled):
		status, msg = http.StatusServiceUnavailable, "Email delivery is not configured"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status, msg = http.StatusConflict, "Already exists"
	case errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusGatewayTimeout, "Request timed out"
	}
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": msg, "details": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": msg})
}
