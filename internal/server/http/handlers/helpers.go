package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
	"github.com/polkiloo/customers/internal/server/http/dto"
)

const internalErrorMessage = "internal server error"

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = internalErrorMessage
	}
	writeStatus(c, status, message)
}

func writeStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewAPIError(c.Request.URL.Path, message, status))
}

func customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeStatus(c, http.StatusBadRequest, "invalid customer id")
		return 0, false
	}
	return id, true
}
