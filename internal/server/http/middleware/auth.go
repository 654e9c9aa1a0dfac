package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/customers/internal/domain/model"
	pkgAuth "github.com/polkiloo/customers/internal/pkg/auth"
	"github.com/polkiloo/customers/internal/server/http/dto"
)

// CustomerContextKey is a gin context key for the authenticated customer.
const CustomerContextKey = "customer"

const bearerPrefix = "bearer "

// Authenticator resolves the customer a bearer token belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.Customer, error)
}

// AuthRequired ensures customer is authenticated before accessing handler.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		customer, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, pkgAuth.ErrInvalidToken.Error())
				return
			}
			abort(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.Set(CustomerContextKey, customer)
		c.Next()
	}
}

// CurrentCustomer extracts the authenticated customer from context.
func CurrentCustomer(c *gin.Context) (model.Customer, bool) {
	val, ok := c.Get(CustomerContextKey)
	if !ok {
		return model.Customer{}, false
	}
	customer, ok := val.(model.Customer)
	return customer, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewAPIError(c.Request.URL.Path, message, status))
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > len(bearerPrefix) && strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(authHeader[len(bearerPrefix):])
	}
	return ""
}

// SetAuthHeader writes the bearer token to the response.
func SetAuthHeader(c *gin.Context, token string) {
	c.Header("Authorization", "Bearer "+token)
}
