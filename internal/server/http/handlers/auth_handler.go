package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/customers/internal/server/http/dto"
	"github.com/polkiloo/customers/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/v1/customers.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeStatus(c, http.StatusBadRequest, "malformed registration request")
		return
	}

	customer, token, err := h.facade.Register(c.Request.Context(), req.ToModel())
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusCreated, dto.NewCustomerView(customer))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeStatus(c, http.StatusBadRequest, "malformed login request")
		return
	}

	customer, token, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthHeader(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Customer: dto.NewCustomerView(customer)})
}
