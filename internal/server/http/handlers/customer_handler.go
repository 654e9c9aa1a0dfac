package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/customers/internal/server/http/dto"
	"github.com/polkiloo/customers/internal/server/http/middleware"
)

const profileImageField = "file"

// CustomerHandler manages customer endpoints.
type CustomerHandler struct {
	facade        CustomerFacade
	maxUploadSize int64
}

// NewCustomerHandler constructs CustomerHandler accepting images up to maxUploadSize bytes.
func NewCustomerHandler(facade CustomerFacade, maxUploadSize int64) *CustomerHandler {
	return &CustomerHandler{facade: facade, maxUploadSize: maxUploadSize}
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomerViews(customers))
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	customer, err := h.facade.Customer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomerView(customer))
}

// Update handles PUT /api/v1/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	var req dto.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeStatus(c, http.StatusBadRequest, "malformed update request")
		return
	}

	customer, err := h.facade.UpdateCustomer(c.Request.Context(), id, req.ToModel())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCustomerView(customer))
}

// Delete handles DELETE /api/v1/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	if err := h.facade.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// UploadProfileImage handles POST /api/v1/customers/:id/profile-image.
func (h *CustomerHandler) UploadProfileImage(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}

	if h.maxUploadSize > 0 {
		limit := h.maxUploadSize + middleware.MultipartOverhead
		if c.Request.ContentLength > limit {
			h.tooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	header, err := c.FormFile(profileImageField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return
		}
		writeStatus(c, http.StatusBadRequest, fmt.Sprintf("multipart field %q is required", profileImageField))
		return
	}
	if header.Size == 0 {
		writeStatus(c, http.StatusBadRequest, "profile image is empty")
		return
	}
	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		h.tooLarge(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		writeStatus(c, http.StatusBadRequest, "profile image is unreadable")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeStatus(c, http.StatusBadRequest, "profile image is unreadable")
		return
	}

	imageID, err := h.facade.UploadProfileImage(c.Request.Context(), id, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileImageResponse{ProfileImageID: imageID})
}

func (h *CustomerHandler) tooLarge(c *gin.Context) {
	writeStatus(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("profile image exceeds %d bytes", h.maxUploadSize))
}

// ProfileImage handles GET /api/v1/customers/:id/profile-image.
func (h *CustomerHandler) ProfileImage(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		return
	}
	data, err := h.facade.ProfileImage(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
