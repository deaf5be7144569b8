package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/dto"
	"github.com/Payphone-Digital/property-api/internal/service"
)

type OwnerHandler struct {
	owners *service.OwnerService
}

func NewOwnerHandler(owners *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{owners: owners}
}

// List handles GET /api/owners.
func (h *OwnerHandler) List(c *gin.Context) {
	owners, err := h.owners.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(owners, "Owners retrieved"))
}

// Get handles GET /api/owners/:id.
func (h *OwnerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	owner, err := h.owners.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(owner, "Owner retrieved"))
}

// Create handles POST /api/owners.
func (h *OwnerHandler) Create(c *gin.Context) {
	var req dto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	owner, err := h.owners.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(owner, "Owner created"))
}

// Update handles PUT /api/owners/:id.
func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	owner, err := h.owners.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(owner, "Owner updated"))
}

// Delete handles DELETE /api/owners/:id. Owners with enabled properties
// cannot be removed.
func (h *OwnerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.owners.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Owner deleted"))
}
