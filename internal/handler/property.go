package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
	"github.com/Payphone-Digital/property-api/internal/service"
)

type PropertyHandler struct {
	properties *service.PropertyService
}

func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// List handles GET /api/properties. Every query parameter is optional and
// the supplied ones combine conjunctively.
func (h *PropertyHandler) List(c *gin.Context) {
	var req dto.PropertyFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	filter := model.PropertyFilter{
		Name:       req.Name,
		Address:    req.Address,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		MinYear:    req.MinYear,
		MaxYear:    req.MaxYear,
		OwnerID:    req.OwnerID,
		Enabled:    req.Enabled,
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}
	service.NormalizeFilter(&filter)

	page, err := h.properties.GetFiltered(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(page, "Properties retrieved"))
}

// Get handles GET /api/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	property, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(property, "Property retrieved"))
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	property, err := h.properties.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(property, "Property created"))
}

// Update handles PUT /api/properties/:id. Price changes are rejected here,
// they go through the dedicated price route.
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if req.Price != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse(apperrors.ErrValidation.Message,
			"price can only be changed through the price endpoint"))
		return
	}

	property, err := h.properties.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(property, "Property updated"))
}

// ChangePrice handles PATCH /api/properties/:id/price.
func (h *PropertyHandler) ChangePrice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	property, err := h.properties.ChangePrice(c.Request.Context(), id, *req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(property, "Price updated"))
}

// Delete handles DELETE /api/properties/:id, a soft delete.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Property deleted"))
}
