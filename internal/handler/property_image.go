package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/service"
)

type PropertyImageHandler struct {
	images *service.PropertyImageService
}

func NewPropertyImageHandler(images *service.PropertyImageService) *PropertyImageHandler {
	return &PropertyImageHandler{images: images}
}

// Upload handles POST /api/properties/:id/images. The image arrives as
// multipart form data under the "file" field.
func (h *PropertyImageHandler) Upload(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.ErrorResponse(apperrors.ErrValidation.Message, "file is required"))
		return
	}

	if fileHeader.Size > constants.MaxImageSizeBytes {
		c.JSON(http.StatusBadRequest,
			dto.ErrorResponse(apperrors.ErrValidation.Message, "file exceeds the maximum size"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !constants.AllowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest,
			dto.ErrorResponse(apperrors.ErrValidation.Message, "unsupported image type"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.WrapError(apperrors.ErrInternal, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxImageSizeBytes+1))
	if err != nil {
		respondError(c, apperrors.WrapError(apperrors.ErrInternal, err))
		return
	}
	if len(data) > constants.MaxImageSizeBytes {
		c.JSON(http.StatusBadRequest,
			dto.ErrorResponse(apperrors.ErrValidation.Message, "file exceeds the maximum size"))
		return
	}

	image, err := h.images.Add(c.Request.Context(), propertyID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(image, "Image uploaded"))
}

// List handles GET /api/properties/:id/images, metadata only.
func (h *PropertyImageHandler) List(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	images, err := h.images.GetByProperty(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(images, "Images retrieved"))
}

// Download handles GET /api/images/:id and streams the raw bytes.
func (h *PropertyImageHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.images.GetFile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// Delete handles DELETE /api/images/:id, a soft delete.
func (h *PropertyImageHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.images.Disable(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(nil, "Image deleted"))
}
