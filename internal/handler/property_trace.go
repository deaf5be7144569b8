package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/dto"
	"github.com/Payphone-Digital/property-api/internal/service"
)

type PropertyTraceHandler struct {
	traces *service.PropertyTraceService
}

func NewPropertyTraceHandler(traces *service.PropertyTraceService) *PropertyTraceHandler {
	return &PropertyTraceHandler{traces: traces}
}

// List handles GET /api/properties/:id/traces.
func (h *PropertyTraceHandler) List(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	traces, err := h.traces.GetByProperty(c.Request.Context(), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(traces, "Traces retrieved"))
}

// Get handles GET /api/traces/:id.
func (h *PropertyTraceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trace, err := h.traces.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse(trace, "Trace retrieved"))
}

// Create handles POST /api/properties/:id/traces.
func (h *PropertyTraceHandler) Create(c *gin.Context) {
	propertyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePropertyTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	trace, err := h.traces.Create(c.Request.Context(), propertyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessResponse(trace, "Trace recorded"))
}
