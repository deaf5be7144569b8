package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/pkg/logger"
)

// respondError translates a service error into the envelope plus the right
// status code. Unknown errors never leak their text to the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	message := apperrors.GetErrorMessage(err)

	if status >= 500 {
		logger.ErrorWithContext(c.Request.Context(), "request failed").
			String("path", c.Request.URL.Path).
			Err(err).
			Log()
	}

	c.JSON(status, dto.ErrorResponse(message))
}

// respondBindingError maps gin binding failures to a 400 with per-field
// messages when the failure came from the validator.
func respondBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, fieldErrorMessage(fe))
		}
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrValidation),
			dto.ErrorResponse(apperrors.ErrValidation.Message, messages...))
		return
	}

	c.JSON(apperrors.ToHTTPStatus(apperrors.ErrValidation),
		dto.ErrorResponse(apperrors.ErrValidation.Message, "invalid request body"))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "base64":
		return fmt.Sprintf("%s must be base64 encoded", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(apperrors.ToHTTPStatus(apperrors.ErrValidation),
			dto.ErrorResponse(apperrors.ErrValidation.Message,
				fmt.Sprintf("%s must be a positive integer", name)))
		return 0, false
	}
	return uint(id), true
}
