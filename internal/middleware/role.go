package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/model"
)

// RequireRole allows the request through only when the authenticated role
// is one of the listed roles. Must run after RequireAuth.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := model.Role(c.GetString(constants.CtxRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.ErrorResponse(apperrors.ErrForbidden.Message))
	}
}

// RequireAdmin is shorthand for the write routes.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(model.RoleAdmin)
}
