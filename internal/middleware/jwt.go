package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	"github.com/Payphone-Digital/property-api/internal/service"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
)

// RequireAuth validates the bearer token and loads its claims into both the
// gin context and the request context. Requests without a valid token stop
// here with 401.
func RequireAuth(jwt *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			logger.WarnWithContext(c.Request.Context(), "rejected access token").
				Err(err).
				Log()
			abortUnauthorized(c)
			return
		}

		c.Set(constants.CtxUserID, claims.UserID)
		c.Set(constants.CtxUsername, claims.Username)
		c.Set(constants.CtxRole, claims.Role)

		ctx := ctxutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = ctxutil.WithUsername(ctx, claims.Username)
		ctx = ctxutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.ErrorResponse(apperrors.ErrUnauthorized.Message))
}
