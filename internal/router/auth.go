package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/handler"
	"github.com/Payphone-Digital/property-api/internal/middleware"
	"github.com/Payphone-Digital/property-api/internal/service"
)

func registerAuthRoutes(api *gin.RouterGroup, jwt *service.JWTService, h *handler.AuthHandler) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.RequireAuth(jwt), h.Logout)
		auth.POST("/revoke-all", middleware.RequireAuth(jwt), h.RevokeAll)
	}
}
