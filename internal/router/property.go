package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/handler"
	"github.com/Payphone-Digital/property-api/internal/middleware"
	"github.com/Payphone-Digital/property-api/internal/service"
)

func registerPropertyRoutes(
	api *gin.RouterGroup,
	jwt *service.JWTService,
	properties *handler.PropertyHandler,
	images *handler.PropertyImageHandler,
	traces *handler.PropertyTraceHandler,
) {
	props := api.Group("/properties", middleware.RequireAuth(jwt))
	{
		props.GET("", properties.List)
		props.GET("/:id", properties.Get)
		props.GET("/:id/images", images.List)
		props.GET("/:id/traces", traces.List)

		admin := props.Group("", middleware.RequireAdmin())
		{
			admin.POST("", properties.Create)
			admin.PUT("/:id", properties.Update)
			admin.PATCH("/:id/price", properties.ChangePrice)
			admin.DELETE("/:id", properties.Delete)
			admin.POST("/:id/images", images.Upload)
			admin.POST("/:id/traces", traces.Create)
		}
	}

	imgs := api.Group("/images", middleware.RequireAuth(jwt))
	{
		imgs.GET("/:id", images.Download)
		imgs.DELETE("/:id", middleware.RequireAdmin(), images.Delete)
	}

	trcs := api.Group("/traces", middleware.RequireAuth(jwt))
	{
		trcs.GET("/:id", traces.Get)
	}
}
