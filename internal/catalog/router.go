package catalog

import (
	"github.com/gin-gonic/gin"

	"superpack/internal/shared/middleware"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing the add-on catalogue
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.ListEvents)        // GET /api/v1/events - Browse add-on events
		publicEvents.GET("/:eventId", controller.GetEvent) // GET /api/v1/events/:eventId - Event details
	}

	// Admin routes - catalogue management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminEvents.POST("", controller.CreateEvent)            // POST /api/v1/admin/events - Create event
		adminEvents.PUT("/:eventId", controller.UpdateEvent)    // PUT /api/v1/admin/events/:eventId - Update event
		adminEvents.DELETE("/:eventId", controller.DeleteEvent) // DELETE /api/v1/admin/events/:eventId - Delete event
	}
}
