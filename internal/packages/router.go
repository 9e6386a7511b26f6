package packages

import (
	"github.com/gin-gonic/gin"

	"superpack/internal/shared/middleware"
)

func SetupPackageRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - browsing and price resolution need no account
	publicPackages := router.Group("/packages")
	{
		publicPackages.GET("", controller.ListPackages)                              // GET /api/v1/packages - Browse packages
		publicPackages.GET("/:packageId", controller.GetPackage)                     // GET /api/v1/packages/:packageId - Package details
		publicPackages.GET("/:packageId/price", controller.ResolvePrice)             // GET /api/v1/packages/:packageId/price - Resolve a price
		publicPackages.GET("/:packageId/completeness", controller.CheckCompleteness) // GET /api/v1/packages/:packageId/completeness - Matrix gaps
	}

	// Admin routes - package and pricing matrix management
	adminPackages := router.Group("/admin/packages")
	adminPackages.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminPackages.POST("", controller.CreatePackage)              // POST /api/v1/admin/packages - Create package
		adminPackages.PUT("/:packageId", controller.UpdatePackage)    // PUT /api/v1/admin/packages/:packageId - Update package
		adminPackages.DELETE("/:packageId", controller.DeletePackage) // DELETE /api/v1/admin/packages/:packageId - Soft delete

		// Pricing matrix authoring
		adminPackages.PUT("/:packageId/matrix/cell", controller.SetCell)                         // PUT /api/v1/admin/packages/:packageId/matrix/cell - Set one price cell
		adminPackages.POST("/:packageId/matrix/periods", controller.AddPeriod)                   // POST /api/v1/admin/packages/:packageId/matrix/periods - Add period
		adminPackages.DELETE("/:packageId/matrix/periods/:periodIndex", controller.RemovePeriod) // DELETE /api/v1/admin/packages/:packageId/matrix/periods/:periodIndex
	}
}
