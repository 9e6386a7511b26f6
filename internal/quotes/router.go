package quotes

import (
	"github.com/gin-gonic/gin"

	"superpack/internal/shared/middleware"
)

func SetupQuoteRoutes(router *gin.RouterGroup, controller Controller) {
	// All quote operations require an authenticated agent.
	quotes := router.Group("/quotes")
	quotes.Use(middleware.JWTAuth())
	{
		quotes.POST("", controller.CreateQuote)               // POST /api/v1/quotes - Create quote
		quotes.GET("", controller.ListQuotes)                 // GET /api/v1/quotes - List quotes
		quotes.GET("/:quoteId", controller.GetQuote)          // GET /api/v1/quotes/:quoteId - Quote details
		quotes.PUT("/:quoteId", controller.UpdateQuoteParams) // PUT /api/v1/quotes/:quoteId - Edit parameters
		quotes.DELETE("/:quoteId", controller.DeleteQuote)    // DELETE /api/v1/quotes/:quoteId - Delete quote

		// Package linkage and price sync
		quotes.POST("/:quoteId/package", controller.LinkPackage)           // POST /api/v1/quotes/:quoteId/package - Link package
		quotes.DELETE("/:quoteId/package", controller.UnlinkPackage)       // DELETE /api/v1/quotes/:quoteId/package - Unlink
		quotes.POST("/:quoteId/recalculate", controller.Recalculate)       // POST /api/v1/quotes/:quoteId/recalculate - Recalculate price
		quotes.PUT("/:quoteId/custom-price", controller.SetCustomPrice)    // PUT /api/v1/quotes/:quoteId/custom-price - Override price
		quotes.POST("/:quoteId/reset-price", controller.ResetToCalculated) // POST /api/v1/quotes/:quoteId/reset-price - Drop override
		quotes.POST("/:quoteId/retry-sync", controller.RetrySync)          // POST /api/v1/quotes/:quoteId/retry-sync - Retry after failure

		// Add-on events
		quotes.POST("/:quoteId/events", controller.AddEvent)               // POST /api/v1/quotes/:quoteId/events - Attach event
		quotes.DELETE("/:quoteId/events/:eventId", controller.RemoveEvent) // DELETE /api/v1/quotes/:quoteId/events/:eventId - Detach
		quotes.GET("/:quoteId/events/total", controller.EventsTotal)       // GET /api/v1/quotes/:quoteId/events/total - Currency-aware total
	}
}
