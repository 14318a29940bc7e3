package routes

import (
	"affiliatenest/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAffiliateRoutes sets up program, link and payout routes. Tracking is
// public; everything else requires authentication.
func SetupAffiliateRoutes(r *gin.RouterGroup, affiliateHandler *handlers.AffiliateHandler, authRequired gin.HandlerFunc) {
	affiliate := r.Group("/affiliate")
	{
		affiliate.GET("/track/:link", affiliateHandler.Track)

		protected := affiliate.Group("")
		protected.Use(authRequired)
		{
			protected.POST("/program", affiliateHandler.CreateProgram)
			protected.GET("/programs", affiliateHandler.ListPrograms)
			protected.POST("/generate-link", affiliateHandler.GenerateLink)
			protected.POST("/payout", affiliateHandler.Payout)
		}
	}
}
