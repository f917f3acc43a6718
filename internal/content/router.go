package content

import (
	"github.com/gin-gonic/gin"
)

// SetupContentRoutes registers the public landing page content
func SetupContentRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/content", controller.GetContent) // GET /api/v1/content
}

// SetupAdminContentRoutes registers content, pricing and manual block editing on a protected group
func SetupAdminContentRoutes(admin *gin.RouterGroup, controller *Controller) {
	admin.PUT("/content", controller.UpdateContent) // PUT /api/v1/admin/content
	admin.PUT("/pricing", controller.UpdatePricing) // PUT /api/v1/admin/pricing

	blocked := admin.Group("/blocked-dates")
	{
		blocked.GET("", controller.GetBlockedDates)            // GET    /api/v1/admin/blocked-dates
		blocked.PUT("", controller.ReplaceBlockedDates)        // PUT    /api/v1/admin/blocked-dates
		blocked.POST("", controller.AddBlockedDate)            // POST   /api/v1/admin/blocked-dates
		blocked.DELETE("/:date", controller.RemoveBlockedDate) // DELETE /api/v1/admin/blocked-dates/2024-12-25
	}
}
