package availability

import "github.com/gin-gonic/gin"

// SetupAvailabilityRoutes configures the public availability routes
func SetupAvailabilityRoutes(rg *gin.RouterGroup, controller *Controller) {
	availability := rg.Group("/availability")
	{
		availability.GET("/unavailable-dates", controller.GetUnavailableDates) // GET /api/v1/availability/unavailable-dates
		availability.GET("/quote", controller.GetQuote)                        // GET /api/v1/availability/quote
	}
}
