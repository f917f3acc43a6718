package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the public booking form endpoint
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", controller.CreateBooking) // POST /api/v1/bookings
	}
}

// SetupAdminBookingRoutes registers the dashboard endpoints on an already protected group
func SetupAdminBookingRoutes(admin *gin.RouterGroup, controller *Controller) {
	bookings := admin.Group("/bookings")
	{
		bookings.GET("", controller.ListBookings)            // GET /api/v1/admin/bookings?status=PENDING&page=1&limit=20
		bookings.GET("/:id", controller.GetBooking)          // GET /api/v1/admin/bookings/:id
		bookings.PUT("/:id", controller.UpdateBookingStatus) // PUT /api/v1/admin/bookings/:id
		bookings.DELETE("/:id", controller.DeleteBooking)    // DELETE /api/v1/admin/bookings/:id
	}
}

// Route definitions for reference:
//
// PUBLIC
// POST   /api/v1/bookings              - Submit a stay request, stored as PENDING
// Request body: { "name": "Ana", "email": "ana@example.com", "guests": 2, "checkIn": "2025-07-01", "checkOut": "2025-07-05" }
//
// ADMIN
// GET    /api/v1/admin/bookings        - List bookings, newest first
// GET    /api/v1/admin/bookings/:id    - Get a booking
// PUT    /api/v1/admin/bookings/:id    - Accept or cancel a PENDING booking
// Request body: { "status": "ACCEPTED", "customEmailMessage": "See you in July!" }
// DELETE /api/v1/admin/bookings/:id    - Remove a booking (idempotent)
