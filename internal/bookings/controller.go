package bookings

import (
	"errors"
	"net/http"

	"villa/internal/shared/utils/response"
	"villa/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	logger  *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
		logger:  logger.GetDefault(),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create booking")
		return
	}

	ctx.JSON(http.StatusCreated, CreateBookingResponse{
		Success: true,
		ID:      booking.ID,
		Booking: booking,
	})
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		c.handleError(ctx, err, "Failed to list bookings")
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", result)
}

// GetBooking handles GET /api/v1/admin/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", booking)
}

// UpdateBookingStatus handles PUT /api/v1/admin/bookings/:id
func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	var req UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := c.service.SetBookingStatus(ctx.Request.Context(), ctx.Param("id"), req.Status, req.CustomEmailMessage)
	if err != nil {
		c.handleError(ctx, err, "Failed to update booking")
		return
	}

	response.Success(ctx, http.StatusOK, "Booking updated successfully", booking)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	id := ctx.Param("id")
	deleted, err := c.service.DeleteBooking(ctx.Request.Context(), id)
	if err != nil {
		c.handleError(ctx, err, "Failed to delete booking")
		return
	}

	message := "Booking deleted successfully"
	if !deleted {
		message = "Booking already removed"
	}
	response.Success(ctx, http.StatusOK, message, DeleteBookingResponse{ID: id, Deleted: deleted})
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, ErrUnavailableRange):
		response.Error(ctx, http.StatusConflict, "Selected dates are not available", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		response.Error(ctx, http.StatusConflict, "Booking has already been decided", err.Error())
	case errors.Is(err, ErrBusy):
		response.Error(ctx, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		c.logger.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.Error(ctx, http.StatusInternalServerError, fallback, nil)
	}
}
