package content

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

// GetContent handles GET /api/v1/content
func (c *Controller) GetContent(ctx *gin.Context) {
	content, err := c.service.GetContent(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err, "Failed to fetch content")
		return
	}
	response.Success(ctx, http.StatusOK, "Content retrieved successfully", content)
}

// UpdateContent handles PUT /api/v1/admin/content
func (c *Controller) UpdateContent(ctx *gin.Context) {
	var req UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	content, err := c.service.UpdateContent(ctx.Request.Context(), req)
	if err != nil {
		c.handleError(ctx, err, "Failed to save content")
		return
	}
	response.Success(ctx, http.StatusOK, "Content saved successfully", content)
}

// UpdatePricing handles PUT /api/v1/admin/pricing
func (c *Controller) UpdatePricing(ctx *gin.Context) {
	var req UpdatePricingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	content, err := c.service.UpdatePricing(ctx.Request.Context(), req)
	if err != nil {
		c.handleError(ctx, err, "Failed to save pricing")
		return
	}
	response.Success(ctx, http.StatusOK, "Pricing saved successfully", content.Pricing())
}

// GetBlockedDates handles GET /api/v1/admin/blocked-dates
func (c *Controller) GetBlockedDates(ctx *gin.Context) {
	blocked, err := c.service.BlockedDates(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err, "Failed to fetch blocked dates")
		return
	}
	response.Success(ctx, http.StatusOK, "Blocked dates retrieved successfully", blocked)
}

// ReplaceBlockedDates handles PUT /api/v1/admin/blocked-dates
func (c *Controller) ReplaceBlockedDates(ctx *gin.Context) {
	var req ReplaceBlockedDatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	blocked, err := c.service.ReplaceBlockedDates(ctx.Request.Context(), req.BlockedDates)
	if err != nil {
		c.handleError(ctx, err, "Failed to save blocked dates")
		return
	}
	response.Success(ctx, http.StatusOK, "Blocked dates saved successfully", blocked)
}

// AddBlockedDate handles POST /api/v1/admin/blocked-dates
func (c *Controller) AddBlockedDate(ctx *gin.Context) {
	var req BlockedDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	added, err := c.service.AddBlockedDate(ctx.Request.Context(), req.Date)
	if err != nil {
		c.handleError(ctx, err, "Failed to block date")
		return
	}
	c.respondBlockedDate(ctx, req.Date, added, "Date blocked", "Date was already blocked")
}

// RemoveBlockedDate handles DELETE /api/v1/admin/blocked-dates/:date
func (c *Controller) RemoveBlockedDate(ctx *gin.Context) {
	date := ctx.Param("date")
	removed, err := c.service.RemoveBlockedDate(ctx.Request.Context(), date)
	if err != nil {
		c.handleError(ctx, err, "Failed to unblock date")
		return
	}
	c.respondBlockedDate(ctx, date, removed, "Date unblocked", "Date was not blocked")
}

func (c *Controller) respondBlockedDate(ctx *gin.Context, date string, changed bool, changedMsg, unchangedMsg string) {
	blocked, err := c.service.BlockedDates(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err, "Failed to fetch blocked dates")
		return
	}

	message := changedMsg
	if !changed {
		message = unchangedMsg
	}
	response.Success(ctx, http.StatusOK, message, BlockedDateResponse{
		Date:         date,
		Changed:      changed,
		BlockedDates: blocked,
	})
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrValidation) {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}
	c.logger.LogHTTPError(ctx, err, http.StatusInternalServerError)
	response.Error(ctx, http.StatusInternalServerError, fallback, nil)
}
