package availability

import (
	"errors"
	"net/http"

	"villa/internal/shared/dates"
	"villa/internal/shared/utils/response"
	"villa/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	logger  *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, logger: logger.GetDefault()}
}

// GetUnavailableDates handles GET /api/v1/availability/unavailable-dates
// The body is the bare sorted array of YYYY-MM-DD strings.
func (c *Controller) GetUnavailableDates(ctx *gin.Context) {
	unavailable, err := c.service.UnavailableDates(ctx.Request.Context())
	if err != nil {
		c.logger.LogHTTPError(ctx, err, http.StatusInternalServerError)
		ctx.JSON(http.StatusInternalServerError, []string{})
		return
	}
	ctx.JSON(http.StatusOK, unavailable)
}

// GetQuote handles GET /api/v1/availability/quote?checkIn=YYYY-MM-DD&checkOut=YYYY-MM-DD
func (c *Controller) GetQuote(ctx *gin.Context) {
	start, err := dates.Parse(ctx.Query("checkIn"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid checkIn", nil, err.Error())
		return
	}
	end, err := dates.Parse(ctx.Query("checkOut"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid checkOut", nil, err.Error())
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrStayTooLong) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		c.logger.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute quote", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed successfully", quote, nil)
}
