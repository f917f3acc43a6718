package auth

import (
	"net/http"

	"villa/internal/shared/middleware"
	"villa/internal/shared/utils/response"
	"villa/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service      Service
	validator    *validator.Validate
	cookieName   string
	cookieSecure bool
	logger       *logger.Logger
}

func NewController(service Service, cookieName string, cookieSecure bool) *Controller {
	return &Controller{
		service:      service,
		validator:    validator.New(),
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		logger:       logger.GetDefault(),
	}
}

// Login checks the admin credentials and starts a cookie session
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	session, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if err == ErrInvalidCredentials {
			c.logger.LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.Error(ctx, http.StatusUnauthorized, "Invalid username or password", nil)
			return
		}
		c.logger.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.Error(ctx, http.StatusInternalServerError, "Failed to login", nil)
		return
	}

	c.logger.LogAuthSuccess(ctx.Request.Context(), session.Username, ctx.ClientIP())
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(c.cookieName, session.Token, int(session.ExpiresIn), "/", "", c.cookieSecure, true)
	response.Success(ctx, http.StatusOK, "Login successful", session)
}

func (c *Controller) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.cookieSecure, true)
	response.Success(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	username := ctx.GetString(middleware.ContextAdminKey)
	response.Success(ctx, http.StatusOK, "Session is valid", MeResponse{
		Username: username,
		Role:     RoleAdmin,
		IsAdmin:  true,
	})
}
