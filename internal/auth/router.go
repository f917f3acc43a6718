package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers login, logout and the session probe.
// requireAdmin guards /me.
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller, requireAdmin gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", controller.Login)
		auth.POST("/logout", controller.Logout)
		auth.GET("/me", requireAdmin, controller.GetMe)
	}
}
