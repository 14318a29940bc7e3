package routes

import (
	"affiliatenest/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up registration, verification and login routes.
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, registerLimiter, loginLimiter gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", registerLimiter, authHandler.Register)
		auth.GET("/verify/:token", authHandler.Verify)
		auth.POST("/login", loginLimiter, authHandler.Login)
		auth.GET("/test-email", authHandler.TestEmail)
	}
}
