package routes

import (
	"affiliatenest/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupWidgetRoutes sets up the public embeddable widget script route.
func SetupWidgetRoutes(r *gin.RouterGroup, widgetHandler *handlers.WidgetHandler) {
	r.GET("/widget.js", widgetHandler.Script)
}
