package handlers

import (
	"affiliatenest/internal/services"

	"github.com/gin-gonic/gin"
)

const widgetContentType = "application/javascript; charset=utf-8"

type WidgetHandler struct {
	widgetService services.WidgetService
}

func NewWidgetHandler(widgetService services.WidgetService) *WidgetHandler {
	return &WidgetHandler{
		widgetService: widgetService,
	}
}

// Script serves the embeddable widget. The response body is script text on
// every path, including errors, so the embedding page never breaks.
func (h *WidgetHandler) Script(c *gin.Context) {
	script := h.widgetService.RenderScript(c.Request.Context(), c.Query("link"))
	c.Data(script.StatusCode, widgetContentType, []byte(script.Body))
}
