package domain

import (
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/models"
	"github.com/jeonnam-stay/jeonnam-stay/internal/app/pages"
	"github.com/jeonnam-stay/jeonnam-stay/internal/observability/metrics"
)

type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	return &BaseHandler{Logger: logger}
}

func (h *BaseHandler) newLayoutData(title, activeNav string, content templ.Component) models.LayoutTempl {
	return models.LayoutTempl{
		Title:     title,
		Content:   content,
		Nav:       models.MainNav,
		ActiveNav: activeNav,
	}
}

func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	start := time.Now()
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.Logger.Error("Failed to render component", zap.Error(err))
	}
	metrics.Get().RenderDuration.Record(c.Request.Context(), time.Since(start).Seconds())
}

// RenderPage wraps content in the layout for full page loads, or renders the
// bare component for HTMX partial swaps.
func (h *BaseHandler) RenderPage(c *gin.Context, title, activeNav string, content templ.Component) {
	isHTMX := c.GetHeader("HX-Request") == "true"
	if isHTMX {
		h.Render(c, 200, content)
	} else {
		layoutData := h.newLayoutData(title, activeNav, content)
		h.Render(c, 200, pages.LayoutPage(layoutData))
	}
}
