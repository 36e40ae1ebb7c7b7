package http

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/presenter"
)

const recentCities = 8

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type viewPresenter interface {
	Lookup(ctx context.Context, current presenter.View, city string, onLoading func(presenter.View)) presenter.View
}

type cityLister interface {
	RecentCities(ctx context.Context, limit int) ([]string, error)
}

type pageData struct {
	View    presenter.View
	History []string
}

// PageHandler renders the weather window.
type PageHandler struct {
	presenter viewPresenter
	history   cityLister
	logger    zerolog.Logger
}

func NewPageHandler(p viewPresenter, history cityLister, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		presenter: p,
		history:   history,
		logger:    logger.With().Str("component", "PageHandler").Logger(),
	}
}

// Index shows an empty window, or the result of a lookup when the form was
// submitted with a city.
func (h *PageHandler) Index(c *gin.Context) {
	view := presenter.NewView()

	if city, submitted := c.GetQuery("city"); submitted {
		ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		view = h.presenter.Lookup(ctxWithTimeout, view, city, nil)
	}

	data := pageData{View: view}
	if h.history != nil {
		cities, err := h.history.RecentCities(c.Request.Context(), recentCities)
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to load recent cities")
		}
		data.History = cities
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// View returns the window state as JSON, for scripted clients of the page.
func (h *PageHandler) View(c *gin.Context) {
	view := presenter.NewView()
	if city, submitted := c.GetQuery("city"); submitted {
		ctxWithTimeout, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		view = h.presenter.Lookup(ctxWithTimeout, view, city, nil)
	}
	c.JSON(http.StatusOK, view)
}
