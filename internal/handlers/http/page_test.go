package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "github.com/Nazarious-ucu/weather-lookup/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/presenter"
	"github.com/Nazarious-ucu/weather-lookup/pkg/logger"
)

func newPageRouter(t *testing.T, svc *mockService, hist *mockHistory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := logger.NewLogger("", "page_handler_test")
	require.NoError(t, err)

	var h *handlers.PageHandler
	if hist == nil {
		h = handlers.NewPageHandler(presenter.New(svc, l), nil, l)
	} else {
		h = handlers.NewPageHandler(presenter.New(svc, l), hist, l)
	}

	r := gin.New()
	r.SetHTMLTemplate(handlers.Templates())
	r.GET("/", h.Index)
	r.GET("/api/view", h.View)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndex_Initial(t *testing.T) {
	svc := &mockService{}
	rec := get(newPageRouter(t, svc, nil), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="location">—</span>`)
	assert.Contains(t, body, `<div id="status">Ready.</div>`)
	assert.Contains(t, body, `Get Weather`)
	svc.AssertNumberOfCalls(t, "Lookup", 0)
}

func TestIndex_Submitted(t *testing.T) {
	svc := &mockService{}
	svc.On("Lookup", mock.Anything, "Lviv").Return(models.Report{
		Location: models.Location{Display: "Lviv, Ukraine"},
		Current:  models.CurrentWeather{TemperatureC: 15, WindSpeedKmh: 5, Time: "2026-10-14T09:00", Description: "Fog"},
		Forecast: []models.DailyForecast{{Date: "2026-10-14", HighC: 16, LowC: 8.5}},
	}, nil).Once()

	hist := &mockHistory{}
	hist.On("RecentCities", mock.Anything, 8).Return([]string{"Lviv", "Kyiv"}, nil).Once()

	rec := get(newPageRouter(t, svc, hist), "/?city=Lviv")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<span id="location">Lviv, Ukraine</span>`)
	assert.Contains(t, body, `15.0 °C  /  59.0 °F`)
	assert.Contains(t, body, `<span id="wind">5.0 km/h</span>`)
	assert.Contains(t, body, `<li>2026-10-14  High: 16.0°C  Low: 8.5°C</li>`)
	assert.Contains(t, body, `<div id="status">Done.</div>`)
	assert.Contains(t, body, `href="/?city=Kyiv"`)
	svc.AssertExpectations(t)
	hist.AssertExpectations(t)
}

func TestIndex_SubmittedBlank(t *testing.T) {
	svc := &mockService{}
	rec := get(newPageRouter(t, svc, nil), "/?city=+")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<div id="status">Enter a city.</div>`)
	svc.AssertNumberOfCalls(t, "Lookup", 0)
}

func TestView_JSON(t *testing.T) {
	svc := &mockService{}
	svc.On("Lookup", mock.Anything, "Atlantis").Return(models.Report{}, models.ErrCityNotFound).Once()
	svc.On("Lookup", mock.Anything, "Lviv").Return(models.Report{}, errors.New("i/o timeout")).Once()

	r := newPageRouter(t, svc, nil)

	var v presenter.View
	rec := get(r, "/api/view?city=Atlantis")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "City not found.", v.Status)
	assert.Equal(t, "—", v.Location)

	rec = get(r, "/api/view?city=Lviv")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "Network error.", v.Status)
}

func TestView_Presenter_ContextCarriesDeadline(t *testing.T) {
	svc := &mockService{}
	svc.On("Lookup", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), "Lviv").Return(models.Report{}, models.ErrWeatherUnavailable).Once()

	rec := get(newPageRouter(t, svc, nil), "/api/view?city=Lviv")
	assert.Contains(t, rec.Body.String(), `"status":"Weather unavailable."`)
	svc.AssertExpectations(t)
}
