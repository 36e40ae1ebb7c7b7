package app

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-lookup/internal/config"
	handlers "github.com/Nazarious-ucu/weather-lookup/internal/handlers/http"
	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/presenter"
	"github.com/Nazarious-ucu/weather-lookup/internal/repository/sqlite"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/cache"
	loggerT "github.com/Nazarious-ucu/weather-lookup/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-lookup/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/openmeteo"
	serviceWeather "github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/weather/decorators"
	"github.com/Nazarious-ucu/weather-lookup/internal/warmer"
	fLogger "github.com/Nazarious-ucu/weather-lookup/pkg/logger"
)

// ServiceName labels logs and namespaces metrics.
const ServiceName = "weather_lookup"

const (
	shutdownTimeout = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

type lookupService interface {
	Lookup(ctx context.Context, city string) (models.Report, error)
}

// ServiceContainer holds initialized dependencies for the servers.
type ServiceContainer struct {
	LookupService lookupService
	Presenter     *presenter.Presenter
	History       *sqlite.HistoryRepository
	Warmer        *warmer.Warmer

	Router *gin.Engine
	Srv    *http.Server

	db         *sql.DB
	redis      *redis.Client
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start builds the services, serves HTTP on the configured address and
// blocks until ctx is done.
func (a *App) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", a.cfg.ServerAddress())
	if err != nil {
		a.l.Error().Err(err).Str("address", a.cfg.ServerAddress()).Msg("failed to listen")
		return err
	}
	return a.Serve(ctx, l)
}

// Serve is Start on an existing listener.
func (a *App) Serve(ctx context.Context, l net.Listener) error {
	srvContainer := a.Build(ctx)

	if srvContainer.Warmer != nil {
		if err := srvContainer.Warmer.Start(ctx); err != nil {
			a.l.Error().Err(err).Msg("cache warmer disabled")
			srvContainer.Warmer = nil
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", l.Addr().String()).Msg("HTTP server running")
		if err := srvContainer.Srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather lookup")
	case err := <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server failed")
			_ = a.Shutdown(srvContainer)
			return err
		}
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the HTTP server and the warmer, then releases storage and loggers.
func (a *App) Shutdown(srvContainer *ServiceContainer) error {
	a.l.Info().Msg("stopping weather lookup…")

	var errs []error
	if srvContainer.Srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srvContainer.Srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if srvContainer.Warmer != nil {
		srvContainer.Warmer.Stop()
	}
	if err := srvContainer.Close(); err != nil {
		errs = append(errs, err)
	}

	a.l.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// Close releases the database, the Redis connection and the file logger.
func (s *ServiceContainer) Close() error {
	var errs []error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.fileLogger != nil {
		// Sync on a regular file may return EINVAL.
		_ = s.fileLogger.Sync()
	}
	return errors.Join(errs...)
}

// Build wires logging, the upstream client, storage, cache and the router
// without starting anything. Optional parts that fail to initialise are
// logged and left out.
func (a *App) Build(ctx context.Context) *ServiceContainer {
	a.l.Debug().Msgf("initializing weather lookup with config: %+v", a.cfg)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger")
		fileLogger = zap.NewNop()
	}

	// HTTP client logging
	roundTripper := loggerT.NewRoundTripper(fileLogger, a.m)
	httpLogClient := &http.Client{Transport: roundTripper, Timeout: a.cfg.UpstreamTimeout()}

	client := openmeteo.NewClient(
		a.cfg.OpenMeteo.GeocodingURL,
		a.cfg.OpenMeteo.ForecastURL,
		httpLogClient,
		a.l,
		openmeteo.WithLanguage(a.cfg.OpenMeteo.Language),
		openmeteo.WithForecastDays(a.cfg.OpenMeteo.ForecastDays),
	)

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}
	geocoder := serviceWeather.NewBreakerGeocoder("OpenMeteoGeocoding", breakerCfg, client)
	forecaster := serviceWeather.NewBreakerForecaster("OpenMeteoForecast", breakerCfg, client)

	container := &ServiceContainer{fileLogger: fileLogger}

	if a.cfg.Storage.Enabled {
		db, dbErr := sqlite.Open(a.cfg.Storage.DSN)
		if dbErr != nil {
			a.l.Error().Err(dbErr).Msg("lookup history disabled: failed to open database")
		} else {
			container.db = db
			container.History = sqlite.NewHistoryRepository(db, a.l)
		}
	}

	rawService := serviceWeather.NewService(a.l, geocoder, forecaster)
	var lookup lookupService = rawService

	if a.cfg.Redis.Enabled {
		if cached := a.buildCache(ctx, container, rawService); cached != nil {
			lookup = cached
			// Refresh bypasses the recording layer.
			if container.History != nil {
				container.Warmer = warmer.New(container.History, cached, a.l, a.cfg.Warmer.Spec, a.cfg.Warmer.Cities)
			}
		}
	}

	if container.History != nil {
		container.LookupService = decorators.NewRecordingService(lookup, container.History, a.m, a.l)
	} else {
		container.LookupService = decorators.NewRecordingService(lookup, nil, a.m, a.l)
	}

	container.Presenter = presenter.New(container.LookupService, a.l)
	container.Router = a.router(container)
	container.Srv = &http.Server{
		Addr:              a.cfg.ServerAddress(),
		Handler:           container.Router,
		ReadHeaderTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return container
}

func (a *App) buildCache(
	ctx context.Context,
	container *ServiceContainer,
	inner *serviceWeather.Service,
) *decorators.CachedService {
	redisClient := newRedisConnection(a.cfg.RedisAddress(), a.cfg.Redis.DbType)
	reportCache := cache.NewRedisClient[models.Report](redisClient, a.l, a.cfg.CacheTTL())

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := reportCache.Ping(pingCtx); err != nil {
		a.l.Error().Err(err).Str("address", a.cfg.RedisAddress()).Msg("cache disabled: redis unreachable")
		_ = redisClient.Close()
		return nil
	}

	container.redis = redisClient
	cacheMetrics := cache.NewMetricsDecorator[models.Report](
		reportCache,
		metricsSvc.NewPromCollector(a.m.Registerer(), ServiceName),
	)
	return decorators.NewCachedService(inner, cacheMetrics, a.l)
}

func (a *App) router(container *ServiceContainer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestID())
	router.Use(a.m.HTTPMiddleware())
	router.SetHTMLTemplate(handlers.Templates())

	var (
		apiHandler  *handlers.Handler
		pageHandler *handlers.PageHandler
	)
	if container.History != nil {
		apiHandler = handlers.NewHandler(container.LookupService, container.History, a.l)
		pageHandler = handlers.NewPageHandler(container.Presenter, container.History, a.l)
	} else {
		apiHandler = handlers.NewHandler(container.LookupService, nil, a.l)
		pageHandler = handlers.NewPageHandler(container.Presenter, nil, a.l)
	}

	router.GET("/", pageHandler.Index)
	router.GET("/healthz", apiHandler.Health)
	router.GET("/metrics", gin.WrapH(a.m.Handler()))

	api := router.Group("/api")
	api.GET("/weather", apiHandler.GetWeather)
	api.GET("/view", pageHandler.View)
	api.GET("/history", apiHandler.GetHistory)

	return router
}

func newRedisConnection(connString string, dbType int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: connString, DB: dbType})
}
