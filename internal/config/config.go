package config

import (
	"net"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type OpenMeteo struct {
	GeocodingURL string `envconfig:"OPEN_METEO_GEOCODING_URL" default:"https://geocoding-api.open-meteo.com/v1/search"`
	ForecastURL  string `envconfig:"OPEN_METEO_FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast"`
	Language     string `envconfig:"OPEN_METEO_LANGUAGE" default:"en"`
	ForecastDays int    `envconfig:"OPEN_METEO_FORECAST_DAYS" default:"7"`
	Timeout      int    `envconfig:"OPEN_METEO_TIMEOUT" default:"10"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Redis struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	DbType   int    `envconfig:"REDIS_DB_TYPE" default:"0"`
	LiveTime int    `envconfig:"REDIS_LIVE_TIME_MINUTES" default:"15"`
}

type Storage struct {
	Enabled bool   `envconfig:"HISTORY_ENABLED" default:"true"`
	DSN     string `envconfig:"HISTORY_DSN" default:"file:weather-lookup.db?cache=shared&mode=rwc"`
}

type Warmer struct {
	Spec   string `envconfig:"WARMER_SPEC" default:"@every 30m"`
	Cities int    `envconfig:"WARMER_CITIES" default:"5"`
}

type Config struct {
	OpenMeteo OpenMeteo
	Server    Server
	Breaker   Breaker
	Redis     Redis
	Storage   Storage
	Warmer    Warmer

	LogLevel    string `envconfig:"LOG_LEVEL" default:"debug"`
	LogsPath    string `envconfig:"LOGS_PATH" default:"./log/weather-lookup.log"`
	HTTPLogPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/weather-lookup-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c Config) RedisAddress() string {
	return net.JoinHostPort(c.Redis.Host, c.Redis.Port)
}

func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.OpenMeteo.Timeout) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.LiveTime) * time.Minute
}
