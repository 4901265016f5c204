package conf

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// AppConfig presents app conf
type AppConfig struct {
	Port          string `env:"PORT" envDefault:"8081"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"text"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName   string `env:"SERVICE_NAME" envDefault:"ms-delivery"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"delivery"`
	DBPass        string `env:"DB_PASS" envDefault:"delivery"`
	DBName        string `env:"DB_NAME" envDefault:"delivery"`
	EnableDB      string `env:"ENABLE_DB" envDefault:"true"`
	DbDebugEnable bool   `env:"DB_DEBUG_ENABLE" envDefault:"false"`

	// auth
	JWTSecret             string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES" envDefault:"60"`
	RefreshTokenTTLInDays int    `env:"REFRESH_TOKEN_TTL_IN_DAYS" envDefault:"30"`

	// gateway
	AuthServiceURL  string        `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:8082"`
	UserServiceURL  string        `env:"USER_SERVICE_URL" envDefault:"http://localhost:8083"`
	OrderServiceURL string        `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8084"`
	GeoServiceURL   string        `env:"GEO_SERVICE_URL" envDefault:"http://localhost:8085"`
	GatewayTimeout  time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"30s"`
	RateLimitRPS    int           `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"40"`
	CorsOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// geo provider
	GeoProviderURL      string        `env:"GEO_PROVIDER_URL" envDefault:"https://maps.googleapis.com/maps/api"`
	GeoProviderAPIKey   string        `env:"GEO_PROVIDER_API_KEY" envDefault:""`
	GeoProviderTimeout  time.Duration `env:"GEO_PROVIDER_TIMEOUT" envDefault:"10s"`
	DefaultLat          float64       `env:"DEFAULT_LAT" envDefault:"4.6097"`
	DefaultLng          float64       `env:"DEFAULT_LNG" envDefault:"-74.0817"`
	RouteCacheSize      int           `env:"ROUTE_CACHE_SIZE" envDefault:"512"`
	RouteCacheTTL       time.Duration `env:"ROUTE_CACHE_TTL" envDefault:"5m"`
	RouteRecalcDebounce time.Duration `env:"ROUTE_RECALC_DEBOUNCE" envDefault:"3s"`

	// tracking
	TrackingStore     string        `env:"TRACKING_STORE" envDefault:"memory"`
	RedisAddr         string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	TrackingRetention time.Duration `env:"TRACKING_RETENTION" envDefault:"12h"`
	TrackingSweepSpec string        `env:"TRACKING_SWEEP_SPEC" envDefault:"@every 10m"`

	// events
	KafkaBroker     string `env:"KAFKA_BROKER" envDefault:""`
	KafkaOrderTopic string `env:"KAFKA_ORDER_TOPIC" envDefault:"order.events"`

	// error tracking
	SentryDSN string `env:"SENTRY_DSN" envDefault:""`
}

var config AppConfig

func SetEnv() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()
	_ = env.Parse(&config)
}

func LoadEnv() AppConfig {
	return config
}

// SetConfig replaces the loaded config, used by tests.
func SetConfig(c AppConfig) {
	config = c
}
