package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" env-default:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" env-default:"300"`
	AutoMigrate        bool   `env:"DB_AUTO_MIGRATE" env-default:"true"`
	ApplicationName    string `env:"DB_APPLICATION_NAME" env-default:"travelapi"`
	// ConnectAttempts bounds the startup ping retries; the delay doubles between attempts.
	ConnectAttempts   int           `env:"DB_CONNECT_ATTEMPTS" env-default:"5"`
	ConnectRetryDelay time.Duration `env:"DB_CONNECT_RETRY_DELAY" env-default:"1s"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint     string        `env:"MINIO_ENDPOINT"`
	AccessKey    string        `env:"MINIO_ACCESS_KEY"`
	SecretKey    string        `env:"MINIO_SECRET_KEY"`
	Bucket       string        `env:"MINIO_BUCKET"`
	UseSSL       bool          `env:"MINIO_USE_SSL" env-default:"false"`
	SignedURLTTL time.Duration `env:"MINIO_SIGNED_URL_TTL" env-default:"1h"`
	Region       string        `env:"MINIO_REGION"`
	// PublicEndpoint is the host signed URLs are issued for when clients cannot reach
	// Endpoint directly (e.g. "minio:9000" inside compose vs "localhost:9000" outside).
	PublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT"`
}

// RedisConfig holds the session/cache store settings. An empty URL keeps sessions in memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" env-default:"10"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" env-default:"3s"`
	VisaCacheTTL time.Duration `env:"VISA_CACHE_TTL" env-default:"24h"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
	Issuer   string        `env:"JWT_ISSUER" env-default:"travelapi"`
}

// CalendarConfig holds Google Calendar credentials. Sync is disabled unless all of
// ClientID, ClientSecret and RefreshToken are set.
type CalendarConfig struct {
	ClientID     string        `env:"CALENDAR_CLIENT_ID"`
	ClientSecret string        `env:"CALENDAR_CLIENT_SECRET"`
	RefreshToken string        `env:"CALENDAR_REFRESH_TOKEN"`
	CalendarID   string        `env:"CALENDAR_ID" env-default:"primary"`
	BaseURL      string        `env:"CALENDAR_BASE_URL" env-default:"https://www.googleapis.com/calendar/v3"`
	Timeout      time.Duration `env:"CALENDAR_TIMEOUT" env-default:"5s"`
}

// Enabled reports whether calendar sync has credentials.
func (c CalendarConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// RateLimitConfig bounds requests per client IP on the auth endpoints.
type RateLimitConfig struct {
	AuthPerMinute int `env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"20"`
	AuthBurst     int `env:"RATE_LIMIT_AUTH_BURST" env-default:"5"`
}

// TracingConfig mirrors the standard OTEL_* variables the exporter setup depends on.
type TracingConfig struct {
	Disabled    bool   `env:"OTEL_SDK_DISABLED" env-default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" env-default:"travelapi"`
	Protocol    string `env:"OTEL_EXPORTER_OTLP_PROTOCOL" env-default:"grpc"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Sampler     string `env:"OTEL_TRACES_SAMPLER" env-default:"parentbased_traceidratio"`
	SamplerArg  string `env:"OTEL_TRACES_SAMPLER_ARG" env-default:"1.0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string `env:"APP_HOST" env-default:"localhost:8080"`
	Port          string `env:"PORT" env-default:"8080"`
	Timezone      string `env:"APP_TIMEZONE" env-default:"Local"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`
	MaxUploadSize int    `env:"MAX_UPLOAD_BYTES" env-default:"20971520"`
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Calendar      CalendarConfig
	RateLimit     RateLimitConfig
	Tracing       TracingConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}

// Location resolves Timezone. Expiry dates are calendar dates in this zone.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
