// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App         AppConfig         `koanf:"app"`
	Server      ServerConfig      `koanf:"server"`
	Redis       RedisConfig       `koanf:"redis"`
	Templates   TemplatesConfig   `koanf:"templates"`
	Storage     StorageConfig     `koanf:"storage"`
	Entitlement EntitlementConfig `koanf:"entitlement"`
	Billing     BillingConfig     `koanf:"billing"`
	Admin       AdminConfig       `koanf:"admin"`
	RateLimit   RateLimitConfig   `koanf:"rate_limit"`
	CORS        CORSConfig        `koanf:"cors"`
	Log         LogConfig         `koanf:"log"`
	Otel        OtelConfig        `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// TrustedProxies lists CIDRs or addresses whose forwarding headers are
	// honored. Empty means the socket peer is always the client.
	TrustedProxies  []string      `koanf:"trusted_proxies"`
}

// RedisConfig is optional: an empty URL runs the service without
// entitlement enforcement.
type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type TemplatesConfig struct {
	Dir           string `koanf:"dir"`
	DefaultID     string `koanf:"default_id"`
	ThumbnailsDir string `koanf:"thumbnails_dir"`
}

type StorageConfig struct {
	Driver   string   `koanf:"driver"`
	LocalDir string   `koanf:"local_dir"`
	S3       S3Config `koanf:"s3"`
}

type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Prefix          string `koanf:"prefix"`
	PathStyle       bool   `koanf:"path_style"`
}

type EntitlementConfig struct {
	FreeLimit     int    `koanf:"free_limit"`
	UpgradeURL    string `koanf:"upgrade_url"`
	UserIDHeader  string `koanf:"user_id_header"`
	WatermarkText string `koanf:"watermark_text"`
}

type BillingConfig struct {
	WebhookSecret   string   `koanf:"webhook_secret"`
	LifetimeMarkers []string `koanf:"lifetime_markers"`
}

type AdminConfig struct {
	Token string `koanf:"token"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		c, err := load(configPath)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Voice-to-PPT",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"templates.dir":            "templates",
		"templates.default_id":     "slate",
		"templates.thumbnails_dir": "thumbnails",

		"storage.driver":    StorageLocal,
		"storage.local_dir": "presentations",
		"storage.s3.prefix": "presentations/",

		"entitlement.free_limit":     3,
		"entitlement.upgrade_url":    "/upgrade",
		"entitlement.user_id_header": "X-RC-App-User-ID",
		"entitlement.watermark_text": "Made with Voice-to-PPT Free",

		"billing.lifetime_markers": []string{"lifetime", "149"},

		"rate_limit.requests": 60,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"*"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
			"X-RC-App-User-ID",
		},
		"cors.allow_credentials": false,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "voice-to-ppt",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"TEMPLATES_DIR":               "templates.dir",
	"DEFAULT_TEMPLATE_ID":         "templates.default_id",
	"THUMBNAILS_DIR":              "templates.thumbnails_dir",
	"STORAGE_DRIVER":              "storage.driver",
	"PRESENTATIONS_DIR":           "storage.local_dir",
	"S3_BUCKET":                   "storage.s3.bucket",
	"S3_REGION":                   "storage.s3.region",
	"S3_ENDPOINT":                 "storage.s3.endpoint",
	"S3_ACCESS_KEY_ID":            "storage.s3.access_key_id",
	"S3_SECRET_ACCESS_KEY":        "storage.s3.secret_access_key",
	"S3_PREFIX":                   "storage.s3.prefix",
	"S3_PATH_STYLE":               "storage.s3.path_style",
	"FREE_LIMIT":                  "entitlement.free_limit",
	"UPGRADE_URL":                 "entitlement.upgrade_url",
	"WATERMARK_TEXT":              "entitlement.watermark_text",
	"REVENUECAT_WEBHOOK_SECRET":   "billing.webhook_secret",
	"ADMIN_TOKEN":                 "admin.token",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Templates.Dir == "" {
		return fmt.Errorf("TEMPLATES_DIR is required")
	}

	if c.Templates.DefaultID == "" {
		return fmt.Errorf("DEFAULT_TEMPLATE_ID is required")
	}

	if c.Entitlement.FreeLimit < 1 {
		return fmt.Errorf("entitlement.free_limit must be at least 1")
	}

	if c.Entitlement.UserIDHeader == "" {
		return fmt.Errorf("entitlement.user_id_header is required")
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("PRESENTATIONS_DIR is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" || c.Storage.S3.Region == "" {
			return fmt.Errorf("S3_BUCKET and S3_REGION are required for s3 storage")
		}
		if c.Storage.S3.AccessKeyID == "" || c.Storage.S3.SecretAccessKey == "" {
			return fmt.Errorf("S3 credentials are required for s3 storage")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
