package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Records RecordsConfig
	Catalog CatalogConfig
	Cart    CartConfig
	Redis   RedisConfig
	Email   EmailConfig
	CORS    CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WWA_APP_ENV" required:"true"`
	Port         string `envconfig:"WWA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WWA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WWA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RecordsConfig points at the external records backend the catalog is
// sourced from. APIKey and BaseID stay server-side; the proxy injects them.
type RecordsConfig struct {
	APIKey   string        `envconfig:"WWA_RECORDS_API_KEY"`
	BaseID   string        `envconfig:"WWA_RECORDS_BASE_ID"`
	Table    string        `envconfig:"WWA_RECORDS_TABLE" default:"Products"`
	Endpoint string        `envconfig:"WWA_RECORDS_ENDPOINT" default:"https://api.airtable.com/v0"`
	Timeout  time.Duration `envconfig:"WWA_RECORDS_TIMEOUT" default:"30s"`
}

func (r RecordsConfig) HasCredentials() bool {
	return r.APIKey != "" && r.BaseID != ""
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"WWA_CATALOG_CACHE_TTL" default:"5m"`
	PageSize int           `envconfig:"WWA_CATALOG_PAGE_SIZE" default:"100"`
}

type CartConfig struct {
	// StorageKeyPrefix namespaces serialized carts in the key-value store.
	StorageKeyPrefix string `envconfig:"WWA_CART_STORAGE_KEY_PREFIX" default:"wildWestCart"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WWA_REDIS_URL"`
	Address      string        `envconfig:"WWA_REDIS_ADDR"`
	Password     string        `envconfig:"WWA_REDIS_PASSWORD"`
	DB           int           `envconfig:"WWA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WWA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WWA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WWA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WWA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WWA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// EmailConfig mirrors the transactional email provider settings. The
// defaults are the provider's unconfigured placeholders; the notification
// service treats a config still carrying them as not ready.
type EmailConfig struct {
	ServiceID  string `envconfig:"WWA_EMAIL_SERVICE_ID" default:"service_your_service_id"`
	TemplateID string `envconfig:"WWA_EMAIL_TEMPLATE_ID" default:"template_order_confirmation"`
	PublicKey  string `envconfig:"WWA_EMAIL_PUBLIC_KEY" default:"your_public_key_here"`
	AdminEmail string `envconfig:"WWA_EMAIL_ADMIN" default:"ryan@ryanosmunphoto.com"`
	FromEmail  string `envconfig:"WWA_EMAIL_FROM" default:"orders@wildwestwallart.com"`
	FromName   string `envconfig:"WWA_EMAIL_FROM_NAME" default:"Wild West Wall Art"`
}

// Placeholder values shipped as defaults. A config still carrying any of
// them has never been pointed at a real provider account.
const (
	PlaceholderEmailServiceID  = "service_your_service_id"
	PlaceholderEmailTemplateID = "template_order_confirmation"
	PlaceholderEmailPublicKey  = "your_public_key_here"
)

// Ready reports whether every provider identifier has been replaced with a
// real value.
func (e EmailConfig) Ready() bool {
	return e.ServiceID != PlaceholderEmailServiceID &&
		e.TemplateID != PlaceholderEmailTemplateID &&
		e.PublicKey != PlaceholderEmailPublicKey
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WWA_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,https://wildwestwallart.com"`
}
