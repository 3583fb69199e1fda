package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Storefront    StorefrontConfig
	Catalog       CatalogConfig
	Media         MediaConfig
	Stripe        StripeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"MOBISHOP_APP_ENV" required:"true"`
	Port         string   `envconfig:"MOBISHOP_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"MOBISHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"MOBISHOP_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"MOBISHOP_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"MOBISHOP_DB_DSN"`
	SQLitePath string `envconfig:"MOBISHOP_SQLITE_PATH" default:"mobishop.db"`

	LegacyHost     string `envconfig:"MOBISHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"MOBISHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOBISHOP_DB_USER"`
	LegacyPassword string `envconfig:"MOBISHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOBISHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOBISHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOBISHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOBISHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOBISHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOBISHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOBISHOP_REDIS_URL"`
	Address      string        `envconfig:"MOBISHOP_REDIS_ADDR"`
	Password     string        `envconfig:"MOBISHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOBISHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOBISHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOBISHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOBISHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOBISHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOBISHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MOBISHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MOBISHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MOBISHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MOBISHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MOBISHOP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MOBISHOP_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MOBISHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MOBISHOP_AUTO_MIGRATE" default:"false"`
}

type StorefrontConfig struct {
	DataAPIURL     string        `envconfig:"MOBISHOP_DATA_API_URL" default:"http://localhost:8080"`
	DataAPITimeout time.Duration `envconfig:"MOBISHOP_DATA_API_TIMEOUT" default:"10s"`
	DataAPIDebug   bool          `envconfig:"MOBISHOP_DATA_API_DEBUG" default:"false"`

	CookieSecure bool          `envconfig:"MOBISHOP_COOKIE_SECURE" default:"false"`
	CookieMaxAge time.Duration `envconfig:"MOBISHOP_COOKIE_MAX_AGE" default:"720h"`
	SyncTTL      time.Duration `envconfig:"MOBISHOP_CART_SYNC_TTL" default:"720h"`

	FreeShippingThreshold string `envconfig:"MOBISHOP_FREE_SHIPPING_THRESHOLD" default:"300"`
	ShippingFee           string `envconfig:"MOBISHOP_SHIPPING_FEE" default:"79"`
}

// ShippingRule parses the configured shipping amounts.
func (s StorefrontConfig) ShippingRule() (threshold, fee decimal.Decimal, err error) {
	threshold, err = decimal.NewFromString(strings.TrimSpace(s.FreeShippingThreshold))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	fee, err = decimal.NewFromString(strings.TrimSpace(s.ShippingFee))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parsing shipping fee: %w", err)
	}
	return threshold, fee, nil
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"MOBISHOP_CATALOG_CACHE_TTL" default:"5m"`
}

type MediaConfig struct {
	Dir         string `envconfig:"MOBISHOP_MEDIA_DIR" default:"public"`
	PublicBase  string `envconfig:"MOBISHOP_MEDIA_PUBLIC_BASE" default:"/media"`
	MaxUploadMB int    `envconfig:"MOBISHOP_MAX_UPLOAD_MB" default:"50"`
}

type StripeConfig struct {
	APIKey          string `envconfig:"MOBISHOP_STRIPE_API_KEY"`
	Env             string `envconfig:"MOBISHOP_STRIPE_ENV" default:"test"`
	DefaultCurrency string `envconfig:"MOBISHOP_STRIPE_DEFAULT_CURRENCY" default:"try"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
