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
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AMARA_APP_ENV" required:"true"`
	Port         string `envconfig:"AMARA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AMARA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AMARA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"AMARA_DB_DSN"`

	Host     string `envconfig:"AMARA_DB_HOST"`
	Port     int    `envconfig:"AMARA_DB_PORT" default:"5432"`
	User     string `envconfig:"AMARA_DB_USER"`
	Password string `envconfig:"AMARA_DB_PASSWORD"`
	Name     string `envconfig:"AMARA_DB_NAME"`
	SSLMode  string `envconfig:"AMARA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AMARA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AMARA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AMARA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AMARA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AMARA_REDIS_URL"`
	Address      string        `envconfig:"AMARA_REDIS_ADDRESS"`
	Password     string        `envconfig:"AMARA_REDIS_PASSWORD"`
	DB           int           `envconfig:"AMARA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AMARA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AMARA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AMARA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AMARA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AMARA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"AMARA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"AMARA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"AMARA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"AMARA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AMARA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AMARA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AMARA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AMARA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AMARA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AMARA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"AMARA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AMARA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AMARA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"AMARA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AMARA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// CheckoutConfig carries the storefront pricing knobs. Amounts are parsed
// as decimal strings so totals never round through floats.
type CheckoutConfig struct {
	FreeShippingThreshold string `envconfig:"AMARA_FREE_SHIPPING_THRESHOLD" default:"50"`
	FlatShippingFee       string `envconfig:"AMARA_FLAT_SHIPPING_FEE" default:"5.99"`

	threshold decimal.Decimal
	flatFee   decimal.Decimal
}

// NewCheckoutConfig builds a checkout config from decimal strings.
func NewCheckoutConfig(freeShippingThreshold, flatShippingFee string) (CheckoutConfig, error) {
	cfg := CheckoutConfig{
		FreeShippingThreshold: freeShippingThreshold,
		FlatShippingFee:       flatShippingFee,
	}
	if err := cfg.validate(); err != nil {
		return CheckoutConfig{}, err
	}
	return cfg, nil
}

func (c *CheckoutConfig) validate() error {
	threshold, err := decimal.NewFromString(strings.TrimSpace(c.FreeShippingThreshold))
	if err != nil {
		return fmt.Errorf("invalid free shipping threshold %q: %w", c.FreeShippingThreshold, err)
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(c.FlatShippingFee))
	if err != nil {
		return fmt.Errorf("invalid flat shipping fee %q: %w", c.FlatShippingFee, err)
	}
	if threshold.IsNegative() || fee.IsNegative() {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	c.threshold = threshold
	c.flatFee = fee
	return nil
}

// FreeShippingOver returns the subtotal above which shipping is free.
func (c CheckoutConfig) FreeShippingOver() decimal.Decimal {
	return c.threshold
}

// ShippingFee returns the flat fee charged below the threshold.
func (c CheckoutConfig) ShippingFee() decimal.Decimal {
	return c.flatFee
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AMARA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
