package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT,default=8080"`
	AppDebug bool   `env:"APP_DEBUG,default=false"`
	LogFile  string `env:"LOG_FILE,default=./logs/app.log"`

	DB    DBConfig
	Redis RedisConfig
	Auth  AuthConfig
	Mail  MailConfig

	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:3000/"`
	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:3000"`

	MirrorCacheTTL  time.Duration `env:"MIRROR_CACHE_TTL,default=30s"`
	AuthRateLimit   int           `env:"AUTH_RATE_LIMIT,default=20"`
	AuthRateWindow  time.Duration `env:"AUTH_RATE_WINDOW,default=1m"`
	ReminderCron    string        `env:"REMINDER_CRON,default=@every 1m"`
	ReminderWorkers int           `env:"REMINDER_WORKERS,default=4"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST,default=localhost"`
	Port     string `env:"DB_PORT,default=5432"`
	User     string `env:"DB_USER,default=postgres"`
	Password string `env:"DB_PASSWORD,default=postgres"`
	Name     string `env:"DB_NAME,default=placebetween"`
	SSLMode  string `env:"DB_SSLMODE,default=disable"`
	// DATABASE_URL wins over the discrete fields when set.
	URL        string `env:"DATABASE_URL"`
	MaxRetries int    `env:"DB_MAX_RETRIES,default=10"`
}

func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT,default=6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

// Enabled is false when no REDIS_HOST is configured; caching and distributed
// rate limiting are skipped then.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET,default=change-me"`
	AccessTTL   time.Duration `env:"JWT_ACCESS_TTL,default=24h"`
	RememberTTL time.Duration `env:"JWT_REMEMBER_TTL,default=720h"`
	ResetTTL    time.Duration `env:"JWT_RESET_TTL,default=15m"`
	VerifyTTL   time.Duration `env:"JWT_VERIFY_TTL,default=48h"`
	BcryptCost  int           `env:"BCRYPT_COST,default=12"`
}

type MailConfig struct {
	Provider string `env:"MAIL_PROVIDER,default=loops"`

	LoopsAPIKey  string `env:"LOOPS_API_KEY"`
	LoopsBaseURL string `env:"LOOPS_BASE_URL,default=https://app.loops.so/api/v1"`

	WelcomeTemplate  string `env:"LOOPS_WELCOME_TRANSACTIONAL_ID"`
	VerifyTemplate   string `env:"LOOPS_VERIFY_TRANSACTIONAL_ID"`
	ResetTemplate    string `env:"LOOPS_PASSWORD_RESET_TRANSACTIONAL_ID"`
	ReminderTemplate string `env:"LOOPS_REMINDER_TRANSACTIONAL_ID"`

	AWSRegion string        `env:"AWS_REGION,default=eu-west-1"`
	SESSender string        `env:"SES_EMAIL"`
	Timeout   time.Duration `env:"MAIL_TIMEOUT,default=10s"`
}

// Load reads an optional .env file and decodes the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) FrontendLink(path string) string {
	return strings.TrimRight(c.FrontendURL, "/") + "/" + strings.TrimLeft(path, "/")
}
