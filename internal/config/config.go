// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	AppEnv  string `mapstructure:"APP_ENV"`
	BaseURL string `mapstructure:"BASE_URL"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`

	RedisURL string `mapstructure:"REDIS_URL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	OTPTTL            time.Duration `mapstructure:"OTP_TTL"`
	OTPRateWindow     time.Duration `mapstructure:"OTP_RATE_WINDOW"`
	OTPRateMax        int           `mapstructure:"OTP_RATE_MAX"`
	OTPSweepInterval  time.Duration `mapstructure:"OTP_SWEEP_INTERVAL"`
	OTPReturnToClient bool          `mapstructure:"OTP_RETURN_TO_CLIENT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`

	ATUsername string `mapstructure:"AT_USERNAME"`
	ATAPIKey   string `mapstructure:"AT_API_KEY"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
	AWSBucket          string `mapstructure:"AWS_S3_BUCKET"`
	UploadDir          string `mapstructure:"UPLOAD_DIR"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]interface{}{
	"PORT":                  "8080",
	"APP_ENV":               EnvDevelopment,
	"BASE_URL":              "http://localhost:8080",
	"DB_DRIVER":             DriverPostgres,
	"DATABASE_URL":          "",
	"DB_HOST":               "localhost",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "",
	"DB_NAME":               "wodlog",
	"DB_PORT":               "5432",
	"DB_SSLMODE":            "disable",
	"REDIS_URL":             "",
	"JWT_SECRET":            "",
	"JWT_ISSUER":            "wodlog",
	"TOKEN_TTL":             30 * 24 * time.Hour,
	"OTP_TTL":               10 * time.Minute,
	"OTP_RATE_WINDOW":       5 * time.Minute,
	"OTP_RATE_MAX":          3,
	"OTP_SWEEP_INTERVAL":    time.Hour,
	"OTP_RETURN_TO_CLIENT":  false,
	"SMTP_HOST":             "",
	"SMTP_PORT":             "587",
	"SMTP_PASSWORD":         "",
	"EMAIL_FROM":            "",
	"AT_USERNAME":           "",
	"AT_API_KEY":            "",
	"AWS_REGION":            "",
	"AWS_ACCESS_KEY_ID":     "",
	"AWS_SECRET_ACCESS_KEY": "",
	"AWS_S3_BUCKET":         "",
	"UPLOAD_DIR":            "./uploads",
	"CORS_ALLOWED_ORIGINS":  "*",
}

// developmentSecret signs tokens when JWT_SECRET is unset in development.
const developmentSecret = "wodlog-development-secret"

// Load reads .env files (if present) and the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = developmentSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == EnvDevelopment }
func (c *Config) IsProduction() bool  { return c.AppEnv == EnvProduction }

// Validate rejects settings that are unsafe or cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if c.IsProduction() && c.OTPReturnToClient {
		errs = append(errs, errors.New("OTP_RETURN_TO_CLIENT must not be enabled in production"))
	}
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverMemory {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.DBDriver))
	}
	for name, d := range map[string]time.Duration{
		"TOKEN_TTL":          c.TokenTTL,
		"OTP_TTL":            c.OTPTTL,
		"OTP_RATE_WINDOW":    c.OTPRateWindow,
		"OTP_SWEEP_INTERVAL": c.OTPSweepInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.OTPRateMax <= 0 {
		errs = append(errs, errors.New("OTP_RATE_MAX must be positive"))
	}
	return errors.Join(errs...)
}

// DSN returns DATABASE_URL, or a key/value DSN built from the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
