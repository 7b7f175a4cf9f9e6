package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr           string        `env:"HTTP_ADDR" env-default:":8080"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" env-default:"postgres"`
	DSN          string `env:"DATABASE_DSN" env-required:"true"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
}

type AuthConfig struct {
	Secret             string `env:"JWT_SECRET" env-required:"true"`
	Issuer             string `env:"JWT_ISSUER" env-default:"quizhub-api"`
	Audience           string `env:"JWT_AUDIENCE" env-default:"quizhub-web"`
	AccessTokenMinutes int    `env:"JWT_ACCESS_TOKEN_MINUTES" env-default:"30"`
	RefreshTokenDays   int    `env:"REFRESH_TOKEN_DAYS" env-default:"7"`

	// Provisioned at startup when both are set; registration never grants admin.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenMinutes) * time.Minute
}

func (a AuthConfig) RefreshTokenTTL() time.Duration {
	return time.Duration(a.RefreshTokenDays) * 24 * time.Hour
}

type UploadConfig struct {
	Dir     string `env:"UPLOAD_DIR" env-default:"./uploads"`
	BaseURL string `env:"UPLOAD_BASE_URL" env-default:"/uploads"`
}

type AIConfig struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	Model        string `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}

type Config struct {
	Env          string `env:"APP_ENV" env-default:"development"`
	LogLevel     string `env:"LOG_LEVEL" env-default:"info"`
	SeedDemoData bool   `env:"SEED_DEMO_DATA" env-default:"false"`

	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Uploads  UploadConfig
	AI       AIConfig
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
