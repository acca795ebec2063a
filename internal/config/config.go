package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrReadEnv       = errors.New("config: failed to read environment")
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса. Таймауты в секундах.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Insights  InsightsConfig  `toml:"insights"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// Время жизни настроек ресторана в кэше
	SettingsTTL int `toml:"settings_ttl"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// InsightsConfig OpenAI-совместимый генератор подсказок дашборда.
// Пустой APIKey - подсказки отключены, дашборд отдает запасной текст.
type InsightsConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout int    `toml:"timeout"`
}

// RateLimitConfig лимит на дашборд: каждый запрос ходит во внешний генератор
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
	TTL     int     `toml:"ttl"`
}

// secrets переменные окружения, которые перекрывают файл
type secrets struct {
	DatabasePassword string `envconfig:"DB_PASSWORD"`
	RedisPassword    string `envconfig:"REDIS_PASSWORD"`
	InsightsAPIKey   string `envconfig:"INSIGHTS_API_KEY"`
}

// Load читает TOML файл, подставляет значения по умолчанию и секреты из окружения.
// Если рядом есть .env, он загружается; уже заданные переменные окружения не перезаписываются.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadEnv, err)
	}

	if err := applySecrets(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applySecrets(cfg *Config) error {
	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return fmt.Errorf("%w: %v", ErrReadEnv, err)
	}

	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.RedisPassword != "" {
		cfg.Redis.Password = s.RedisPassword
	}
	if s.InsightsAPIKey != "" {
		cfg.Insights.APIKey = s.InsightsAPIKey
	}

	return nil
}

// Default значения, которые действуют, если в файле поле не задано
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			SettingsTTL: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "restaurant-service",
		},
		Insights: InsightsConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 15,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     0.5,
			Burst:   5,
			TTL:     600,
		},
	}
}

// Validate проверяет значения, без которых сервис не поднимется
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Redis.SettingsTTL <= 0 {
		return fmt.Errorf("%w: redis.settings_ttl must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}
	return nil
}
