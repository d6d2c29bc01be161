package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Реализации блокировки захвата слота
const (
	LockerLocal = "local"
	LockerRedis = "redis"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Claim     ClaimConfig     `toml:"claim"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Notifier  NotifierConfig  `toml:"notifier"`
	Schedule  ScheduleConfig  `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig подключение к redis для распределённой блокировки
type RedisConfig struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

// ClaimConfig настройки захвата слота
type ClaimConfig struct {
	Locker          string `toml:"locker"`
	TimeoutMs       int    `toml:"timeout_ms"`
	LockTTLMs       int    `toml:"lock_ttl_ms"`
	RetryIntervalMs int    `toml:"retry_interval_ms"`
}

// Timeout ограничение на всю попытку захвата.
// После applyDefaults всегда положительно: 0 превращается в 3000 мс.
func (c ClaimConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// LockTTL время жизни redis-блокировки
func (c ClaimConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMs) * time.Millisecond
}

// RetryInterval пауза между попытками взять redis-блокировку
func (c ClaimConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}

// RateLimitConfig ограничение публичного создания бронирований по IP
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// NotifierConfig сервис уведомлений клиентов, таймаут в секундах
type NotifierConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// ScheduleConfig параметры расписаний
type ScheduleConfig struct {
	DefaultScheduleID int64 `toml:"default_schedule_id"`
}

// Load читает конфигурацию из TOML файла.
// Переменные окружения из .env (если он есть) подставляются вместо ${VAR}.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и проверяет результат
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "carwash-crm"
	}

	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}

	if c.Claim.Locker == "" {
		c.Claim.Locker = LockerLocal
	}
	if c.Claim.TimeoutMs == 0 {
		c.Claim.TimeoutMs = 3000
	}
	if c.Claim.LockTTLMs == 0 {
		c.Claim.LockTTLMs = 10000
	}
	if c.Claim.RetryIntervalMs == 0 {
		c.Claim.RetryIntervalMs = 25
	}

	// 20 запросов в минуту
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 20.0 / 60.0
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}

	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 5
	}

	if c.Schedule.DefaultScheduleID == 0 {
		c.Schedule.DefaultScheduleID = 1
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database host and dbname are required for postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Claim.Locker {
	case LockerLocal:
	case LockerRedis:
		if c.Redis.Address == "" {
			return errors.New("redis address is required for redis locker")
		}
		if c.Claim.LockTTLMs <= c.Claim.TimeoutMs {
			return errors.New("claim lock_ttl_ms must be greater than timeout_ms")
		}
	default:
		return fmt.Errorf("unknown claim locker %q", c.Claim.Locker)
	}

	if c.Claim.TimeoutMs < 0 {
		return errors.New("claim timeout_ms must not be negative")
	}

	if c.Notifier.Enabled && c.Notifier.URL == "" {
		return errors.New("notifier url is required when notifier is enabled")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate_limit rps and burst must be positive")
	}

	return nil
}
