package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config gom toàn bộ cấu hình của service
type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	DatabaseDriver  string        `yaml:"database_driver"`
	DatabaseURI     string        `yaml:"database_uri"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`

	// MQTTURL rỗng thì không publish sự kiện
	MQTTURL string `yaml:"mqtt_url"`

	BodyLimit int `yaml:"body_limit"`
}

// Default trả về cấu hình mặc định
func Default() Config {
	return Config{
		Port:            "3000",
		LogLevel:        "info",
		DatabaseDriver:  "pgx",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		TokenTTL:        30 * time.Minute,
		BcryptCost:      10,
		BodyLimit:       4 * 1024 * 1024,
	}
}

// LoadENV nạp biến môi trường từ file .env (nếu có), file YAML trong CONFIG_FILE (nếu có),
// rồi ghi đè bằng biến môi trường.
func LoadENV() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadYAML đọc file YAML vào target
func LoadYAML(path string, target *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DatabaseDriver, "DATABASE_DRIVER")
	setString(&cfg.DatabaseURI, "POSTGRESQL_URI")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.MQTTURL, "MQTT_URL")

	if err := setInt(&cfg.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}
	if err := setInt(&cfg.MaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return err
	}
	if err := setInt(&cfg.BcryptCost, "BCRYPT_COST"); err != nil {
		return err
	}
	if err := setInt(&cfg.BodyLimit, "BODY_LIMIT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME"); err != nil {
		return err
	}
	return setDuration(&cfg.TokenTTL, "TOKEN_TTL")
}

// Validate kiểm tra các giá trị bắt buộc
func (c Config) Validate() error {
	if c.DatabaseURI == "" {
		return errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}
	if c.JWTSecret == "" {
		return errors.New("you must set your 'JWT_SECRET' environmental variable")
	}
	if c.DatabaseDriver != "pgx" && c.DatabaseDriver != "sqlite3" {
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	// 0 nghĩa là không giới hạn
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("DB_MAX_IDLE_CONNS cannot exceed DB_MAX_OPEN_CONNS")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
