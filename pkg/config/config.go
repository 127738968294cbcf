package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"

	CatalogHTTP  = "http"
	CatalogMySQL = "mysql"
)

type Config struct {
	AppEnv    string `yaml:"app_env"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	HTTPPort int `yaml:"http_port"`
	GRPCPort int `yaml:"grpc_port"`

	SnapshotKey string        `yaml:"snapshot_key"`
	Storage     StorageConfig `yaml:"storage"`
	Catalog     CatalogConfig `yaml:"catalog"`
}

type StorageConfig struct {
	// Backend is "file" or "redis".
	Backend   string `yaml:"backend"`
	Dir       string `yaml:"dir"`
	RedisAddr string `yaml:"redis_addr"`
}

type CatalogConfig struct {
	// Backend is "http" or "mysql".
	Backend  string        `yaml:"backend"`
	BaseURL  string        `yaml:"base_url"`
	MySQLDSN string        `yaml:"mysql_dsn"`
	Timeout  time.Duration `yaml:"timeout"`
}

func Default() Config {
	return Config{
		AppEnv:    "dev",
		LogLevel:  "info",
		LogFormat: "json",
		HTTPPort:  8080,
		GRPCPort:  50051,
		Storage: StorageConfig{
			Backend:   StorageFile,
			Dir:       ".cart",
			RedisAddr: "localhost:6379",
		},
		Catalog: CatalogConfig{
			Backend:  CatalogHTTP,
			BaseURL:  "http://localhost:3333",
			MySQLDSN: "root:root@tcp(localhost:3306)/shop?parseTime=true",
			Timeout:  5 * time.Second,
		},
	}
}

// Load starts from Default, merges the YAML file at path when path is not
// empty, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.AppEnv = getEnv("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.HTTPPort = getEnvInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = getEnvInt("GRPC_PORT", cfg.GRPCPort)
	cfg.SnapshotKey = getEnv("CART_SNAPSHOT_KEY", cfg.SnapshotKey)
	cfg.Storage.Backend = getEnv("CART_STORAGE", cfg.Storage.Backend)
	cfg.Storage.Dir = getEnv("CART_STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.RedisAddr = getEnv("REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Catalog.Backend = getEnv("CART_CATALOG", cfg.Catalog.Backend)
	cfg.Catalog.BaseURL = getEnv("CATALOG_URL", cfg.Catalog.BaseURL)
	cfg.Catalog.MySQLDSN = getEnv("MYSQL_DSN", cfg.Catalog.MySQLDSN)
	cfg.Catalog.Timeout = getEnvDuration("CATALOG_TIMEOUT", cfg.Catalog.Timeout)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile, StorageRedis:
	default:
		return fmt.Errorf("invalid storage backend %q (want %q or %q)", c.Storage.Backend, StorageFile, StorageRedis)
	}
	switch c.Catalog.Backend {
	case CatalogHTTP, CatalogMySQL:
	default:
		return fmt.Errorf("invalid catalog backend %q (want %q or %q)", c.Catalog.Backend, CatalogHTTP, CatalogMySQL)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("invalid catalog timeout %s", c.Catalog.Timeout)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
