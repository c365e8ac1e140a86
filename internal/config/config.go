package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Redis  RedisConfig  `yaml:"redis"`
	Files  FilesConfig  `yaml:"files"`
	CORS   CORSConfig   `yaml:"cors"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path optionally mirrors logs into a size-capped file.
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// AuthConfig controls bearer JWT checks. With Enabled false the caller is
// taken from the X-User-ID header.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
}

// RedisConfig locates the notification queue. An empty Addr delivers
// notifications inline.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type FilesConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// Addr is the host:port the HTTP server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "taskboard.db",
		},
		Log: LogConfig{
			Level:    "info",
			MaxBytes: 10 << 20,
		},
		Redis: RedisConfig{
			Key: "notifications:queue",
		},
		Files: FilesConfig{
			Dir:    "uploads",
			Prefix: "/files",
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
	}

	if path := os.Getenv("TASKBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TASKBOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKBOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKBOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("TASKBOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TASKBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("TASKBOARD_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if secret := os.Getenv("TASKBOARD_AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if enabled := os.Getenv("TASKBOARD_AUTH_ENABLED"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKBOARD_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = v
	}
	if addr := os.Getenv("TASKBOARD_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if dir := os.Getenv("TASKBOARD_FILES_DIR"); dir != "" {
		cfg.Files.Dir = dir
	}
	if origins := os.Getenv("TASKBOARD_CORS_ORIGINS"); origins != "" {
		cfg.CORS.Origins = splitList(origins)
	}

	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return Config{}, fmt.Errorf("auth enabled but no secret configured")
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
