package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port               string `yaml:"port"`
	Env                string `yaml:"env"`
	ResultsCSVPath     string `yaml:"results_csv_path"`
	SQLitePath         string `yaml:"sqlite_path"`
	ResultsTable       string `yaml:"results_table"`
	DatabaseURL        string `yaml:"database_url"`
	InstagramBaseURL   string `yaml:"instagram_base_url"`
	InstagramAppID     string `yaml:"instagram_app_id"`
	InstagramSessionID string `yaml:"instagram_session_id"`
	FetchTimeoutSecs   int    `yaml:"fetch_timeout_secs"`
}

// ConfigFileEnv 可选YAML配置文件路径的环境变量
const ConfigFileEnv = "ACCOUNT_ANALYZE_CONFIG"

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Defaults 默认配置
func Defaults() *Config {
	return &Config{
		Port:             "8080",
		Env:              "development",
		ResultsCSVPath:   "account_analysis_results.csv",
		SQLitePath:       "account_analysis.db",
		ResultsTable:     "account_analysis",
		InstagramBaseURL: "https://www.instagram.com",
		InstagramAppID:   "936619743392459",
		FetchTimeoutSecs: 30,
	}
}

// Load 加载配置：默认值 -> YAML文件(可选) -> 环境变量
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("APP_ENV", cfg.Env)
	cfg.ResultsCSVPath = getEnv("RESULTS_CSV_PATH", cfg.ResultsCSVPath)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.ResultsTable = getEnv("RESULTS_TABLE", cfg.ResultsTable)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.InstagramBaseURL = getEnv("INSTAGRAM_BASE_URL", cfg.InstagramBaseURL)
	cfg.InstagramAppID = getEnv("INSTAGRAM_APP_ID", cfg.InstagramAppID)
	cfg.InstagramSessionID = getEnv("INSTAGRAM_SESSION_ID", cfg.InstagramSessionID)
	if v := os.Getenv("FETCH_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FetchTimeoutSecs = n
		}
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q, must be between 1 and 65535", c.Port)
	}
	if c.ResultsCSVPath == "" {
		return fmt.Errorf("results csv path is empty")
	}
	if c.SQLitePath == "" {
		return fmt.Errorf("sqlite path is empty")
	}
	if !tableNameRegex.MatchString(c.ResultsTable) {
		return fmt.Errorf("invalid results table name %q", c.ResultsTable)
	}
	if c.InstagramBaseURL == "" {
		return fmt.Errorf("instagram base url is empty")
	}
	if c.FetchTimeoutSecs <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %d", c.FetchTimeoutSecs)
	}
	return nil
}

// FetchTimeout 单次抓取超时
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSecs) * time.Second
}

// Addr HTTP监听地址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
