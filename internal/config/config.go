package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API         APIConfig         `yaml:"api"`
	Shop        ShopConfig        `yaml:"shop"`
	Screen      ScreenConfig      `yaml:"screen"`
	Journal     JournalConfig     `yaml:"journal"`
	Mysql       MysqlConfig       `yaml:"mysql"`
	Log         LogConfig         `yaml:"log"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	TelegramBot TelegramBotConfig `yaml:"telegram"`

	// Warnings are non-fatal load problems for the caller to log.
	Warnings []string `yaml:"-"`
}

type APIConfig struct {
	BaseUrl string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// ShopConfig.OpaqueID is the encoded shop reference; empty means the
// primary shop reported by the API.
type ShopConfig struct {
	OpaqueID string `yaml:"opaque_id"`
}

type ScreenConfig struct {
	ToastTimeout time.Duration `yaml:"toast_timeout"`
	SingleFlight bool          `yaml:"single_flight"`
}

const (
	JournalNone   = "none"
	JournalSqlite = "sqlite"
	JournalMysql  = "mysql"
)

type JournalConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type MysqlConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type TelegramBotConfig struct {
	ChatId  string `yaml:"chat_id"`
	Token   string `yaml:"token"`
	BaseUrl string `yaml:"base_url"`
}

const (
	defaultAPITimeout     = 10 * time.Second
	defaultTelegramApiUrl = "https://api.telegram.org"
)

// Load reads the optional YAML file at path, then applies .env and process
// environment overrides on top of it.
func Load(path string) (*Config, error) {
	var warnings []string
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnings = append(warnings, fmt.Sprintf("could not load .env file: %v", err))
	}

	cfg := &Config{}
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.Warnings = warnings

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	c.API.BaseUrl = stringWithDefault("DUMMY_DATA_API_URL", c.API.BaseUrl)
	c.API.Token = stringWithDefault("DUMMY_DATA_API_TOKEN", c.API.Token)
	c.Shop.OpaqueID = stringWithDefault("DUMMY_DATA_SHOP_ID", c.Shop.OpaqueID)
	c.Journal.Driver = stringWithDefault("DUMMY_DATA_JOURNAL_DRIVER", c.Journal.Driver)
	c.Journal.DSN = stringWithDefault("DUMMY_DATA_JOURNAL_DSN", c.Journal.DSN)
	c.Log.Level = stringWithDefault("DUMMY_DATA_LOG_LEVEL", c.Log.Level)
	c.Log.File = stringWithDefault("DUMMY_DATA_LOG_FILE", c.Log.File)
	c.Metrics.Addr = stringWithDefault("DUMMY_DATA_METRICS_ADDR", c.Metrics.Addr)
	c.Mysql.Host = stringWithDefault("MYSQL_HOST", c.Mysql.Host)
	c.Mysql.Username = stringWithDefault("MYSQL_USER", c.Mysql.Username)
	c.Mysql.Password = stringWithDefault("MYSQL_PASSWORD", c.Mysql.Password)
	c.Mysql.Database = stringWithDefault("MYSQL_DATABASE", c.Mysql.Database)
	c.TelegramBot.Token = stringWithDefault("TELEGRAM_BOT_TOKEN", c.TelegramBot.Token)
	c.TelegramBot.ChatId = stringWithDefault("TELEGRAM_CHAT_ID", c.TelegramBot.ChatId)

	var err error
	if c.API.Timeout, err = durationWithDefault("DUMMY_DATA_API_TIMEOUT", c.API.Timeout); err != nil {
		return err
	}
	if c.Screen.ToastTimeout, err = durationWithDefault("DUMMY_DATA_TOAST_TIMEOUT", c.Screen.ToastTimeout); err != nil {
		return err
	}
	if c.Screen.SingleFlight, err = boolWithDefault("DUMMY_DATA_SINGLE_FLIGHT", c.Screen.SingleFlight); err != nil {
		return err
	}
	if c.Mysql.Port, err = intWithDefault("MYSQL_PORT", c.Mysql.Port); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultAPITimeout
	}
	if strings.TrimSpace(c.Journal.Driver) == "" {
		c.Journal.Driver = JournalNone
	}
	c.Journal.Driver = strings.ToLower(strings.TrimSpace(c.Journal.Driver))
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = "info"
	}
	if strings.TrimSpace(c.TelegramBot.BaseUrl) == "" {
		c.TelegramBot.BaseUrl = defaultTelegramApiUrl
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseUrl) == "" {
		return fmt.Errorf("missing required env var: %s", "DUMMY_DATA_API_URL")
	}
	if c.Screen.ToastTimeout < 0 {
		return fmt.Errorf("DUMMY_DATA_TOAST_TIMEOUT must not be negative")
	}
	switch c.Journal.Driver {
	case JournalNone:
	case JournalSqlite:
		if strings.TrimSpace(c.Journal.DSN) == "" {
			return fmt.Errorf("missing required env var: %s", "DUMMY_DATA_JOURNAL_DSN")
		}
	case JournalMysql:
		if c.Mysql.Host == "" || c.Mysql.Username == "" || c.Mysql.Database == "" {
			return fmt.Errorf("journal driver mysql requires MYSQL_HOST, MYSQL_USER and MYSQL_DATABASE")
		}
	default:
		return fmt.Errorf("unknown DUMMY_DATA_JOURNAL_DRIVER %q", c.Journal.Driver)
	}
	return nil
}
