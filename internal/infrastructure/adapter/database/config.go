package database

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	URL             string
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
	LogLevel        string
	RetryAttempts   int
	RetryDelay      time.Duration
}

// DefaultConfig returns a Config with default pool and retry values
// Connection details always come from the application config
func DefaultConfig() *Config {
	return &Config{
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 15 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "info",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

// FromAppConfig adapts the application configuration to database configuration
func FromAppConfig(conf *config.Config) *Config {
	dbConf := DefaultConfig()
	db := conf.Database

	dbConf.URL = strings.TrimSpace(db.URL)
	dbConf.Host = db.Host
	if port := ParsePort(db.Port); port > 0 {
		dbConf.Port = port
	}
	dbConf.Username = db.Username
	dbConf.Password = db.Password
	dbConf.Database = db.Database

	if db.SSLMode != "" {
		dbConf.SSLMode = db.SSLMode
	}
	if db.MaxOpenConns > 0 {
		dbConf.MaxOpenConns = db.MaxOpenConns
	}
	if db.MaxIdleConns > 0 {
		dbConf.MaxIdleConns = db.MaxIdleConns
	}
	if db.ConnMaxLifetime > 0 {
		dbConf.ConnMaxLifetime = db.ConnMaxLifetime
	}
	if db.ConnMaxIdleTime > 0 {
		dbConf.ConnMaxIdleTime = db.ConnMaxIdleTime
	}
	if db.QueryTimeout > 0 {
		dbConf.QueryTimeout = db.QueryTimeout
	}
	if db.RetryAttempts > 0 {
		dbConf.RetryAttempts = db.RetryAttempts
	}
	if db.RetryDelay > 0 {
		dbConf.RetryDelay = db.RetryDelay
	}
	if conf.Logger.Level != "" {
		dbConf.LogLevel = strings.ToLower(conf.Logger.Level)
	}

	return dbConf
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return fmt.Errorf("invalid database URL: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("unsupported database URL scheme: %s", u.Scheme)
		}
	} else {
		if c.Host == "" {
			return errors.New("database host is required")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", c.Port)
		}
		if c.Username == "" {
			return errors.New("database username is required")
		}
		if c.Database == "" {
			return errors.New("database name is required")
		}

		validSSLModes := map[string]bool{
			"disable":     true,
			"require":     true,
			"verify-ca":   true,
			"verify-full": true,
			"prefer":      true,
		}
		if !validSSLModes[c.SSLMode] {
			return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
		}
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}

	return nil
}

// DSN returns the database connection string; a URL wins over discrete fields
func (c *Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// Target describes where the DSN points without leaking the password
func (c *Config) Target() string {
	if c.URL != "" {
		if u, err := url.Parse(c.URL); err == nil {
			return u.Host + u.Path
		}
		return "database-url"
	}
	return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.Database)
}

// ParsePort converts a port string to an int
func ParsePort(port string) int {
	p, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
