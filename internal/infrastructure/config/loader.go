package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every application environment variable
const EnvPrefix = "IMG"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// envOverride maps environment variables onto a config key
// The first non-empty variable wins
type envOverride struct {
	key   string
	names []string
}

// envOverrides lists the prefixed names first and the legacy deployment names after them
var envOverrides = []envOverride{
	{"server.host", []string{"IMG_SERVER_HOST"}},
	{"server.port", []string{"IMG_SERVER_PORT", "PORT"}},
	{"server.staticDir", []string{"IMG_SERVER_STATIC_DIR"}},
	{"server.frontendURL", []string{"IMG_FRONTEND_URL", "FRONTEND_URL"}},

	{"database.url", []string{"IMG_DATABASE_URL", "DATABASE_URL"}},
	{"database.host", []string{"IMG_DB_HOST"}},
	{"database.port", []string{"IMG_DB_PORT"}},
	{"database.username", []string{"IMG_DB_USERNAME"}},
	{"database.password", []string{"IMG_DB_PASSWORD"}},
	{"database.database", []string{"IMG_DB_NAME"}},
	{"database.sslMode", []string{"IMG_DB_SSL_MODE"}},

	{"logger.level", []string{"IMG_LOGGER_LEVEL"}},
	{"logger.format", []string{"IMG_LOGGER_FORMAT"}},

	{"auth.jwtSecret", []string{"IMG_JWT_SECRET", "JWT_SECRET"}},

	{"imageProvider.apiKey", []string{"IMG_CLIPDROP_API_KEY", "CLIPDROP_API"}},
	{"imageProvider.model", []string{"IMG_CLIPDROP_MODEL", "CLIPDROP_MODEL"}},
	{"imageProvider.baseURL", []string{"IMG_CLIPDROP_BASE_URL"}},

	{"payment.keyID", []string{"IMG_RAZORPAY_KEY_ID", "RAZORPAY_KEY_ID"}},
	{"payment.keySecret", []string{"IMG_RAZORPAY_KEY_SECRET", "RAZORPAY_KEY_SECRET"}},
	{"payment.currency", []string{"IMG_CURRENCY", "CURRENCY"}},
}

// intOverrides are numeric settings that only apply when the value parses
var intOverrides = []envOverride{
	{"database.maxOpenConns", []string{"IMG_DB_MAX_OPEN_CONNS"}},
	{"database.maxIdleConns", []string{"IMG_DB_MAX_IDLE_CONNS"}},
	{"database.queryTimeout", []string{"IMG_DB_QUERY_TIMEOUT_SECONDS"}},
	{"database.retryAttempts", []string{"IMG_DB_RETRY_ATTEMPTS"}},
	{"auth.tokenTTL", []string{"IMG_TOKEN_TTL_SECONDS"}},
	{"auth.bcryptCost", []string{"IMG_BCRYPT_COST"}},
	{"credits.signupGrant", []string{"IMG_SIGNUP_CREDITS"}},
	{"transaction.queueSize", []string{"IMG_TRANSACTION_QUEUE_SIZE"}},
	{"transaction.lockTimeoutMs", []string{"IMG_TRANSACTION_LOCK_TIMEOUT_MS"}},
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	// Defaults and the environment are enough to run without a file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 75)      // seconds, covers a 60s provider call
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.staticDir", "./client/dist")
	v.SetDefault("server.allowedOrigins", []string{
		"http://localhost:5173",
		"https://imagify.onrender.com",
		"https://imagify-frontend.onrender.com",
	})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("auth.tokenTTL", 3600) // seconds
	v.SetDefault("auth.bcryptCost", 10)

	v.SetDefault("credits.signupGrant", 5)

	v.SetDefault("imageProvider.baseURL", "https://clipdrop-api.co/text-to-image/v1")
	v.SetDefault("imageProvider.timeout", 60) // seconds

	v.SetDefault("payment.baseURL", "https://api.razorpay.com/v1")
	v.SetDefault("payment.currency", "INR")
	v.SetDefault("payment.timeout", 15) // seconds

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerSecond", 0.5)
	v.SetDefault("rateLimit.burst", 5)

	v.SetDefault("transaction.queueSize", 100)
	v.SetDefault("transaction.lockTimeoutMs", 5000)
	v.SetDefault("transaction.maxRetries", 5)
	v.SetDefault("transaction.lockCleanupInterval", 60) // seconds
}

// getEnvironment reads IMG_ENV and falls back to NODE_ENV
func getEnvironment() string {
	env := os.Getenv("IMG_ENV")
	if env == "" {
		env = os.Getenv("NODE_ENV")
	}
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes environment variables win over file values
func processEnvOverrides(v *viper.Viper) {
	for _, o := range envOverrides {
		if value := firstEnv(o.names); value != "" {
			v.Set(o.key, value)
		}
	}

	for _, o := range intOverrides {
		value := firstEnv(o.names)
		if value == "" {
			continue
		}
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			v.Set(o.key, n)
		}
	}

	if origins := os.Getenv("IMG_ALLOWED_ORIGINS"); origins != "" {
		v.Set("server.allowedOrigins", splitList(origins))
	}
}

func firstEnv(names []string) string {
	for _, name := range names {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
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

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Second
	config.ImageProvider.Timeout = time.Duration(config.ImageProvider.Timeout) * time.Second
	config.Payment.Timeout = time.Duration(config.Payment.Timeout) * time.Second
}
