package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Logger        LoggerConfig        `mapstructure:"logger"`
	Auth          AuthConfig          `mapstructure:"auth"`
	Credits       CreditsConfig       `mapstructure:"credits"`
	ImageProvider ImageProviderConfig `mapstructure:"imageProvider"`
	Payment       PaymentConfig       `mapstructure:"payment"`
	RateLimit     RateLimitConfig     `mapstructure:"rateLimit"`
	Transaction   TransactionConfig   `mapstructure:"transaction"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	StaticDir         string        `mapstructure:"staticDir"`
	FrontendURL       string        `mapstructure:"frontendURL"`
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// AuthConfig contains token and password hashing settings
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwtSecret"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // seconds
	BcryptCost int           `mapstructure:"bcryptCost"`
}

// CreditsConfig contains credit ledger settings
type CreditsConfig struct {
	SignupGrant int64 `mapstructure:"signupGrant"`
}

// ImageProviderConfig contains the text-to-image API settings
type ImageProviderConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	APIKey  string        `mapstructure:"apiKey"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"` // seconds
}

// PaymentConfig contains payment gateway settings
type PaymentConfig struct {
	BaseURL   string        `mapstructure:"baseURL"`
	KeyID     string        `mapstructure:"keyID"`
	KeySecret string        `mapstructure:"keySecret"`
	Currency  string        `mapstructure:"currency"`
	Timeout   time.Duration `mapstructure:"timeout"` // seconds
}

// RateLimitConfig limits image generation per user
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requestsPerSecond"`
	Burst             int     `mapstructure:"burst"`
}

// TransactionConfig contains balance mutation settings
type TransactionConfig struct {
	QueueSize           int   `mapstructure:"queueSize"`
	LockTimeoutMs       int64 `mapstructure:"lockTimeoutMs"`
	MaxRetries          int   `mapstructure:"maxRetries"`
	LockCleanupInterval int   `mapstructure:"lockCleanupInterval"` // seconds
}
