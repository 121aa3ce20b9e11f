package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

// Email providers
const (
	EmailProviderResend  = "resend"
	EmailProviderSMTP    = "smtp"
	EmailProviderSES     = "ses"
	EmailProviderConsole = "console"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Email       EmailConfig
	Dispatch    DispatchConfig
	Retry       RetryConfig
	Statistics  StatisticsConfig
	Redis       RedisConfig
	Security    SecurityConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type EmailConfig struct {
	Provider string // "resend", "smtp", "ses", "console"

	// Resend settings
	ResendAPIKey  string
	ResendBaseURL string

	// SMTP settings
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	// SES settings
	SESRegion    string
	SESAccessKey string
	SESSecretKey string

	FromName    string
	FromAddress string

	// Contact form relay
	ContactTo   string
	ContactFrom string

	SiteURL string
}

type DispatchConfig struct {
	BatchSize         int
	SendDelay         time.Duration
	BatchDelay        time.Duration
	SuppressionWindow time.Duration
	ClaimTTL          time.Duration
}

type RetryConfig struct {
	Attempts   int
	BaseDelay  time.Duration
	Multiplier float64
	MaxDelay   time.Duration
}

// StatisticsConfig holds the values served when the site_stats table cannot be read
type StatisticsConfig struct {
	DefaultVolunteers    int
	DefaultHours         int
	DefaultOrganizations int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type SecurityConfig struct {
	// HS256 secret used to verify admin bearer tokens on write routes.
	// Empty disables the check.
	AdminJWTSecret string

	// Per-email limit on code and contact endpoints
	EmailRateLimit       int
	EmailRateLimitWindow time.Duration

	// Per-email limit on reset code checks, over the same window
	CodeCheckRateLimit int
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "stackdriver", "zipkin", "datadog", "xray", "none"

	// Jaeger settings
	JaegerEndpoint string

	// Zipkin settings
	ZipkinEndpoint string

	// Stackdriver settings
	StackdriverProjectID string

	// Datadog settings
	DatadogAgentAddress string
	DatadogAPIKey       string

	// AWS X-Ray settings
	XRayRegion string

	// General agent endpoint (for exporters that support a common agent)
	AgentEndpoint string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "stackdriver", "datadog", "none" or comma-separated list
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Email defaults
	v.SetDefault("EMAIL_PROVIDER", EmailProviderResend)
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_FROM_NAME", "Taylor Connect Hub")

	// Dispatch defaults
	v.SetDefault("DISPATCH_BATCH_SIZE", 5)
	v.SetDefault("DISPATCH_SEND_DELAY", "600ms")
	v.SetDefault("DISPATCH_BATCH_DELAY", "1s")
	v.SetDefault("DISPATCH_SUPPRESSION_WINDOW", "24h")
	v.SetDefault("DISPATCH_CLAIM_TTL", "10m")

	// Retry defaults
	v.SetDefault("RETRY_ATTEMPTS", 3)
	v.SetDefault("RETRY_BASE_DELAY", "1s")
	v.SetDefault("RETRY_MULTIPLIER", 2.0)
	v.SetDefault("RETRY_MAX_DELAY", "30s")

	// Statistics fallbacks
	v.SetDefault("STATS_DEFAULT_VOLUNTEERS", 2500)
	v.SetDefault("STATS_DEFAULT_HOURS", 5000)
	v.SetDefault("STATS_DEFAULT_ORGANIZATIONS", 50)

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("EMAIL_RATE_LIMIT", 5)
	v.SetDefault("EMAIL_RATE_LIMIT_WINDOW", "10m")
	v.SetDefault("CODE_CHECK_RATE_LIMIT", 10)

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "hub-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_DATADOG_API_KEY", "")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Email: EmailConfig{
			Provider:      strings.ToLower(v.GetString("EMAIL_PROVIDER")),
			ResendAPIKey:  v.GetString("RESEND_API_KEY"),
			ResendBaseURL: v.GetString("RESEND_BASE_URL"),
			SMTPHost:      v.GetString("SMTP_HOST"),
			SMTPPort:      v.GetInt("SMTP_PORT"),
			SMTPUsername:  v.GetString("SMTP_USERNAME"),
			SMTPPassword:  v.GetString("SMTP_PASSWORD"),
			SESRegion:     v.GetString("SES_REGION"),
			SESAccessKey:  v.GetString("SES_ACCESS_KEY"),
			SESSecretKey:  v.GetString("SES_SECRET_KEY"),
			FromName:      v.GetString("EMAIL_FROM_NAME"),
			FromAddress:   v.GetString("EMAIL_FROM_ADDRESS"),
			ContactTo:     v.GetString("CONTACT_TO"),
			ContactFrom:   v.GetString("CONTACT_FROM"),
			SiteURL:       v.GetString("SITE_URL"),
		},
		Dispatch: DispatchConfig{
			BatchSize:         v.GetInt("DISPATCH_BATCH_SIZE"),
			SendDelay:         v.GetDuration("DISPATCH_SEND_DELAY"),
			BatchDelay:        v.GetDuration("DISPATCH_BATCH_DELAY"),
			SuppressionWindow: v.GetDuration("DISPATCH_SUPPRESSION_WINDOW"),
			ClaimTTL:          v.GetDuration("DISPATCH_CLAIM_TTL"),
		},
		Retry: RetryConfig{
			Attempts:   v.GetInt("RETRY_ATTEMPTS"),
			BaseDelay:  v.GetDuration("RETRY_BASE_DELAY"),
			Multiplier: v.GetFloat64("RETRY_MULTIPLIER"),
			MaxDelay:   v.GetDuration("RETRY_MAX_DELAY"),
		},
		Statistics: StatisticsConfig{
			DefaultVolunteers:    v.GetInt("STATS_DEFAULT_VOLUNTEERS"),
			DefaultHours:         v.GetInt("STATS_DEFAULT_HOURS"),
			DefaultOrganizations: v.GetInt("STATS_DEFAULT_ORGANIZATIONS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Security: SecurityConfig{
			AdminJWTSecret:       v.GetString("ADMIN_JWT_SECRET"),
			EmailRateLimit:       v.GetInt("EMAIL_RATE_LIMIT"),
			EmailRateLimitWindow: v.GetDuration("EMAIL_RATE_LIMIT_WINDOW"),
			CodeCheckRateLimit:   v.GetInt("CODE_CHECK_RATE_LIMIT"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),

			TraceExporter: v.GetString("TRACING_TRACE_EXPORTER"),

			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:        v.GetString("TRACING_DATADOG_API_KEY"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			AgentEndpoint:        v.GetString("TRACING_AGENT_ENDPOINT"),

			MetricsExporter: v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:  v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if config.Email.ContactFrom == "" {
		config.Email.ContactFrom = config.Email.FromAddress
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that every secret and address the selected providers need is present.
// There are no fallback values for credentials.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}

	switch c.Email.Provider {
	case EmailProviderResend:
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required")
		}
	case EmailProviderSMTP:
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required")
		}
	case EmailProviderSES:
		if c.Email.SESRegion == "" {
			return fmt.Errorf("SES_REGION is required")
		}
	case EmailProviderConsole:
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER: %s", c.Email.Provider)
	}

	if c.Email.Provider != EmailProviderConsole {
		if c.Email.FromAddress == "" {
			return fmt.Errorf("EMAIL_FROM_ADDRESS is required")
		}
		if c.Email.ContactTo == "" {
			return fmt.Errorf("CONTACT_TO is required")
		}
	}

	if c.Retry.Attempts < 1 {
		return fmt.Errorf("RETRY_ATTEMPTS must be at least 1")
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must not be negative")
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("RETRY_MULTIPLIER must be at least 1")
	}

	if c.Dispatch.BatchSize < 1 {
		return fmt.Errorf("DISPATCH_BATCH_SIZE must be at least 1")
	}

	return nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
