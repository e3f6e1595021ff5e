package config

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

// Email providers
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderLog      = "log"
)

// AdminCredential is one entry of the shared admin login list
type AdminCredential struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Mongo struct {
		URI            string `yaml:"uri" env:"MONGO_URI"`
		Database       string `yaml:"database" env:"MONGO_DB"`
		ConnectTimeout string `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT"`
	} `yaml:"mongo"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Admin struct {
		Credentials []AdminCredential `yaml:"credentials"`
	} `yaml:"admin"`

	PasswordReset struct {
		TokenExpiration string `yaml:"token_expiration" env:"PASSWORD_RESET_TOKEN_EXPIRATION"`
	} `yaml:"password_reset"`

	Email struct {
		Provider string `yaml:"provider" env:"EMAIL_PROVIDER"`
		From     string `yaml:"from" env:"EMAIL_FROM"`
		FromName string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	} `yaml:"email"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		UseTLS   bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	SendGrid struct {
		APIKey string `yaml:"api_key" env:"SENDGRID_API_KEY"`
	} `yaml:"sendgrid"`

	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`

	Seed struct {
		DefaultCourses bool `yaml:"default_courses" env:"SEED_DEFAULT_COURSES"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment variables,
// in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv loads variables from path without overriding the ones already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8000"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}

	config.Storage.Driver = StoragePostgres

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "tcasystem"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "tcasystem"
	config.Mongo.ConnectTimeout = "10s"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "tcasystem"

	config.PasswordReset.TokenExpiration = "15m"

	config.Email.Provider = EmailProviderLog
	config.Email.FromName = "Teacher Course Allotment"
	config.SMTP.Host = "smtp.gmail.com"
	config.SMTP.Port = 587

	config.FrontendURL = "http://localhost:3000"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	if err := applyEnvOverrides(reflect.ValueOf(config)); err != nil {
		return err
	}

	config.Admin.Credentials = append(config.Admin.Credentials, adminCredentialsFromEnv()...)
	return nil
}

// adminCredentialsFromEnv collects ADMIN_EMAIL_n / ADMIN_PASS_n pairs starting at 1
// and stopping at the first missing index.
func adminCredentialsFromEnv() []AdminCredential {
	var creds []AdminCredential
	for i := 1; ; i++ {
		email, ok := os.LookupEnv(fmt.Sprintf("ADMIN_EMAIL_%d", i))
		if !ok {
			break
		}
		password, ok := os.LookupEnv(fmt.Sprintf("ADMIN_PASS_%d", i))
		if !ok {
			break
		}
		creds = append(creds, AdminCredential{Email: email, Password: password})
	}
	return creds
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case StoragePostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case StorageMongo:
		if config.Mongo.URI == "" || config.Mongo.Database == "" {
			return fmt.Errorf("mongo uri and database are required")
		}
		if _, err := time.ParseDuration(config.Mongo.ConnectTimeout); err != nil {
			return fmt.Errorf("invalid mongo connect timeout format: %w", err)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.PasswordReset.TokenExpiration); err != nil {
		return fmt.Errorf("invalid password reset token expiration format: %w", err)
	}

	switch config.Email.Provider {
	case EmailProviderLog:
	case EmailProviderSMTP:
		if config.SMTP.Host == "" || config.SMTP.Username == "" {
			return fmt.Errorf("smtp host and username are required for the smtp email provider")
		}
	case EmailProviderSendGrid:
		if config.SendGrid.APIKey == "" {
			return fmt.Errorf("sendgrid api key is required for the sendgrid email provider")
		}
	default:
		return fmt.Errorf("unsupported email provider %q", config.Email.Provider)
	}

	for i, cred := range config.Admin.Credentials {
		if cred.Email == "" || cred.Password == "" {
			return fmt.Errorf("admin credential %d is incomplete", i+1)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// EmailSender returns the address outgoing mail is sent from, falling back to the SMTP user.
func (c *Config) EmailSender() string {
	if c.Email.From != "" {
		return c.Email.From
	}
	return c.SMTP.Username
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
