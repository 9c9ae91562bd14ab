package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gamevault/pkg/password"
)

// Backend selects the record store implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envDBBackend             = "DB_BACKEND"
	envSQLitePath            = "SQLITE_PATH"
	envDBHost                = "DB_HOST"
	envDBPort                = "DB_PORT"
	envDBName                = "DB_NAME"
	envDBUser                = "DB_USER"
	envDBPassword            = "DB_PASSWORD"
	envDBSSLMode             = "DB_SSL_MODE"
	envDBMaxConns            = "DB_MAX_CONNS"
	envDBMinConns            = "DB_MIN_CONNS"
	envSessionTTL            = "SESSION_TTL"
	envSessionCookieName     = "SESSION_COOKIE_NAME"
	envSessionCookieSecure   = "SESSION_COOKIE_SECURE"
	envBcryptCost            = "BCRYPT_COST"
	envPaginationPageSize    = "PAGINATION_PAGE_SIZE"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultBackend            = BackendSQLite
	defaultSQLitePath         = "db/videogames.db"
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "gamevault"
	defaultDBUser             = "gamevault_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultSessionTTL         = 12 * time.Hour
	defaultSessionCookieName  = "gv_session"
	defaultBcryptCost         = password.DefaultCost
	defaultPageSize           = 50

	errPortRequiredFmt       = "PORT must be set"
	errUnknownBackendFmt     = "DB_BACKEND must be %q or %q, got %q"
	errSQLitePathRequiredFmt = "SQLITE_PATH must be set when DB_BACKEND is sqlite"
	errDBPasswordRequiredFmt = "DB_PASSWORD must be set when DB_BACKEND is postgres"
	errBcryptCostRangeFmt    = "BCRYPT_COST must be between %d and %d"
	errSessionTTLFmt         = "SESSION_TTL must be positive"
	errPageSizeFmt           = "PAGINATION_PAGE_SIZE must be positive"
	errInvalidConfigFmt      = "invalid configuration: %w"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Security SecurityConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Backend    Backend
	SQLitePath string
	Host       string
	Port       int
	Database   string
	User       string
	Password   string
	SSLMode    string
	MaxConns   int
	MinConns   int
}

type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type SecurityConfig struct {
	BcryptCost int
}

type AppConfig struct {
	PageSize int
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Backend:    Backend(getEnv(envDBBackend, string(defaultBackend))),
			SQLitePath: getEnv(envSQLitePath, defaultSQLitePath),
			Host:       getEnv(envDBHost, defaultDBHost),
			Port:       getIntEnv(envDBPort, defaultDBPort),
			Database:   getEnv(envDBName, defaultDBName),
			User:       getEnv(envDBUser, defaultDBUser),
			Password:   os.Getenv(envDBPassword),
			SSLMode:    getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns:   getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns:   getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		Session: SessionConfig{
			TTL:          getDurationEnv(envSessionTTL, defaultSessionTTL),
			CookieName:   getEnv(envSessionCookieName, defaultSessionCookieName),
			CookieSecure: getBoolEnv(envSessionCookieSecure, false),
		},
		Security: SecurityConfig{
			BcryptCost: getIntEnv(envBcryptCost, defaultBcryptCost),
		},
		App: AppConfig{
			PageSize: getIntEnv(envPaginationPageSize, defaultPageSize),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf(errSQLitePathRequiredFmt)
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf(errDBPasswordRequiredFmt)
		}
	default:
		return fmt.Errorf(errUnknownBackendFmt, BackendSQLite, BackendPostgres, c.Database.Backend)
	}

	if c.Security.BcryptCost < password.MinCost || c.Security.BcryptCost > password.MaxCost {
		return fmt.Errorf(errBcryptCostRangeFmt, password.MinCost, password.MaxCost)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf(errSessionTTLFmt)
	}

	if c.App.PageSize <= 0 {
		return fmt.Errorf(errPageSizeFmt)
	}

	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
