package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Settings holds everything the server and the seed script need to start.
// Values come from the process environment, optionally pre-populated from a
// .env file, and fall back to the defaults in the struct tags.
type Settings struct {
	AppName string `env:"APP_NAME,default=Dough-Re-Me Bakery"`
	Debug   bool   `env:"DEBUG,default=true"`

	Host string `env:"HOST,default=127.0.0.1"`
	Port int    `env:"PORT,default=8000"`

	DBDriver         string `env:"DB_DRIVER,default=postgres"`
	PostgresServer   string `env:"POSTGRES_SERVER,default=localhost"`
	PostgresUser     string `env:"POSTGRES_USER,default=postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,default=postgres"`
	PostgresDB       string `env:"POSTGRES_DB,default=dough_re_me"`
	PostgresPort     string `env:"POSTGRES_PORT,default=5432"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE,default=disable"`
	DatabaseURL      string `env:"DATABASE_URL"`
	SQLitePath       string `env:"SQLITE_PATH,default=bakery.db"`

	StaticDir    string   `env:"STATIC_DIR,default=static"`
	StaticPrefix string   `env:"STATIC_PREFIX,default=/static"`
	IndexFile    string   `env:"INDEX_FILE,default=index.html"`
	CORSOrigins  []string `env:"CORS_ORIGINS,default=*"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`
}

// Load reads envFile (if it exists) into the environment and decodes Settings.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings that cannot be expressed as tag defaults.
func (s *Settings) Validate() error {
	switch s.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", s.DBDriver, DriverPostgres, DriverSQLite)
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", s.Port)
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", s.LogFormat)
	}
	if !strings.HasPrefix(s.StaticPrefix, "/") {
		return fmt.Errorf("STATIC_PREFIX must start with /, got %q", s.StaticPrefix)
	}
	return nil
}

// DSN returns the connection string for the configured driver. For Postgres an
// explicit DATABASE_URL takes precedence over the assembled parts.
func (s *Settings) DSN() string {
	if s.DBDriver == DriverSQLite {
		return s.SQLitePath
	}
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.PostgresServer, s.PostgresUser, s.PostgresPassword, s.PostgresDB, s.PostgresPort, s.PostgresSSLMode,
	)
}

// Addr is the listen address for the HTTP server.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
