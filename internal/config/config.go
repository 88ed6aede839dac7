package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Tables    TablesConfig
	Reports   ReportsConfig
	Documents DocumentsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the report history.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds the bucket used for published exports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Development reports whether console output was requested.
func (l LogConfig) Development() bool {
	return l.Format == "console"
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TablesConfig holds settings for the XML data table store. MaxAddRows bounds
// the row count of a single add_rows edit.
type TablesConfig struct {
	DataDir    string `mapstructure:"data_dir"`
	MaxAddRows int    `mapstructure:"max_add_rows"`
}

// DocumentsConfig points at the manifest the document workspace loads from.
// An empty manifest disables loading.
type DocumentsConfig struct {
	Manifest string `mapstructure:"manifest"`
}

// ReportsConfig holds sheet size report settings.
type ReportsConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// Load reads configuration from environment variables with the CADTOOLS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CADTOOLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cadtools")
	v.SetDefault("db.password", "cadtools_secret")
	v.SetDefault("db.name", "cadtools_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "cadtools-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "exports")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("tables.data_dir", "data/tables")
	v.SetDefault("tables.max_add_rows", 10000)

	v.SetDefault("documents.manifest", "")

	v.SetDefault("reports.default_limit", 20)
	v.SetDefault("reports.max_limit", 100)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "CADTOOLS_SERVER_PORT",
		"server.read_timeout":   "CADTOOLS_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "CADTOOLS_SERVER_WRITE_TIMEOUT",
		"server.environment":    "CADTOOLS_SERVER_ENVIRONMENT",
		"db.host":               "CADTOOLS_DB_HOST",
		"db.port":               "CADTOOLS_DB_PORT",
		"db.user":               "CADTOOLS_DB_USER",
		"db.password":           "CADTOOLS_DB_PASSWORD",
		"db.name":               "CADTOOLS_DB_NAME",
		"db.sslmode":            "CADTOOLS_DB_SSLMODE",
		"db.max_open":           "CADTOOLS_DB_MAX_OPEN",
		"db.max_idle":           "CADTOOLS_DB_MAX_IDLE",
		"s3.region":             "CADTOOLS_S3_REGION",
		"s3.bucket":             "CADTOOLS_S3_BUCKET",
		"s3.endpoint":           "CADTOOLS_S3_ENDPOINT",
		"s3.access_key":         "CADTOOLS_S3_ACCESS_KEY",
		"s3.secret_key":         "CADTOOLS_S3_SECRET_KEY",
		"s3.prefix":             "CADTOOLS_S3_PREFIX",
		"s3.presign_expiry":     "CADTOOLS_S3_PRESIGN_EXPIRY",
		"log.level":             "CADTOOLS_LOG_LEVEL",
		"log.format":            "CADTOOLS_LOG_FORMAT",
		"cors.allowed_origins":  "CADTOOLS_CORS_ALLOWED_ORIGINS",
		"tables.data_dir":       "CADTOOLS_TABLES_DATA_DIR",
		"tables.max_add_rows":   "CADTOOLS_TABLES_MAX_ADD_ROWS",
		"documents.manifest":    "CADTOOLS_DOCUMENTS_MANIFEST",
		"reports.default_limit": "CADTOOLS_REPORTS_DEFAULT_LIMIT",
		"reports.max_limit":     "CADTOOLS_REPORTS_MAX_LIMIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CADTOOLS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        v.GetString("s3.prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Tables = TablesConfig{
		DataDir:    v.GetString("tables.data_dir"),
		MaxAddRows: v.GetInt("tables.max_add_rows"),
	}
	cfg.Documents = DocumentsConfig{
		Manifest: v.GetString("documents.manifest"),
	}
	cfg.Reports = ReportsConfig{
		DefaultLimit: v.GetInt("reports.default_limit"),
		MaxLimit:     v.GetInt("reports.max_limit"),
	}

	if cfg.Reports.DefaultLimit <= 0 || cfg.Reports.MaxLimit < cfg.Reports.DefaultLimit {
		return nil, fmt.Errorf("invalid report limits: default=%d max=%d",
			cfg.Reports.DefaultLimit, cfg.Reports.MaxLimit)
	}

	if cfg.Tables.MaxAddRows <= 0 {
		return nil, fmt.Errorf("invalid tables.max_add_rows: %d", cfg.Tables.MaxAddRows)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
