package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Data source kinds.
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// SourceConfig says where the batting table is read from.
type SourceConfig struct {
	Kind  string // csv, sqlite or postgres
	Path  string // CSV file or SQLite database file
	Table string
	DSN   string // database/sql data source name; empty for csv
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// Config holds all application configuration
type Config struct {
	Source   SourceConfig
	Server   ServerConfig
	ChartDir string
}

// Load reads .env files (default ".env"; missing files are skipped) into the
// process environment, then builds the configuration from it. Variables
// already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Source: SourceConfig{
			Kind:  strings.ToLower(getEnv("BATSTATS_SOURCE", SourceCSV)),
			Path:  getEnv("BATSTATS_DATA", "mlb-stats2016.csv"),
			Table: getEnv("BATSTATS_TABLE", "batters"),
		},
		Server: ServerConfig{
			Addr:        getEnv("BATSTATS_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("BATSTATS_CORS_ORIGINS", "*")),
		},
		ChartDir: getEnv("BATSTATS_CHART_DIR", "charts"),
	}

	if err := cfg.Source.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve validates Kind and fills DSN for database sources. Call it again
// after overriding fields from flags.
func (s *SourceConfig) Resolve() error {
	switch s.Kind {
	case SourceCSV:
		s.DSN = ""
	case SourceSQLite:
		s.DSN = s.Path
	case SourcePostgres:
		if s.DSN != "" {
			return nil
		}
		dsn, err := buildDSNFromEnv()
		if err != nil {
			return err
		}
		s.DSN = dsn
	default:
		return fmt.Errorf("unknown data source %q (want csv, sqlite or postgres)", s.Kind)
	}
	return nil
}

func buildDSNFromEnv() (string, error) {
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			return url, nil
		}
		return "", errors.New("POSTGRES_DB not set; set env vars or DATABASE_URL")
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, dbname)
	return dsn, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
