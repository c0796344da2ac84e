package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/tracklit/internal/constants"
)

type Config struct {
	// DBPath is a SQLite file path, a PostgreSQL connection URL, or "keyring"
	// to read the PostgreSQL connection string from the environment or keyring
	DBPath         string
	Addr           string
	CORSOrigins    []string
	Timezone       string
	MoodWindowDays int
	LogDir         string
	LogFormat      string
	Debug          bool
}

// New loads .env (if present) and reads configuration from the environment.
func New() (*Config, error) {
	_ = godotenv.Load()

	windowDays, err := getEnvInt(constants.EnvMoodWindow, constants.DefaultMoodWindowDays)
	if err != nil {
		return nil, err
	}
	if windowDays < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", constants.EnvMoodWindow, windowDays)
	}

	dbPath, err := ExpandPath(getEnv(constants.EnvDBPath, constants.DefaultConfigPath))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:         dbPath,
		Addr:           getEnv(constants.EnvAddr, constants.DefaultAddr),
		CORSOrigins:    splitList(getEnv(constants.EnvCORSOrigins, constants.DefaultCORSOrigins)),
		Timezone:       getEnv(constants.EnvTimezone, constants.DefaultTimezone),
		MoodWindowDays: windowDays,
		Debug:          getEnvBool(constants.EnvDebug, false),
	}
	cfg.LogDir = getEnv(constants.EnvLogDir, "")
	cfg.LogFormat = getEnv(constants.EnvLogFormat, "text")

	return cfg, nil
}

// IsPostgres reports whether DBPath selects the PostgreSQL backend
func (c *Config) IsPostgres() bool {
	return IsPostgresURL(c.DBPath) || c.DBPath == constants.KeyringDBPath
}

// ResolveLogDir returns the configured log directory, defaulting to a logs
// directory next to the SQLite file or under the user config dir for PostgreSQL.
func (c *Config) ResolveLogDir() (string, error) {
	if c.LogDir != "" {
		return c.LogDir, nil
	}
	if !c.IsPostgres() {
		return filepath.Join(filepath.Dir(c.DBPath), constants.LogDirName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, constants.AppName, constants.LogDirName), nil
}

// IsPostgresURL reports whether s uses a postgres:// or postgresql:// scheme
func IsPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// ExpandPath replaces a leading ~ with the user's home directory.
// PostgreSQL URLs and the keyring marker are returned untouched.
func ExpandPath(path string) (string, error) {
	if IsPostgresURL(path) || path == constants.KeyringDBPath {
		return path, nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultVal bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultVal
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
