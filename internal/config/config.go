package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultLibraryPath = "~/Pictures"
	DefaultWorkers     = 8
	DefaultLogLevel    = "info"
)

// Config holds runtime settings resolved from the environment
type Config struct {
	Library  string // photo library root, may start with ~
	Database string // SQLite file; empty means the XDG default
	Workers  int
	LogLevel string
	LogFile  string
	LogJSON  bool
	Editor   string // command line for notes, overrides $EDITOR
}

// Load reads a .env file from the working directory, if any, then resolves
// every setting from the environment. Values already set in the environment
// win over the .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Library:  getEnv("PHOTONOTES_LIBRARY", DefaultLibraryPath),
		Database: getEnv("PHOTONOTES_DB", ""),
		Workers:  getEnvInt("PHOTONOTES_WORKERS", DefaultWorkers),
		LogLevel: getEnv("PHOTONOTES_LOG_LEVEL", DefaultLogLevel),
		LogFile:  getEnv("PHOTONOTES_LOG_FILE", ""),
		LogJSON:  getEnvBool("PHOTONOTES_LOG_JSON", false),
		Editor:   getEnv("PHOTONOTES_EDITOR", ""),
	}
}

// LibraryPath returns the library root with ~ expanded
func (c *Config) LibraryPath() string {
	return ExpandHome(c.Library)
}

// DatabasePath returns the metadata database path, defaulting to
// $XDG_DATA_HOME/photonotes/metadata.db
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return ExpandHome(c.Database)
	}
	return filepath.Join(dataHome(), "photonotes", "metadata.db")
}

// LogFilePath returns the log file path with ~ expanded, or "" when file
// logging is disabled
func (c *Config) LogFilePath() string {
	if c.LogFile == "" {
		return ""
	}
	return ExpandHome(c.LogFile)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}
