// Package config loads runtime settings from an optional .env file and R1CS_* environment
// variables, and configures the global logger.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultListenAddr  = "0.0.0.0:8010"
	DefaultDatabaseDSN = "proofs.db"
	DefaultBuildDir    = "api-build"
	DefaultLogLevel    = "info"
)

type Config struct {
	ListenAddr  string
	DatabaseDSN string
	BuildDir    string
	LogLevel    string
	LogPretty   bool
}

func Default() Config {
	return Config{
		ListenAddr:  DefaultListenAddr,
		DatabaseDSN: DefaultDatabaseDSN,
		BuildDir:    DefaultBuildDir,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the given env files (".env" when none are named) and then the environment. A
// missing env file is not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}

	cfg := Default()
	if v, ok := os.LookupEnv("R1CS_LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("R1CS_DATABASE_DSN"); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("R1CS_BUILD_DIR"); ok {
		cfg.BuildDir = v
	}
	if v, ok := os.LookupEnv("R1CS_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("R1CS_LOG_PRETTY"); ok {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid R1CS_LOG_PRETTY %q: %w", v, err)
		}
		cfg.LogPretty = pretty
	}
	return cfg, nil
}

// SetupLogger applies the log level and output format to the global zerolog logger.
func SetupLogger(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}
