package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gobench/internal/runner"
	"gobench/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings is the resolved configuration of a command invocation.
type Settings struct {
	BenchmarksDir string
	Count         int
	Benchtimes    []string
	Cooldown      time.Duration
	Format        string
	Metric        string
	Store         store.Config
	Verbose       bool
	LogFile       string
	Color         bool
}

// Load initializes the configuration from file and environment variables.
// A missing config.yaml is fine; an explicit cfgFile that cannot be read is
// an error.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GOBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Set defaults
	viper.SetDefault("benchmarks", "benchmarks")
	viper.SetDefault("count", 10)
	viper.SetDefault("benchtimes", runner.DefaultBenchtimes)
	viper.SetDefault("cooldown", time.Second)
	viper.SetDefault("format", "text")
	viper.SetDefault("metric", "ns_per_op")
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.dsn", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("color", true)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Current returns the settings viper resolved from defaults, config file,
// environment and bound flags.
func Current() Settings {
	s := Settings{
		BenchmarksDir: viper.GetString("benchmarks"),
		Count:         viper.GetInt("count"),
		Benchtimes:    viper.GetStringSlice("benchtimes"),
		Cooldown:      viper.GetDuration("cooldown"),
		Format:        strings.ToLower(viper.GetString("format")),
		Metric:        viper.GetString("metric"),
		Store: store.Config{
			Type: viper.GetString("store.type"),
			DSN:  viper.GetString("store.dsn"),
		},
		Verbose: viper.GetBool("verbose"),
		LogFile: viper.GetString("log_file"),
		Color:   viper.GetBool("color"),
	}
	s.Store.DSN = storeDSN(s.Store)
	return s
}

// storeDSN fills in the connection string the store type implies when none
// is configured. Postgres falls back to DATABASE_URL; SQLite keeps its file
// next to the working directory.
func storeDSN(cfg store.Config) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	if store.IsPostgres(cfg.Type) {
		return os.Getenv("DATABASE_URL")
	}
	return store.DefaultSQLitePath
}
