package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultInputDir  = "./input"
	DefaultOutputDir = "./output"
	DefaultLogLevel  = "info"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the outline extractor CLI
type Config struct {
	// Batch configuration
	InputDir  string
	OutputDir string
	Workers   int

	// Application configuration
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		InputDir:  DefaultInputDir,
		OutputDir: DefaultOutputDir,
		Workers:   runtime.NumCPU(),
		Version:   "1.0.0",
		LogLevel:  DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if expanded, err := filepath.Abs(cfg.InputDir); err == nil {
		cfg.InputDir = expanded
	}
	if expanded, err := filepath.Abs(cfg.OutputDir); err == nil {
		cfg.OutputDir = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDF_OUTLINE")
	viper.AutomaticEnv()

	viper.SetDefault("input", cfg.InputDir)
	viper.SetDefault("output", cfg.OutputDir)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("input", cfg.InputDir, "Directory containing input PDF files")
	pflag.String("output", cfg.OutputDir, "Directory receiving one JSON outline per input")
	pflag.Int("workers", cfg.Workers, "Number of documents processed concurrently")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdf-outline - extract structured outlines from PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # ./input to ./output (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=/docs --output=/outlines  # custom directories\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --workers=1                       # process sequentially\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINE_INPUT     Input directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINE_OUTPUT    Output directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINE_WORKERS   Concurrent documents\n")
		fmt.Fprintf(os.Stderr, "  PDF_OUTLINE_LOGLEVEL  Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputDir = viper.GetString("input")
	cfg.OutputDir = viper.GetString("output")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}
	if info, err := os.Stat(c.InputDir); err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDir, err)
	} else if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", c.InputDir)
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}
	if _, err := os.Stat(c.OutputDir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(c.OutputDir, DefaultDirPerm); mkErr != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDir, mkErr)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDir, err)
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputDir: %s, OutputDir: %s, Workers: %d, LogLevel: %s}",
		c.InputDir, c.OutputDir, c.Workers, c.LogLevel)
}
