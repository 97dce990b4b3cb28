package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("PDF_OUTLINE_INPUT")
	os.Unsetenv("PDF_OUTLINE_OUTPUT")
	os.Unsetenv("PDF_OUTLINE_WORKERS")
	os.Unsetenv("PDF_OUTLINE_LOGLEVEL")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	os.Args = []string{"pdf-outline", "--input=" + inputDir, "--output=" + outputDir}
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.InputDir != inputDir {
		t.Errorf("LoadFromFlags() InputDir = %v, want %v", cfg.InputDir, inputDir)
	}
	if cfg.OutputDir != outputDir {
		t.Errorf("LoadFromFlags() OutputDir = %v, want %v", cfg.OutputDir, outputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.Workers < 1 {
		t.Errorf("LoadFromFlags() Workers = %v, want at least 1", cfg.Workers)
	}
}

func TestLoadFromFlags_CommandLineFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	os.Args = []string{
		"pdf-outline",
		"--input=" + inputDir,
		"--output=" + outputDir,
		"--workers=3",
		"--loglevel=debug",
	}
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Workers != 3 {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, 3)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "debug")
	}
	if !cfg.IsDebug() {
		t.Error("LoadFromFlags() expected IsDebug() to be true")
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	os.Args = []string{"pdf-outline"}
	resetFlags()
	clearEnvVars()

	os.Setenv("PDF_OUTLINE_INPUT", inputDir)
	os.Setenv("PDF_OUTLINE_OUTPUT", outputDir)
	os.Setenv("PDF_OUTLINE_WORKERS", "2")
	os.Setenv("PDF_OUTLINE_LOGLEVEL", "warn")

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.InputDir != inputDir {
		t.Errorf("LoadFromFlags() InputDir = %v, want %v", cfg.InputDir, inputDir)
	}
	if cfg.Workers != 2 {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, 2)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
}

func TestLoadFromFlags_InvalidValues(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	inputDir := t.TempDir()
	outputDir := t.TempDir()

	os.Args = []string{
		"pdf-outline",
		"--input=" + inputDir,
		"--output=" + outputDir,
		"--workers=0",
	}
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Error("LoadFromFlags() expected error for zero workers, got nil")
	}
}
