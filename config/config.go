// Package config loads dupefinder's configuration. Precedence, lowest
// to highest: built-in defaults, an optional TOML file, DUPEFINDER_*
// environment variables, command-line flags (layered on by the
// commands themselves).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	env "github.com/netflix/go-env"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	defaultThreshold    = 0.85
	defaultHashSize     = 16
	defaultThumbMaxSize = 300
	defaultThumbQuality = 85
	defaultResultsName  = "duplicate_results.json"
	defaultReportName   = "duplicate_report.html"
	defaultRequestName  = "delete_request.json"
	defaultLogFile      = "dupefinder.log"
)

// Scan configures the detection pipeline.
type Scan struct {
	Source    string  `toml:"source" env:"DUPEFINDER_SOURCE"`
	Output    string  `toml:"output" env:"DUPEFINDER_OUTPUT"`
	Threshold float64 `toml:"threshold" env:"DUPEFINDER_THRESHOLD"`
	HashSize  int     `toml:"hash_size" env:"DUPEFINDER_HASH_SIZE"`
	Recursive bool    `toml:"recursive" env:"DUPEFINDER_RECURSIVE"`
}

// Report configures the HTML report renderer.
type Report struct {
	Input        string `toml:"input" env:"DUPEFINDER_REPORT_INPUT"`
	Output       string `toml:"output" env:"DUPEFINDER_REPORT_OUTPUT"`
	ThumbMaxSize int    `toml:"thumb_max_size" env:"DUPEFINDER_THUMB_MAX_SIZE"`
	ThumbQuality int    `toml:"thumb_quality" env:"DUPEFINDER_THUMB_QUALITY"`
	WithMetadata bool   `toml:"with_metadata" env:"DUPEFINDER_WITH_METADATA"`
}

// Clean configures the deletion executor.
type Clean struct {
	Request    string `toml:"request" env:"DUPEFINDER_CLEAN_REQUEST"`
	BackupRoot string `toml:"backup_root" env:"DUPEFINDER_BACKUP_ROOT"`
}

// Logging configures the debug log sink.
type Logging struct {
	File  string `toml:"file" env:"DUPEFINDER_LOG_FILE"`
	Debug bool   `toml:"debug" env:"DUPEFINDER_DEBUG"`
}

// Config carries every tunable of the tool. Components receive it (or
// a section of it) explicitly at construction; nothing reads it from
// package state.
type Config struct {
	Scan    Scan    `toml:"scan"`
	Report  Report  `toml:"report"`
	Clean   Clean   `toml:"clean"`
	Logging Logging `toml:"logging"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			Threshold: defaultThreshold,
			HashSize:  defaultHashSize,
		},
		Report: Report{
			ThumbMaxSize: defaultThumbMaxSize,
			ThumbQuality: defaultThumbQuality,
		},
		Clean: Clean{
			Request:    defaultRequestName,
			BackupRoot: ".",
		},
		Logging: Logging{
			File: defaultLogFile,
		},
	}
}

// DefaultConfigPath returns the user-level configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/dupefinder/config.toml")
}

// Load locates, parses, and validates the configuration. The returned
// path and flag report which file was used, if any; a missing file is
// not an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("dupefinder.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// normalize expands every configured path. Relative paths bind to the
// working directory at load time.
func (c *Config) normalize() error {
	paths := []*string{
		&c.Scan.Source,
		&c.Scan.Output,
		&c.Report.Input,
		&c.Report.Output,
		&c.Clean.Request,
		&c.Clean.BackupRoot,
		&c.Logging.File,
	}
	for _, p := range paths {
		if *p == "" {
			continue
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Validate checks value ranges. Presence of required paths is checked
// by the command that needs them, not here, so read-only commands work
// without a scan source.
func (c *Config) Validate() error {
	if c.Scan.Threshold < 0 || c.Scan.Threshold > 1 {
		return fmt.Errorf("scan.threshold must be between 0 and 1, got %g", c.Scan.Threshold)
	}
	if c.Scan.HashSize < 4 || c.Scan.HashSize > 64 {
		return fmt.Errorf("scan.hash_size must be between 4 and 64, got %d", c.Scan.HashSize)
	}
	if c.Report.ThumbMaxSize < 16 {
		return fmt.Errorf("report.thumb_max_size must be at least 16, got %d", c.Report.ThumbMaxSize)
	}
	if c.Report.ThumbQuality < 1 || c.Report.ThumbQuality > 100 {
		return fmt.Errorf("report.thumb_quality must be between 1 and 100, got %d", c.Report.ThumbQuality)
	}
	return nil
}

// ResultsPath returns the detection record location: the configured
// output, or duplicate_results.json next to the source directory.
func (c *Config) ResultsPath() string {
	if c.Scan.Output != "" {
		return c.Scan.Output
	}
	if c.Scan.Source == "" {
		return defaultResultsName
	}
	return filepath.Join(filepath.Dir(c.Scan.Source), defaultResultsName)
}

// ReportInputPath returns the record the report command renders.
func (c *Config) ReportInputPath() string {
	if c.Report.Input != "" {
		return c.Report.Input
	}
	return c.ResultsPath()
}

// ReportOutputPath returns the HTML report location, defaulting to
// duplicate_report.html next to the input record.
func (c *Config) ReportOutputPath() string {
	if c.Report.Output != "" {
		return c.Report.Output
	}
	return filepath.Join(filepath.Dir(c.ReportInputPath()), defaultReportName)
}

// CreateSample writes a commented sample configuration file.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules to the commands.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
