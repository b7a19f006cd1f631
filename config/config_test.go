package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.85, cfg.Scan.Threshold)
	assert.Equal(t, 16, cfg.Scan.HashSize)
	assert.False(t, cfg.Scan.Recursive)
	assert.Equal(t, 300, cfg.Report.ThumbMaxSize)
	assert.Equal(t, 85, cfg.Report.ThumbQuality)
	assert.False(t, cfg.Report.WithMetadata)
	assert.Equal(t, "delete_request.json", cfg.Clean.Request)
	assert.Equal(t, ".", cfg.Clean.BackupRoot)
	assert.Equal(t, "dupefinder.log", cfg.Logging.File)
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, resolvedPath, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.False(t, exists)
	assert.NotEmpty(t, resolvedPath)
	assert.Equal(t, 0.85, cfg.Scan.Threshold)
	assert.Equal(t, 16, cfg.Scan.HashSize)
}

func TestLoadReadsTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupefinder.toml")
	content := `
[scan]
source = "` + dir + `"
threshold = 0.9
hash_size = 8
recursive = true

[report]
thumb_quality = 70

[clean]
backup_root = "` + dir + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, resolvedPath, exists, err := Load(path)
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, path, resolvedPath)
	assert.Equal(t, dir, cfg.Scan.Source)
	assert.Equal(t, 0.9, cfg.Scan.Threshold)
	assert.Equal(t, 8, cfg.Scan.HashSize)
	assert.True(t, cfg.Scan.Recursive)
	assert.Equal(t, 70, cfg.Report.ThumbQuality)
	assert.Equal(t, dir, cfg.Clean.BackupRoot)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 300, cfg.Report.ThumbMaxSize)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupefinder.toml")
	content := `
[scan]
threshold = 0.9
hash_size = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DUPEFINDER_THRESHOLD", "0.95")
	t.Setenv("DUPEFINDER_RECURSIVE", "true")

	cfg, _, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Scan.Threshold)
	assert.True(t, cfg.Scan.Recursive)

	// Keys without an environment override keep the file value.
	assert.Equal(t, 8, cfg.Scan.HashSize)
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantKey string
	}{
		{
			name:    "threshold above one",
			mutate:  func(cfg *Config) { cfg.Scan.Threshold = 1.5 },
			wantKey: "scan.threshold",
		},
		{
			name:    "threshold below zero",
			mutate:  func(cfg *Config) { cfg.Scan.Threshold = -0.1 },
			wantKey: "scan.threshold",
		},
		{
			name:    "hash size too small",
			mutate:  func(cfg *Config) { cfg.Scan.HashSize = 2 },
			wantKey: "scan.hash_size",
		},
		{
			name:    "hash size too large",
			mutate:  func(cfg *Config) { cfg.Scan.HashSize = 128 },
			wantKey: "scan.hash_size",
		},
		{
			name:    "thumbnail size too small",
			mutate:  func(cfg *Config) { cfg.Report.ThumbMaxSize = 4 },
			wantKey: "report.thumb_max_size",
		},
		{
			name:    "thumbnail quality zero",
			mutate:  func(cfg *Config) { cfg.Report.ThumbQuality = 0 },
			wantKey: "report.thumb_quality",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.Scan.Source = filepath.Join("/data", "photos")

	assert.Equal(t, filepath.Join("/data", "duplicate_results.json"), cfg.ResultsPath())
	assert.Equal(t, cfg.ResultsPath(), cfg.ReportInputPath())
	assert.Equal(t, filepath.Join("/data", "duplicate_report.html"), cfg.ReportOutputPath())

	cfg.Scan.Output = filepath.Join("/elsewhere", "record.json")
	assert.Equal(t, filepath.Join("/elsewhere", "record.json"), cfg.ResultsPath())
	assert.Equal(t, filepath.Join("/elsewhere", "duplicate_report.html"), cfg.ReportOutputPath())

	cfg.Report.Input = filepath.Join("/reports", "old.json")
	cfg.Report.Output = filepath.Join("/reports", "old.html")
	assert.Equal(t, filepath.Join("/reports", "old.json"), cfg.ReportInputPath())
	assert.Equal(t, filepath.Join("/reports", "old.html"), cfg.ReportOutputPath())
}

func TestExpandPathResolvesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/pictures")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pictures"), expanded)
}

func TestNormalizeExpandsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dupefinder.toml")
	content := `
[clean]
request = "pending/delete_request.json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, _, err := Load(path)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.Clean.Request))
	assert.True(t, filepath.IsAbs(cfg.Clean.BackupRoot))
}

func TestCreateSampleWritesLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, CreateSample(path))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)

	assert.True(t, exists)
	// The sample ships the default values.
	assert.Equal(t, 0.85, cfg.Scan.Threshold)
	assert.Equal(t, 16, cfg.Scan.HashSize)
	assert.Equal(t, 300, cfg.Report.ThumbMaxSize)
}
