package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/decorator/internal/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"./..."}, config.SourceDirs)
	assert.Equal(t, "generated", config.OutputDir)
	assert.Positive(t, config.Workers)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "console", config.LogFormat)
	assert.False(t, config.AllOrNothing)
	assert.NoError(t, config.Validate())
}

func TestDefaultWorkers(t *testing.T) {
	tests := []struct {
		cpus int
		want int
	}{
		{cpus: 0, want: 1},
		{cpus: 8, want: 8},
		{cpus: MaxWorkers, want: MaxWorkers},
		{cpus: 512, want: MaxWorkers},
	}

	for _, tt := range tests {
		got := defaultWorkers(tt.cpus)
		assert.Equal(t, tt.want, got, "defaultWorkers(%d)", tt.cpus)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, MaxWorkers)
	}
}

func TestLoadConfig_ProjectFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "decorator.yaml"), []byte(`
source_dirs:
  - src/main/java/...
output_dir: build/decorators
source_path:
  - lib/collections-sources.jar
workers: 2
all_or_nothing: true
`), 0644))
	t.Setenv("DECORATOR_WORKERS", "6")
	t.Setenv("DECORATOR_LOG_LEVEL", "debug")

	config, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main/java/..."}, config.SourceDirs)
	assert.Equal(t, "build/decorators", config.OutputDir)
	assert.Equal(t, []string{"lib/collections-sources.jar"}, config.SourcePath)
	assert.True(t, config.AllOrNothing)
	assert.Equal(t, 6, config.Workers, "environment overrides the project file")
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_HiddenProjectFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".decorator.yaml"), []byte("output_dir: out\n"), 0644))

	config, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "out", config.OutputDir)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SourceDirs: []string{"src/..."},
			OutputDir:  "generated",
			Workers:    4,
			LogLevel:   "info",
			LogFormat:  "json",
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"no source dirs", func(c *Config) { c.SourceDirs = nil }, KeySourceDirs},
		{"empty source dir", func(c *Config) { c.SourceDirs = []string{""} }, KeySourceDirs},
		{"no output dir", func(c *Config) { c.OutputDir = "" }, KeyOutputDir},
		{"output is a source dir", func(c *Config) { c.OutputDir = "src" }, KeyOutputDir},
		{"empty source path entry", func(c *Config) { c.SourcePath = []string{"lib", ""} }, KeySourcePath},
		{"zero workers", func(c *Config) { c.Workers = 0 }, KeyWorkers},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, KeyLogLevel},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, KeyLogFormat},
		{"quiet and verbose", func(c *Config) { c.Quiet, c.Verbose = true, true }, KeyQuiet},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("dry run may target a source dir", func(t *testing.T) {
		config := valid()
		config.OutputDir = "src"
		config.DryRun = true
		assert.NoError(t, config.Validate())
	})
}

func TestRecursive(t *testing.T) {
	tests := []struct {
		pattern   string
		base      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"src/main/java/...", "src/main/java", true},
		{"src", "src", false},
	}
	for _, tt := range tests {
		base, recursive := Recursive(tt.pattern)
		assert.Equal(t, tt.base, base, tt.pattern)
		assert.Equal(t, tt.recursive, recursive, tt.pattern)
	}
}
