package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/utils"
)

// Configuration keys, shared by the project file, DECORATOR_* environment
// variables and command-line flags
const (
	KeySourceDirs     = "source_dirs"
	KeyOutputDir      = "output_dir"
	KeySourcePath     = "source_path"
	KeyDescriptorDirs = "descriptor_dirs"
	KeyWorkers        = "workers"
	KeyAllOrNothing   = "all_or_nothing"
	KeyDryRun         = "dry_run"
	KeyVerbose        = "verbose"
	KeyQuiet          = "quiet"
	KeyLogLevel       = "log_level"
	KeyLogFormat      = "log_format"
)

// EnvPrefix prefixes every environment variable read by LoadConfig
const EnvPrefix = "DECORATOR"

// configName is the project file looked up in the working directory, as
// decorator.yaml or .decorator.yaml
const configName = "decorator"

// Config holds the configuration for the CLI generator
type Config struct {
	// SourceDirs are scanned for decorator declarations. A trailing "/..."
	// scans the directory tree.
	SourceDirs []string `mapstructure:"source_dirs"`

	// OutputDir receives decorator/<package path>/<C>Impl.java
	OutputDir string `mapstructure:"output_dir"`

	// SourcePath lists directories and source archives the decorated
	// types are loaded from
	SourcePath []string `mapstructure:"source_path"`

	// DescriptorDirs hold YAML type descriptors, consulted before SourcePath
	DescriptorDirs []string `mapstructure:"descriptor_dirs"`

	Workers int `mapstructure:"workers"`

	// AllOrNothing stops the run before any synthesis when one candidate
	// fails extraction
	AllOrNothing bool `mapstructure:"all_or_nothing"`

	DryRun    bool   `mapstructure:"dry_run"`
	Verbose   bool   `mapstructure:"verbose"`
	Quiet     bool   `mapstructure:"quiet"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// MaxWorkers bounds the number of parallel extraction workers
const MaxWorkers = 256

// defaultWorkers is one worker per CPU, within [1, MaxWorkers]
func defaultWorkers(cpus int) int {
	return min(max(cpus, 1), MaxWorkers)
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySourceDirs, []string{"./..."})
	v.SetDefault(KeyOutputDir, "generated")
	v.SetDefault(KeySourcePath, []string{})
	v.SetDefault(KeyDescriptorDirs, []string{})
	v.SetDefault(KeyWorkers, defaultWorkers(runtime.NumCPU()))
	v.SetDefault(KeyAllOrNothing, false)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}

// LoadConfig populates a Config from v. Values come from, lowest first:
// defaults, the project file (configFile, or decorator.yaml /
// .decorator.yaml in the working directory), DECORATOR_* environment
// variables and whatever flags were bound to v.
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	switch {
	case configFile != "":
		v.SetConfigFile(configFile)
	case fileExists(filepath.Join(".", "."+configName+".yaml")):
		v.SetConfigFile(filepath.Join(".", "."+configName+".yaml"))
	default:
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.WrapConfigurationError(configName, "read", err).
				WithContext("file", configFile)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfigurationError(configName, "decode", err)
	}
	return &config, nil
}

// Validate checks the configuration before a run
func (c *Config) Validate() error {
	checks := []error{
		utils.NewValidatorChain(
			utils.SliceNotEmpty[string](KeySourceDirs),
			utils.ValidateEach(KeySourceDirs, utils.NotEmpty(KeySourceDirs)),
		).Validate(c.SourceDirs),
		utils.NewValidatorChain(
			utils.NotEmpty(KeyOutputDir),
			utils.Conditional(func(string) bool { return !c.DryRun },
				utils.Custom(KeyOutputDir, "must not be a source directory", c.outputOutsideSources)),
		).Validate(c.OutputDir),
		utils.ValidateEach(KeySourcePath, utils.NotEmpty(KeySourcePath))(c.SourcePath),
		utils.ValidateEach(KeyDescriptorDirs, utils.NotEmpty(KeyDescriptorDirs))(c.DescriptorDirs),
		utils.InRange(KeyWorkers, 1, MaxWorkers)(c.Workers),
		utils.ValidateLogLevel(KeyLogLevel)(c.LogLevel),
		utils.ValidateLogFormat(KeyLogFormat)(c.LogFormat),
		utils.Custom(KeyQuiet, "cannot be combined with verbose", func(quiet bool) bool {
			return !(quiet && c.Verbose)
		})(c.Quiet),
	}

	for _, err := range checks {
		if err != nil {
			return errors.Wrap(errors.ConfigurationErrorCode, err.Error(), err).
				WithSuggestion("Check decorator.yaml, DECORATOR_* environment variables and flags")
		}
	}
	return nil
}

// outputOutsideSources reports whether output does not coincide with a
// scanned source root, which clean would otherwise sweep
func (c *Config) outputOutsideSources(output string) bool {
	out := filepath.Clean(output)
	for _, dir := range c.SourceDirs {
		if base, _ := Recursive(dir); filepath.Clean(base) == out {
			return false
		}
	}
	return true
}

// Recursive reports whether a source directory pattern scans its subtree
func Recursive(pattern string) (string, bool) {
	if base, ok := strings.CutSuffix(pattern, "/..."); ok {
		if base == "" {
			base = "."
		}
		return base, true
	}
	if pattern == "..." {
		return ".", true
	}
	return pattern, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
