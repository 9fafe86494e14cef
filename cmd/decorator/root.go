package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/cli"
	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/typeload"
	"github.com/toyz/decorator/internal/utils"
)

// reportedError marks an error the command already printed in full
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// app carries the state shared by the commands of one invocation
type app struct {
	v          *viper.Viper
	stdout     io.Writer
	stderr     io.Writer
	redirected bool
	configFile string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:          viper.New(),
		stdout:     stdout,
		stderr:     stderr,
		redirected: stdout != os.Stdout || stderr != os.Stderr,
	}

	root := &cobra.Command{
		Use:   "decorator [source-dirs...]",
		Short: "Generate forwarding implementations for Java decorator declarations",
		Long: `decorator - Java decorator synthesizer.

Scans Java sources for abstract classes implementing Decorator<T> and writes
decorator.<package>.<Name>Impl, a class that forwards every overridable method
of T to a wrapped delegate. Methods returning T keep returning the decorator.

Directory patterns:
  ./...              Scan the current directory tree
  src/main/java/...  Scan a source root recursively
  src/main/java/com  Scan only the files directly inside a directory

Examples:
  decorator ./...                              # Generate for the whole tree
  decorator -o build/gen --source-path lib/collections-sources.jar src/...
  decorator --all-or-nothing src/...           # Stop on the first invalid declaration
  decorator --dry-run src/...                  # Print instead of writing
  decorator clean                              # Remove generated files
  decorator describe java.util.Map             # Print the YAML descriptor of a type`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runGenerate,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Project file (default ./decorator.yaml or ./.decorator.yaml)")
	flags.StringP("output-dir", "o", "generated", "Directory receiving decorator/<package>/<Name>Impl.java")
	flags.StringSlice("source-path", nil, "Directories and source jars holding the decorated types")
	flags.StringSlice("descriptor-dir", nil, "Directories of YAML type descriptors, searched before the source path")
	flags.IntP("workers", "j", 0, "Parallel extraction workers (default: number of CPUs)")
	flags.Bool("all-or-nothing", false, "Generate nothing if any declaration fails extraction")
	flags.Bool("dry-run", false, "Print generated units instead of writing them")
	flags.BoolP("verbose", "v", false, "Enable verbose output and failure hints")
	flags.BoolP("quiet", "q", false, "Only show errors")
	flags.String("log-level", "warn", "Structured log level: debug, info, warn or error")
	flags.String("log-format", "console", "Structured log format: console or json")

	// A flag missing from the set is a programming error
	if err := bindFlags(a.v, flags, map[string]string{
		cli.KeyOutputDir:      "output-dir",
		cli.KeySourcePath:     "source-path",
		cli.KeyDescriptorDirs: "descriptor-dir",
		cli.KeyWorkers:        "workers",
		cli.KeyAllOrNothing:   "all-or-nothing",
		cli.KeyDryRun:         "dry-run",
		cli.KeyVerbose:        "verbose",
		cli.KeyQuiet:          "quiet",
		cli.KeyLogLevel:       "log-level",
		cli.KeyLogFormat:      "log-format",
	}); err != nil {
		panic(err)
	}

	generate := &cobra.Command{
		Use:   "generate [source-dirs...]",
		Short: "Generate decorators (the default command)",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runGenerate,
	}
	clean := &cobra.Command{
		Use:   "clean [dirs...]",
		Short: "Remove generated files (default: the output directory)",
		Args:  cobra.ArbitraryArgs,
		RunE:  a.runClean,
	}
	describe := &cobra.Command{
		Use:   "describe <qualified-type>",
		Short: "Print the YAML type descriptor of a loadable type",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runDescribe,
	}
	root.AddCommand(generate, clean, describe)

	return root
}

// bindFlags binds each configuration key to the named flag of flags
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag --%s for %s is not defined", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s to %s: %w", name, key, err)
		}
	}
	return nil
}

// load reads and validates the configuration. Positional source
// directories replace the configured ones.
func (a *app) load(sourceDirs []string) (*cli.Config, *zap.Logger, error) {
	if len(sourceDirs) > 0 {
		a.v.Set(cli.KeySourceDirs, sourceDirs)
	}

	config, err := cli.LoadConfig(a.v, a.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(config.LogLevel, config.LogFormat, a.stderr)
	if err != nil {
		return nil, nil, errors.WrapConfigurationError(cli.KeyLogLevel, "apply", err)
	}
	return config, logger, nil
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	config, logger, err := a.load(args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	reporter := cli.NewDiagnosticReporter(config.Verbose)
	reporter.SetOutput(a.stderr)

	generator := cli.NewGenerator(config,
		cli.WithGeneratorLogger(logger),
		cli.WithDiagnostics(newDiagnostics(config, a.stdout, a.stderr, a.redirected)),
		cli.WithReporter(reporter),
		cli.WithDryRunOutput(a.stdout))

	summary, err := generator.Run(cmd.Context())
	if err != nil {
		reporter.ReportError(err)
		return &reportedError{err: err}
	}
	if err := summary.Err(); err != nil {
		message := fmt.Sprintf("%d of %d decorators could not be generated", summary.Failed, summary.Candidates)
		reporter.ReportWarning(message)
		return &reportedError{err: fmt.Errorf("%s: %w", message, err)}
	}
	return nil
}

func (a *app) runClean(_ *cobra.Command, args []string) error {
	config, logger, err := a.load(nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{config.OutputDir + "/..."}
	}

	diagnostics := newDiagnostics(config, a.stdout, a.stderr, a.redirected)
	diagnostics.Section("Cleaning generated files")
	removed, err := cli.NewCleaner(logger).CleanGeneratedFiles(dirs)
	for _, file := range removed {
		diagnostics.Verbose("removed %s", file)
	}
	if err != nil {
		return err
	}

	diagnostics.Success("Removed %d generated files", len(removed))
	return nil
}

func (a *app) runDescribe(cmd *cobra.Command, args []string) error {
	name := args[0]
	validate := utils.NewValidatorChain(
		utils.IsValidJavaName("type"),
		utils.Custom("type", "must be a qualified type name", func(s string) bool {
			return strings.Contains(s, ".")
		}),
	)
	if err := validate.Validate(name); err != nil {
		return errors.Wrap(errors.ConfigurationErrorCode, err.Error(), err)
	}

	config, logger, err := a.load(nil)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loader := cli.NewTypeLoader(config, utils.NewFileReader(), logger)
	surface, err := loader.Load(cmd.Context(), name)
	if err != nil {
		return err
	}

	out, err := typeload.MarshalDescriptor(surface)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}
