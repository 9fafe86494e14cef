package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/toyz/decorator/internal/attempt"
	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/generator"
	"github.com/toyz/decorator/internal/models"
	"github.com/toyz/decorator/internal/parser"
	"github.com/toyz/decorator/internal/typeload"
	"github.com/toyz/decorator/internal/utils"
)

// Structured log field names
const (
	logFieldRunID     = "run_id"
	logFieldFile      = "file"
	logFieldClass     = "class"
	logFieldDecorated = "decorated_type"
	logFieldOutput    = "output"
)

// FileResult is the outcome of one candidate declaration
type FileResult struct {
	Path      string
	Class     string // qualified name of the declaration
	Decorated string // qualified name of the decorated type
	Output    string // path of the generated unit
	Err       error
}

// Failed reports whether the file produced no decorator
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	RunID          string
	FilesScanned   int
	Candidates     int
	Generated      int
	Failed         int
	Results        []FileResult
	GeneratedFiles []string
	Duration       time.Duration
}

func (s *GenerationSummary) add(result FileResult) {
	s.Results = append(s.Results, result)
	if result.Failed() {
		s.Failed++
		return
	}
	s.Generated++
	s.GeneratedFiles = append(s.GeneratedFiles, result.Output)
}

// Failures returns the failed results in input order
func (s *GenerationSummary) Failures() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err collects the failures of the run into one error, nil when every
// decorator was generated
func (s *GenerationSummary) Err() error {
	multi := errors.NewMultipleErrors()
	for _, r := range s.Failures() {
		multi.Add(errors.Wrap(errors.CodeOf(r.Err), fmt.Sprintf("%s: %v", r.Path, r.Err), r.Err).
			WithContext("path", r.Path))
	}
	return multi.ErrorOrNil()
}

// Generator coordinates the CLI generation process: discovery, prefilter,
// parallel extraction, type loading, synthesis and writing
type Generator struct {
	config      *Config
	scanner     *DirectoryScanner
	reader      *utils.FileReader
	prefilter   *parser.Prefilter
	extractor   parser.MetadataReader
	loader      typeload.TypeLoader
	synthesizer generator.DecoratorGenerator
	writer      *FileWriter
	out         io.Writer
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	logger      *zap.Logger
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithGeneratorLogger sets the structured logger shared by every stage
func WithGeneratorLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = logger }
}

// WithTypeLoader replaces the loader built from the configuration
func WithTypeLoader(loader typeload.TypeLoader) GeneratorOption {
	return func(g *Generator) { g.loader = loader }
}

// WithDiagnostics sets the console output
func WithDiagnostics(diagnostics *utils.DiagnosticSystem) GeneratorOption {
	return func(g *Generator) { g.diagnostics = diagnostics }
}

// WithReporter sets the failure reporter
func WithReporter(reporter *DiagnosticReporter) GeneratorOption {
	return func(g *Generator) { g.reporter = reporter }
}

// WithDryRunOutput sets where dry runs print generated units
func WithDryRunOutput(out io.Writer) GeneratorOption {
	return func(g *Generator) { g.out = out }
}

// NewGenerator creates a new CLI generator for config
func NewGenerator(config *Config, opts ...GeneratorOption) *Generator {
	g := &Generator{config: config}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.diagnostics == nil {
		g.diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if g.reporter == nil {
		g.reporter = NewDiagnosticReporter(config.Verbose)
	}
	if g.out == nil {
		g.out = os.Stdout
	}

	g.scanner = NewDirectoryScanner(utils.NewFileReader())
	g.reader = g.scanner.Reader()
	g.prefilter = parser.NewPrefilter(g.reader)
	g.extractor = parser.NewParser(parser.WithLogger(g.logger))
	g.synthesizer = generator.NewSynthesizer(generator.WithLogger(g.logger))
	g.writer = NewFileWriter(config.OutputDir, config.DryRun, g.out)
	if g.loader == nil {
		g.loader = NewTypeLoader(config, g.reader, g.logger)
	}
	return g
}

// NewTypeLoader builds the loader described by config: YAML descriptors
// first, then the source path, memoized per type
func NewTypeLoader(config *Config, reader *utils.FileReader, logger *zap.Logger) typeload.TypeLoader {
	var loaders []typeload.TypeLoader
	if len(config.DescriptorDirs) > 0 {
		loaders = append(loaders, typeload.NewDescriptorLoader(config.DescriptorDirs, logger))
	}
	loaders = append(loaders, typeload.NewSourceLoader(config.SourcePath,
		typeload.WithSourceLogger(logger),
		typeload.WithFileReader(reader)))
	return typeload.NewCachingLoader(typeload.NewChainLoader(logger, loaders...))
}

// Run executes the complete generation process. Per-file failures are
// collected in the summary; the returned error is reserved for failures of
// the run itself: discovery, cancellation, or any extraction failure when
// AllOrNothing is set.
func (g *Generator) Run(ctx context.Context) (*GenerationSummary, error) {
	start := time.Now()
	summary := &GenerationSummary{RunID: uuid.NewString()}
	logger := g.logger.With(zap.String(logFieldRunID, summary.RunID))

	g.diagnostics.Header("generating decorators")
	g.diagnostics.Verbose("Run %s", summary.RunID)

	files, err := g.scanner.ScanDirectories(g.config.SourceDirs)
	if err != nil {
		return summary, err
	}
	summary.FilesScanned = len(files)
	logger.Info("scanned source directories",
		zap.Strings("dirs", g.config.SourceDirs),
		zap.Int("files", len(files)))

	extracted := g.extract(ctx, files)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	for _, a := range extracted {
		if !a.IsEmpty() {
			summary.Candidates++
		}
	}

	g.diagnostics.PhaseHeader("Extraction")
	g.diagnostics.PhaseItem(fmt.Sprintf("%d of %d files declare decorators", summary.Candidates, summary.FilesScanned))

	if g.config.AllOrNothing {
		if joined := attempt.Join(extracted); joined.HasFailed() {
			first := slices.IndexFunc(extracted, func(a attempt.Attempt[*models.ClassMetadata]) bool {
				return a.HasFailed()
			})
			logger.Warn("extraction failed, nothing generated",
				zap.String(logFieldFile, files[first]),
				zap.String("reason", joined.Reason()))
			summary.add(FileResult{Path: files[first], Err: joined.Err()})
			summary.Duration = time.Since(start)
			return summary, errors.Wrap(errors.CodeOf(joined.Err()),
				fmt.Sprintf("%s: %s", files[first], joined.Reason()), joined.Err()).
				WithContext("path", files[first])
		}
	}

	g.diagnostics.PhaseHeader("Generation")
	for i, a := range extracted {
		if a.IsEmpty() {
			continue
		}
		result := FileResult{Path: files[i]}

		meta, ok := a.Get()
		if !ok {
			result.Err = a.Err()
		} else {
			result.Class = meta.QualifiedClassName()
			result.Decorated = meta.DecoratedTypeName
			result.Output, result.Err = g.generate(ctx, meta)
		}

		if err := ctx.Err(); err != nil {
			return summary, err
		}
		g.report(logger, result)
		summary.add(result)
	}

	summary.Duration = time.Since(start)
	logger.Info("generation finished",
		zap.Int("candidates", summary.Candidates),
		zap.Int("generated", summary.Generated),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))

	g.diagnostics.Summary("Summary", map[string]interface{}{
		"Files scanned":        summary.FilesScanned,
		"Decorators declared":  summary.Candidates,
		"Decorators generated": summary.Generated,
		"Failures":             summary.Failed,
	})
	if summary.Failed == 0 {
		g.diagnostics.GenerationComplete()
	}
	return summary, nil
}

// extract runs prefilter and extraction over files in parallel. The result
// at index i belongs to files[i]; files that are not decorator declarations
// are Empty.
func (g *Generator) extract(ctx context.Context, files []string) []attempt.Attempt[*models.ClassMetadata] {
	results := make([]attempt.Attempt[*models.ClassMetadata], len(files))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, g.config.Workers))
	for i, file := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = attempt.FailedWith[*models.ClassMetadata](err)
				return err
			}
			results[i] = g.extractFile(file)
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (g *Generator) extractFile(file string) attempt.Attempt[*models.ClassMetadata] {
	ok, err := g.prefilter.IsDecoratable(file)
	if err != nil {
		return attempt.FailedWith[*models.ClassMetadata](err)
	}
	if !ok {
		return attempt.Empty[*models.ClassMetadata]()
	}

	content, err := g.reader.ReadFile(file)
	if err != nil {
		return attempt.FailedWith[*models.ClassMetadata](errors.NewIOError(file, err))
	}
	return g.extractor.Read(file, content)
}

// generate loads the decorated type, synthesizes the decorator and writes it
func (g *Generator) generate(ctx context.Context, meta *models.ClassMetadata) (string, error) {
	surface, err := g.loader.Load(ctx, meta.DecoratedTypeName)
	if err != nil {
		return "", err
	}

	unit, err := g.synthesizer.Synthesize(meta, surface)
	if err != nil {
		return "", errors.WrapGenerateError(meta.ImplClassName(), err)
	}

	return g.writer.Write(unit)
}

func (g *Generator) report(logger *zap.Logger, result FileResult) {
	if result.Failed() {
		logger.Warn("decorator not generated",
			zap.String(logFieldFile, result.Path),
			zap.String(logFieldClass, result.Class),
			zap.Stringer("code", errors.CodeOf(result.Err)),
			zap.Error(result.Err))
		g.reporter.ReportFailure(result)
		return
	}

	logger.Debug("decorator generated",
		zap.String(logFieldFile, result.Path),
		zap.String(logFieldClass, result.Class),
		zap.String(logFieldDecorated, result.Decorated),
		zap.String(logFieldOutput, result.Output))
	g.diagnostics.PhaseItem(fmt.Sprintf("%s -> %s", result.Class, result.Output))
}
