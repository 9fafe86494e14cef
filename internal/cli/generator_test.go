package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/generator"
	"github.com/toyz/decorator/internal/models"
	"github.com/toyz/decorator/internal/parser"
	"github.com/toyz/decorator/internal/typeload"
	"github.com/toyz/decorator/internal/utils"
)

// countingLoader records how often each type is requested
type countingLoader struct {
	next  typeload.TypeLoader
	mu    sync.Mutex
	calls map[string]int
}

func (c *countingLoader) Load(ctx context.Context, name string) (*models.TypeSurface, error) {
	c.mu.Lock()
	c.calls[name]++
	c.mu.Unlock()
	return c.next.Load(ctx, name)
}

func newTestGenerator(t *testing.T, config *Config, opts ...GeneratorOption) (*Generator, *bytes.Buffer) {
	t.Helper()

	diagnostics := utils.NewQuietDiagnostics()
	var console bytes.Buffer
	diagnostics.SetOutput(&console, &console)

	reporter := NewDiagnosticReporter(false)
	var failures bytes.Buffer
	reporter.SetOutput(&failures)

	opts = append([]GeneratorOption{
		WithGeneratorLogger(zaptest.NewLogger(t)),
		WithDiagnostics(diagnostics),
		WithReporter(reporter),
	}, opts...)
	return NewGenerator(config, opts...), &failures
}

func TestGenerator_Run(t *testing.T) {
	root := extractProject(t)
	config := testConfig(root)

	loader := &countingLoader{
		next:  typeload.NewSourceLoader(config.SourcePath),
		calls: make(map[string]int),
	}
	gen, failures := newTestGenerator(t, config, WithTypeLoader(typeload.NewCachingLoader(loader)))

	summary, err := gen.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 5, summary.FilesScanned)
	assert.Equal(t, 4, summary.Candidates)
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 1, loader.calls["java.util.Map"], "each decorated type is loaded once")

	var classes []string
	for _, r := range summary.Results {
		classes = append(classes, filepath.Base(r.Path))
	}
	assert.Equal(t, []string{"MapOptional.java", "Unknown.java", "Counting.java", "Orphan.java"}, classes)

	failed := summary.Failures()
	require.Len(t, failed, 2)
	assert.True(t, errors.HasCode(failed[0].Err, errors.TypeResolutionErrorCode))
	assert.Equal(t, "type not found: com.example.missing.Gadget", failed[0].Err.Error())
	assert.Equal(t, parser.ReasonNoPackage, failed[1].Err.Error())
	assert.Contains(t, failures.String(), parser.ReasonNoPackage)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, summary.Err(), &multi)
	assert.Equal(t, 2, multi.Count())
	assert.Len(t, multi.GetByCode(errors.TypeResolutionErrorCode), 1)
	assert.Len(t, multi.GetByCode(errors.ValidationErrorCode), 1)

	out := filepath.Join(config.OutputDir, "decorator", "com", "example", "MapOptionalImpl.java")
	assert.Equal(t, []string{out, filepath.Join(config.OutputDir, "decorator", "com", "example", "nested", "CountingImpl.java")},
		summary.GeneratedFiles)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	source := string(content)
	assert.True(t, strings.HasPrefix(source, generator.GeneratedHeaderLine+"\n"))
	assert.Contains(t, source, "package decorator.com.example;")
	assert.Contains(t, source, "public class MapOptionalImpl<K, V> extends MapOptional<K, V> {")
	assert.Contains(t, source, "    public V put(K key, V value) {\n        return this.delegate.put(key, value);\n    }")
	assert.Contains(t, source, "    public void clear() {\n        this.delegate.clear();\n    }")
}

func TestGenerator_RunAllOrNothing(t *testing.T) {
	root := extractProject(t)
	config := testConfig(root)
	config.AllOrNothing = true

	gen, _ := newTestGenerator(t, config)

	summary, err := gen.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ValidationErrorCode))
	assert.Contains(t, err.Error(), "Orphan.java")
	assert.Contains(t, err.Error(), parser.ReasonNoPackage)

	assert.Zero(t, summary.Generated)
	_, statErr := os.Stat(config.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when extraction fails")
}

func TestGenerator_RunAllOrNothingSucceeds(t *testing.T) {
	root := extractProject(t)
	config := testConfig(root)
	config.AllOrNothing = true
	config.SourceDirs = []string{filepath.Join(root, "src", "com", "example", "nested")}

	gen, _ := newTestGenerator(t, config)

	summary, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Generated)
	assert.NoError(t, summary.Err())
	assert.FileExists(t, filepath.Join(config.OutputDir, "decorator", "com", "example", "nested", "CountingImpl.java"))
}

func TestGenerator_RunDryRun(t *testing.T) {
	root := extractProject(t)
	config := testConfig(root)
	config.DryRun = true
	config.SourceDirs = []string{filepath.Join(root, "src", "com", "example")}

	var printed bytes.Buffer
	gen, _ := newTestGenerator(t, config, WithDryRunOutput(&printed))

	summary, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Generated)
	assert.Equal(t, 1, summary.Failed)

	assert.Contains(t, printed.String(), "MapOptionalImpl.java\n"+generator.GeneratedHeaderLine)
	_, statErr := os.Stat(config.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_RunMissingSourceDirectory(t *testing.T) {
	config := testConfig(t.TempDir())
	config.SourceDirs = []string{filepath.Join(t.TempDir(), "absent")}

	gen, _ := newTestGenerator(t, config)

	_, err := gen.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode))
}

func TestGenerator_RunCanceled(t *testing.T) {
	root := extractProject(t)
	gen, _ := newTestGenerator(t, testConfig(root))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_ParallelExtractionKeepsInputOrder(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	var want []string
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		decl := "import java.util.Map;\n\nabstract class " + name + " implements Decorator<Map> {\n}\n"
		require.NoError(t, os.WriteFile(filepath.Join(src, name+".java"), []byte(decl), 0644))
		want = append(want, filepath.Join(src, name+".java"))
	}

	config := testConfig(root)
	config.SourceDirs = []string{src}
	config.Workers = 3

	gen, _ := newTestGenerator(t, config)
	summary, err := gen.Run(context.Background())
	require.NoError(t, err)

	var got []string
	for _, r := range summary.Results {
		got = append(got, r.Path)
		assert.Equal(t, parser.ReasonNoPackage, r.Err.Error())
	}
	assert.Equal(t, want, got)
}

func TestNewTypeLoader_DescriptorsFirst(t *testing.T) {
	root := extractProject(t)
	descriptors := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(descriptors, "map.yaml"), []byte(
		"name: java.util.Map\ntype_parameters: [K, V]\nmethods:\n  - name: isEmpty\n    returns: boolean\n    visibility: public\n"), 0644))

	config := testConfig(root)
	config.DescriptorDirs = []string{descriptors}

	loader := NewTypeLoader(config, utils.NewFileReader(), zaptest.NewLogger(t))

	surface, err := loader.Load(context.Background(), "java.util.Map")
	require.NoError(t, err)
	require.Len(t, surface.Methods, 1)
	assert.Equal(t, "isEmpty", surface.Methods[0].Name)
}
