package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
)

func loadDeclarations(t *testing.T) map[string]string {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/declarations.txtar")
	require.NoError(t, err)

	units := make(map[string]string, len(archive.Files))
	for _, f := range archive.Files {
		units[f.Name] = string(f.Data)
	}
	return units
}

func readFixture(t *testing.T, name string) (*models.ClassMetadata, error) {
	t.Helper()
	src, ok := loadDeclarations(t)[name]
	require.True(t, ok, "fixture %s missing", name)

	p := NewParser(WithLogger(zaptest.NewLogger(t)))
	result := p.Read(name, src)
	require.False(t, result.IsEmpty(), "Read must never return an empty attempt")

	meta, _ := result.Get()
	return meta, result.Err()
}

func TestRead_ExpectedInput(t *testing.T) {
	meta, err := readFixture(t, "map_optional.java")
	require.NoError(t, err)

	assert.Equal(t, "MapOptional", meta.ClassName)
	assert.Equal(t, "se.lindhen.decorators", meta.PackageName)
	assert.Equal(t, "java.util.Map", meta.DecoratedTypeName)
	assert.Equal(t, []string{"K", "V"}, meta.TypeParameters)
	assert.Equal(t, []string{"K", "V"}, meta.DecoratedTypeArguments)
	assert.Equal(t, "map_optional.java", meta.SourceFile)
	assert.True(t, meta.Valid())
	assert.Equal(t, "MapOptionalImpl", meta.ImplClassName())
}

func TestRead_ExtendsAndImplements(t *testing.T) {
	meta, err := readFixture(t, "decorated_future.java")
	require.NoError(t, err)

	assert.Equal(t, "DecoratedFuture", meta.ClassName)
	assert.Equal(t, "java.util.concurrent.CompletableFuture", meta.DecoratedTypeName)
	assert.Equal(t, []string{"T"}, meta.TypeParameters)
	assert.Equal(t, []string{"T"}, meta.DecoratedTypeArguments)
}

func TestRead_RawDecoratedType(t *testing.T) {
	meta, err := readFixture(t, "plain_list.java")
	require.NoError(t, err)

	assert.Equal(t, "Names", meta.ClassName)
	assert.Equal(t, "com.example", meta.PackageName)
	assert.Equal(t, "java.util.List", meta.DecoratedTypeName)
	assert.Empty(t, meta.TypeParameters)
	assert.Empty(t, meta.DecoratedTypeArguments)
	assert.False(t, meta.IsGeneric())
}

func TestRead_Rejections(t *testing.T) {
	tests := []struct {
		fixture string
		reason  string
	}{
		{"no_implements.java", "The class MapOptional did not extend Decorator."},
		{"empty.java", "Could not find any top-level class."},
		{"no_package.java", "no package declaration specified"},
		{"unqualified.java", "Could not determine import for the class to decorate (Map). Note that the import has to be fully qualified to be resolved."},
		{"no_type_argument.java", "There were no type arguments for the Decorator"},
		{"wildcard_argument.java", "There were no type arguments for the Decorator"},
		{"interface_only.java", "The class Lookup did not extend Decorator."},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			meta, err := readFixture(t, tt.fixture)
			require.Error(t, err)
			assert.Nil(t, meta)
			assert.Equal(t, tt.reason, err.Error())
			assert.True(t, errors.HasCode(err, errors.ValidationErrorCode))
		})
	}
}

func TestRead_ReasonIsExposedOnAttempt(t *testing.T) {
	src := loadDeclarations(t)["no_package.java"]

	result := NewParser().Read("no_package.java", src)
	assert.True(t, result.HasFailed())
	assert.Equal(t, ReasonNoPackage, result.Reason())

	reported := 0
	result.IfFailed(func(reason string) {
		reported++
		assert.Equal(t, ReasonNoPackage, reason)
	})
	assert.Equal(t, 1, reported)
}

func TestRead_SyntaxError(t *testing.T) {
	meta, err := readFixture(t, "broken.java")
	require.Error(t, err)
	assert.Nil(t, meta)
	assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))
	assert.Contains(t, err.Error(), "broken.java")
}

func TestRead_ValidationSuggestions(t *testing.T) {
	_, err := readFixture(t, "unqualified.java")
	require.Error(t, err)

	var base *errors.BaseError
	require.ErrorAs(t, err, &base)
	require.NotEmpty(t, base.Suggestions())
	assert.Contains(t, base.Suggestions()[0], "Map")
	assert.Equal(t, "Map", base.Context()["type"])
}

func TestErrorReporter_HintsPerReason(t *testing.T) {
	reporter := NewErrorReporter()

	for _, reason := range []string{ReasonNoTopLevelClass, ReasonNoPackage, ReasonNoTypeArguments, "The class X did not extend Decorator."} {
		err := reporter.Validation(reason)
		assert.Equal(t, reason, err.Error())

		var base *errors.BaseError
		require.ErrorAs(t, err, &base)
		assert.NotEmpty(t, base.Suggestions(), reason)
	}

	silent := &ErrorReporter{}
	var base *errors.BaseError
	require.ErrorAs(t, silent.Validation(ReasonNoPackage), &base)
	assert.Empty(t, base.Suggestions())
}

func TestRead_HeaderVariants(t *testing.T) {
	tests := []struct {
		fixture string
		class   string
	}{
		{"serializable.java", "Wrapping"},
		{"runnable.java", "Running"},
		{"commented_header.java", "Commented"},
	}

	for _, tt := range tests {
		t.Run(tt.fixture, func(t *testing.T) {
			meta, err := readFixture(t, tt.fixture)
			require.NoError(t, err)
			assert.Equal(t, tt.class, meta.ClassName)
			assert.Equal(t, "com.example", meta.PackageName)
			assert.Equal(t, "com.example.widgets.Widget", meta.DecoratedTypeName)
			assert.True(t, MatchesDecorator(loadDeclarations(t)[tt.fixture]))
		})
	}
}
