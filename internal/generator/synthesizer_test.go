package generator

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
)

func mapOptionalMeta() *models.ClassMetadata {
	return &models.ClassMetadata{
		ClassName:              "MapOptional",
		PackageName:            "se.lindhen.decorators",
		DecoratedTypeName:      "java.util.Map",
		TypeParameters:         []string{"K", "V"},
		DecoratedTypeArguments: []string{"K", "V"},
	}
}

func mapSurface() *models.TypeSurface {
	return &models.TypeSurface{
		QualifiedName:  "java.util.Map",
		TypeParameters: []string{"K", "V"},
		Supertypes:     []string{"java.lang.Object"},
		Methods: []models.MethodDescriptor{
			{Name: "size", ReturnTypeName: "int", Visibility: models.Public, Abstract: true},
			{Name: "get", ReturnTypeName: "V", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "Object", Name: "key"}}},
			{Name: "put", ReturnTypeName: "V", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "K", Name: "key"}, {TypeName: "V", Name: "value"}}},
			{Name: "clear", ReturnTypeName: "void", Visibility: models.Public},
			{Name: "self", ReturnTypeName: "Map<K, V>", Visibility: models.Public},
			{Name: "copy", ReturnTypeName: "Object", Visibility: models.Protected},
			{Name: "compute", ReturnTypeName: "R", Visibility: models.Public,
				TypeParameters: []string{"R"},
				Parameters:     []models.Parameter{{TypeName: "java.util.function.Function<? super K, ? extends R>", Name: "fn"}},
				Throws:         []string{"java.io.IOException"}},
			{Name: "putAll", ReturnTypeName: "void", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "K", Name: "keys", Variadic: true}}},
			{Name: "of", ReturnTypeName: "Map<K, V>", Visibility: models.Public, Static: true},
			{Name: "lock", ReturnTypeName: "void", Visibility: models.Public, Final: true},
			{Name: "secret", ReturnTypeName: "void", Visibility: models.Private},
			{Name: "internal", ReturnTypeName: "void", Visibility: models.PackagePrivate},
		},
	}
}

func TestSynthesize_MapOptional(t *testing.T) {
	synth := NewSynthesizer(WithLogger(zaptest.NewLogger(t)))

	unit, err := synth.Synthesize(mapOptionalMeta(), mapSurface())
	require.NoError(t, err)

	assert.Equal(t, "decorator.se.lindhen.decorators", unit.PackageName)
	assert.Equal(t, "MapOptionalImpl", unit.ClassName)
	assert.Equal(t, "decorator/se/lindhen/decorators/MapOptionalImpl.java", unit.RelativePath())

	want := `// Code generated by decorator. DO NOT EDIT.

package decorator.se.lindhen.decorators;

import java.util.Map;
import se.lindhen.decorators.MapOptional;

public class MapOptionalImpl<K, V> extends MapOptional<K, V> {

    private final Map<K, V> delegate;

    public MapOptionalImpl(Map<K, V> delegate) {
        this.delegate = delegate;
    }

    public Map<K, V> getDelegate() {
        return this.delegate;
    }

    public int size() {
        return this.delegate.size();
    }

    public V get(Object key) {
        return this.delegate.get(key);
    }

    public V put(K key, V value) {
        return this.delegate.put(key, value);
    }

    public void clear() {
        this.delegate.clear();
    }

    public MapOptional<K, V> self() {
        return new MapOptionalImpl<K, V>(this.delegate.self());
    }

    protected MapOptional<K, V> copy() {
        return new MapOptionalImpl<K, V>((Map<K, V>) this.delegate.copy());
    }

    public <R> R compute(java.util.function.Function<? super K, ? extends R> fn) throws java.io.IOException {
        return this.delegate.compute(fn);
    }

    public void putAll(K... keys) {
        this.delegate.putAll(keys);
    }
}
`
	if diff := cmp.Diff(want, unit.Source); diff != "" {
		t.Errorf("Synthesize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_SkipsStaticAndFinal(t *testing.T) {
	unit, err := NewSynthesizer().Synthesize(mapOptionalMeta(), mapSurface())
	require.NoError(t, err)

	for _, name := range []string{" of(", " lock(", " secret(", " internal("} {
		assert.NotContains(t, unit.Source, name)
	}
}

func TestSynthesize_IsDeterministic(t *testing.T) {
	first, err := NewSynthesizer().Synthesize(mapOptionalMeta(), mapSurface())
	require.NoError(t, err)
	second, err := NewSynthesizer().Synthesize(mapOptionalMeta(), mapSurface())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated synthesis differs (-first +second):\n%s", diff)
	}
}

func TestSynthesize_SubstitutesTypeArguments(t *testing.T) {
	meta := &models.ClassMetadata{
		ClassName:              "Names",
		PackageName:            "com.example",
		DecoratedTypeName:      "java.util.List",
		DecoratedTypeArguments: []string{"String"},
	}
	surface := &models.TypeSurface{
		QualifiedName:  "java.util.List",
		TypeParameters: []string{"E"},
		Supertypes:     []string{"java.util.Collection", "java.lang.Iterable", "java.lang.Object"},
		Methods: []models.MethodDescriptor{
			{Name: "add", ReturnTypeName: "boolean", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "E", Name: "e"}}},
			{Name: "subList", ReturnTypeName: "List<E>", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "int", Name: "from"}, {TypeName: "int", Name: "to"}}},
			{Name: "stream", ReturnTypeName: "java.util.stream.Stream<E>", Visibility: models.Public},
			{Name: "rest", ReturnTypeName: "Collection<E>", Visibility: models.Public},
		},
	}

	unit, err := NewSynthesizer().Synthesize(meta, surface)
	require.NoError(t, err)

	assert.Contains(t, unit.Source, "public class NamesImpl extends Names {")
	assert.Contains(t, unit.Source, "private final List<String> delegate;")
	assert.Contains(t, unit.Source, "public boolean add(String e) {")
	assert.Contains(t, unit.Source, "public Names subList(int from, int to) {\n        return new NamesImpl(this.delegate.subList(from, to));")
	assert.Contains(t, unit.Source, "public java.util.stream.Stream<String> stream() {\n        return this.delegate.stream();")
	assert.Contains(t, unit.Source, "return new NamesImpl((List<String>) this.delegate.rest());")
}

func TestSynthesize_RawDecoratedType(t *testing.T) {
	meta := &models.ClassMetadata{
		ClassName:         "Names",
		PackageName:       "com.example",
		DecoratedTypeName: "java.util.List",
	}
	surface := &models.TypeSurface{
		QualifiedName:  "java.util.List",
		TypeParameters: []string{"E extends Object"},
		Methods: []models.MethodDescriptor{
			{Name: "get", ReturnTypeName: "E", Visibility: models.Public,
				Parameters: []models.Parameter{{TypeName: "int", Name: "index"}}},
		},
	}

	unit, err := NewSynthesizer().Synthesize(meta, surface)
	require.NoError(t, err)
	assert.Contains(t, unit.Source, "private final List delegate;")
	assert.Contains(t, unit.Source, "public Object get(int index) {")
}

func TestSynthesize_SkipsDuplicatesAndAccessor(t *testing.T) {
	surface := mapSurface()
	surface.Methods = []models.MethodDescriptor{
		{Name: "getDelegate", ReturnTypeName: "Object", Visibility: models.Public},
		{Name: "size", ReturnTypeName: "int", Visibility: models.Public},
		{Name: "size", ReturnTypeName: "int", Visibility: models.Public, DeclaringType: "java.lang.Object"},
	}

	unit, err := NewSynthesizer().Synthesize(mapOptionalMeta(), surface)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(unit.Source, " getDelegate("))
	assert.Equal(t, 1, strings.Count(unit.Source, " size("))
}

func TestSynthesize_InvalidInput(t *testing.T) {
	synth := NewSynthesizer()

	_, err := synth.Synthesize(nil, mapSurface())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.GenerationErrorCode))

	_, err = synth.Synthesize(&models.ClassMetadata{ClassName: "C", PackageName: "p", DecoratedTypeName: "D"}, mapSurface())
	require.Error(t, err)

	_, err = synth.Synthesize(mapOptionalMeta(), nil)
	require.Error(t, err)

	other := mapSurface()
	other.QualifiedName = "java.util.List"
	_, err = synth.Synthesize(mapOptionalMeta(), other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not describe java.util.Map")
}

func TestForwardingMethod_VisibilityInvariant(t *testing.T) {
	b := newUnitBuilder(mapOptionalMeta(), mapSurface())

	for _, vis := range []models.Visibility{models.PackagePrivate, models.Private} {
		_, _, err := b.forwardingMethod(models.MethodDescriptor{Name: "leak", ReturnTypeName: "void", Visibility: vis})
		require.Error(t, err)
		assert.True(t, errors.IsInvariant(err), "visibility %s must be an invariant failure", vis)
	}

	method, chains, err := b.forwardingMethod(models.MethodDescriptor{Name: "ok", ReturnTypeName: "void", Visibility: models.Protected})
	require.NoError(t, err)
	assert.False(t, chains)
	assert.Equal(t, []string{"protected"}, method.Modifiers)
}
