package typeload

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
)

// sourceTree extracts testdata/sources.txtar below a temp directory
func sourceTree(t *testing.T) string {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", "sources.txtar"))
	require.NoError(t, err)

	root := t.TempDir()
	for _, f := range archive.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, f.Data, 0644))
	}
	return root
}

func methodsByName(surface *models.TypeSurface) map[string]models.MethodDescriptor {
	byName := make(map[string]models.MethodDescriptor, len(surface.Methods))
	for _, m := range surface.Methods {
		byName[m.Name] = m
	}
	return byName
}

func TestSourceLoader_InterfaceWithInheritedMethods(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)}, WithSourceLogger(zaptest.NewLogger(t)))

	surface, err := loader.Load(context.Background(), "com.acme.store.Store")
	require.NoError(t, err)

	assert.Equal(t, "com.acme.store.Store", surface.QualifiedName)
	assert.Equal(t, []string{"K", "V"}, surface.TypeParameters)
	assert.Equal(t, []string{"com.acme.store.ReadOnlyStore", ObjectType}, surface.Supertypes)

	var names []string
	for _, m := range surface.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"put", "putAll", "snapshot", "capacity", "empty", "get", "keys", "view"}, names)

	methods := methodsByName(surface)

	put := methods["put"]
	assert.Equal(t, "V", put.ReturnTypeName)
	assert.Equal(t, []models.Parameter{{TypeName: "K", Name: "key"}, {TypeName: "V", Name: "value"}}, put.Parameters)
	assert.Equal(t, models.Public, put.Visibility)
	assert.True(t, put.Abstract)
	assert.Equal(t, "com.acme.store.Store", put.DeclaringType)

	assert.Equal(t, "com.acme.store.Store<K, V>", methods["putAll"].Parameters[0].TypeName)
	assert.Equal(t, "com.acme.store.Store<K, V>", methods["snapshot"].ReturnTypeName)

	capacity := methods["capacity"]
	assert.False(t, capacity.Abstract)
	assert.Equal(t, models.Public, capacity.Visibility)
	assert.Equal(t, "int", capacity.ReturnTypeName)

	empty := methods["empty"]
	assert.True(t, empty.Static)
	assert.Equal(t, []string{"K", "V"}, empty.TypeParameters)
	assert.False(t, empty.IsOverridable())

	assert.Equal(t, "java.util.List<K>", methods["keys"].ReturnTypeName)
	assert.Equal(t, "com.acme.store.ReadOnlyStore<K, V>", methods["view"].ReturnTypeName)
	assert.Equal(t, "com.acme.store.ReadOnlyStore", methods["get"].DeclaringType)

	assert.True(t, surface.IsA("com.acme.store.ReadOnlyStore"))
}

func TestSourceLoader_SubstitutesSupertypeArguments(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	surface, err := loader.Load(context.Background(), "com.acme.store.Names")
	require.NoError(t, err)

	assert.Empty(t, surface.TypeParameters)
	methods := methodsByName(surface)

	get := methods["get"]
	assert.Equal(t, "Integer", get.ReturnTypeName)
	assert.Equal(t, []models.Parameter{{TypeName: "String", Name: "key"}}, get.Parameters)
	assert.Equal(t, "java.util.List<String>", methods["keys"].ReturnTypeName)
	assert.Equal(t, "com.acme.store.ReadOnlyStore<String, Integer>", methods["view"].ReturnTypeName)

	refresh := methods["refresh"]
	assert.Equal(t, models.Protected, refresh.Visibility)
	assert.True(t, refresh.Abstract)

	assert.True(t, methods["first"].Final)
	assert.Equal(t, models.Private, methods["secret"].Visibility)

	var overridable []string
	for _, m := range surface.OverridableMethods() {
		overridable = append(overridable, m.Name)
	}
	assert.ElementsMatch(t, []string{"refresh", "get", "keys", "view", "equals", "hashCode", "toString"}, overridable)
}

func TestSourceLoader_ClassInheritsObjectMethods(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	surface, err := loader.Load(context.Background(), "com.acme.shape.Shape")
	require.NoError(t, err)

	var names []string
	for _, m := range surface.OverridableMethods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"toString", "scaled", "equals", "hashCode"}, names)

	methods := methodsByName(surface)
	assert.Equal(t, "com.acme.shape.Shape", methods["toString"].DeclaringType, "declared overrides win")
	assert.Equal(t, ObjectType, methods["hashCode"].DeclaringType)
	assert.Equal(t, "int", methods["hashCode"].ReturnTypeName)
	assert.Equal(t, []models.Parameter{{TypeName: "Object", Name: "obj"}}, methods["equals"].Parameters)
	assert.Equal(t, "boolean", methods["equals"].ReturnTypeName)
}

func TestSourceLoader_InterfacesDoNotInheritObjectMethods(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	surface, err := loader.Load(context.Background(), "com.acme.store.ReadOnlyStore")
	require.NoError(t, err)

	for _, m := range surface.Methods {
		assert.NotEqual(t, ObjectType, m.DeclaringType, "%s must not come from Object", m.Name)
	}
	assert.Equal(t, []string{ObjectType}, surface.Supertypes)
}

func TestSourceLoader_CyclicSupertypes(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	surface, err := loader.Load(context.Background(), "com.acme.cycle.Ping")
	require.NoError(t, err)

	var names []string
	for _, m := range surface.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"ping", "pong"}, names)
	assert.True(t, surface.IsA("com.acme.cycle.Pong"))
}

func TestSourceLoader_Archive(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "counter-sources.jar")
	f, err := os.Create(jar)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	entry, err := w.Create("com/acme/jar/Counter.java")
	require.NoError(t, err)
	_, err = entry.Write([]byte("package com.acme.jar;\n\npublic interface Counter {\n    long increment();\n}\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	loader := NewSourceLoader([]string{t.TempDir(), jar})

	surface, err := loader.Load(context.Background(), "com.acme.jar.Counter")
	require.NoError(t, err)
	require.Len(t, surface.Methods, 1)
	assert.Equal(t, "increment", surface.Methods[0].Name)
	assert.Equal(t, "long", surface.Methods[0].ReturnTypeName)
	assert.Equal(t, []string{ObjectType}, surface.Supertypes)
}

func TestSourceLoader_NotFound(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	_, err := loader.Load(context.Background(), "com.acme.Missing")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.TypeResolutionErrorCode))
	assert.Equal(t, "type not found: com.acme.Missing", err.Error())
}

func TestSourceLoader_UnparsableSource(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	_, err := loader.Load(context.Background(), "com.acme.broken.Broken")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.TypeResolutionErrorCode))
}

func TestSourceLoader_Canceled(t *testing.T) {
	loader := NewSourceLoader([]string{sourceTree(t)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, "com.acme.store.Store")
	assert.ErrorIs(t, err, context.Canceled)
}
