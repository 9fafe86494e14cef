package models

import "strings"

// ClassMetadata describes a validated decorator declaration
type ClassMetadata struct {
	ClassName         string // simple name of the declaration, e.g. MapOptional
	PackageName       string // package of the declaration
	DecoratedTypeName string // import-resolved qualified name of the wrapped type

	// TypeParameters are the declaration's own type parameters, e.g. K and V
	// for "MapOptional<K,V>". Empty for non-generic declarations.
	TypeParameters []string
	// DecoratedTypeArguments are the verbatim type arguments given to the
	// wrapped type inside Decorator<...>, e.g. K and V for Decorator<Map<K,V>>.
	DecoratedTypeArguments []string
	// SourceFile is the display identifier of the unit the metadata came from
	SourceFile string
}

// DecoratedSimpleName returns the wrapped type's name after its last qualifier
func (m *ClassMetadata) DecoratedSimpleName() string {
	return SimpleName(m.DecoratedTypeName)
}

// QualifiedClassName returns the declaration's fully qualified name
func (m *ClassMetadata) QualifiedClassName() string {
	return m.PackageName + "." + m.ClassName
}

// ImplClassName returns the name of the generated implementation class
func (m *ClassMetadata) ImplClassName() string {
	return m.ClassName + "Impl"
}

// IsGeneric reports whether the declaration declares type parameters
func (m *ClassMetadata) IsGeneric() bool {
	return len(m.TypeParameters) > 0
}

// Valid reports whether the metadata satisfies the extractor's output invariant
func (m *ClassMetadata) Valid() bool {
	return m != nil &&
		m.ClassName != "" &&
		m.PackageName != "" &&
		m.DecoratedTypeName != "" &&
		strings.Contains(m.DecoratedTypeName, ".")
}

// SimpleName returns the part of a qualified name after its last '.'
func SimpleName(qualified string) string {
	return qualified[strings.LastIndex(qualified, ".")+1:]
}

// PackageOf returns the part of a qualified name before its last '.'
func PackageOf(qualified string) string {
	idx := strings.LastIndex(qualified, ".")
	if idx < 0 {
		return ""
	}
	return qualified[:idx]
}
