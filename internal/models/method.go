package models

import "strings"

// Visibility is the access level of a reflected method
type Visibility int

const (
	PackagePrivate Visibility = iota
	Public
	Protected
	Private
)

// String returns the Java keyword for the visibility, or "package-private"
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "package-private"
	}
}

// ParseVisibility converts a Java keyword into a Visibility
func ParseVisibility(s string) Visibility {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return Public
	case "protected":
		return Protected
	case "private":
		return Private
	default:
		return PackagePrivate
	}
}

// Parameter is a single method parameter
type Parameter struct {
	TypeName string `yaml:"type"`
	Name     string `yaml:"name"`
	Variadic bool   `yaml:"variadic,omitempty"`
}

// MethodDescriptor is the reflected description of one method of a type
type MethodDescriptor struct {
	Name           string
	Parameters     []Parameter
	ReturnTypeName string
	Visibility     Visibility

	Static         bool
	Final          bool
	Abstract       bool
	TypeParameters []string // method type parameters, e.g. "U", "T extends Comparable<T>"
	Throws         []string
	DeclaringType  string // qualified name of the type that declares the method
}

// IsOverridable reports whether a subclass can override the method: it is
// neither static nor final, and is public or protected.
func (m MethodDescriptor) IsOverridable() bool {
	if m.Static || m.Final {
		return false
	}
	return m.Visibility == Public || m.Visibility == Protected
}

// IsVoid reports whether the method returns nothing
func (m MethodDescriptor) IsVoid() bool {
	return m.ReturnTypeName == "void"
}

// Signature returns a key identifying the method for override purposes:
// its name and erased parameter types.
func (m MethodDescriptor) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EraseType(p.TypeName))
		if p.Variadic {
			b.WriteString("[]")
		}
	}
	b.WriteByte(')')
	return b.String()
}

// EraseType strips type arguments from a type name:
// "java.util.Map<K, V>[]" becomes "java.util.Map[]".
func EraseType(typeName string) string {
	var b strings.Builder
	depth := 0
	for _, r := range typeName {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0 && r != ' ':
			b.WriteRune(r)
		}
	}
	return b.String()
}
