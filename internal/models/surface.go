package models

import "strings"

// TypeSurface is the reflective description of a decorated type: its name,
// its supertypes and its enumerable methods, inherited ones included.
type TypeSurface struct {
	QualifiedName  string
	TypeParameters []string
	// Supertypes holds the qualified names of every type the surface is-a,
	// transitively, excluding the type itself.
	Supertypes []string
	// Methods are ordered most-derived first; no signature appears twice.
	Methods []MethodDescriptor
}

// SimpleName returns the type's name after its last qualifier
func (s *TypeSurface) SimpleName() string {
	return SimpleName(s.QualifiedName)
}

// IsA reports whether a value of this type is assignable to typeName. Both
// qualified and simple names are accepted; type arguments are ignored.
func (s *TypeSurface) IsA(typeName string) bool {
	erased := EraseType(typeName)
	if erased == "" {
		return false
	}
	if s.matches(s.QualifiedName, erased) {
		return true
	}
	for _, super := range s.Supertypes {
		if s.matches(super, erased) {
			return true
		}
	}
	return false
}

func (s *TypeSurface) matches(qualified, erased string) bool {
	if qualified == erased {
		return true
	}
	return !strings.Contains(erased, ".") && SimpleName(qualified) == erased
}

// OverridableMethods returns the methods a subclass may override, in order
func (s *TypeSurface) OverridableMethods() []MethodDescriptor {
	var methods []MethodDescriptor
	for _, m := range s.Methods {
		if m.IsOverridable() {
			methods = append(methods, m)
		}
	}
	return methods
}
