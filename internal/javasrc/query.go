package javasrc

import "strings"

var primitives = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// IsPrimitive reports whether name is a Java primitive type or void
func IsPrimitive(name string) bool {
	return primitives[name]
}

// PackageName returns the declared package, if any
func (u *CompilationUnit) PackageName() (string, bool) {
	if u.Package == nil || u.Package.Name == "" {
		return "", false
	}
	return u.Package.Name, true
}

// ImportNames returns the imported names in source order without duplicates.
// On-demand imports contribute their package name, static imports their
// full member name.
func (u *CompilationUnit) ImportNames() []string {
	seen := make(map[string]bool, len(u.Imports))
	names := make([]string, 0, len(u.Imports))
	for _, imp := range u.Imports {
		name := imp.Name
		if imp.OnDemand() {
			name = strings.TrimSuffix(name, ".*")
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// OnDemandPackages returns the packages imported with a trailing ".*"
func (u *CompilationUnit) OnDemandPackages() []string {
	var pkgs []string
	for _, imp := range u.Imports {
		if imp.OnDemand() && !imp.Static {
			pkgs = append(pkgs, strings.TrimSuffix(imp.Name, ".*"))
		}
	}
	return pkgs
}

// OnDemand reports whether the import ends in ".*"
func (i *ImportDecl) OnDemand() bool {
	return strings.HasSuffix(i.Name, ".*")
}

// TopLevelClass returns the first top-level class or interface declaration
func (u *CompilationUnit) TopLevelClass() (*TypeDecl, bool) {
	for _, t := range u.Types {
		if t.Spec.Kind == "class" || t.Spec.Kind == "interface" {
			return t, true
		}
	}
	return nil, false
}

// FindType returns the top-level type declaration with the given simple name
func (u *CompilationUnit) FindType(simpleName string) (*TypeDecl, bool) {
	for _, t := range u.Types {
		if t.Spec.Name == simpleName {
			return t, true
		}
	}
	return nil, false
}

// Name returns the declared simple name
func (t *TypeDecl) Name() string {
	return t.Spec.Name
}

// Kind returns class, interface, enum, record or @interface
func (t *TypeDecl) Kind() string {
	return t.Spec.Kind
}

// IsInterface reports whether the declaration is an interface or annotation type
func (t *TypeDecl) IsInterface() bool {
	return t.Spec.Kind == "interface" || t.Spec.Kind == "@interface"
}

// HasModifier reports whether the declaration carries the keyword modifier
func (t *TypeDecl) HasModifier(keyword string) bool {
	return hasKeyword(t.Modifiers, keyword)
}

// TypeParameterNames returns the declared type variable names
func (s *TypeSpec) TypeParameterNames() []string {
	names := make([]string, 0, len(s.TypeParams))
	for _, p := range s.TypeParams {
		names = append(names, p.Name)
	}
	return names
}

// Supertypes returns the extends clause followed by the implements clause
func (s *TypeSpec) Supertypes() []*TypeRef {
	supers := make([]*TypeRef, 0, len(s.Extends)+len(s.Implements))
	supers = append(supers, s.Extends...)
	return append(supers, s.Implements...)
}

// Methods returns the method members of the body in declaration order,
// each with the modifiers written in front of it.
func (s *TypeSpec) Methods() []MethodMember {
	var methods []MethodMember
	for _, m := range s.Body.Members {
		if m.Decl != nil && m.Decl.Method != nil {
			methods = append(methods, MethodMember{Modifiers: m.Modifiers, Method: m.Decl.Method})
		}
	}
	return methods
}

// MethodMember pairs a method with its modifiers
type MethodMember struct {
	Modifiers []*Modifier
	Method    *MethodDecl
}

// HasModifier reports whether the method carries the keyword modifier
func (m MethodMember) HasModifier(keyword string) bool {
	return hasKeyword(m.Modifiers, keyword)
}

// Visibility returns the access keyword written on the method, or ""
func (m MethodMember) Visibility() string {
	for _, keyword := range []string{"public", "protected", "private"} {
		if m.HasModifier(keyword) {
			return keyword
		}
	}
	return ""
}

// ReturnTypeString renders the return type including any trailing array dims
func (m *MethodDecl) ReturnTypeString() string {
	return m.ReturnType.String() + strings.Repeat("[]", len(m.Dims))
}

// TypeParamStrings renders each declared type parameter with its bounds
func (m *MethodDecl) TypeParamStrings() []string {
	params := make([]string, 0, len(m.TypeParams))
	for _, p := range m.TypeParams {
		params = append(params, p.String())
	}
	return params
}

// ThrowsStrings renders the throws clause entries
func (m *MethodDecl) ThrowsStrings() []string {
	throws := make([]string, 0, len(m.Throws))
	for _, t := range m.Throws {
		throws = append(throws, t.String())
	}
	return throws
}

// TypeString renders the parameter type including declarator dims but not
// the varargs ellipsis
func (p *FormalParameter) TypeString() string {
	return p.Type.String() + strings.Repeat("[]", len(p.Dims))
}

func hasKeyword(modifiers []*Modifier, keyword string) bool {
	for _, m := range modifiers {
		if m.Keyword == keyword {
			return true
		}
	}
	return false
}

// IsWildcard reports whether the reference is "?" with or without bounds
func (r *TypeRef) IsWildcard() bool {
	return r.Wildcard != nil
}

// IsArray reports whether the reference has array dimensions
func (r *TypeRef) IsArray() bool {
	return len(r.Dims) > 0
}

// IsPrimitive reports whether the reference names a primitive type
func (r *TypeRef) IsPrimitive() bool {
	return len(r.Segments) == 1 && !r.IsArray() && IsPrimitive(r.Segments[0].Name)
}

// IsNamed reports whether the reference is a plain named reference type:
// not a wildcard, primitive or array
func (r *TypeRef) IsNamed() bool {
	return !r.IsWildcard() && !r.IsArray() && len(r.Segments) > 0 && !IsPrimitive(r.Segments[0].Name)
}

// QualifiedName joins the segment names without type arguments
func (r *TypeRef) QualifiedName() string {
	names := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		names = append(names, s.Name)
	}
	return strings.Join(names, ".")
}

// SimpleName returns the last segment name
func (r *TypeRef) SimpleName() string {
	if len(r.Segments) == 0 {
		return ""
	}
	return r.Segments[len(r.Segments)-1].Name
}

// TypeArguments returns the type arguments of the last segment
func (r *TypeRef) TypeArguments() []*TypeRef {
	if len(r.Segments) == 0 {
		return nil
	}
	last := r.Segments[len(r.Segments)-1]
	if last.Args == nil {
		return nil
	}
	return last.Args.Args
}

// String renders the reference in canonical Java form, e.g.
// "java.util.Map<K, List<? extends V>>[]"
func (r *TypeRef) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

func (r *TypeRef) write(b *strings.Builder) {
	if r.Wildcard != nil {
		b.WriteString("?")
		if r.Wildcard.Bound != "" && r.Wildcard.Type != nil {
			b.WriteString(" " + r.Wildcard.Bound + " ")
			r.Wildcard.Type.write(b)
		}
	} else {
		for i, s := range r.Segments {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
			if s.Args != nil {
				b.WriteByte('<')
				for j, arg := range s.Args.Args {
					if j > 0 {
						b.WriteString(", ")
					}
					arg.write(b)
				}
				b.WriteByte('>')
			}
		}
	}
	b.WriteString(strings.Repeat("[]", len(r.Dims)))
}

// String renders the type parameter with its bounds, e.g. "T extends Comparable<T>"
func (p *TypeParam) String() string {
	if len(p.Bounds) == 0 {
		return p.Name
	}
	bounds := make([]string, 0, len(p.Bounds))
	for _, b := range p.Bounds {
		bounds = append(bounds, b.String())
	}
	return p.Name + " extends " + strings.Join(bounds, " & ")
}
