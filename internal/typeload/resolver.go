package typeload

import (
	"strings"

	"github.com/toyz/decorator/internal/javasrc"
	"github.com/toyz/decorator/internal/models"
)

// javaLang lists the java.lang supertypes recognized without a source
var javaLang = map[string]bool{
	"Object":        true,
	"Comparable":    true,
	"Iterable":      true,
	"Cloneable":     true,
	"Runnable":      true,
	"AutoCloseable": true,
	"CharSequence":  true,
	"Appendable":    true,
	"Readable":      true,
	"Number":        true,
	"Enum":          true,
	"Record":        true,
	"Throwable":     true,
	"Exception":     true,
}

// nameResolver qualifies the simple type names used inside one compilation
// unit the way the compiler would: the unit's own type, single-type imports,
// the unit's package, then on-demand imports. Names it cannot place are left
// as written.
type nameResolver struct {
	loader   *SourceLoader
	pkg      string
	self     string
	imports  map[string]string // simple name -> qualified name
	onDemand []string
	typeVars map[string]bool
	iface    bool
}

func newNameResolver(loader *SourceLoader, unit *javasrc.CompilationUnit, decl *javasrc.TypeDecl) *nameResolver {
	pkg, _ := unit.PackageName()
	r := &nameResolver{
		loader:   loader,
		pkg:      pkg,
		self:     decl.Name(),
		imports:  make(map[string]string),
		onDemand: unit.OnDemandPackages(),
		typeVars: make(map[string]bool),
		iface:    decl.IsInterface(),
	}
	for _, imp := range unit.Imports {
		if imp.Static || imp.OnDemand() {
			continue
		}
		simple := models.SimpleName(imp.Name)
		if _, dup := r.imports[simple]; !dup {
			r.imports[simple] = imp.Name
		}
	}
	for _, name := range decl.Spec.TypeParameterNames() {
		r.typeVars[name] = true
	}
	return r
}

// qualify returns the qualified name of a simple type name
func (r *nameResolver) qualify(simple string, vars map[string]bool) string {
	if vars[simple] || r.typeVars[simple] || javasrc.IsPrimitive(simple) || isTypeKeyword(simple) {
		return simple
	}
	if simple == r.self {
		return r.inPackage(simple)
	}
	if imported, ok := r.imports[simple]; ok {
		return imported
	}
	if r.pkg != "" && r.loader.exists(r.pkg+"."+simple) {
		return r.pkg + "." + simple
	}
	for _, pkg := range r.onDemand {
		if r.loader.exists(pkg + "." + simple) {
			return pkg + "." + simple
		}
	}
	return simple
}

// qualifySupertype is qualify for extends and implements entries. A
// supertype written with a qualifier is taken as is.
func (r *nameResolver) qualifySupertype(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	qualified := r.qualify(name, nil)
	if qualified == name && javaLang[name] {
		return "java.lang." + name
	}
	return qualified
}

// qualifyType qualifies every simple name inside a rendered type
func (r *nameResolver) qualifyType(typeName string, vars map[string]bool) string {
	return models.MapIdentifiers(typeName, func(ident string) string {
		return r.qualify(ident, vars)
	})
}

func (r *nameResolver) inPackage(simple string) string {
	if r.pkg == "" {
		return simple
	}
	return r.pkg + "." + simple
}

func (r *nameResolver) typeParams(params []*javasrc.TypeParam) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, r.qualifyType(p.String(), nil))
	}
	return out
}

// typeArguments renders the qualified type arguments of a supertype reference
func (r *nameResolver) typeArguments(ref *javasrc.TypeRef) []string {
	args := ref.TypeArguments()
	out := make([]string, 0, len(args))
	for _, arg := range args {
		out = append(out, r.qualifyType(arg.String(), nil))
	}
	return out
}

// method converts a parsed member into a descriptor. Interface members
// without an access keyword are public; interface members without body,
// default or static are abstract.
func (r *nameResolver) method(member javasrc.MethodMember, declaring string) models.MethodDescriptor {
	m := member.Method
	iface := r.iface

	vars := make(map[string]bool, len(m.TypeParams))
	for _, tp := range m.TypeParams {
		vars[tp.Name] = true
	}

	visibility := models.ParseVisibility(member.Visibility())
	if member.Visibility() == "" && iface {
		visibility = models.Public
	}

	static := member.HasModifier("static")
	desc := models.MethodDescriptor{
		Name:           m.Name,
		ReturnTypeName: r.qualifyType(m.ReturnTypeString(), vars),
		Visibility:     visibility,
		Static:         static,
		Final:          member.HasModifier("final"),
		Abstract:       member.HasModifier("abstract") || (iface && !static && !member.HasModifier("default") && m.Body == nil),
		DeclaringType:  declaring,
	}

	for _, tp := range m.TypeParamStrings() {
		desc.TypeParameters = append(desc.TypeParameters, r.qualifyType(tp, vars))
	}
	for _, t := range m.ThrowsStrings() {
		desc.Throws = append(desc.Throws, r.qualifyType(t, vars))
	}
	if m.Params != nil {
		for _, p := range m.Params.Params {
			desc.Parameters = append(desc.Parameters, models.Parameter{
				TypeName: r.qualifyType(p.TypeString(), vars),
				Name:     p.Name,
				Variadic: p.Variadic,
			})
		}
	}
	return desc
}

func isTypeKeyword(ident string) bool {
	return ident == "extends" || ident == "super"
}
