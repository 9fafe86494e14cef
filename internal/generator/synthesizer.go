package generator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/javagen"
	"github.com/toyz/decorator/internal/models"
)

// Synthesizer implements the DecoratorGenerator interface
type Synthesizer struct {
	logger *zap.Logger
}

var _ DecoratorGenerator = (*Synthesizer)(nil)

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynthesizer creates a new decorator synthesizer
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize emits <C>Impl for the declaration described by meta, forwarding
// every overridable method of surface to a wrapped delegate. The output
// depends only on its inputs.
func (s *Synthesizer) Synthesize(meta *models.ClassMetadata, surface *models.TypeSurface) (*models.GeneratedUnit, error) {
	if !meta.Valid() {
		return nil, errors.New(errors.GenerationErrorCode, "decorator metadata is incomplete")
	}
	if surface == nil {
		return nil, errors.Newf(errors.GenerationErrorCode, "no type surface for %s", meta.DecoratedTypeName)
	}
	if surface.QualifiedName != meta.DecoratedTypeName {
		return nil, errors.Newf(errors.GenerationErrorCode, "type surface %s does not describe %s",
			surface.QualifiedName, meta.DecoratedTypeName)
	}

	unit := newUnitBuilder(meta, surface)
	class := unit.skeleton()

	chained := 0
	seen := map[string]bool{delegateGetter + "()": true}
	for _, m := range surface.OverridableMethods() {
		sig := m.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true

		method, chains, err := unit.forwardingMethod(m)
		if err != nil {
			return nil, err
		}
		if chains {
			chained++
		}
		class.Methods = append(class.Methods, method)
	}

	source := javagen.Print(&javagen.CompilationUnit{
		Header:  []string{GeneratedHeader},
		Package: unit.pkg,
		Imports: unit.imports,
		Types:   []*javagen.Class{class},
	})

	s.logger.Debug("synthesized decorator",
		zap.String(logFieldClass, meta.QualifiedClassName()),
		zap.String(logFieldDecorated, meta.DecoratedTypeName),
		zap.Int(logFieldMethods, len(class.Methods)-1),
		zap.Int(logFieldChained, chained))

	return &models.GeneratedUnit{
		PackageName: unit.pkg,
		ClassName:   meta.ImplClassName(),
		Source:      source,
	}, nil
}

// unitBuilder holds the names derived once per decorator
type unitBuilder struct {
	meta    *models.ClassMetadata
	surface *models.TypeSurface
	pkg     string
	imports *javagen.ImportManager

	implType     string // e.g. MapOptionalImpl<K, V>
	declType     string // e.g. MapOptional<K, V>
	delegateType string // e.g. Map<K, V>

	// typeArgs maps the surface's own type parameters to the arguments
	// the declaration passes to the decorated type
	typeArgs map[string]string
}

func newUnitBuilder(meta *models.ClassMetadata, surface *models.TypeSurface) *unitBuilder {
	pkg := GeneratedPackagePrefix + "." + meta.PackageName

	imports := javagen.NewImportManager(pkg)
	imports.AddImport(meta.DecoratedTypeName)
	imports.AddImport(meta.QualifiedClassName())

	names := models.TypeParamNames(meta.TypeParameters)
	b := &unitBuilder{
		meta:         meta,
		surface:      surface,
		pkg:          pkg,
		imports:      imports,
		implType:     parameterized(meta.ImplClassName(), names),
		declType:     parameterized(meta.ClassName, names),
		delegateType: parameterized(meta.DecoratedSimpleName(), meta.DecoratedTypeArguments),
		typeArgs:     make(map[string]string),
	}

	for i, name := range models.TypeParamNames(surface.TypeParameters) {
		arg := "Object"
		if i < len(meta.DecoratedTypeArguments) {
			arg = meta.DecoratedTypeArguments[i]
		}
		if arg != name {
			b.typeArgs[name] = arg
		}
	}
	return b
}

// skeleton builds the class with its delegate field, constructor and accessor
func (b *unitBuilder) skeleton() *javagen.Class {
	return &javagen.Class{
		Modifiers:  []string{"public"},
		Name:       b.meta.ImplClassName(),
		TypeParams: b.meta.TypeParameters,
		Extends:    b.declType,
		Fields: []*javagen.Field{{
			Modifiers: []string{"private", "final"},
			Type:      b.delegateType,
			Name:      delegateFieldName,
		}},
		Constructors: []*javagen.Constructor{{
			Modifiers: []string{"public"},
			Name:      b.meta.ImplClassName(),
			Params:    []javagen.Param{{Type: b.delegateType, Name: delegateParamName}},
			Body: []javagen.Statement{javagen.Assign{
				Target: javagen.ThisField(delegateFieldName),
				Value:  javagen.Name(delegateParamName),
			}},
		}},
		Methods: []*javagen.Method{{
			Modifiers:  []string{"public"},
			ReturnType: b.delegateType,
			Name:       delegateGetter,
			Body:       []javagen.Statement{javagen.Return{Value: javagen.ThisField(delegateFieldName)}},
		}},
	}
}

// forwardingMethod emits the override of m that calls through to the
// delegate. It reports whether the chaining rule applied.
func (b *unitBuilder) forwardingMethod(m models.MethodDescriptor) (*javagen.Method, bool, error) {
	var visibility string
	switch m.Visibility {
	case models.Public:
		visibility = "public"
	case models.Protected:
		visibility = "protected"
	default:
		return nil, false, errors.NewInvariantError(
			"method %s of %s reached emission with %s visibility",
			m.Signature(), b.surface.QualifiedName, m.Visibility)
	}

	own := make(map[string]bool, len(m.TypeParameters))
	for _, name := range models.TypeParamNames(m.TypeParameters) {
		own[name] = true
	}
	resolve := func(typeName string) string {
		return models.SubstituteTypeVars(typeName, b.typeArgs, own)
	}

	params := make([]javagen.Param, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, javagen.Param{Type: resolve(p.TypeName), Name: p.Name, Variadic: p.Variadic})
	}
	throws := make([]string, 0, len(m.Throws))
	for _, t := range m.Throws {
		throws = append(throws, resolve(t))
	}
	typeParams := make([]string, 0, len(m.TypeParameters))
	for _, tp := range m.TypeParameters {
		typeParams = append(typeParams, resolve(tp))
	}

	method := &javagen.Method{
		Modifiers:  []string{visibility},
		TypeParams: typeParams,
		ReturnType: resolve(m.ReturnTypeName),
		Name:       m.Name,
		Params:     params,
		Throws:     throws,
	}

	var call javagen.Expr = javagen.Call{
		Target: javagen.ThisField(delegateFieldName),
		Name:   m.Name,
		Args:   javagen.Names(params),
	}

	switch {
	case m.IsVoid():
		method.Body = []javagen.Statement{javagen.ExprStmt{X: call}}
		return method, false, nil
	case b.chains(m, own):
		if !b.isDelegateType(method.ReturnType) {
			call = javagen.Cast{Type: b.delegateType, Value: call}
		}
		method.ReturnType = b.declType
		method.Body = []javagen.Statement{javagen.Return{Value: javagen.New{Type: b.implType, Args: []javagen.Expr{call}}}}
		return method, true, nil
	default:
		method.Body = []javagen.Statement{javagen.Return{Value: call}}
		return method, false, nil
	}
}

// chains reports whether the decorated type is-a the method's return type.
// Type variables never chain.
func (b *unitBuilder) chains(m models.MethodDescriptor, own map[string]bool) bool {
	erased := models.EraseType(m.ReturnTypeName)
	if own[erased] {
		return false
	}
	for _, name := range models.TypeParamNames(b.surface.TypeParameters) {
		if name == erased {
			return false
		}
	}
	return b.surface.IsA(erased)
}

func parameterized(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// isDelegateType reports whether typeName spells the delegate's own type,
// qualified or not
func (b *unitBuilder) isDelegateType(typeName string) bool {
	if rest, ok := strings.CutPrefix(typeName, b.meta.DecoratedTypeName); ok && (rest == "" || rest[0] == '<') {
		typeName = b.meta.DecoratedSimpleName() + rest
	}
	return compactType(typeName) == compactType(b.delegateType)
}

func compactType(typeName string) string {
	return strings.ReplaceAll(typeName, " ", "")
}
