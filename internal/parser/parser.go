// Package parser turns Java decorator declarations into ClassMetadata.
package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/attempt"
	"github.com/toyz/decorator/internal/javasrc"
	"github.com/toyz/decorator/internal/models"
)

// Parser implements the MetadataReader interface on top of the javasrc grammar
type Parser struct {
	java     *javasrc.Parser
	reporter *ErrorReporter
	logger   *zap.Logger
}

var _ MetadataReader = (*Parser)(nil)

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new metadata extractor
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		java:     javasrc.NewParser(),
		reporter: NewErrorReporter(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Read parses src and validates it as a decorator declaration. name only
// identifies the unit in diagnostics. Exactly one outcome is produced: the
// metadata, a parse failure, or the first validation failure of the
// pipeline.
func (p *Parser) Read(name, src string) attempt.Attempt[*models.ClassMetadata] {
	unit, err := p.java.Parse(name, src)
	if err != nil {
		p.logger.Debug("declaration did not parse", zap.String(logFieldFile, name), zap.Error(err))
		return attempt.FailedWith[*models.ClassMetadata](err)
	}

	imports := unit.ImportNames()
	meta := &models.ClassMetadata{SourceFile: name}

	mainClass := attempt.OfOptional(unit.TopLevelClass()).
		FailOnEmptyWith(p.reporter.Validation(ReasonNoTopLevelClass)).
		RunIfPresent(func(decl *javasrc.TypeDecl) {
			meta.ClassName = decl.Name()
			meta.TypeParameters = typeParamDeclarations(decl.Spec)
		})

	withPackage := attempt.FlatMap(mainClass, func(decl *javasrc.TypeDecl) attempt.Attempt[*javasrc.TypeDecl] {
		pkg := p.findPackage(unit).RunIfPresent(func(pkg string) { meta.PackageName = pkg })
		return attempt.Map(pkg, func(string) *javasrc.TypeDecl { return decl })
	})

	decorated := attempt.FlatMap(withPackage, func(decl *javasrc.TypeDecl) attempt.Attempt[string] {
		return p.findClassToDecorate(imports, decl, meta)
	}).RunIfPresent(func(qualified string) { meta.DecoratedTypeName = qualified })

	result := attempt.Map(decorated, func(string) *models.ClassMetadata { return meta })

	result.IfFailed(func(reason string) {
		p.logger.Debug("declaration rejected",
			zap.String(logFieldFile, name),
			zap.String(logFieldClass, meta.ClassName),
			zap.String(logFieldReason, reason))
	})
	result.IfPresent(func(m *models.ClassMetadata) {
		p.logger.Debug("declaration accepted",
			zap.String(logFieldFile, name),
			zap.String(logFieldClass, m.QualifiedClassName()),
			zap.String(logFieldDecorated, m.DecoratedTypeName))
	})

	return result
}

func (p *Parser) findPackage(unit *javasrc.CompilationUnit) attempt.Attempt[string] {
	return attempt.OfOptional(unit.PackageName()).
		FailOnEmptyWith(p.reporter.Validation(ReasonNoPackage))
}

func (p *Parser) findClassToDecorate(imports []string, decl *javasrc.TypeDecl, meta *models.ClassMetadata) attempt.Attempt[string] {
	capability := attempt.OfOptional(findDecoratorCapability(decl)).
		FailOnEmptyWith(p.reporter.Validation(fmt.Sprintf(reasonNotDecoratorFmt, decl.Name())))

	target := attempt.FlatMapOptional(capability, firstNamedTypeArgument).
		FailOnEmptyWith(p.reporter.Validation(ReasonNoTypeArguments)).
		RunIfPresent(func(ref *javasrc.TypeRef) {
			meta.DecoratedTypeArguments = renderAll(ref.TypeArguments())
		})

	return attempt.FlatMap(target, func(ref *javasrc.TypeRef) attempt.Attempt[string] {
		return p.qualifiedClassFromImports(ref.SimpleName(), imports)
	})
}

// findDecoratorCapability returns the implemented type whose simple name is Decorator
func findDecoratorCapability(decl *javasrc.TypeDecl) (*javasrc.TypeRef, bool) {
	for _, ref := range decl.Spec.Implements {
		if ref.SimpleName() == DecoratorTypeName {
			return ref, true
		}
	}
	return nil, false
}

// firstNamedTypeArgument returns the first type argument if it is a named
// class or interface type
func firstNamedTypeArgument(capability *javasrc.TypeRef) (*javasrc.TypeRef, bool) {
	args := capability.TypeArguments()
	if len(args) == 0 || !args[0].IsNamed() {
		return nil, false
	}
	return args[0], true
}

func (p *Parser) qualifiedClassFromImports(simpleName string, imports []string) attempt.Attempt[string] {
	suffix := "." + simpleName
	for _, imp := range imports {
		if strings.HasSuffix(imp, suffix) {
			return attempt.Of(imp)
		}
	}
	return attempt.FailedWith[string](p.reporter.Unresolved(simpleName))
}

func typeParamDeclarations(spec *javasrc.TypeSpec) []string {
	params := make([]string, 0, len(spec.TypeParams))
	for _, tp := range spec.TypeParams {
		params = append(params, tp.String())
	}
	return params
}

func renderAll(refs []*javasrc.TypeRef) []string {
	rendered := make([]string, 0, len(refs))
	for _, ref := range refs {
		rendered = append(rendered, ref.String())
	}
	return rendered
}
