package typeload

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/javasrc"
	"github.com/toyz/decorator/internal/models"
	"github.com/toyz/decorator/internal/utils"
	"github.com/toyz/decorator/internal/utils/fileops"
)

// SourceLoader builds type surfaces by parsing Java sources found on a source
// path of directories and jar/zip archives. A type a.b.C is looked up as
// a/b/C.java below each root in order.
type SourceLoader struct {
	roots    []string
	reader   *utils.FileReader
	fileOps  *fileops.FileOps
	archives *archiveIndex
	found    *utils.Cache[string, location]
	logger   *zap.Logger
}

var _ TypeLoader = (*SourceLoader)(nil)

// SourceOption configures a SourceLoader
type SourceOption func(*SourceLoader)

// WithSourceLogger sets the structured logger
func WithSourceLogger(logger *zap.Logger) SourceOption {
	return func(l *SourceLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithFileReader shares a parsed-unit cache with other components
func WithFileReader(reader *utils.FileReader) SourceOption {
	return func(l *SourceLoader) {
		if reader != nil {
			l.reader = reader
		}
	}
}

// NewSourceLoader creates a loader over the given source path roots
func NewSourceLoader(roots []string, opts ...SourceOption) *SourceLoader {
	l := &SourceLoader{
		roots:    roots,
		reader:   utils.NewFileReader(),
		fileOps:  fileops.NewFileOps(),
		archives: newArchiveIndex(),
		found:    utils.NewCache[string, location](),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// location is where the source of a type lives: a file, or an entry of an
// archive
type location struct {
	path    string
	entry   string
	present bool
}

func (loc location) String() string {
	if loc.entry == "" {
		return loc.path
	}
	return loc.path + "!/" + loc.entry
}

// Load parses the declaration of qualifiedName and of its supertypes
func (l *SourceLoader) Load(ctx context.Context, qualifiedName string) (*models.TypeSurface, error) {
	return l.load(ctx, qualifiedName, make(map[string]bool))
}

func (l *SourceLoader) load(ctx context.Context, qualifiedName string, visiting map[string]bool) (*models.TypeSurface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	visiting[qualifiedName] = true

	unit, loc, err := l.parse(qualifiedName)
	if err != nil {
		return nil, err
	}
	decl, ok := unit.FindType(models.SimpleName(qualifiedName))
	if !ok {
		return nil, errors.NewTypeNotFoundError(qualifiedName, nil).
			WithContext(logFieldSource, loc.String())
	}

	l.logger.Debug("loading type from source",
		zap.String(logFieldType, qualifiedName),
		zap.String(logFieldSource, loc.String()))

	names := newNameResolver(l, unit, decl)
	surface := &models.TypeSurface{
		QualifiedName:  qualifiedName,
		TypeParameters: names.typeParams(decl.Spec.TypeParams),
	}

	for _, member := range decl.Spec.Methods() {
		surface.Methods = append(surface.Methods, names.method(member, qualifiedName))
	}

	for _, ref := range decl.Spec.Supertypes() {
		superName := names.qualifySupertype(ref.QualifiedName())
		if superName == ObjectType {
			continue
		}
		surface.Supertypes = append(surface.Supertypes, superName)
		if visiting[superName] {
			continue
		}

		super, err := l.load(ctx, superName, visiting)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.logger.Debug("supertype not on source path",
				zap.String(logFieldType, qualifiedName),
				zap.String("supertype", superName),
				zap.Error(err))
			continue
		}

		for _, inherited := range super.Supertypes {
			if inherited != ObjectType {
				surface.Supertypes = append(surface.Supertypes, inherited)
			}
		}
		args := names.typeArguments(ref)
		surface.Methods = append(surface.Methods, inherit(super, args)...)
	}

	surface.Supertypes = appendUnique(surface.Supertypes, ObjectType)
	surface.Supertypes = dedupe(surface.Supertypes)
	if !decl.IsInterface() {
		surface.Methods = append(surface.Methods, objectMethods()...)
	}
	surface.Methods = dedupeMethods(surface.Methods)
	return surface, nil
}

// objectMethods returns the public, non-final methods every class inherits
// from java.lang.Object. Interfaces do not inherit members from Object.
func objectMethods() []models.MethodDescriptor {
	method := func(name, returns string, params ...models.Parameter) models.MethodDescriptor {
		return models.MethodDescriptor{
			Name:           name,
			Parameters:     params,
			ReturnTypeName: returns,
			Visibility:     models.Public,
			DeclaringType:  ObjectType,
		}
	}
	return []models.MethodDescriptor{
		method("equals", "boolean", models.Parameter{TypeName: "Object", Name: "obj"}),
		method("hashCode", "int"),
		method("toString", "String"),
	}
}

// parse locates and parses the compilation unit declaring qualifiedName
func (l *SourceLoader) parse(qualifiedName string) (*javasrc.CompilationUnit, location, error) {
	loc, err := l.locate(qualifiedName)
	if err != nil {
		return nil, loc, errors.NewTypeNotFoundError(qualifiedName, err)
	}
	if !loc.present {
		return nil, loc, errors.NewTypeNotFoundError(qualifiedName, nil)
	}

	var unit *javasrc.CompilationUnit
	if loc.entry == "" {
		unit, err = l.reader.ParseJavaFile(loc.path)
	} else {
		var content string
		content, err = l.archives.Read(loc.path, loc.entry)
		if err == nil {
			unit, err = l.reader.ParseJavaSource(loc.String(), content)
		}
	}
	if err != nil {
		return nil, loc, errors.NewTypeNotFoundError(qualifiedName, err).
			WithContext(logFieldSource, loc.String())
	}
	return unit, loc, nil
}

// locate finds the first root holding the source of qualifiedName
func (l *SourceLoader) locate(qualifiedName string) (location, error) {
	return l.found.GetOrLoad(qualifiedName, func() (location, error) {
		rel := strings.ReplaceAll(qualifiedName, ".", "/") + ".java"
		for _, root := range l.roots {
			if isArchive(root) && l.fileOps.PathValidator().IsFile(root) {
				ok, err := l.archives.Contains(root, rel)
				if err != nil {
					return location{}, err
				}
				if ok {
					return location{path: root, entry: rel, present: true}, nil
				}
				continue
			}

			path := filepath.Join(root, filepath.FromSlash(rel))
			if l.fileOps.PathValidator().IsFile(path) {
				return location{path: path, present: true}, nil
			}
		}
		return location{}, nil
	})
}

// exists reports whether qualifiedName has a source on the source path
func (l *SourceLoader) exists(qualifiedName string) bool {
	loc, err := l.locate(qualifiedName)
	return err == nil && loc.present
}

// inherit returns super's methods with its type parameters replaced by the
// arguments the subtype passes
func inherit(super *models.TypeSurface, args []string) []models.MethodDescriptor {
	mapping := make(map[string]string)
	for i, name := range models.TypeParamNames(super.TypeParameters) {
		arg := "Object"
		if i < len(args) {
			arg = args[i]
		}
		if arg != name {
			mapping[name] = arg
		}
	}

	methods := make([]models.MethodDescriptor, 0, len(super.Methods))
	for _, m := range super.Methods {
		if len(mapping) > 0 {
			m = substituteMethod(m, mapping)
		}
		methods = append(methods, m)
	}
	return methods
}

func substituteMethod(m models.MethodDescriptor, mapping map[string]string) models.MethodDescriptor {
	own := make(map[string]bool, len(m.TypeParameters))
	for _, name := range models.TypeParamNames(m.TypeParameters) {
		own[name] = true
	}
	sub := func(typeName string) string {
		return models.SubstituteTypeVars(typeName, mapping, own)
	}

	m.ReturnTypeName = sub(m.ReturnTypeName)
	params := make([]models.Parameter, len(m.Parameters))
	for i, p := range m.Parameters {
		p.TypeName = sub(p.TypeName)
		params[i] = p
	}
	m.Parameters = params

	throws := make([]string, len(m.Throws))
	for i, t := range m.Throws {
		throws[i] = sub(t)
	}
	m.Throws = throws

	typeParams := make([]string, len(m.TypeParameters))
	for i, tp := range m.TypeParameters {
		typeParams[i] = sub(tp)
	}
	m.TypeParameters = typeParams
	return m
}

// dedupeMethods keeps the first, most derived, method of each signature
func dedupeMethods(methods []models.MethodDescriptor) []models.MethodDescriptor {
	seen := make(map[string]bool, len(methods))
	out := make([]models.MethodDescriptor, 0, len(methods))
	for _, m := range methods {
		sig := m.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, m)
	}
	return out
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
