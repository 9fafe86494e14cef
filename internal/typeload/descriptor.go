package typeload

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/models"
)

// typeDescriptor is the YAML form of a TypeSurface
type typeDescriptor struct {
	Name           string             `yaml:"name"`
	TypeParameters []string           `yaml:"type_parameters,omitempty"`
	Supertypes     []string           `yaml:"supertypes,omitempty"`
	Methods        []methodDescriptor `yaml:"methods"`
}

type methodDescriptor struct {
	Name           string             `yaml:"name"`
	TypeParameters []string           `yaml:"type_parameters,omitempty"`
	Parameters     []models.Parameter `yaml:"parameters,omitempty"`
	Returns        string             `yaml:"returns"`
	Visibility     string             `yaml:"visibility"`
	Static         bool               `yaml:"static,omitempty"`
	Final          bool               `yaml:"final,omitempty"`
	Abstract       bool               `yaml:"abstract,omitempty"`
	Throws         []string           `yaml:"throws,omitempty"`
	DeclaringType  string             `yaml:"declaring_type,omitempty"`
}

func (d *typeDescriptor) surface() *models.TypeSurface {
	s := &models.TypeSurface{
		QualifiedName:  d.Name,
		TypeParameters: d.TypeParameters,
		Supertypes:     d.Supertypes,
	}
	for _, m := range d.Methods {
		returns := m.Returns
		if returns == "" {
			returns = "void"
		}
		s.Methods = append(s.Methods, models.MethodDescriptor{
			Name:           m.Name,
			Parameters:     m.Parameters,
			ReturnTypeName: returns,
			Visibility:     models.ParseVisibility(m.Visibility),
			Static:         m.Static,
			Final:          m.Final,
			Abstract:       m.Abstract,
			TypeParameters: m.TypeParameters,
			Throws:         m.Throws,
			DeclaringType:  m.DeclaringType,
		})
	}
	return s
}

func describe(s *models.TypeSurface) *typeDescriptor {
	d := &typeDescriptor{
		Name:           s.QualifiedName,
		TypeParameters: s.TypeParameters,
		Supertypes:     s.Supertypes,
		Methods:        make([]methodDescriptor, 0, len(s.Methods)),
	}
	for _, m := range s.Methods {
		d.Methods = append(d.Methods, methodDescriptor{
			Name:           m.Name,
			TypeParameters: m.TypeParameters,
			Parameters:     m.Parameters,
			Returns:        m.ReturnTypeName,
			Visibility:     m.Visibility.String(),
			Static:         m.Static,
			Final:          m.Final,
			Abstract:       m.Abstract,
			Throws:         m.Throws,
			DeclaringType:  m.DeclaringType,
		})
	}
	return d
}

// MarshalDescriptor renders a surface as a YAML type descriptor
func MarshalDescriptor(surface *models.TypeSurface) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(describe(surface)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeDescriptors reads every YAML document of r as a type descriptor
func DecodeDescriptors(r io.Reader) ([]*models.TypeSurface, error) {
	var surfaces []*models.TypeSurface
	dec := yaml.NewDecoder(r)
	for {
		var d typeDescriptor
		err := dec.Decode(&d)
		if stderrors.Is(err, io.EOF) {
			return surfaces, nil
		}
		if err != nil {
			return nil, err
		}
		if d.Name == "" || !strings.Contains(d.Name, ".") {
			return nil, fmt.Errorf("descriptor %d: name %q is not a qualified type name", len(surfaces)+1, d.Name)
		}
		surfaces = append(surfaces, d.surface())
	}
}

// DescriptorLoader serves type surfaces from YAML descriptor files, one or
// more documents per *.yaml or *.yml file. Directories are read on first use.
type DescriptorLoader struct {
	dirs   []string
	logger *zap.Logger

	once    sync.Once
	index   map[string]*models.TypeSurface
	scanErr error
}

var _ TypeLoader = (*DescriptorLoader)(nil)

// NewDescriptorLoader creates a loader over the given descriptor directories
func NewDescriptorLoader(dirs []string, logger *zap.Logger) *DescriptorLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DescriptorLoader{dirs: dirs, logger: logger}
}

// Load returns the described surface of qualifiedName
func (l *DescriptorLoader) Load(ctx context.Context, qualifiedName string) (*models.TypeSurface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.once.Do(l.scan)
	if l.scanErr != nil {
		return nil, l.scanErr
	}

	surface, ok := l.index[qualifiedName]
	if !ok {
		return nil, errors.NewTypeNotFoundError(qualifiedName, nil)
	}
	return surface, nil
}

func (l *DescriptorLoader) scan() {
	l.index = make(map[string]*models.TypeSurface)

	for _, dir := range l.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			l.scanErr = errors.WrapFileSystemError("read descriptor directory", dir, err)
			return
		}

		var files []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(files)

		for _, file := range files {
			if err := l.scanFile(file); err != nil {
				l.scanErr = err
				return
			}
		}
	}
}

func (l *DescriptorLoader) scanFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return errors.WrapFileSystemError("open descriptor", file, err)
	}
	defer f.Close()

	surfaces, err := DecodeDescriptors(f)
	if err != nil {
		return errors.Wrapf(errors.ConfigurationErrorCode, err, "invalid type descriptor %s: %v", file, err)
	}

	for _, s := range surfaces {
		if _, dup := l.index[s.QualifiedName]; dup {
			l.logger.Warn("duplicate type descriptor ignored",
				zap.String(logFieldType, s.QualifiedName),
				zap.String(logFieldSource, file))
			continue
		}
		l.index[s.QualifiedName] = s
	}
	return nil
}
