package parser

import (
	"regexp"

	"github.com/toyz/decorator/internal/errors"
	"github.com/toyz/decorator/internal/utils"
)

// decoratorPattern loosely matches a class header followed, anywhere later,
// by an implements clause naming a generic Decorator. Comments may sit
// between Decorator and its type arguments. Everything else about the
// header is left to extraction.
var decoratorPattern = regexp.MustCompile(
	`(?s)\bclass\b.*\bimplements\b.*\bDecorator(?:\s|/\*.*?\*/|//[^\n]*\n)*<`,
)

// MatchesDecorator reports whether src plausibly declares a decorator. It
// may admit sources that fail extraction later but never rejects one that
// extraction would accept.
func MatchesDecorator(src string) bool {
	return decoratorPattern.MatchString(src)
}

// Prefilter applies MatchesDecorator to files on disk
type Prefilter struct {
	reader *utils.FileReader
}

// NewPrefilter creates a prefilter reading through reader. A nil reader gets
// a private one.
func NewPrefilter(reader *utils.FileReader) *Prefilter {
	if reader == nil {
		reader = utils.NewFileReader()
	}
	return &Prefilter{reader: reader}
}

// IsDecoratable reads the file at path and applies MatchesDecorator. A file
// that cannot be read is an I/O error, never a plain false.
func (p *Prefilter) IsDecoratable(path string) (bool, error) {
	content, err := p.reader.ReadFile(path)
	if err != nil {
		return false, errors.NewIOError(path, err)
	}
	return MatchesDecorator(content), nil
}

// IsDecoratable is Prefilter.IsDecoratable with an uncached reader
func IsDecoratable(path string) (bool, error) {
	return NewPrefilter(nil).IsDecoratable(path)
}
