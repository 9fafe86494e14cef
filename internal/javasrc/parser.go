// Package javasrc parses the declaration structure of Java source files.
package javasrc

import (
	stderrors "errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/decorator/internal/errors"
)

// lookahead bounds how far a failed member alternative may have read before
// the parser gives up backtracking. Long annotation lists on a field push
// this well past a handful of tokens.
const lookahead = 4096

var javaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "TextBlock", Pattern: `"""(?s:.*?)"""`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "Char", Pattern: `'(\\.|[^'\\\n])+'`},
	{Name: "AnnotationDecl", Pattern: `@interface\b`},
	{Name: "Ident", Pattern: `[\p{L}_$][\p{L}\p{N}_$]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+[lL]?|[0-9][0-9_]*(\.[0-9_]*)?([eE][+-]?[0-9]+)?[lLfFdD]?|\.[0-9]+([eE][+-]?[0-9]+)?[fFdD]?`},
	{Name: "Punct", Pattern: `[-+*/%=!<>&|^~?:;,.@(){}\[\]]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Parser parses Java compilation units. It is safe for concurrent use.
type Parser struct {
	parser *participle.Parser[CompilationUnit]
}

// NewParser creates a new Java declaration parser
func NewParser() *Parser {
	return &Parser{
		parser: participle.MustBuild[CompilationUnit](
			participle.Lexer(javaLexer),
			participle.Elide("Whitespace", "Comment"),
			participle.UseLookahead(lookahead),
		),
	}
}

var defaultParser = NewParser()

// Parse parses src with the shared parser. name is used in error positions.
func Parse(name, src string) (*CompilationUnit, error) {
	return defaultParser.Parse(name, src)
}

// Parse parses a single compilation unit
func (p *Parser) Parse(name, src string) (*CompilationUnit, error) {
	unit, err := p.parser.ParseString(name, src)
	if err != nil {
		line, column := 0, 0
		detail := err.Error()
		var perr participle.Error
		if stderrors.As(err, &perr) {
			pos := perr.Position()
			line, column = pos.Line, pos.Column
			detail = fmt.Sprintf("%d:%d: %s", line, column, perr.Message())
		}
		return nil, errors.NewParseError(name, line, column, detail, err)
	}
	return unit, nil
}
