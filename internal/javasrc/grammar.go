package javasrc

import "github.com/alecthomas/participle/v2/lexer"

// The grammar covers the declaration structure of a Java compilation unit:
// package, imports, type headers and member signatures. Method bodies, field
// initializers and annotation arguments are kept as balanced token groups
// and never interpreted.

// CompilationUnit is the root of a parsed Java source file
type CompilationUnit struct {
	Pos lexer.Position

	Package *PackageDecl  `parser:"@@?"`
	Imports []*ImportDecl `parser:"@@*"`
	Types   []*TypeDecl   `parser:"( @@ | ';' )*"`
}

// PackageDecl is a package declaration
type PackageDecl struct {
	Pos lexer.Position

	Name string `parser:"'package' @Ident ( @'.' @Ident )* ';'"`
}

// ImportDecl is a single-type, on-demand or static import
type ImportDecl struct {
	Pos lexer.Position

	Static bool   `parser:"'import' @'static'?"`
	Name   string `parser:"@Ident ( @'.' ( @Ident | @'*' ) )* ';'"`
}

// TypeDecl is a class, interface, enum, record or annotation type with its modifiers
type TypeDecl struct {
	Pos lexer.Position

	Modifiers []*Modifier `parser:"@@*"`
	Spec      *TypeSpec   `parser:"@@"`
}

// TypeSpec is the part of a type declaration following its modifiers
type TypeSpec struct {
	Pos lexer.Position

	Kind       string         `parser:"@( 'class' | 'interface' | 'enum' | 'record' | AnnotationDecl )"`
	Name       string         `parser:"@Ident"`
	TypeParams []*TypeParam   `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Components *ParameterList `parser:"@@?"`
	Extends    []*TypeRef     `parser:"( 'extends' @@ ( ',' @@ )* )?"`
	Implements []*TypeRef     `parser:"( 'implements' @@ ( ',' @@ )* )?"`
	Permits    []*TypeRef     `parser:"( 'permits' @@ ( ',' @@ )* )?"`
	Body       *ClassBody     `parser:"@@"`
}

// Modifier is a keyword modifier or an annotation
type Modifier struct {
	Annotation *Annotation `parser:"  @@"`
	Keyword    string      `parser:"| @( 'public' | 'protected' | 'private' | 'static' | 'abstract' | 'final' | 'native' | 'synchronized' | 'transient' | 'volatile' | 'strictfp' | 'default' | 'sealed' ) | @( 'non' '-' 'sealed' )"`
}

// Annotation is an annotation use; its arguments are not interpreted
type Annotation struct {
	Name string      `parser:"'@' @Ident ( @'.' @Ident )*"`
	Args *TokenGroup `parser:"@@?"`
}

// TypeParam is a declared type variable with optional bounds
type TypeParam struct {
	Annotations []*Annotation `parser:"@@*"`
	Name        string        `parser:"@Ident"`
	Bounds      []*TypeRef    `parser:"( 'extends' @@ ( '&' @@ )* )?"`
}

// TypeRef is a use of a type: a possibly qualified, possibly parameterized
// name, a wildcard, or an array of either
type TypeRef struct {
	Annotations []*Annotation  `parser:"@@*"`
	Wildcard    *Wildcard      `parser:"(  @@"`
	Segments    []*TypeSegment `parser:" | @@ ( '.' @@ )* )"`
	Dims        []*ArrayDim    `parser:"@@*"`
}

// TypeSegment is one dot-separated part of a type name with its arguments
type TypeSegment struct {
	Name string    `parser:"@Ident"`
	Args *TypeArgs `parser:"@@?"`
}

// TypeArgs is a type argument list; an empty list is the diamond
type TypeArgs struct {
	Open string     `parser:"@'<'"`
	Args []*TypeRef `parser:"( @@ ( ',' @@ )* )? '>'"`
}

// Wildcard is "?" with an optional upper or lower bound
type Wildcard struct {
	Mark  string   `parser:"@'?'"`
	Bound string   `parser:"( @( 'extends' | 'super' )"`
	Type  *TypeRef `parser:"  @@ )?"`
}

// ArrayDim is a single "[]"
type ArrayDim struct {
	Open string `parser:"@'[' ']'"`
}

// ParameterList is a parenthesized formal parameter list
type ParameterList struct {
	Open   string             `parser:"@'('"`
	Params []*FormalParameter `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// FormalParameter is a method, constructor or record component parameter
type FormalParameter struct {
	Modifiers []*Modifier `parser:"@@*"`
	Type      *TypeRef    `parser:"@@"`
	Variadic  bool        `parser:"@Ellipsis?"`
	Name      string      `parser:"@Ident"`
	Dims      []*ArrayDim `parser:"@@*"`
}

// ClassBody is the braced member list of a type declaration
type ClassBody struct {
	Open    string    `parser:"@'{'"`
	Members []*Member `parser:"@@* '}'"`
}

// Member is a single class body declaration
type Member struct {
	Pos lexer.Position

	Empty     bool        `parser:"(  @';'"`
	Modifiers []*Modifier `parser:" | @@*"`
	Decl      *MemberDecl `parser:"   @@ )"`
}

// MemberDecl is the part of a member following its modifiers
type MemberDecl struct {
	Initializer  *Block           `parser:"  @@"`
	Type         *TypeSpec        `parser:"| @@"`
	Method       *MethodDecl      `parser:"| @@"`
	Constructor  *ConstructorDecl `parser:"| @@"`
	Field        *FieldDecl       `parser:"| @@"`
	EnumConstant *EnumConstant    `parser:"| @@"`
}

// MethodDecl is a method declaration, abstract or with a body
type MethodDecl struct {
	Pos lexer.Position

	TypeParams []*TypeParam   `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	ReturnType *TypeRef       `parser:"@@"`
	Name       string         `parser:"@Ident"`
	Params     *ParameterList `parser:"@@"`
	Dims       []*ArrayDim    `parser:"@@*"`
	Throws     []*TypeRef     `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Default    []*Chunk       `parser:"( 'default' @@+ )?"`
	Body       *Block         `parser:"( @@ | ';' )"`
}

// ConstructorDecl is a constructor, including compact record constructors
type ConstructorDecl struct {
	Pos lexer.Position

	TypeParams []*TypeParam   `parser:"( '<' @@ ( ',' @@ )* '>' )?"`
	Name       string         `parser:"@Ident"`
	Params     *ParameterList `parser:"@@?"`
	Throws     []*TypeRef     `parser:"( 'throws' @@ ( ',' @@ )* )?"`
	Body       *Block         `parser:"@@"`
}

// FieldDecl is a field declaration; only the first declarator is named
type FieldDecl struct {
	Type *TypeRef `parser:"@@"`
	Name string   `parser:"@Ident"`
	Rest []*Chunk `parser:"@@* ';'"`
}

// EnumConstant is a constant of an enum body
type EnumConstant struct {
	Name string      `parser:"@Ident"`
	Args *TokenGroup `parser:"@@?"`
	Body *ClassBody  `parser:"@@?"`
	Sep  string      `parser:"@( ',' | ';' )?"`
}

// Block is a braced group of uninterpreted tokens
type Block struct {
	Open   string      `parser:"@'{'"`
	Tokens []*Balanced `parser:"@@* '}'"`
}

// TokenGroup is a parenthesized group of uninterpreted tokens
type TokenGroup struct {
	Open   string      `parser:"@'('"`
	Tokens []*Balanced `parser:"@@* ')'"`
}

// Balanced is any token, with parentheses and braces kept paired
type Balanced struct {
	Parens *TokenGroup `parser:"  @@"`
	Braces *Block      `parser:"| @@"`
	Token  string      `parser:"| @!( '(' | ')' | '{' | '}' )"`
}

// Chunk is like Balanced but stops at a top-level ';'
type Chunk struct {
	Parens *TokenGroup `parser:"  @@"`
	Braces *Block      `parser:"| @@"`
	Token  string      `parser:"| @!( ';' | '(' | ')' | '{' | '}' )"`
}
