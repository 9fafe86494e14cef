// Package javagen models the Java source the synthesizer emits and prints it
// deterministically. Nodes are plain structs; Print is the only place that
// knows about layout.
package javagen

// CompilationUnit is one generated .java file
type CompilationUnit struct {
	Header  []string // line comments placed before the package declaration
	Package string
	Imports *ImportManager
	Types   []*Class
}

// Class is a class declaration
type Class struct {
	Modifiers    []string
	Name         string
	TypeParams   []string
	Extends      string
	Implements   []string
	Fields       []*Field
	Constructors []*Constructor
	Methods      []*Method
}

// Field is a field declaration without initializer
type Field struct {
	Modifiers []string
	Type      string
	Name      string
}

// Param is a formal parameter
type Param struct {
	Type     string
	Name     string
	Variadic bool
}

// Constructor is a constructor declaration
type Constructor struct {
	Modifiers []string
	Name      string
	Params    []Param
	Body      []Statement
}

// Method is a concrete method declaration
type Method struct {
	Modifiers  []string
	TypeParams []string
	ReturnType string
	Name       string
	Params     []Param
	Throws     []string
	Body       []Statement
}

// Statement is a node that occupies its own line inside a body
type Statement interface {
	statementNode()
}

// Expr is a node that renders inline
type Expr interface {
	exprNode()
}

// Return is "return <Value>;"
type Return struct {
	Value Expr
}

// ExprStmt is "<X>;"
type ExprStmt struct {
	X Expr
}

// Assign is "<Target> = <Value>;"
type Assign struct {
	Target Expr
	Value  Expr
}

// Name is an identifier reference
type Name string

// This is the "this" reference
type This struct{}

// FieldAccess is "<Target>.<Name>"
type FieldAccess struct {
	Target Expr
	Name   string
}

// Call is "<Target>.<Name>(<Args>)", or "<Name>(<Args>)" without a target
type Call struct {
	Target Expr
	Name   string
	Args   []Expr
}

// New is "new <Type>(<Args>)"
type New struct {
	Type string
	Args []Expr
}

// Cast is "(<Type>) <Value>"
type Cast struct {
	Type  string
	Value Expr
}

func (Return) statementNode()   {}
func (ExprStmt) statementNode() {}
func (Assign) statementNode()   {}

func (Name) exprNode()        {}
func (This) exprNode()        {}
func (FieldAccess) exprNode() {}
func (Call) exprNode()        {}
func (New) exprNode()         {}
func (Cast) exprNode()        {}

// ThisField returns "this.<name>"
func ThisField(name string) FieldAccess {
	return FieldAccess{Target: This{}, Name: name}
}

// Names turns parameter names into argument expressions
func Names(params []Param) []Expr {
	args := make([]Expr, 0, len(params))
	for _, p := range params {
		args = append(args, Name(p.Name))
	}
	return args
}
