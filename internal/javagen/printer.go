package javagen

import "strings"

const indentUnit = "    "

// Print renders unit as Java source. The layout is fixed so the same unit
// always yields the same bytes.
func Print(unit *CompilationUnit) string {
	p := &printer{}
	p.unit(unit)
	return p.b.String()
}

// PrintExpr renders a single expression
func PrintExpr(e Expr) string {
	p := &printer{}
	p.expr(e)
	return p.b.String()
}

type printer struct {
	b     strings.Builder
	depth int
}

func (p *printer) line(parts ...string) {
	if len(parts) == 0 {
		p.b.WriteString("\n")
		return
	}
	p.b.WriteString(strings.Repeat(indentUnit, p.depth))
	for _, part := range parts {
		p.b.WriteString(part)
	}
	p.b.WriteString("\n")
}

func (p *printer) unit(u *CompilationUnit) {
	for _, h := range u.Header {
		p.line("// ", h)
	}
	if len(u.Header) > 0 {
		p.line()
	}

	if u.Package != "" {
		p.line("package ", u.Package, ";")
		p.line()
	}

	if u.Imports.Len() > 0 {
		for _, imp := range u.Imports.Imports() {
			p.line("import ", imp, ";")
		}
		p.line()
	}

	for i, c := range u.Types {
		if i > 0 {
			p.line()
		}
		p.class(c)
	}
}

func (p *printer) class(c *Class) {
	var head strings.Builder
	head.WriteString(modifierPrefix(c.Modifiers))
	head.WriteString("class ")
	head.WriteString(c.Name)
	head.WriteString(typeParamList(c.TypeParams))
	if c.Extends != "" {
		head.WriteString(" extends ")
		head.WriteString(c.Extends)
	}
	if len(c.Implements) > 0 {
		head.WriteString(" implements ")
		head.WriteString(strings.Join(c.Implements, ", "))
	}
	head.WriteString(" {")
	p.line(head.String())

	p.depth++
	for _, f := range c.Fields {
		p.line()
		p.line(modifierPrefix(f.Modifiers), f.Type, " ", f.Name, ";")
	}
	for _, ctor := range c.Constructors {
		p.line()
		p.line(modifierPrefix(ctor.Modifiers), ctor.Name, "(", paramList(ctor.Params), ") {")
		p.body(ctor.Body)
		p.line("}")
	}
	for _, m := range c.Methods {
		p.line()
		p.method(m)
	}
	p.depth--

	p.line("}")
}

func (p *printer) method(m *Method) {
	var head strings.Builder
	head.WriteString(modifierPrefix(m.Modifiers))
	if len(m.TypeParams) > 0 {
		head.WriteString(typeParamList(m.TypeParams))
		head.WriteString(" ")
	}
	head.WriteString(m.ReturnType)
	head.WriteString(" ")
	head.WriteString(m.Name)
	head.WriteString("(")
	head.WriteString(paramList(m.Params))
	head.WriteString(")")
	if len(m.Throws) > 0 {
		head.WriteString(" throws ")
		head.WriteString(strings.Join(m.Throws, ", "))
	}
	head.WriteString(" {")

	p.line(head.String())
	p.body(m.Body)
	p.line("}")
}

func (p *printer) body(stmts []Statement) {
	p.depth++
	for _, s := range stmts {
		p.statement(s)
	}
	p.depth--
}

func (p *printer) statement(s Statement) {
	switch s := s.(type) {
	case Return:
		if s.Value == nil {
			p.line("return;")
			return
		}
		p.line("return ", PrintExpr(s.Value), ";")
	case ExprStmt:
		p.line(PrintExpr(s.X), ";")
	case Assign:
		p.line(PrintExpr(s.Target), " = ", PrintExpr(s.Value), ";")
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case Name:
		p.b.WriteString(string(e))
	case This:
		p.b.WriteString("this")
	case FieldAccess:
		p.expr(e.Target)
		p.b.WriteString(".")
		p.b.WriteString(e.Name)
	case Call:
		if e.Target != nil {
			p.expr(e.Target)
			p.b.WriteString(".")
		}
		p.b.WriteString(e.Name)
		p.args(e.Args)
	case New:
		p.b.WriteString("new ")
		p.b.WriteString(e.Type)
		p.args(e.Args)
	case Cast:
		p.b.WriteString("(")
		p.b.WriteString(e.Type)
		p.b.WriteString(") ")
		p.expr(e.Value)
	}
}

func (p *printer) args(args []Expr) {
	p.b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.expr(a)
	}
	p.b.WriteString(")")
}

func modifierPrefix(modifiers []string) string {
	if len(modifiers) == 0 {
		return ""
	}
	return strings.Join(modifiers, " ") + " "
}

func typeParamList(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func paramList(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, prm := range params {
		if prm.Variadic {
			parts = append(parts, prm.Type+"... "+prm.Name)
			continue
		}
		parts = append(parts, prm.Type+" "+prm.Name)
	}
	return strings.Join(parts, ", ")
}
