package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type FormatOption func(*printer)

// Multiline lays out non-empty records and unions one field per line.
func Multiline() FormatOption {
	return func(p *printer) {
		p.multiline = true
	}
}

func WithColors(c *Colors) FormatOption {
	return func(p *printer) {
		p.colors = c
	}
}

// Format renders e in the language's concrete syntax.
func Format(e *Expr, opts ...FormatOption) string {
	p := &printer{}
	for _, opt := range opts {
		opt(p)
	}
	if p.colors == nil {
		p.colors = &Colors{Default: colorDefault}
	}
	p.expr(e, 0)
	return p.buf.String()
}

type printer struct {
	buf       strings.Builder
	multiline bool
	colors    *Colors
	indent    int
}

const (
	levelExpr = iota
	levelOp
	levelApp
	levelSelect
	levelPrim
)

func level(e *Expr) int {
	switch e.Kind {
	case LambdaKind, PiKind, LetKind, IfKind, AnnotKind:
		return levelExpr
	case ListKind:
		if len(e.Values) == 0 {
			return levelExpr
		}
	case OpKind:
		return levelOp
	case AppKind, SomeKind:
		return levelApp
	case ToMapKind:
		if e.Annot != nil {
			return levelExpr
		}
		return levelApp
	case FieldKind:
		return levelSelect
	}
	return levelPrim
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) kw(k Kind, s string) {
	p.write(p.colors.Color(k, KeywordColor, s))
}

func (p *printer) sep(k Kind, s string) {
	p.write(p.colors.Color(k, SepColor, s))
}

func (p *printer) expr(e *Expr, min int) {
	if e == nil {
		p.write("<nil>")
		return
	}
	if level(e) < min {
		p.sep(e.Kind, "(")
		p.expr(e, levelExpr)
		p.sep(e.Kind, ")")
		return
	}
	switch e.Kind {
	case ConstKind, BuiltinKind:
		p.write(p.colors.Color(e.Kind, ValueColor, e.Name))
	case VarKind:
		v := label(e.Name)
		if e.Index != 0 {
			v += "@" + strconv.Itoa(e.Index)
		}
		p.write(p.colors.Color(VarKind, ValueColor, v))
	case LambdaKind:
		p.kw(e.Kind, "\\")
		p.sep(e.Kind, "(")
		p.write(label(e.Name))
		p.sep(e.Kind, " : ")
		p.expr(e.Annot, levelExpr)
		p.sep(e.Kind, ")")
		p.sep(e.Kind, " -> ")
		p.expr(e.Body, levelExpr)
	case PiKind:
		if e.Name == "_" {
			p.expr(e.Annot, levelOp)
		} else {
			p.kw(e.Kind, "forall ")
			p.sep(e.Kind, "(")
			p.write(label(e.Name))
			p.sep(e.Kind, " : ")
			p.expr(e.Annot, levelExpr)
			p.sep(e.Kind, ")")
		}
		p.sep(e.Kind, " -> ")
		p.expr(e.Body, levelExpr)
	case AppKind:
		p.expr(e.Values[0], levelApp)
		p.write(" ")
		p.expr(e.Values[1], levelSelect)
	case LetKind:
		p.kw(e.Kind, "let ")
		p.write(label(e.Name))
		if e.Annot != nil {
			p.sep(e.Kind, " : ")
			p.expr(e.Annot, levelExpr)
		}
		p.sep(e.Kind, " = ")
		p.expr(e.Values[0], levelExpr)
		p.kw(e.Kind, " in ")
		p.expr(e.Body, levelExpr)
	case AnnotKind:
		p.expr(e.Values[0], levelOp)
		p.sep(e.Kind, " : ")
		p.expr(e.Annot, levelExpr)
	case BoolKind:
		s := "False"
		if e.Bool {
			s = "True"
		}
		p.write(p.colors.Color(BoolKind, ValueColor, s))
	case NaturalKind:
		p.write(p.colors.Color(NaturalKind, ValueColor, strconv.FormatUint(e.Natural, 10)))
	case IntegerKind:
		p.write(p.colors.Color(IntegerKind, ValueColor, formatInteger(e.Integer)))
	case DoubleKind:
		p.write(p.colors.Color(DoubleKind, ValueColor, formatDouble(e.Double)))
	case TextKind:
		p.text(e)
	case ListKind:
		p.list(e)
	case SomeKind:
		p.kw(e.Kind, "Some ")
		p.expr(e.Body, levelSelect)
	case RecordTypeKind:
		p.fields(e, "{", "}", " : ", ",", "{}")
	case RecordKind:
		p.fields(e, "{", "}", " = ", ",", "{=}")
	case UnionTypeKind:
		p.fields(e, "<", ">", " : ", " |", "<>")
	case FieldKind:
		p.expr(e.Body, levelPrim)
		p.sep(e.Kind, ".")
		p.write(p.colors.Color(FieldKind, LabelColor, label(e.Name)))
	case ToMapKind:
		p.kw(e.Kind, "toMap ")
		p.expr(e.Body, levelSelect)
		if e.Annot != nil {
			p.sep(e.Kind, " : ")
			p.expr(e.Annot, levelExpr)
		}
	case OpKind:
		p.expr(e.Values[0], levelApp)
		p.sep(e.Kind, " "+e.Op.String()+" ")
		p.expr(e.Values[1], levelApp)
	case IfKind:
		p.kw(e.Kind, "if ")
		p.expr(e.Values[0], levelExpr)
		p.kw(e.Kind, " then ")
		p.expr(e.Values[1], levelExpr)
		p.kw(e.Kind, " else ")
		p.expr(e.Values[2], levelExpr)
	default:
		p.write(fmt.Sprintf("<%s>", e.Kind))
	}
}

func (p *printer) list(e *Expr) {
	if len(e.Values) == 0 {
		p.sep(e.Kind, "[]")
		p.sep(e.Kind, " : ")
		p.expr(ListOf(e.Annot), levelExpr)
		return
	}
	p.sep(e.Kind, "[ ")
	for i, v := range e.Values {
		if i > 0 {
			p.sep(e.Kind, ", ")
		}
		p.expr(v, levelExpr)
	}
	p.sep(e.Kind, " ]")
}

func (p *printer) fields(e *Expr, open, close, assign, comma, empty string) {
	if len(e.Fields) == 0 {
		p.sep(e.Kind, empty)
		return
	}
	multi := p.multiline
	for i, f := range e.Fields {
		switch {
		case i == 0:
			p.sep(e.Kind, open+" ")
		case multi:
			p.newline()
			p.sep(e.Kind, strings.TrimLeft(comma, " ")+" ")
		default:
			p.sep(e.Kind, comma+" ")
		}
		p.write(p.colors.Color(e.Kind, LabelColor, label(f)))
		v := e.Values[i]
		if v == nil {
			continue
		}
		if multi && isNested(v) {
			p.sep(e.Kind, strings.TrimRight(assign, " "))
			p.indent += 4
			p.newline()
			p.expr(v, levelExpr)
			p.indent -= 4
			continue
		}
		p.sep(e.Kind, assign)
		p.expr(v, levelExpr)
	}
	if multi {
		p.newline()
		p.sep(e.Kind, close)
		return
	}
	p.sep(e.Kind, " "+close)
}

func isNested(e *Expr) bool {
	switch e.Kind {
	case RecordKind, RecordTypeKind, UnionTypeKind:
		return len(e.Fields) > 0
	}
	return false
}

func (p *printer) newline() {
	p.write("\n")
	p.write(strings.Repeat(" ", p.indent))
}

func (p *printer) text(e *Expr) {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range e.Chunks {
		b.WriteString(escapeText(c.Prefix))
		b.WriteString("${")
		b.WriteString(Format(c.Expr))
		b.WriteString("}")
	}
	b.WriteString(escapeText(e.Text))
	b.WriteByte('"')
	p.write(p.colors.Color(TextKind, ValueColor, b.String()))
}

func escapeText(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '$':
			if i+1 < len(rs) && rs[i+1] == '{' {
				b.WriteString(`\$`)
				continue
			}
			b.WriteRune(r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

var keywords = map[string]bool{
	"if": true, "then": true, "else": true, "let": true, "in": true,
	"as": true, "using": true, "merge": true, "missing": true,
	"Some": true, "toMap": true, "forall": true, "with": true,
}

func label(s string) string {
	if s == "" || keywords[s] {
		return "`" + s + "`"
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '/'):
		default:
			return "`" + s + "`"
		}
	}
	return s
}
