package codegen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
)

// ErrRecursive is returned for a struct that contains itself. Such types
// need a hand written codec.Recursive layer.
var ErrRecursive = errors.New("recursive type")

var caseModifiers = map[string]string{
	"snake":      "derive.SnakeCase",
	"camel":      "derive.CamelCase",
	"lowerCamel": "derive.LowerCamelCase",
	"kebab":      "derive.KebabCase",
}

var singletonPolicies = map[string]string{
	"bare":    "derive.Bare",
	"wrapped": "derive.Wrapped",
	"smart":   "derive.Smart",
}

// TypeMapper turns Go field types into codec expressions.
type TypeMapper struct {
	// Self is the type being generated
	Self string

	// Generated lists local types which get a generated <T>Codec()
	Generated map[string]bool

	// Imports of the file declaring Self
	Imports map[string]string

	// Types resolves other named types, may be nil
	Types *types.Package
}

// CodecExpr returns Go source for a codec.Codec of the type t.
//
// Type mappings:
//   - bool, string, float64 → codec.Bool(), codec.Text(), codec.Double()
//   - uint64, int64 → codec.Natural(), codec.Integer()
//   - other sized integers → codec.Word[T](), codec.Int[T]()
//   - *T → codec.Optional(T)
//   - []T → codec.List(T)
//   - map[K]struct{} → codec.Set(K)
//   - map[K]V → codec.Map(K, V)
//   - struct{} → codec.Unit()
//   - generated local types → <T>Codec()
//   - other named types → their underlying basic type, converted
func (m *TypeMapper) CodecExpr(t ast.Expr) (string, error) {
	switch x := t.(type) {
	case *ast.Ident:
		if x.Name == m.Self {
			return "", fmt.Errorf("%w: %s refers to itself", ErrRecursive, m.Self)
		}
		if c, ok := basicCodec(x.Name, x.Name); ok && types.Universe.Lookup(x.Name) != nil {
			return c, nil
		}
		if m.Generated[x.Name] {
			return x.Name + "Codec()", nil
		}
		return m.named("", x.Name, x.Name)
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return "", fmt.Errorf("unsupported type %s", types.ExprString(t))
		}
		path, ok := m.Imports[pkg.Name]
		if !ok {
			return "", fmt.Errorf("unknown package %q", pkg.Name)
		}
		return m.named(path, x.Sel.Name, types.ExprString(x))
	case *ast.StarExpr:
		c, err := m.CodecExpr(x.X)
		if err != nil {
			return "", err
		}
		return "codec.Optional(" + c + ")", nil
	case *ast.ArrayType:
		if x.Len != nil {
			return "", fmt.Errorf("unsupported array type %s: use a slice", types.ExprString(t))
		}
		c, err := m.CodecExpr(x.Elt)
		if err != nil {
			return "", err
		}
		return "codec.List(" + c + ")", nil
	case *ast.MapType:
		k, err := m.CodecExpr(x.Key)
		if err != nil {
			return "", err
		}
		if isEmptyStruct(x.Value) {
			return "codec.Set(" + k + ")", nil
		}
		v, err := m.CodecExpr(x.Value)
		if err != nil {
			return "", err
		}
		return "codec.Map(" + k + ", " + v + ")", nil
	case *ast.StructType:
		if isEmptyStruct(x) {
			return "codec.Unit()", nil
		}
	case *ast.ParenExpr:
		return m.CodecExpr(x.X)
	}
	return "", fmt.Errorf("unsupported type %s", types.ExprString(t))
}

// named maps a named type without a generated codec through its
// underlying type. src is how the generated file spells the type.
func (m *TypeMapper) named(path, name, src string) (string, error) {
	if m.Types == nil {
		return "", fmt.Errorf("cannot resolve type %s without package information", src)
	}
	u, err := Underlying(m.Types, path, name)
	if err != nil {
		return "", err
	}
	b, ok := u.(*types.Basic)
	if !ok {
		return "", fmt.Errorf("unsupported type %s with underlying type %s", src, u)
	}
	c, ok := basicCodec(b.Name(), src)
	if !ok {
		return "", fmt.Errorf("unsupported type %s with underlying type %s", src, u)
	}
	return c, nil
}

// basicCodec maps a basic type name to a codec for the type spelled
// src, whose underlying type it is.
func basicCodec(basic, src string) (string, bool) {
	convert := func(c, b string) string {
		if src == basic {
			return c
		}
		return fmt.Sprintf("codec.Invmap(%s, func(v %s) %s { return %s(v) }, func(v %s) %s { return %s(v) })",
			c, b, src, src, src, b, b)
	}
	switch basic {
	case "bool":
		return convert("codec.Bool()", "bool"), true
	case "string":
		return convert("codec.Text()", "string"), true
	case "float64":
		return convert("codec.Double()", "float64"), true
	case "float32":
		return fmt.Sprintf("codec.Invmap(codec.Double(), func(v float64) %s { return %s(v) }, func(v %s) float64 { return float64(v) })",
			src, src, src), true
	case "uint64":
		if src == basic {
			return "codec.Natural()", true
		}
		return "codec.Word[" + src + "]()", true
	case "int64":
		if src == basic {
			return "codec.Integer()", true
		}
		return "codec.Int[" + src + "]()", true
	case "uint", "uint8", "uint16", "uint32", "byte":
		return "codec.Word[" + src + "]()", true
	case "int", "int8", "int16", "int32", "rune":
		return "codec.Int[" + src + "]()", true
	}
	return "", false
}

func isEmptyStruct(t ast.Expr) bool {
	s, ok := t.(*ast.StructType)
	return ok && (s.Fields == nil || len(s.Fields.List) == 0)
}
