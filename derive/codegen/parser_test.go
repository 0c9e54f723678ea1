package codegen

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func parseSource(t *testing.T, src string) []*TypeInfo {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	types, err := ExtractTypes(file, "test.go")
	if err != nil {
		t.Fatalf("ExtractTypes failed: %v", err)
	}
	return types
}

func TestExtractTypes_Directives(t *testing.T) {
	types := parseSource(t, `
package shapes

// Shape is drawable.
//
//dhall:union Circle Square constructors=kebab
type Shape interface{ isShape() }

//dhall:derive fields=snake singletons=wrapped
type Circle struct {
	Radius float64
	Label  string `+"`dhall:\"field=name\"`"+`
	cache  []byte
	Debug  bool `+"`dhall:\"omit\"`"+`
}

type Square struct {
	Side float64 `+"`dhall:\"positional\"`"+`
}

type Celsius float64
`)
	if len(types) != 4 {
		t.Fatalf("expected 4 types, got %d", len(types))
	}
	shape, circle, square, celsius := types[0], types[1], types[2], types[3]

	if shape.Kind != InterfaceKind || shape.Directive == nil {
		t.Fatalf("expected union directive on Shape, got %+v", shape)
	}
	want := &Directive{Kind: UnionDirective, Alternatives: []string{"Circle", "Square"}, ConstructorCase: "kebab"}
	if diff := cmp.Diff(want, shape.Directive); diff != "" {
		t.Errorf("Shape directive (-want +got):\n%s", diff)
	}

	want = &Directive{Kind: DeriveDirective, FieldCase: "snake", Singletons: "wrapped"}
	if diff := cmp.Diff(want, circle.Directive); diff != "" {
		t.Errorf("Circle directive (-want +got):\n%s", diff)
	}
	wantFields := []*FieldInfo{
		{Name: "Radius", DhallName: "Radius"},
		{Name: "Label", DhallName: "name"},
	}
	if diff := cmp.Diff(wantFields, circle.Fields, cmpopts.IgnoreFields(FieldInfo{}, "ASTType")); diff != "" {
		t.Errorf("Circle fields (-want +got):\n%s", diff)
	}

	if square.Directive != nil || len(square.Fields) != 1 || !square.Fields[0].Positional {
		t.Errorf("unexpected Square: %+v", square)
	}
	if celsius.Kind != OtherKind {
		t.Errorf("expected Celsius to be OtherKind, got %v", celsius.Kind)
	}
}

func TestExtractTypes_DirectiveErrors(t *testing.T) {
	tests := map[string]string{
		"unknown directive": `//dhall:frobnicate
type T struct{}`,
		"derive on interface": `//dhall:derive
type T interface{}`,
		"union on struct": `//dhall:union A
type T struct{}`,
		"empty union": `//dhall:union
type T interface{}`,
		"unknown case": `//dhall:derive fields=shouting
type T struct{}`,
		"unknown policy": `//dhall:derive singletons=sometimes
type T struct{}`,
		"unknown derive option": `//dhall:derive Foo
type T struct{}`,
	}
	for name, decl := range tests {
		t.Run(name, func(t *testing.T) {
			fset := token.NewFileSet()
			file, err := parser.ParseFile(fset, "test.go", "package p\n\n"+decl+"\n", parser.ParseComments)
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			if _, err := ExtractTypes(file, "test.go"); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestExtractTypes_GroupedDecl(t *testing.T) {
	types := parseSource(t, `
package p

type (
	//dhall:derive
	A struct{ X int }

	B struct{ Y int }
)
`)
	if len(types) != 2 {
		t.Fatalf("expected 2 types, got %d", len(types))
	}
	if types[0].Directive == nil || types[1].Directive != nil {
		t.Errorf("directive should apply to A only")
	}
}

func TestExtractImports(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", `
package p

import (
	"time"
	u "net/url"
)
`, parser.ImportsOnly)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"time": "time", "u": "net/url"}
	if diff := cmp.Diff(want, ExtractImports(file)); diff != "" {
		t.Errorf("imports (-want +got):\n%s", diff)
	}
}
