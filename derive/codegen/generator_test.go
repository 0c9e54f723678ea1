package codegen

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const shapesSource = `package shapes

import "time"

//dhall:union Circle Square Empty constructors=kebab
type Shape interface{ isShape() }

type Circle struct {
	Radius float64
	Label  *string
}

type Square struct {
	Side float64 ` + "`dhall:\"positional\"`" + `
}

type Empty struct{}

//dhall:derive fields=snake
type Drawing struct {
	Title    string
	Shapes   []Shape
	Tags     map[string]struct{}
	Duration time.Duration
}
`

func generate(t *testing.T, src string, config *CodegenConfig) string {
	t.Helper()
	types := parseSource(t, src)
	code, err := GenerateCode(types, config)
	if err != nil {
		t.Fatalf("GenerateCode failed: %v", err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "gen.go", code, 0); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}
	return string(code)
}

func TestGenerateCode(t *testing.T) {
	code := generate(t, strings.Replace(shapesSource, "\tDuration time.Duration\n", "", 1), nil)

	for _, want := range []string{
		"// Code generated by dhall-codegen. DO NOT EDIT.",
		"package shapes",
		`"github.com/signadot/go-dhall/codec"`,
		`"github.com/signadot/go-dhall/derive"`,
		"func CircleProduct() derive.Product[Circle] {",
		`derive.Field("Radius", codec.Double(), func(v Circle) float64 { return v.Radius }, func(v *Circle, x float64) { v.Radius = x }),`,
		`derive.Field("Label", codec.Optional(codec.Text()), func(v Circle) *string { return v.Label }, func(v *Circle, x *string) { v.Label = x }),`,
		`derive.PositionalField(codec.Double(), func(v Square) float64 { return v.Side }, func(v *Square, x float64) { v.Side = x }),`,
		"return derive.Struct[Empty]()",
		"func ShapeShape() derive.Sum[Shape] {",
		`derive.Constructor("Circle", CircleProduct(),`,
		"func(v Shape) (Square, bool) { x, ok := v.(Square); return x, ok }),",
		"return derive.MustDerive(ShapeShape(), derive.ConstructorModifier(derive.KebabCase))",
		`derive.Field("Shapes", codec.List(ShapeCodec()),`,
		`derive.Field("Tags", codec.Set(codec.Text()),`,
		`return derive.Single("Drawing", DrawingProduct())`,
		"return derive.MustDerive(DrawingShape(), derive.FieldModifier(derive.SnakeCase))",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected generated code to contain\n\t%s\ngot:\n%s", want, code)
		}
	}
	if strings.Contains(code, `"time"`) {
		t.Errorf("unused import of time:\n%s", code)
	}
	if strings.Contains(code, "func ShapeProduct") {
		t.Errorf("interfaces have no product:\n%s", code)
	}
}

func TestGenerateCodeNeedsTypesForNamedTypes(t *testing.T) {
	types := parseSource(t, shapesSource)
	_, err := GenerateCode(types, nil)
	if err == nil || !strings.Contains(err.Error(), "Drawing.Duration") {
		t.Fatalf("expected an error for Drawing.Duration, got %v", err)
	}
}

func TestGenerateCodeErrors(t *testing.T) {
	tests := map[string]string{
		"missing alternative": `package p

//dhall:union Missing
type U interface{}
`,
		"alternative not a struct": `package p

//dhall:union N
type U interface{}

type N int
`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := GenerateCode(parseSource(t, src), nil); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := GenerateCode(parseSource(t, `package p

//dhall:derive
type List struct {
	Head int64
	Tail *List
}
`), nil)
	if !errors.Is(err, ErrRecursive) {
		t.Errorf("expected ErrRecursive, got %v", err)
	}
}

func TestGenerateCodeNoDirectives(t *testing.T) {
	code, err := GenerateCode(parseSource(t, "package p\n\ntype T struct{ X int }\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != nil {
		t.Errorf("expected no code, got:\n%s", code)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	src := "package people\n\n//dhall:derive\ntype Person struct {\n\tName string\n\tAge  uint8\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "people.go"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.go"), []byte("package people\n\ntype other struct{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	pkgs, err := DiscoverPackages(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 1 {
		t.Fatalf("expected 1 package, got %d", len(pkgs))
	}

	out, err := Generate(pkgs[0], &CodegenConfig{}, func(path string, data []byte) error {
		return os.WriteFile(path, data, 0644)
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "people"+GeneratedSuffix); out != want {
		t.Errorf("wrote %s, want %s", out, want)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `derive.Field("Age", codec.Word[uint8](),`) {
		t.Errorf("unexpected output:\n%s", data)
	}

	// the generated file is not read back
	pkgs, err = DiscoverPackages(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs[0].Files) != 2 {
		t.Errorf("expected generated file to be skipped, got %v", pkgs[0].Files)
	}
}
