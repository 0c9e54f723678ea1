package codegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/types"
	"path"
	"sort"

	"golang.org/x/tools/imports"
)

const (
	codecImport  = "github.com/signadot/go-dhall/codec"
	deriveImport = "github.com/signadot/go-dhall/derive"
)

// GenerateCode returns the formatted source of the generated file for
// the types of one package. typeInfos must hold every struct and
// interface declared in the package, not only those with directives, so
// that union alternatives can be found.
func GenerateCode(typeInfos []*TypeInfo, config *CodegenConfig) ([]byte, error) {
	if len(typeInfos) == 0 {
		return nil, fmt.Errorf("no types to generate")
	}
	g := &generator{
		config:    config,
		byName:    map[string]*TypeInfo{},
		generated: map[string]bool{},
		products:  map[string]bool{},
		imports:   map[string]string{codecImport: "", deriveImport: ""},
	}
	for _, t := range typeInfos {
		g.byName[t.Name] = t
		if t.Directive != nil {
			g.generated[t.Name] = true
			if t.Kind == StructKind {
				g.products[t.Name] = true
			}
		}
	}
	for _, t := range typeInfos {
		if t.Directive == nil || t.Directive.Kind != UnionDirective {
			continue
		}
		for _, alt := range t.Directive.Alternatives {
			at, ok := g.byName[alt]
			if !ok || at.Kind != StructKind {
				return nil, fmt.Errorf("alternative %s of %s is not a struct type of package %s", alt, t.Name, t.Package)
			}
			g.products[alt] = true
		}
	}

	if err := checkCycles(typeInfos); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	for _, t := range typeInfos {
		if g.products[t.Name] {
			if err := g.product(&body, t); err != nil {
				return nil, err
			}
		}
		if t.Directive == nil {
			continue
		}
		switch t.Directive.Kind {
		case DeriveDirective:
			fmt.Fprintf(&body, "func %sShape() derive.Sum[%s] {\n", t.Name, t.Name)
			fmt.Fprintf(&body, "\treturn derive.Single(%q, %sProduct())\n}\n\n", t.Name, t.Name)
		case UnionDirective:
			g.union(&body, t)
		}
		fmt.Fprintf(&body, "func %sCodec() codec.Codec[%s] {\n", t.Name, t.Name)
		fmt.Fprintf(&body, "\treturn derive.MustDerive(%sShape()%s)\n}\n\n", t.Name, deriveOptions(t.Directive))
	}
	if body.Len() == 0 {
		return nil, nil
	}

	var out bytes.Buffer
	out.WriteString("// Code generated by dhall-codegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\nimport (\n", typeInfos[0].Package)
	paths := make([]string, 0, len(g.imports))
	for p := range g.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if name := g.imports[p]; name != "" && name != path.Base(p) {
			fmt.Fprintf(&out, "\t%s %q\n", name, p)
			continue
		}
		fmt.Fprintf(&out, "\t%q\n", p)
	}
	out.WriteString(")\n\n")
	out.Write(body.Bytes())

	filename := "gen.go"
	if config != nil && config.OutputFile != "" {
		filename = config.OutputFile
	}
	src, err := imports.Process(filename, out.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, out.String())
	}
	return src, nil
}

type generator struct {
	config    *CodegenConfig
	byName    map[string]*TypeInfo
	generated map[string]bool
	products  map[string]bool
	// import path -> name
	imports map[string]string
}

func (g *generator) mapper(t *TypeInfo) *TypeMapper {
	m := &TypeMapper{
		Self:      t.Name,
		Generated: g.generated,
		Imports:   t.Imports,
	}
	if g.config != nil {
		m.Types = g.config.Types
	}
	return m
}

func (g *generator) product(w *bytes.Buffer, t *TypeInfo) error {
	m := g.mapper(t)
	fmt.Fprintf(w, "func %sProduct() derive.Product[%s] {\n", t.Name, t.Name)
	if len(t.Fields) == 0 {
		fmt.Fprintf(w, "\treturn derive.Struct[%s]()\n}\n\n", t.Name)
		return nil
	}
	w.WriteString("\treturn derive.Struct(\n")
	for _, f := range t.Fields {
		c, err := m.CodecExpr(f.ASTType)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name, f.Name, err)
		}
		g.addImports(t, f.ASTType)
		ft := types.ExprString(f.ASTType)
		get := fmt.Sprintf("func(v %s) %s { return v.%s }", t.Name, ft, f.Name)
		set := fmt.Sprintf("func(v *%s, x %s) { v.%s = x }", t.Name, ft, f.Name)
		if f.Positional {
			fmt.Fprintf(w, "\t\tderive.PositionalField(%s, %s, %s),\n", c, get, set)
			continue
		}
		fmt.Fprintf(w, "\t\tderive.Field(%q, %s, %s, %s),\n", f.DhallName, c, get, set)
	}
	w.WriteString("\t)\n}\n\n")
	return nil
}

func (g *generator) union(w *bytes.Buffer, t *TypeInfo) {
	fmt.Fprintf(w, "func %sShape() derive.Sum[%s] {\n", t.Name, t.Name)
	w.WriteString("\treturn derive.Union(\n")
	for _, alt := range t.Directive.Alternatives {
		fmt.Fprintf(w, "\t\tderive.Constructor(%q, %sProduct(),\n", alt, alt)
		fmt.Fprintf(w, "\t\t\tfunc(v %s) %s { return v },\n", alt, t.Name)
		fmt.Fprintf(w, "\t\t\tfunc(v %s) (%s, bool) { x, ok := v.(%s); return x, ok }),\n", t.Name, alt, alt)
	}
	w.WriteString("\t)\n}\n\n")
}

// addImports records the packages a field type refers to.
func (g *generator) addImports(t *TypeInfo, e ast.Expr) {
	ast.Inspect(e, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			if p, ok := t.Imports[id.Name]; ok {
				g.imports[p] = id.Name
			}
		}
		return false
	})
}

func deriveOptions(d *Directive) string {
	var b bytes.Buffer
	if c := caseModifiers[d.FieldCase]; c != "" {
		b.WriteString(", derive.FieldModifier(" + c + ")")
	}
	if c := caseModifiers[d.ConstructorCase]; c != "" {
		b.WriteString(", derive.ConstructorModifier(" + c + ")")
	}
	if s := singletonPolicies[d.Singletons]; s != "" {
		b.WriteString(", derive.Singletons(" + s + ")")
	}
	return b.String()
}

// Generate parses the files of pkg and writes the generated file. It
// returns the path written, or "" when pkg has no directives.
func Generate(pkg *PackageInfo, config *CodegenConfig, write func(path string, data []byte) error) (string, error) {
	var all []*TypeInfo
	hasDirective := false
	for _, filePath := range pkg.Files {
		file, _, err := ParseFile(filePath)
		if err != nil {
			return "", err
		}
		ts, err := ExtractTypes(file, filePath)
		if err != nil {
			return "", fmt.Errorf("failed to extract types from %q: %w", filePath, err)
		}
		for _, t := range ts {
			hasDirective = hasDirective || t.Directive != nil
		}
		all = append(all, ts...)
	}
	if !hasDirective {
		return "", nil
	}
	out := config.OutputFile
	if out == "" {
		out = DefaultOutputFile(pkg)
	}
	cfg := *config
	cfg.OutputFile = out
	cfg.Package = pkg
	code, err := GenerateCode(all, &cfg)
	if err != nil {
		return "", err
	}
	if err := write(out, code); err != nil {
		return "", fmt.Errorf("failed to write output file %q: %w", out, err)
	}
	return out, nil
}
