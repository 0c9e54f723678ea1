package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"slices"
	"strconv"
	"strings"
)

const directivePrefix = "//dhall:"

// ParseFile parses a Go source file and returns its AST.
func ParseFile(filename string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %q: %w", filename, err)
	}
	return file, fset, nil
}

// ExtractTypes extracts the struct and interface declarations of file,
// with their directives.
func ExtractTypes(file *ast.File, filePath string) ([]*TypeInfo, error) {
	var res []*TypeInfo
	imports := ExtractImports(file)

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok || typeSpec.TypeParams != nil {
				continue
			}
			doc := typeSpec.Doc
			if doc == nil && len(genDecl.Specs) == 1 {
				doc = genDecl.Doc
			}
			dir, err := extractDirective(doc)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", typeSpec.Name.Name, err)
			}
			info := &TypeInfo{
				Name:      typeSpec.Name.Name,
				Package:   file.Name.Name,
				FilePath:  filePath,
				Kind:      OtherKind,
				Directive: dir,
				Imports:   imports,
				ASTNode:   typeSpec.Type,
			}
			switch t := typeSpec.Type.(type) {
			case *ast.StructType:
				info.Kind = StructKind
				info.Fields, err = extractFields(t)
				if err != nil {
					return nil, fmt.Errorf("failed to extract fields from struct %q: %w", info.Name, err)
				}
			case *ast.InterfaceType:
				info.Kind = InterfaceKind
			}
			if err := checkDirective(info); err != nil {
				return nil, err
			}
			res = append(res, info)
		}
	}
	return res, nil
}

func checkDirective(info *TypeInfo) error {
	if info.Directive == nil {
		return nil
	}
	switch info.Directive.Kind {
	case DeriveDirective:
		if info.Kind != StructKind {
			return fmt.Errorf("%s: //dhall:derive applies to struct types", info.Name)
		}
	case UnionDirective:
		if info.Kind != InterfaceKind {
			return fmt.Errorf("%s: //dhall:union applies to interface types", info.Name)
		}
		if len(info.Directive.Alternatives) == 0 {
			return fmt.Errorf("%s: //dhall:union lists no alternatives", info.Name)
		}
	}
	return nil
}

// ExtractImports maps the package names used in file to import paths.
func ExtractImports(file *ast.File) map[string]string {
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		imports[name] = p
	}
	return imports
}

// extractDirective finds the //dhall: line of a doc comment. Directives
// are written without a space after the slashes, like //go:generate.
func extractDirective(doc *ast.CommentGroup) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}
	var res *Directive
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		if res != nil {
			return nil, fmt.Errorf("more than one //dhall: directive")
		}
		d, err := parseDirective(strings.TrimPrefix(c.Text, directivePrefix))
		if err != nil {
			return nil, err
		}
		res = d
	}
	return res, nil
}

func parseDirective(text string) (*Directive, error) {
	kind, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	d := &Directive{Kind: DirectiveKind(kind)}
	switch d.Kind {
	case DeriveDirective, UnionDirective:
	default:
		return nil, fmt.Errorf("unknown directive //dhall:%s", kind)
	}
	items, err := ParseTag(rest)
	if err != nil {
		return nil, err
	}
	var alts []string
	for k, v := range items {
		switch k {
		case "fields":
			d.FieldCase = v
		case "constructors":
			d.ConstructorCase = v
		case "singletons":
			d.Singletons = v
		default:
			if v != "" || d.Kind != UnionDirective {
				return nil, fmt.Errorf("unknown directive option %q", k)
			}
			alts = append(alts, k)
		}
	}
	// map order is random; keep the order written
	for _, item := range splitItems(rest) {
		if slices.Contains(alts, item) {
			d.Alternatives = append(d.Alternatives, item)
		}
	}
	for _, c := range []string{d.FieldCase, d.ConstructorCase} {
		if _, ok := caseModifiers[c]; !ok && c != "" {
			return nil, fmt.Errorf("unknown case %q", c)
		}
	}
	switch d.Singletons {
	case "", "bare", "wrapped", "smart":
	default:
		return nil, fmt.Errorf("unknown singleton policy %q", d.Singletons)
	}
	return d, nil
}

// extractFields extracts the exported fields of a struct type.
func extractFields(structType *ast.StructType) ([]*FieldInfo, error) {
	if structType.Fields == nil {
		return nil, nil
	}
	var fields []*FieldInfo
	for _, field := range structType.Fields.List {
		tag, err := ParseTag(fieldTag(field))
		if err != nil {
			return nil, err
		}
		if _, omit := tag["omit"]; omit {
			continue
		}
		names := field.Names
		embedded := len(names) == 0
		if embedded {
			name, err := embeddedFieldName(field.Type)
			if err != nil {
				return nil, err
			}
			names = []*ast.Ident{ast.NewIdent(name)}
		}
		for _, name := range names {
			if !name.IsExported() {
				continue
			}
			fi := &FieldInfo{
				Name:       name.Name,
				DhallName:  name.Name,
				ASTType:    field.Type,
				IsEmbedded: embedded,
			}
			if n, ok := tag["field"]; ok {
				if len(names) > 1 {
					return nil, fmt.Errorf("field=%s names more than one field", n)
				}
				fi.DhallName = n
			}
			if _, ok := tag["positional"]; ok {
				fi.Positional = true
			}
			fields = append(fields, fi)
		}
	}
	return fields, nil
}

func embeddedFieldName(expr ast.Expr) (string, error) {
	switch x := expr.(type) {
	case *ast.Ident:
		return x.Name, nil
	case *ast.SelectorExpr:
		return x.Sel.Name, nil
	case *ast.StarExpr:
		return embeddedFieldName(x.X)
	default:
		return "", fmt.Errorf("unsupported embedded field type: %T", expr)
	}
}
