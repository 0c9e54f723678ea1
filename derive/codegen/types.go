package codegen

import (
	"go/ast"
	"go/types"
)

// TypeKind distinguishes the declarations the generator understands.
type TypeKind int

const (
	StructKind TypeKind = iota
	InterfaceKind
	OtherKind
)

// TypeInfo holds a type declaration parsed from Go source.
type TypeInfo struct {
	// Name is the type name
	Name string

	// Package is the package name this type belongs to
	Package string

	// FilePath is the path to the source file containing this type
	FilePath string

	Kind TypeKind

	// Fields contains the fields of a struct, in declaration order
	Fields []*FieldInfo

	// Directive is the parsed //dhall: directive, nil if there is none
	Directive *Directive

	// Imports maps package names to import paths for the declaring file
	Imports map[string]string

	ASTNode ast.Expr
}

// DirectiveKind is the kind of a //dhall: directive.
type DirectiveKind string

const (
	DeriveDirective DirectiveKind = "derive"
	UnionDirective  DirectiveKind = "union"
)

// Directive is a parsed //dhall:derive or //dhall:union comment.
type Directive struct {
	Kind DirectiveKind

	// Alternatives lists the constructor types of a union
	Alternatives []string

	// FieldCase and ConstructorCase name a built in case modifier
	// (snake, camel, lowerCamel, kebab)
	FieldCase       string
	ConstructorCase string

	// Singletons is one of bare, wrapped, smart or empty for the default
	Singletons string
}

// FieldInfo holds field information extracted from a struct definition.
type FieldInfo struct {
	// Name is the struct field name
	Name string

	// DhallName is the record label, from `dhall:"field=name"` or Name
	DhallName string

	// Positional fields are labelled _1, _2, ... instead
	Positional bool

	ASTType ast.Expr

	IsEmbedded bool
}

// PackageInfo holds information about a Go package
type PackageInfo struct {
	// Path is the package import path (e.g., "github.com/user/project/models")
	Path string

	// Dir is the directory containing the package
	Dir string

	// Name is the package name (e.g., "models")
	Name string

	// Files contains paths to all .go files in the package
	Files []string
}

// CodegenConfig holds configuration for code generation
type CodegenConfig struct {
	// OutputFile is the output file for generated Go code (default: <package>_dhall_gen.go)
	OutputFile string

	// Dir is the directory to scan for Go files (default: current directory)
	Dir string

	// Recursive indicates whether to scan subdirectories recursively
	Recursive bool

	// Package is the current package being processed
	Package *PackageInfo

	// Types, when set, resolves named types that have no generated codec
	// to their underlying types
	Types *types.Package
}
