// Package codegen generates derive shapes and codecs for Go types.
//
// Structs marked with a //dhall:derive directive get
//
//	func <Type>Product() derive.Product[<Type>]
//	func <Type>Shape() derive.Sum[<Type>]
//	func <Type>Codec() codec.Codec[<Type>]
//
// and interfaces marked with //dhall:union A B ... get a Shape and Codec
// whose constructors are the listed struct types. Directives take
// options:
//
//	//dhall:derive fields=snake singletons=wrapped
//	//dhall:union Circle Square constructors=kebab
//
// Fields are configured with the dhall struct tag: `dhall:"field=name"`
// renames, `dhall:"omit"` skips and `dhall:"positional"` makes the field
// unnamed.
//
// Generated code appears in <package>_dhall_gen.go.
//
// # Related Packages
//
//   - github.com/signadot/go-dhall/derive - Shapes and derivation
//   - github.com/signadot/go-dhall/codec - Codecs
package codegen
