// Package expr provides the expression tree consumed and produced by the
// codecs in github.com/signadot/go-dhall/codec.
//
// # Overview
//
// An Expr is a node of an already parsed expression of the configuration
// language. The package does not parse or type check. It supplies the
// operations the codecs need: capture-avoiding substitution over named de
// Bruijn variables, beta normalization with a pluggable reducer, alpha
// normalization and judgmental equality, a pretty printer, and the
// standard binary (CBOR) encoding with its semantic hash.
//
// # Node Layout
//
// Expr works as a recursive tagged union: values are placed in fields
// depending on Kind.
//
//   - ConstKind, BuiltinKind: Name
//   - VarKind: Name and Index, printed x@n
//   - LambdaKind, PiKind: Name is the binder, Annot its type, Body the scope
//   - AppKind: Values[0] applied to Values[1]
//   - LetKind: Name, optional Annot, Values[0] bound in Body
//   - AnnotKind: Values[0] annotated with Annot
//   - BoolKind, NaturalKind, IntegerKind, DoubleKind: the literal field
//   - TextKind: Chunks followed by the suffix Text
//   - ListKind: Values, and the element type in Annot when empty
//   - SomeKind: Body
//   - RecordTypeKind, RecordKind, UnionTypeKind: sorted Fields with Values;
//     an alternative without payload has a nil value
//   - FieldKind: Body.Name
//   - ToMapKind: Body, optional Annot
//   - OpKind: Op over Values[0] and Values[1]
//   - IfKind: Values[0] then Values[1] else Values[2]
//
// A union literal is a field selection on a union type, applied to its
// payload unless the alternative is bare:
//
//	App(Select(UnionType(alts), "Leaf"), FromNatural(1))
//
// # Related Packages
//
//   - github.com/signadot/go-dhall/expr/script - custom builtins for Normalize
//   - github.com/signadot/go-dhall/codec - decoders and encoders over Expr
package expr
