// Package codec converts between expressions and Go values.
//
// # Usage
//
//	type Person struct {
//	    Name string
//	    Age  uint64
//	}
//
//	var personDecoder = codec.Map2(
//	    codec.Field("name", codec.TextDecoder()),
//	    codec.Field("age", codec.NaturalDecoder()),
//	    func(n string, a uint64) Person { return Person{Name: n, Age: a} },
//	).Decoder()
//
//	var personEncoder = codec.FieldEncoder("name", codec.TextEncoder(),
//	    func(p Person) string { return p.Name }).
//	    And(codec.FieldEncoder("age", codec.NaturalEncoder(),
//	        func(p Person) uint64 { return p.Age })).
//	    Encoder()
//
//	p, err := codec.Input(personDecoder, e)
//
// A Decoder carries the type it expects; Input can check an expression
// against it with an injected type checker before extracting.
//
// # Errors
//
// Record, list and map decoders run every independent part and report
// all failures together; use Errors to list them and FirstError to keep
// one. Union decoding stops at the first failure. Detailed renders
// accumulated errors with explanations and type diffs.
//
// Combining record or union builders that share a label panics with a
// *DuplicateLabelError. A decoded function whose result cannot be decoded
// panics with a *ContractViolation.
//
// # Recursive Types
//
// Recursive values use the fixpoint encoding
//
//	forall (result : Type) -> forall (make : F result -> result) -> result
//
// See Recursive, RecursiveDecoder and RecursiveEncoder.
//
// # Related Packages
//
//   - github.com/signadot/go-dhall/expr - expression trees
//   - github.com/signadot/go-dhall/derive - codecs derived from shapes
package codec
