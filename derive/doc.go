// Package derive builds codecs from explicit descriptions of Go types.
//
// A type is described as a Sum of constructors, each carrying a Product
// of fields:
//
//	var PersonCodec = derive.MustDerive(derive.Single("Person", derive.Struct(
//		derive.Field("name", codec.Text(), Person.GetName, (*Person).SetName),
//		derive.Field("age", codec.Natural(), Person.GetAge, (*Person).SetAge),
//	)))
//
// A type with one constructor is represented as a record of its fields,
// and a type with several as a union whose alternatives carry such
// records. Unnamed fields are labelled _1, _2, … within each
// constructor. The SingletonPolicy decides whether a constructor with
// exactly one field is wrapped in a record.
//
// The dhall-codegen command writes these descriptions for annotated
// structs and interfaces.
package derive
