// Package example shows the code dhall-codegen writes.
package example

//go:generate go run github.com/signadot/go-dhall/cmd/dhall-codegen

//dhall:union Circle Square Empty constructors=kebab
type Shape interface{ isShape() }

type Circle struct {
	Radius float64
	Label  *string
}

type Square struct {
	Side float64 `dhall:"positional"`
}

type Empty struct{}

func (Circle) isShape() {}
func (Square) isShape() {}
func (Empty) isShape()  {}

// Level is stored as a Natural.
type Level uint8

//dhall:derive fields=snake
type Drawing struct {
	Title    string
	Shapes   []Shape
	Tags     map[string]struct{}
	MaxLevel Level
	draft    bool
}
