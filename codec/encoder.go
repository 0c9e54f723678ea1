package codec

import (
	"github.com/signadot/go-dhall/expr"
)

// Encoder embeds a Go value of type T as an expression of its declared
// type.
type Encoder[T any] struct {
	embed    func(T) *expr.Expr
	declared *expr.Expr
}

func NewEncoder[T any](declared *expr.Expr, embed func(T) *expr.Expr) Encoder[T] {
	return Encoder[T]{embed: embed, declared: declared}
}

func (e Encoder[T]) Embed(v T) *expr.Expr {
	return e.embed(v)
}

func (e Encoder[T]) Declared() *expr.Expr {
	return e.declared
}

// Contramap adapts an encoder of A to values of B.
func Contramap[A, B any](e Encoder[A], f func(B) A) Encoder[B] {
	return Encoder[B]{
		declared: e.declared,
		embed:    func(b B) *expr.Expr { return e.embed(f(b)) },
	}
}

// Codec pairs a decoder and an encoder for the same type.
type Codec[T any] struct {
	Decoder[T]
	Encoder[T]
}

func NewCodec[T any](d Decoder[T], e Encoder[T]) Codec[T] {
	return Codec[T]{Decoder: d, Encoder: e}
}

// Invmap converts a codec of A into a codec of B given an isomorphism.
func Invmap[A, B any](c Codec[A], to func(A) B, from func(B) A) Codec[B] {
	return NewCodec(Transform(c.Decoder, to), Contramap(c.Encoder, from))
}
