package codec

import (
	"github.com/signadot/go-dhall/expr"
)

// Canonical binder names of the fixpoint encoding
//
//	forall (result : Type) -> forall (make : F result -> result) -> result
//
// Decoding renames whatever binders the source used to these.
const (
	ResultBinder = "result"
	MakeBinder   = "make"
)

func fixpointType(layer *expr.Expr) *expr.Expr {
	result := expr.Var(ResultBinder, 0)
	return expr.Pi(ResultBinder, expr.Type(), expr.Pi(MakeBinder, expr.Arrow(layer, result), result))
}

// RecursiveDecoder decodes a recursive type from its fixpoint encoding.
// layer returns the decoder for one layer of the structure given a
// decoder for the recursive positions. The recursive positions have type
// result and hold `make x` for a layer x; they are decoded bottom-up.
func RecursiveDecoder[T any](layer func(self Decoder[T]) Decoder[T]) Decoder[T] {
	var one Decoder[T]
	result := expr.Var(ResultBinder, 0)
	self := NewDecoder(result, func(e *expr.Expr) (T, error) {
		head, args := expr.Spine(e)
		if head.Kind != expr.VarKind || head.Name != MakeBinder || head.Index != 0 || len(args) != 1 {
			var zero T
			return zero, &TypeMismatch{Expected: result, Actual: e}
		}
		return one.Extract(args[0])
	})
	one = layer(self)
	exp := func() (*expr.Expr, error) {
		t, err := one.Expected()
		if err != nil {
			return nil, err
		}
		return fixpointType(t), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) (T, error) {
		var zero T
		if e.Kind != expr.LambdaKind {
			return zero, typeMismatch(exp, e)
		}
		inner := expr.Rename(e.Name, ResultBinder, e.Body)
		if inner.Kind != expr.LambdaKind {
			return zero, typeMismatch(exp, e)
		}
		body := expr.Rename(inner.Name, MakeBinder, inner.Body)
		return self.Extract(body)
	})
}

// RecursiveEncoder embeds a recursive type in its fixpoint encoding.
func RecursiveEncoder[T any](layer func(self Encoder[T]) Encoder[T]) Encoder[T] {
	var one Encoder[T]
	self := NewEncoder(expr.Var(ResultBinder, 0), func(v T) *expr.Expr {
		return expr.App(expr.Var(MakeBinder, 0), one.Embed(v))
	})
	one = layer(self)
	result := expr.Var(ResultBinder, 0)
	return NewEncoder(fixpointType(one.Declared()), func(v T) *expr.Expr {
		return expr.Lambda(ResultBinder, expr.Type(),
			expr.Lambda(MakeBinder, expr.Arrow(one.Declared(), result), self.Embed(v)))
	})
}

// Recursive builds both directions from a single layer function.
func Recursive[T any](layer func(self Codec[T]) Codec[T]) Codec[T] {
	result := expr.Var(ResultBinder, 0)
	// The encoder half of the layer never consults the self decoder.
	unused := NewDecoder(result, func(e *expr.Expr) (T, error) {
		var zero T
		return zero, &TypeMismatch{Expected: result, Actual: e}
	})
	var selfEnc Encoder[T]
	enc := RecursiveEncoder(func(se Encoder[T]) Encoder[T] {
		selfEnc = se
		return layer(NewCodec(unused, se)).Encoder
	})
	dec := RecursiveDecoder(func(sd Decoder[T]) Decoder[T] {
		return layer(NewCodec(sd, selfEnc)).Decoder
	})
	return NewCodec(dec, enc)
}
