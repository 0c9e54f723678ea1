package codec

import (
	"github.com/signadot/go-dhall/expr"
)

// Decoder extracts a Go value of type T from a normalized expression and
// knows the type that expression is expected to have.
//
// Decoders are immutable and safe for concurrent use.
type Decoder[T any] struct {
	extract  func(*expr.Expr) (T, error)
	expected func() (*expr.Expr, error)
}

// NewDecoder returns a decoder with a constant expected type.
func NewDecoder[T any](expected *expr.Expr, extract func(*expr.Expr) (T, error)) Decoder[T] {
	return Decoder[T]{
		extract:  extract,
		expected: func() (*expr.Expr, error) { return expected, nil },
	}
}

// NewDecoderFunc returns a decoder whose expected type is computed on
// demand and may fail.
func NewDecoderFunc[T any](expected func() (*expr.Expr, error), extract func(*expr.Expr) (T, error)) Decoder[T] {
	return Decoder[T]{extract: extract, expected: expected}
}

// Extract decodes e, which must be in normal form.
func (d Decoder[T]) Extract(e *expr.Expr) (T, error) {
	if e == nil {
		var zero T
		return zero, d.mismatch(nil)
	}
	return d.extract(e)
}

// Expected returns the type an expression must have to be decoded by d.
func (d Decoder[T]) Expected() (*expr.Expr, error) {
	return d.expected()
}

func (d Decoder[T]) mismatch(actual *expr.Expr) error {
	return typeMismatch(d.expected, actual)
}

func typeMismatch(expected func() (*expr.Expr, error), actual *expr.Expr) error {
	t, err := expected()
	if err != nil {
		return err
	}
	return &TypeMismatch{Expected: t, Actual: actual}
}

// Transform maps the decoded value through f.
func Transform[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return Decoder[B]{
		expected: d.expected,
		extract: func(e *expr.Expr) (B, error) {
			a, err := d.extract(e)
			if err != nil {
				var zero B
				return zero, err
			}
			return f(a), nil
		},
	}
}

// TransformErr is Transform for a conversion that may reject a
// well-typed value. Rejections are reported as *ExtractError.
func TransformErr[A, B any](d Decoder[A], f func(A) (B, error)) Decoder[B] {
	return Decoder[B]{
		expected: d.expected,
		extract: func(e *expr.Expr) (B, error) {
			var zero B
			a, err := d.extract(e)
			if err != nil {
				return zero, err
			}
			b, err := f(a)
			if err != nil {
				return zero, &ExtractError{Message: err.Error(), Err: err}
			}
			return b, nil
		},
	}
}
