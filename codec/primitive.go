package codec

import (
	"fmt"

	"github.com/signadot/go-dhall/expr"
)

func BoolDecoder() Decoder[bool] {
	return primitive(expr.BoolType(), expr.BoolKind, func(e *expr.Expr) bool { return e.Bool })
}

func BoolEncoder() Encoder[bool] {
	return NewEncoder(expr.BoolType(), expr.FromBool)
}

func Bool() Codec[bool] {
	return NewCodec(BoolDecoder(), BoolEncoder())
}

func NaturalDecoder() Decoder[uint64] {
	return primitive(expr.NaturalType(), expr.NaturalKind, func(e *expr.Expr) uint64 { return e.Natural })
}

func NaturalEncoder() Encoder[uint64] {
	return NewEncoder(expr.NaturalType(), expr.FromNatural)
}

// Natural maps Natural to uint64. Negative numbers are not representable.
func Natural() Codec[uint64] {
	return NewCodec(NaturalDecoder(), NaturalEncoder())
}

func IntegerDecoder() Decoder[int64] {
	return primitive(expr.IntegerType(), expr.IntegerKind, func(e *expr.Expr) int64 { return e.Integer })
}

func IntegerEncoder() Encoder[int64] {
	return NewEncoder(expr.IntegerType(), expr.FromInteger)
}

func Integer() Codec[int64] {
	return NewCodec(IntegerDecoder(), IntegerEncoder())
}

func DoubleDecoder() Decoder[float64] {
	return primitive(expr.DoubleType(), expr.DoubleKind, func(e *expr.Expr) float64 { return e.Double })
}

func DoubleEncoder() Encoder[float64] {
	return NewEncoder(expr.DoubleType(), expr.FromDouble)
}

func Double() Codec[float64] {
	return NewCodec(DoubleDecoder(), DoubleEncoder())
}

// TextDecoder accepts text literals without interpolation.
func TextDecoder() Decoder[string] {
	t := expr.TextType()
	return NewDecoder(t, func(e *expr.Expr) (string, error) {
		if e.Kind != expr.TextKind || len(e.Chunks) != 0 {
			return "", &TypeMismatch{Expected: t, Actual: e}
		}
		return e.Text, nil
	})
}

func TextEncoder() Encoder[string] {
	return NewEncoder(expr.TextType(), expr.FromText)
}

func Text() Codec[string] {
	return NewCodec(TextDecoder(), TextEncoder())
}

// UnitDecoder decodes the empty record {=} of type {}.
func UnitDecoder() Decoder[struct{}] {
	t := expr.RecordType(nil)
	return NewDecoder(t, func(e *expr.Expr) (struct{}, error) {
		if !expr.IsEmptyRecord(e) {
			return struct{}{}, &TypeMismatch{Expected: t, Actual: e}
		}
		return struct{}{}, nil
	})
}

func UnitEncoder() Encoder[struct{}] {
	return NewEncoder(expr.RecordType(nil), func(struct{}) *expr.Expr { return expr.FromRecord(nil) })
}

func Unit() Codec[struct{}] {
	return NewCodec(UnitDecoder(), UnitEncoder())
}

func primitive[T any](t *expr.Expr, k expr.Kind, get func(*expr.Expr) T) Decoder[T] {
	return NewDecoder(t, func(e *expr.Expr) (T, error) {
		if e.Kind != k {
			var zero T
			return zero, &TypeMismatch{Expected: t, Actual: e}
		}
		return get(e), nil
	})
}

// Word decodes a Natural into a sized unsigned integer, rejecting values
// out of range.
func Word[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64]() Codec[T] {
	d := TransformErr(NaturalDecoder(), func(n uint64) (T, error) {
		v := T(n)
		if uint64(v) != n {
			return 0, fmt.Errorf("natural %d out of range for %T", n, v)
		}
		return v, nil
	})
	return NewCodec(d, Contramap(NaturalEncoder(), func(v T) uint64 { return uint64(v) }))
}

// Int decodes an Integer into a sized signed integer, rejecting values
// out of range.
func Int[T ~int | ~int8 | ~int16 | ~int32 | ~int64]() Codec[T] {
	d := TransformErr(IntegerDecoder(), func(i int64) (T, error) {
		v := T(i)
		if int64(v) != i {
			return 0, fmt.Errorf("integer %d out of range for %T", i, v)
		}
		return v, nil
	})
	return NewCodec(d, Contramap(IntegerEncoder(), func(v T) int64 { return int64(v) }))
}
