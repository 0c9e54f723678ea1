package codec

import (
	"github.com/signadot/go-dhall/expr"
)

// RecordEncoder embeds a value as some fields of a record. RecordEncoders
// combine divisibly: each part embeds its own projection of the value.
type RecordEncoder[T any] struct {
	types map[string]*expr.Expr
	embed func(T, map[string]*expr.Expr)
}

// FieldEncoder embeds project(v) as the field name.
func FieldEncoder[T, F any](name string, e Encoder[F], project func(T) F) RecordEncoder[T] {
	return RecordEncoder[T]{
		types: map[string]*expr.Expr{name: e.Declared()},
		embed: func(v T, m map[string]*expr.Expr) {
			m[name] = e.Embed(project(v))
		},
	}
}

// EmptyRecordEncoder embeds every value as {=}.
func EmptyRecordEncoder[T any]() RecordEncoder[T] {
	return RecordEncoder[T]{
		types: map[string]*expr.Expr{},
		embed: func(T, map[string]*expr.Expr) {},
	}
}

func unionTypes(a, b map[string]*expr.Expr) map[string]*expr.Expr {
	res := make(map[string]*expr.Expr, len(a)+len(b))
	for k, v := range a {
		res[k] = v
	}
	for k, v := range b {
		if _, ok := res[k]; ok {
			panic(&DuplicateLabelError{Kind: "field", Label: k})
		}
		res[k] = v
	}
	return res
}

// Divide embeds the two parts split returns with a and b.
func Divide[T, A, B any](split func(T) (A, B), a RecordEncoder[A], b RecordEncoder[B]) RecordEncoder[T] {
	return RecordEncoder[T]{
		types: unionTypes(a.types, b.types),
		embed: func(v T, m map[string]*expr.Expr) {
			x, y := split(v)
			a.embed(x, m)
			b.embed(y, m)
		},
	}
}

func ContramapRecord[A, B any](r RecordEncoder[A], f func(B) A) RecordEncoder[B] {
	return RecordEncoder[B]{
		types: r.types,
		embed: func(v B, m map[string]*expr.Expr) { r.embed(f(v), m) },
	}
}

// And embeds the fields of both r and o.
func (r RecordEncoder[T]) And(o RecordEncoder[T]) RecordEncoder[T] {
	return Divide(func(v T) (T, T) { return v, v }, r, o)
}

func (r RecordEncoder[T]) Encoder() Encoder[T] {
	return NewEncoder(expr.RecordType(r.types), func(v T) *expr.Expr {
		m := make(map[string]*expr.Expr, len(r.types))
		r.embed(v, m)
		return expr.FromRecord(m)
	})
}
