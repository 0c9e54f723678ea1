package codec

import (
	"slices"

	"github.com/signadot/go-dhall/expr"
)

// RecordDecoder decodes some fields of a record. RecordDecoders combine
// applicatively: the fields are decoded independently and every field's
// error is reported.
type RecordDecoder[T any] struct {
	names   []string
	types   map[string]func() (*expr.Expr, error)
	extract func(*expr.Expr) (T, error)
}

// Field decodes the field name with d.
func Field[T any](name string, d Decoder[T]) RecordDecoder[T] {
	return RecordDecoder[T]{
		names: []string{name},
		types: map[string]func() (*expr.Expr, error){name: d.Expected},
		extract: func(e *expr.Expr) (T, error) {
			v := expr.Get(e, name)
			if v == nil {
				var zero T
				return zero, atPath(name, d.mismatch(nil))
			}
			res, err := d.Extract(v)
			return res, atPath(name, err)
		},
	}
}

// Pure decodes no fields and yields v.
func Pure[T any](v T) RecordDecoder[T] {
	return RecordDecoder[T]{
		types:   map[string]func() (*expr.Expr, error){},
		extract: func(*expr.Expr) (T, error) { return v, nil },
	}
}

func MapRecord[A, B any](r RecordDecoder[A], f func(A) B) RecordDecoder[B] {
	return RecordDecoder[B]{
		names: r.names,
		types: r.types,
		extract: func(e *expr.Expr) (B, error) {
			a, err := r.extract(e)
			if err != nil {
				var zero B
				return zero, err
			}
			return f(a), nil
		},
	}
}

// mergeFields unions the field types of decoders, panicking with a
// *DuplicateLabelError if two share a field.
func mergeFields(names ...[]string) []string {
	var res []string
	for _, ns := range names {
		for _, n := range ns {
			if slices.Contains(res, n) {
				panic(&DuplicateLabelError{Kind: "field", Label: n})
			}
			res = append(res, n)
		}
	}
	return res
}

func mergeTypes(ts ...map[string]func() (*expr.Expr, error)) map[string]func() (*expr.Expr, error) {
	res := map[string]func() (*expr.Expr, error){}
	for _, t := range ts {
		for k, v := range t {
			res[k] = v
		}
	}
	return res
}

// Both decodes the fields of a and b.
func Both[A, B any](a RecordDecoder[A], b RecordDecoder[B]) RecordDecoder[Pair[A, B]] {
	return Map2(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

func Map2[A, B, C any](a RecordDecoder[A], b RecordDecoder[B], f func(A, B) C) RecordDecoder[C] {
	return RecordDecoder[C]{
		names: mergeFields(a.names, b.names),
		types: mergeTypes(a.types, b.types),
		extract: func(e *expr.Expr) (C, error) {
			x, xerr := a.extract(e)
			y, yerr := b.extract(e)
			if err := Accumulate(xerr, yerr); err != nil {
				var zero C
				return zero, err
			}
			return f(x, y), nil
		},
	}
}

func Map3[A, B, C, D any](a RecordDecoder[A], b RecordDecoder[B], c RecordDecoder[C], f func(A, B, C) D) RecordDecoder[D] {
	return Map2(Both(a, b), c, func(p Pair[A, B], z C) D { return f(p.First, p.Second, z) })
}

func Map4[A, B, C, D, E any](a RecordDecoder[A], b RecordDecoder[B], c RecordDecoder[C], d RecordDecoder[D], f func(A, B, C, D) E) RecordDecoder[E] {
	return Map2(Both(a, b), Both(c, d), func(p Pair[A, B], q Pair[C, D]) E {
		return f(p.First, p.Second, q.First, q.Second)
	})
}

// Sequence decodes the fields of every decoder in rs, in order.
func Sequence[T any](rs ...RecordDecoder[T]) RecordDecoder[[]T] {
	var names [][]string
	var types []map[string]func() (*expr.Expr, error)
	for _, r := range rs {
		names = append(names, r.names)
		types = append(types, r.types)
	}
	return RecordDecoder[[]T]{
		names: mergeFields(names...),
		types: mergeTypes(types...),
		extract: func(e *expr.Expr) ([]T, error) {
			res := make([]T, len(rs))
			errs := make([]error, len(rs))
			for i, r := range rs {
				res[i], errs[i] = r.extract(e)
			}
			if err := Accumulate(errs...); err != nil {
				return nil, err
			}
			return res, nil
		},
	}
}

// Fields lists the decoded field names in the order they were combined.
func (r RecordDecoder[T]) Fields() []string {
	return slices.Clone(r.names)
}

// Decoder turns r into a decoder of records carrying its fields.
func (r RecordDecoder[T]) Decoder() Decoder[T] {
	exp := func() (*expr.Expr, error) {
		m := make(map[string]*expr.Expr, len(r.names))
		var errs []error
		for _, n := range r.names {
			t, err := r.types[n]()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			m[n] = t
		}
		if err := Accumulate(errs...); err != nil {
			return nil, err
		}
		return expr.RecordType(m), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) (T, error) {
		if e.Kind != expr.RecordKind {
			var zero T
			return zero, typeMismatch(exp, e)
		}
		return r.extract(e)
	})
}
