package codec

import (
	"slices"

	"github.com/signadot/go-dhall/expr"
)

// UnionDecoder decodes some alternatives of a union. UnionDecoders form a
// monoid under Or with EmptyUnion as identity.
type UnionDecoder[T any] struct {
	names []string
	alts  map[string]Decoder[T]
}

// Constructor decodes the alternative name, injecting its payload into T.
// An alternative without payload decodes its payload as {=}.
func Constructor[T, P any](name string, d Decoder[P], inject func(P) T) UnionDecoder[T] {
	return UnionDecoder[T]{
		names: []string{name},
		alts:  map[string]Decoder[T]{name: Transform(d, inject)},
	}
}

// EmptyUnion decodes no alternatives.
func EmptyUnion[T any]() UnionDecoder[T] {
	return UnionDecoder[T]{alts: map[string]Decoder[T]{}}
}

// Or decodes the alternatives of both u and o. Sharing a constructor
// panics with a *DuplicateLabelError.
func (u UnionDecoder[T]) Or(o UnionDecoder[T]) UnionDecoder[T] {
	res := UnionDecoder[T]{
		names: slices.Clone(u.names),
		alts:  make(map[string]Decoder[T], len(u.alts)+len(o.alts)),
	}
	for k, v := range u.alts {
		res.alts[k] = v
	}
	for _, n := range o.names {
		if _, ok := res.alts[n]; ok {
			panic(&DuplicateLabelError{Kind: "constructor", Label: n})
		}
		res.names = append(res.names, n)
		res.alts[n] = o.alts[n]
	}
	return res
}

func (u UnionDecoder[T]) Constructors() []string {
	return slices.Clone(u.names)
}

// alternative splits a union literal into its type, tag and payload.
// A bare tag has a nil payload.
func alternative(e *expr.Expr) (ut *expr.Expr, tag string, payload *expr.Expr, ok bool) {
	sel := e
	if e.Kind == expr.AppKind {
		sel, payload = e.Values[0], e.Values[1]
	}
	if sel.Kind != expr.FieldKind || sel.Body.Kind != expr.UnionTypeKind || !expr.Has(sel.Body, sel.Name) {
		return nil, "", nil, false
	}
	if (payload == nil) != (expr.Get(sel.Body, sel.Name) == nil) {
		return nil, "", nil, false
	}
	return sel.Body, sel.Name, payload, true
}

// bare drops empty record payload types so that such alternatives render
// as plain tags.
func bare(t *expr.Expr) *expr.Expr {
	if expr.IsEmptyRecordType(t) {
		return nil
	}
	return t
}

// Decoder turns u into a decoder of union literals. Besides matching the
// tag, it requires the other alternatives of the literal's union type to
// be judgmentally equal to those u expects.
func (u UnionDecoder[T]) Decoder() Decoder[T] {
	exp := func() (*expr.Expr, error) {
		m := make(map[string]*expr.Expr, len(u.names))
		var errs []error
		for _, n := range u.names {
			t, err := u.alts[n].Expected()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			m[n] = bare(t)
		}
		if err := Accumulate(errs...); err != nil {
			return nil, err
		}
		return expr.UnionType(m), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) (T, error) {
		var zero T
		ut, tag, payload, ok := alternative(e)
		if !ok {
			return zero, typeMismatch(exp, e)
		}
		d, ok := u.alts[tag]
		if !ok {
			return zero, typeMismatch(exp, e)
		}
		want, err := exp()
		if err != nil {
			return zero, err
		}
		if !expr.JudgmentallyEqual(expr.Without(ut, tag), expr.Without(want, tag)) {
			return zero, &TypeMismatch{Expected: want, Actual: e}
		}
		if payload == nil {
			payload = expr.FromRecord(nil)
		}
		v, err := d.Extract(payload)
		return v, atPath(tag, err)
	})
}
