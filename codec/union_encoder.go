package codec

import (
	"fmt"
	"slices"

	"github.com/signadot/go-dhall/expr"
)

type alternativeEncoder[T any] struct {
	declared *expr.Expr
	embed    func(T) (*expr.Expr, bool)
}

// UnionEncoder embeds values as alternatives of a union.
type UnionEncoder[T any] struct {
	names []string
	alts  map[string]alternativeEncoder[T]
}

// ConstructorEncoder embeds values that match selects as the alternative
// name. A payload of type {} is left out.
func ConstructorEncoder[T, P any](name string, e Encoder[P], match func(T) (P, bool)) UnionEncoder[T] {
	return UnionEncoder[T]{
		names: []string{name},
		alts: map[string]alternativeEncoder[T]{name: {
			declared: bare(e.Declared()),
			embed: func(v T) (*expr.Expr, bool) {
				p, ok := match(v)
				if !ok {
					return nil, false
				}
				return e.Embed(p), true
			},
		}},
	}
}

func EmptyUnionEncoder[T any]() UnionEncoder[T] {
	return UnionEncoder[T]{alts: map[string]alternativeEncoder[T]{}}
}

// Or embeds with the alternatives of u, then those of o. Sharing a
// constructor panics with a *DuplicateLabelError.
func (u UnionEncoder[T]) Or(o UnionEncoder[T]) UnionEncoder[T] {
	res := UnionEncoder[T]{
		names: slices.Clone(u.names),
		alts:  make(map[string]alternativeEncoder[T], len(u.alts)+len(o.alts)),
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

// Encoder turns u into an encoder. Embedding a value that no alternative
// matches panics.
func (u UnionEncoder[T]) Encoder() Encoder[T] {
	m := make(map[string]*expr.Expr, len(u.names))
	for _, n := range u.names {
		m[n] = u.alts[n].declared
	}
	ut := expr.UnionType(m)
	return NewEncoder(ut, func(v T) *expr.Expr {
		for _, n := range u.names {
			a := u.alts[n]
			p, ok := a.embed(v)
			if !ok {
				continue
			}
			if a.declared == nil {
				return expr.Select(ut, n)
			}
			return expr.App(expr.Select(ut, n), p)
		}
		panic(fmt.Sprintf("codec: no constructor of %s matches %T value %v", ut, v, v))
	})
}
