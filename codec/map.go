package codec

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/signadot/go-dhall/expr"
)

func entryType(k, v *expr.Expr) *expr.Expr {
	return expr.RecordType(map[string]*expr.Expr{expr.MapKey: k, expr.MapValue: v})
}

// entries decodes a list of { mapKey, mapValue } records in list order.
// A record literal is first turned into that form as toMap would.
func entries[K, V any](kd Decoder[K], vd Decoder[V], exp func() (*expr.Expr, error), e *expr.Expr) ([]Pair[K, V], error) {
	if e.Kind == expr.RecordKind {
		e = expr.Normalize(expr.ToMapOf(e, nil))
	}
	if e.Kind != expr.ListKind {
		return nil, typeMismatch(exp, e)
	}
	res := make([]Pair[K, V], 0, len(e.Values))
	var errs []error
	for i, x := range e.Values {
		if x.Kind != expr.RecordKind || !expr.Has(x, expr.MapKey) || !expr.Has(x, expr.MapValue) {
			errs = append(errs, atPath("["+strconv.Itoa(i)+"]", typeMismatch(exp, x)))
			continue
		}
		k, kerr := kd.Extract(expr.Get(x, expr.MapKey))
		v, verr := vd.Extract(expr.Get(x, expr.MapValue))
		if err := Accumulate(atPath(expr.MapKey, kerr), atPath(expr.MapValue, verr)); err != nil {
			errs = append(errs, atPath("["+strconv.Itoa(i)+"]", err))
			continue
		}
		res = append(res, Pair[K, V]{First: k, Second: v})
	}
	if err := Accumulate(errs...); err != nil {
		return nil, err
	}
	return res, nil
}

func mapExpected[K, V any](kd Decoder[K], vd Decoder[V]) func() (*expr.Expr, error) {
	return func() (*expr.Expr, error) {
		k, kerr := kd.Expected()
		v, verr := vd.Expected()
		if err := Accumulate(kerr, verr); err != nil {
			return nil, err
		}
		return expr.ListOf(entryType(k, v)), nil
	}
}

// MapDecoder decodes an association list into a Go map. When a key
// repeats, the later entry wins.
func MapDecoder[K comparable, V any](kd Decoder[K], vd Decoder[V]) Decoder[map[K]V] {
	exp := mapExpected(kd, vd)
	return NewDecoderFunc(exp, func(e *expr.Expr) (map[K]V, error) {
		es, err := entries(kd, vd, exp, e)
		if err != nil {
			return nil, err
		}
		res := make(map[K]V, len(es))
		for _, p := range es {
			res[p.First] = p.Second
		}
		return res, nil
	})
}

// MapEncoder embeds a Go map as an association list ordered by the
// embedded keys.
func MapEncoder[K comparable, V any](ke Encoder[K], ve Encoder[V]) Encoder[map[K]V] {
	et := entryType(ke.Declared(), ve.Declared())
	return NewEncoder(expr.ListOf(et), func(m map[K]V) *expr.Expr {
		items := make([]*expr.Expr, 0, len(m))
		for k, v := range m {
			items = append(items, entry(ke.Embed(k), ve.Embed(v)))
		}
		slices.SortFunc(items, func(a, b *expr.Expr) int {
			return expr.Compare(expr.Get(a, expr.MapKey), expr.Get(b, expr.MapKey))
		})
		return expr.FromList(et, items...)
	})
}

func entry(k, v *expr.Expr) *expr.Expr {
	return expr.FromRecord(map[string]*expr.Expr{expr.MapKey: k, expr.MapValue: v})
}

func Map[K comparable, V any](k Codec[K], v Codec[V]) Codec[map[K]V] {
	return NewCodec(MapDecoder(k.Decoder, v.Decoder), MapEncoder(k.Encoder, v.Encoder))
}

// SortedMapDecoder decodes an association list into pairs ordered by
// key. When a key repeats, the later entry wins.
func SortedMapDecoder[K cmp.Ordered, V any](kd Decoder[K], vd Decoder[V]) Decoder[[]Pair[K, V]] {
	exp := mapExpected(kd, vd)
	return NewDecoderFunc(exp, func(e *expr.Expr) ([]Pair[K, V], error) {
		es, err := entries(kd, vd, exp, e)
		if err != nil {
			return nil, err
		}
		idx := make(map[K]int, len(es))
		res := make([]Pair[K, V], 0, len(es))
		for _, p := range es {
			if i, ok := idx[p.First]; ok {
				res[i].Second = p.Second
				continue
			}
			idx[p.First] = len(res)
			res = append(res, p)
		}
		slices.SortFunc(res, func(a, b Pair[K, V]) int { return cmp.Compare(a.First, b.First) })
		return res, nil
	})
}

// SortedMapEncoder embeds pairs in their given order.
func SortedMapEncoder[K cmp.Ordered, V any](ke Encoder[K], ve Encoder[V]) Encoder[[]Pair[K, V]] {
	et := entryType(ke.Declared(), ve.Declared())
	return NewEncoder(expr.ListOf(et), func(ps []Pair[K, V]) *expr.Expr {
		items := make([]*expr.Expr, len(ps))
		for i, p := range ps {
			items[i] = entry(ke.Embed(p.First), ve.Embed(p.Second))
		}
		return expr.FromList(et, items...)
	})
}

func SortedMap[K cmp.Ordered, V any](k Codec[K], v Codec[V]) Codec[[]Pair[K, V]] {
	return NewCodec(SortedMapDecoder(k.Decoder, v.Decoder), SortedMapEncoder(k.Encoder, v.Encoder))
}
