package codec

import (
	"fmt"
	"slices"

	"github.com/signadot/go-dhall/expr"
)

// DistinctSetDecoder decodes a list into a set and rejects lists with
// repeated elements.
func DistinctSetDecoder[T comparable](d Decoder[T]) Decoder[map[T]struct{}] {
	return setDecoder(d, true)
}

// SetDecoder decodes a list into a set, collapsing repeated elements.
func SetDecoder[T comparable](d Decoder[T]) Decoder[map[T]struct{}] {
	return setDecoder(d, false)
}

func setDecoder[T comparable](d Decoder[T], distinct bool) Decoder[map[T]struct{}] {
	l := ListDecoder(d)
	return NewDecoderFunc(l.expected, func(e *expr.Expr) (map[T]struct{}, error) {
		vs, err := l.Extract(e)
		if err != nil {
			return nil, err
		}
		set := make(map[T]struct{}, len(vs))
		for _, v := range vs {
			set[v] = struct{}{}
		}
		if distinct && len(set) < len(vs) {
			return nil, &ExtractError{Message: duplicatesMessage(vs)}
		}
		return set, nil
	})
}

// duplicatesMessage describes the elements of vs left over once the
// first occurrence of each distinct element is removed.
func duplicatesMessage[T comparable](vs []T) string {
	seen := make(map[T]struct{}, len(vs))
	var dups []T
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			dups = append(dups, v)
			continue
		}
		seen[v] = struct{}{}
	}
	if len(dups) == 1 {
		return fmt.Sprintf("One duplicate element: %v", dups[0])
	}
	return fmt.Sprintf("%d duplicates were found, including %v", len(dups), dups[0])
}

// SetEncoder embeds a set as a list ordered by expr.Compare.
func SetEncoder[T comparable](e Encoder[T]) Encoder[map[T]struct{}] {
	return NewEncoder(expr.ListOf(e.Declared()), func(set map[T]struct{}) *expr.Expr {
		items := make([]*expr.Expr, 0, len(set))
		for v := range set {
			items = append(items, e.Embed(v))
		}
		slices.SortFunc(items, expr.Compare)
		return expr.FromList(e.Declared(), items...)
	})
}

func DistinctSet[T comparable](c Codec[T]) Codec[map[T]struct{}] {
	return NewCodec(DistinctSetDecoder(c.Decoder), SetEncoder(c.Encoder))
}

func Set[T comparable](c Codec[T]) Codec[map[T]struct{}] {
	return NewCodec(SetDecoder(c.Decoder), SetEncoder(c.Encoder))
}
