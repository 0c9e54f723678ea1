package codec

import (
	"strconv"

	"github.com/signadot/go-dhall/expr"
)

// OptionalDecoder decodes `Some x` to a pointer to x and `None T` to nil.
func OptionalDecoder[T any](d Decoder[T]) Decoder[*T] {
	exp := func() (*expr.Expr, error) {
		t, err := d.Expected()
		if err != nil {
			return nil, err
		}
		return expr.OptionalOf(t), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) (*T, error) {
		switch {
		case e.Kind == expr.SomeKind:
			v, err := d.Extract(e.Body)
			if err != nil {
				return nil, err
			}
			return &v, nil
		case isNone(e):
			return nil, nil
		}
		return nil, typeMismatch(exp, e)
	})
}

func isNone(e *expr.Expr) bool {
	head, args := expr.Spine(e)
	return head.Kind == expr.BuiltinKind && head.Name == expr.NoneBuiltin && len(args) == 1
}

func OptionalEncoder[T any](e Encoder[T]) Encoder[*T] {
	return NewEncoder(expr.OptionalOf(e.Declared()), func(v *T) *expr.Expr {
		if v == nil {
			return expr.NoneOf(e.Declared())
		}
		return expr.FromSome(e.Embed(*v))
	})
}

func Optional[T any](c Codec[T]) Codec[*T] {
	return NewCodec(OptionalDecoder(c.Decoder), OptionalEncoder(c.Encoder))
}

// ListDecoder decodes every element of a list, accumulating the errors
// of all malformed elements.
func ListDecoder[T any](d Decoder[T]) Decoder[[]T] {
	exp := func() (*expr.Expr, error) {
		t, err := d.Expected()
		if err != nil {
			return nil, err
		}
		return expr.ListOf(t), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) ([]T, error) {
		if e.Kind != expr.ListKind {
			return nil, typeMismatch(exp, e)
		}
		res := make([]T, len(e.Values))
		var errs []error
		for i, x := range e.Values {
			v, err := d.Extract(x)
			if err != nil {
				errs = append(errs, atPath("["+strconv.Itoa(i)+"]", err))
				continue
			}
			res[i] = v
		}
		if err := Accumulate(errs...); err != nil {
			return nil, err
		}
		return res, nil
	})
}

func ListEncoder[T any](e Encoder[T]) Encoder[[]T] {
	return NewEncoder(expr.ListOf(e.Declared()), func(vs []T) *expr.Expr {
		items := make([]*expr.Expr, len(vs))
		for i, v := range vs {
			items[i] = e.Embed(v)
		}
		return expr.FromList(e.Declared(), items...)
	})
}

// List maps List T to []T. Ordered sequences use the same representation.
func List[T any](c Codec[T]) Codec[[]T] {
	return NewCodec(ListDecoder(c.Decoder), ListEncoder(c.Encoder))
}

// Pair is a two-element product. It corresponds to the record
// { _1 : A, _2 : B }.
type Pair[A, B any] struct {
	First  A
	Second B
}

func PairDecoder[A, B any](a Decoder[A], b Decoder[B]) Decoder[Pair[A, B]] {
	return Both(Field("_1", a), Field("_2", b)).Decoder()
}

func PairEncoder[A, B any](a Encoder[A], b Encoder[B]) Encoder[Pair[A, B]] {
	return Divide(
		func(p Pair[A, B]) (A, B) { return p.First, p.Second },
		FieldEncoder("_1", a, func(v A) A { return v }),
		FieldEncoder("_2", b, func(v B) B { return v }),
	).Encoder()
}

func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return NewCodec(PairDecoder(a.Decoder, b.Decoder), PairEncoder(a.Encoder, b.Encoder))
}
