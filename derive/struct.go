package derive

import (
	"github.com/signadot/go-dhall/codec"
)

// StructField is one field of a struct T, accessed through get and set.
type StructField[T any] struct {
	compile func(st *state) (*structField[T], error)
}

type structField[T any] struct {
	name  string
	dec   codec.RecordDecoder[func(*T)]
	enc   codec.RecordEncoder[T]
	bare  codec.Codec[T]
	named bool
}

// Field is the field name of T.
func Field[T, F any](name string, c codec.Codec[F], get func(T) F, set func(*T, F)) StructField[T] {
	return StructField[T]{compile: func(st *state) (*structField[T], error) {
		n, err := st.field(st.opts.fieldModifier(name))
		if err != nil {
			return nil, err
		}
		return lens(n, c, get, set, true), nil
	}}
}

// PositionalField is an unnamed field of T, labelled by its position
// among the unnamed fields of the constructor.
func PositionalField[T, F any](c codec.Codec[F], get func(T) F, set func(*T, F)) StructField[T] {
	return StructField[T]{compile: func(st *state) (*structField[T], error) {
		n, err := st.field(st.positional())
		if err != nil {
			return nil, err
		}
		return lens(n, c, get, set, false), nil
	}}
}

func lens[T, F any](name string, c codec.Codec[F], get func(T) F, set func(*T, F), named bool) *structField[T] {
	setter := codec.Transform(c.Decoder, func(v F) func(*T) {
		return func(t *T) { set(t, v) }
	})
	return &structField[T]{
		name: name,
		dec:  codec.Field(name, setter),
		enc:  codec.FieldEncoder(name, c.Encoder, get),
		bare: codec.Invmap(c, func(v F) T {
			var t T
			set(&t, v)
			return t
		}, get),
		named: named,
	}
}

// Struct is the product of fields, in order. Decoding starts from the
// zero T and sets each field.
func Struct[T any](fields ...StructField[T]) Product[T] {
	return Product[T]{compile: func(st *state) (*product[T], error) {
		var (
			names []string
			decs  []codec.RecordDecoder[func(*T)]
			enc   = codec.EmptyRecordEncoder[T]()
		)
		var compiled []*structField[T]
		for _, f := range fields {
			sf, err := f.compile(st)
			if err != nil {
				return nil, err
			}
			compiled = append(compiled, sf)
			names = append(names, sf.name)
			decs = append(decs, sf.dec)
			enc = enc.And(sf.enc)
		}
		res := &product[T]{
			fields: names,
			dec: codec.MapRecord(codec.Sequence(decs...), func(sets []func(*T)) T {
				var t T
				for _, set := range sets {
					set(&t)
				}
				return t
			}),
			enc: enc,
		}
		if len(compiled) == 1 {
			res.bare, res.named = &compiled[0].bare, compiled[0].named
		}
		return res, nil
	}}
}
