package derive

import (
	"strconv"

	"github.com/signadot/go-dhall/codec"
	"github.com/signadot/go-dhall/expr"
)

// Product describes the fields of one constructor of P.
type Product[P any] struct {
	compile func(st *state) (*product[P], error)
}

// product is a compiled Product.
type product[P any] struct {
	fields []string
	dec    codec.RecordDecoder[P]
	enc    codec.RecordEncoder[P]

	// set when there is exactly one field
	bare  *codec.Codec[P]
	named bool
}

// Named is a single field called name.
func Named[F any](name string, c codec.Codec[F]) Product[F] {
	return Product[F]{compile: func(st *state) (*product[F], error) {
		n, err := st.field(st.opts.fieldModifier(name))
		if err != nil {
			return nil, err
		}
		return leaf(n, c, true), nil
	}}
}

// Positional is a single field without a name. It is labelled _1, _2, …
// in order of appearance within its constructor.
func Positional[F any](c codec.Codec[F]) Product[F] {
	return Product[F]{compile: func(st *state) (*product[F], error) {
		n, err := st.field(st.positional())
		if err != nil {
			return nil, err
		}
		return leaf(n, c, false), nil
	}}
}

func leaf[F any](name string, c codec.Codec[F], named bool) *product[F] {
	return &product[F]{
		fields: []string{name},
		dec:    codec.Field(name, c.Decoder),
		enc:    codec.FieldEncoder(name, c.Encoder, func(v F) F { return v }),
		bare:   &c,
		named:  named,
	}
}

// Unit has no fields and always decodes to v.
func Unit[P any](v P) Product[P] {
	return Product[P]{compile: func(*state) (*product[P], error) {
		return &product[P]{
			dec: codec.Pure(v),
			enc: codec.EmptyRecordEncoder[P](),
		}, nil
	}}
}

// Self is a field whose type is the type being derived. Such a type has
// no finite expected type; derive it with codec.Recursive instead.
func Self[P any](name string) Product[P] {
	return Product[P]{compile: func(st *state) (*product[P], error) {
		n := st.opts.fieldModifier(name)
		if name == "" {
			n = st.positional()
		}
		return nil, &codec.ExpectedTypeError{
			Kind:    codec.RecursiveType,
			Message: "field " + strconv.Quote(n) + " of constructor " + strconv.Quote(st.constructor) + " refers to the type being derived",
		}
	}}
}

// Join places the fields of a before those of b.
func Join[P, A, B any](a Product[A], b Product[B], build func(A, B) P, split func(P) (A, B)) Product[P] {
	return Product[P]{compile: func(st *state) (*product[P], error) {
		x, err := a.compile(st)
		if err != nil {
			return nil, err
		}
		y, err := b.compile(st)
		if err != nil {
			return nil, err
		}
		res := &product[P]{
			fields: append(append([]string{}, x.fields...), y.fields...),
			dec:    codec.Map2(x.dec, y.dec, build),
			enc:    codec.Divide(split, x.enc, y.enc),
		}
		switch {
		case len(x.fields) == 1 && len(y.fields) == 0:
			yv, _ := y.dec.Decoder().Extract(expr.FromRecord(nil))
			c := codec.Invmap(*x.bare,
				func(v A) P { return build(v, yv) },
				func(p P) A { v, _ := split(p); return v })
			res.bare, res.named = &c, x.named
		case len(x.fields) == 0 && len(y.fields) == 1:
			xv, _ := x.dec.Decoder().Extract(expr.FromRecord(nil))
			c := codec.Invmap(*y.bare,
				func(v B) P { return build(xv, v) },
				func(p P) B { _, v := split(p); return v })
			res.bare, res.named = &c, y.named
		}
		return res, nil
	}}
}

// Sum describes the constructors of T.
type Sum[T any] struct {
	alts []alternative[T]
}

type alternative[T any] struct {
	name    string
	compile func(st *state) (*constructor[T], error)
}

// constructor is a compiled alternative.
type constructor[T any] struct {
	name string
	dec  codec.UnionDecoder[T]
	enc  codec.UnionEncoder[T]
	// used when T has only this constructor
	only codec.Codec[T]
}

// Constructor is the alternative name of T carrying a P. match reports
// whether a T was built by this constructor, and with what.
func Constructor[T, P any](name string, p Product[P], inject func(P) T, match func(T) (P, bool)) Sum[T] {
	compile := func(st *state) (*constructor[T], error) {
		cname := st.opts.constructorModifier(name)
		st.enter(cname)
		cp, err := p.compile(st)
		if err != nil {
			return nil, err
		}
		pc := payload(st, cp)
		debugConstructor(cname, cp, pc)
		return &constructor[T]{
			name: cname,
			dec:  codec.Constructor(cname, pc.Decoder, inject),
			enc:  codec.ConstructorEncoder(cname, pc.Encoder, match),
			only: codec.Invmap(pc, inject, func(v T) P {
				x, ok := match(v)
				if !ok {
					panic("derive: constructor " + cname + " does not match its own type")
				}
				return x
			}),
		}, nil
	}
	return Sum[T]{alts: []alternative[T]{{name: name, compile: compile}}}
}

// Single is the only constructor of T.
func Single[T any](name string, p Product[T]) Sum[T] {
	return Constructor(name, p,
		func(v T) T { return v },
		func(v T) (T, bool) { return v, true })
}

// Alt places the alternatives of l before those of r.
func Alt[T any](l, r Sum[T]) Sum[T] {
	alts := make([]alternative[T], 0, len(l.alts)+len(r.alts))
	alts = append(alts, l.alts...)
	return Sum[T]{alts: append(alts, r.alts...)}
}

// Union combines alts as a balanced tree of Alt.
func Union[T any](alts ...Sum[T]) Sum[T] {
	switch len(alts) {
	case 0:
		return Sum[T]{}
	case 1:
		return alts[0]
	}
	mid := len(alts) / 2
	return Alt(Union(alts[:mid]...), Union(alts[mid:]...))
}

// Constructors lists the constructor names of s before modification.
func (s Sum[T]) Constructors() []string {
	res := make([]string, len(s.alts))
	for i, a := range s.alts {
		res[i] = a.name
	}
	return res
}
