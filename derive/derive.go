package derive

import (
	"strconv"

	"github.com/signadot/go-dhall/codec"
	"github.com/signadot/go-dhall/debug"
)

// state is owned by a single Derive call.
type state struct {
	opts        *options
	constructor string
	counter     int
	seen        map[string]bool
}

// enter starts the fields of constructor name. Positional numbering
// restarts at _1.
func (st *state) enter(name string) {
	st.constructor = name
	st.counter = 0
	st.seen = map[string]bool{}
}

func (st *state) positional() string {
	st.counter++
	return "_" + strconv.Itoa(st.counter)
}

func (st *state) field(name string) (string, error) {
	if st.seen[name] {
		return "", &codec.DuplicateLabelError{Kind: "field", Label: name}
	}
	st.seen[name] = true
	return name, nil
}

// payload is the codec for the fields of one constructor under the
// singleton policy.
func payload[P any](st *state, p *product[P]) codec.Codec[P] {
	if len(p.fields) == 1 {
		switch st.opts.singletons {
		case Bare:
			return *p.bare
		case Smart:
			if !p.named {
				return *p.bare
			}
		}
	}
	return codec.NewCodec(p.dec.Decoder(), p.enc.Encoder())
}

func debugConstructor[P any](name string, p *product[P], c codec.Codec[P]) {
	if !debug.Derive() {
		return
	}
	debug.LogAny("derive constructor "+name+" payload "+c.Declared().String(), p.fields)
}

// Derive builds the codec of the type described by s. A type with a
// single constructor is a record (or, under the singleton policy, its
// only field); otherwise it is a union of its constructors.
//
// Derive returns a *codec.DuplicateLabelError when two fields of a
// constructor, or two constructors, share a name after modifiers are
// applied, and a *codec.ExpectedTypeError for shapes that refer to
// themselves.
func Derive[T any](s Sum[T], opts ...Option) (codec.Codec[T], error) {
	st := &state{opts: newOptions(opts)}
	var zero codec.Codec[T]
	if len(s.alts) == 0 {
		dec := codec.EmptyUnion[T]()
		enc := codec.EmptyUnionEncoder[T]()
		return codec.NewCodec(dec.Decoder(), enc.Encoder()), nil
	}
	cs := make([]*constructor[T], 0, len(s.alts))
	names := map[string]bool{}
	for _, a := range s.alts {
		c, err := a.compile(st)
		if err != nil {
			return zero, err
		}
		if names[c.name] {
			return zero, &codec.DuplicateLabelError{Kind: "constructor", Label: c.name}
		}
		names[c.name] = true
		cs = append(cs, c)
	}
	if len(cs) == 1 {
		return cs[0].only, nil
	}
	dec, enc := cs[0].dec, cs[0].enc
	for _, c := range cs[1:] {
		dec = dec.Or(c.dec)
		enc = enc.Or(c.enc)
	}
	res := codec.NewCodec(dec.Decoder(), enc.Encoder())
	if debug.Derive() {
		debug.Logf("derive %s", res.Declared())
	}
	return res, nil
}

// MustDerive is like Derive but panics on error. It is meant for
// package-level codec variables.
func MustDerive[T any](s Sum[T], opts ...Option) codec.Codec[T] {
	c, err := Derive(s, opts...)
	if err != nil {
		panic(err)
	}
	return c
}
