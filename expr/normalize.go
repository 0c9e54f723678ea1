package expr

import (
	"github.com/signadot/go-dhall/debug"
)

// Reducer is a custom reduction hook. It is offered every application
// whose function and argument are already normal and returns the
// reduced expression and true, or false to decline.
type Reducer func(e *Expr) (*Expr, bool)

type NormalizeOption func(*normalizer)

// WithReducer installs r as the custom reduction hook. It is consulted
// before the builtin reduction rules.
func WithReducer(r Reducer) NormalizeOption {
	return func(n *normalizer) {
		n.reducer = r
	}
}

type normalizer struct {
	reducer Reducer
}

// Normalize returns the beta-normal form of e.
func Normalize(e *Expr, opts ...NormalizeOption) *Expr {
	n := &normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	res := n.norm(e)
	if debug.Normalize() {
		debug.Logf("normalize %s\n   => %s\n", e, res)
	}
	return res
}

func (n *normalizer) norm(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ConstKind, VarKind, BuiltinKind, BoolKind, NaturalKind, IntegerKind, DoubleKind:
		return e
	case LambdaKind, PiKind:
		return &Expr{Kind: e.Kind, Name: e.Name, Annot: n.norm(e.Annot), Body: n.norm(e.Body)}
	case AppKind:
		f := n.norm(e.Values[0])
		a := n.norm(e.Values[1])
		if f.Kind == LambdaKind {
			return n.norm(beta(f, a))
		}
		app := App(f, a)
		if n.reducer != nil {
			if r, ok := n.reducer(app); ok {
				return n.norm(r)
			}
		}
		if r, ok := reduceBuiltin(app); ok {
			return n.norm(r)
		}
		return app
	case LetKind:
		v := Shift(1, e.Name, 0, e.Values[0])
		b := Shift(-1, e.Name, 0, Subst(e.Name, 0, v, e.Body))
		return n.norm(b)
	case AnnotKind:
		return n.norm(e.Values[0])
	case TextKind:
		return n.text(e)
	case ListKind:
		res := &Expr{Kind: ListKind, Values: make([]*Expr, len(e.Values))}
		for i, v := range e.Values {
			res.Values[i] = n.norm(v)
		}
		if len(e.Values) == 0 {
			res.Annot = n.norm(e.Annot)
		}
		return res
	case SomeKind:
		return FromSome(n.norm(e.Body))
	case RecordTypeKind, RecordKind, UnionTypeKind:
		res := &Expr{Kind: e.Kind, Fields: e.Fields, Values: make([]*Expr, len(e.Values))}
		for i, v := range e.Values {
			res.Values[i] = n.norm(v)
		}
		return sorted(res)
	case FieldKind:
		b := n.norm(e.Body)
		if b.Kind == RecordKind {
			if v := Get(b, e.Name); v != nil {
				return v
			}
		}
		return Select(b, e.Name)
	case ToMapKind:
		return n.toMap(e)
	case OpKind:
		return n.op(e.Op, n.norm(e.Values[0]), n.norm(e.Values[1]))
	case IfKind:
		c := n.norm(e.Values[0])
		t := n.norm(e.Values[1])
		f := n.norm(e.Values[2])
		switch {
		case c.Kind == BoolKind && c.Bool:
			return t
		case c.Kind == BoolKind:
			return f
		case t.Kind == BoolKind && t.Bool && f.Kind == BoolKind && !f.Bool:
			return c
		case Equal(t, f):
			return t
		}
		return IfThenElse(c, t, f)
	}
	return e
}

func beta(f, a *Expr) *Expr {
	return Shift(-1, f.Name, 0, Subst(f.Name, 0, Shift(1, f.Name, 0, a), f.Body))
}

func (n *normalizer) text(e *Expr) *Expr {
	var (
		chunks []Chunk
		cur    string
	)
	for _, c := range e.Chunks {
		cur += c.Prefix
		x := n.norm(c.Expr)
		if x.Kind != TextKind {
			chunks = append(chunks, Chunk{Prefix: cur, Expr: x})
			cur = ""
			continue
		}
		for _, ic := range x.Chunks {
			chunks = append(chunks, Chunk{Prefix: cur + ic.Prefix, Expr: ic.Expr})
			cur = ""
		}
		cur += x.Text
	}
	cur += e.Text
	if len(chunks) == 1 && chunks[0].Prefix == "" && cur == "" {
		return chunks[0].Expr
	}
	return FromChunks(chunks, cur)
}

func (n *normalizer) toMap(e *Expr) *Expr {
	b := n.norm(e.Body)
	annot := n.norm(e.Annot)
	if b.Kind != RecordKind {
		return ToMapOf(b, annot)
	}
	if len(b.Fields) == 0 {
		var elem *Expr
		if annot != nil && annot.Kind == AppKind {
			elem = annot.Values[1]
		}
		return FromList(elem)
	}
	items := make([]*Expr, len(b.Fields))
	for i, f := range b.Fields {
		items[i] = FromRecord(map[string]*Expr{
			MapKey:   FromText(f),
			MapValue: b.Values[i],
		})
	}
	return FromList(nil, items...)
}

// Labels of the entries produced by toMap.
const (
	MapKey   = "mapKey"
	MapValue = "mapValue"
)

func (n *normalizer) op(op Op, l, r *Expr) *Expr {
	lb, rb := l.Kind == BoolKind, r.Kind == BoolKind
	switch op {
	case BoolOr:
		switch {
		case lb:
			if l.Bool {
				return l
			}
			return r
		case rb:
			if r.Bool {
				return r
			}
			return l
		case Equal(l, r):
			return l
		}
	case BoolAnd:
		switch {
		case lb:
			if l.Bool {
				return r
			}
			return l
		case rb:
			if r.Bool {
				return l
			}
			return r
		case Equal(l, r):
			return l
		}
	case BoolEQ:
		switch {
		case lb && rb:
			return FromBool(l.Bool == r.Bool)
		case lb && l.Bool:
			return r
		case rb && r.Bool:
			return l
		case Equal(l, r):
			return FromBool(true)
		}
	case BoolNE:
		switch {
		case lb && rb:
			return FromBool(l.Bool != r.Bool)
		case lb && !l.Bool:
			return r
		case rb && !r.Bool:
			return l
		case Equal(l, r):
			return FromBool(false)
		}
	case NaturalPlus:
		switch {
		case l.Kind == NaturalKind && r.Kind == NaturalKind:
			return FromNatural(l.Natural + r.Natural)
		case l.Kind == NaturalKind && l.Natural == 0:
			return r
		case r.Kind == NaturalKind && r.Natural == 0:
			return l
		}
	case NaturalTimes:
		switch {
		case l.Kind == NaturalKind && r.Kind == NaturalKind:
			return FromNatural(l.Natural * r.Natural)
		case l.Kind == NaturalKind && l.Natural == 0, r.Kind == NaturalKind && r.Natural == 1:
			return l
		case r.Kind == NaturalKind && r.Natural == 0, l.Kind == NaturalKind && l.Natural == 1:
			return r
		}
	case TextAppend:
		return n.text(FromChunks([]Chunk{{Expr: l}, {Expr: r}}, ""))
	case ListAppend:
		switch {
		case l.Kind == ListKind && len(l.Values) == 0:
			return r
		case r.Kind == ListKind && len(r.Values) == 0:
			return l
		case l.Kind == ListKind && r.Kind == ListKind:
			items := append(append([]*Expr{}, l.Values...), r.Values...)
			return FromList(nil, items...)
		}
	}
	return Operator(op, l, r)
}
