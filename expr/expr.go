package expr

import (
	"maps"
	"slices"
)

// Expr is a node of an expression tree. Values are placed in fields
// depending on Kind; see the package documentation for the layout.
//
// Expressions are never mutated once built: every operation in this
// package returns new nodes and may share unchanged subtrees.
type Expr struct {
	Kind Kind

	Name  string
	Index int
	Op    Op

	Fields []string
	Values []*Expr
	Annot  *Expr
	Body   *Expr

	Bool    bool
	Natural uint64
	Integer int64
	Double  float64
	Text    string
	Chunks  []Chunk
}

// Chunk is the literal prefix of an interpolated expression within a
// text literal.
type Chunk struct {
	Prefix string
	Expr   *Expr
}

// Names of the universe constants.
const (
	TypeConst = "Type"
	KindConst = "Kind"
	SortConst = "Sort"
)

func Const(name string) *Expr {
	return &Expr{Kind: ConstKind, Name: name}
}

func Type() *Expr {
	return Const(TypeConst)
}

func Var(name string, index int) *Expr {
	return &Expr{Kind: VarKind, Name: name, Index: index}
}

func Lambda(name string, annot, body *Expr) *Expr {
	return &Expr{Kind: LambdaKind, Name: name, Annot: annot, Body: body}
}

func Pi(name string, annot, body *Expr) *Expr {
	return &Expr{Kind: PiKind, Name: name, Annot: annot, Body: body}
}

// Arrow is the non-dependent function type A → B.
func Arrow(from, to *Expr) *Expr {
	return Pi("_", from, Shift(1, "_", 0, to))
}

// App applies f to each of args in turn.
func App(f *Expr, args ...*Expr) *Expr {
	res := f
	for _, a := range args {
		res = &Expr{Kind: AppKind, Values: []*Expr{res, a}}
	}
	return res
}

func Let(name string, annot, value, body *Expr) *Expr {
	return &Expr{Kind: LetKind, Name: name, Annot: annot, Values: []*Expr{value}, Body: body}
}

func Annotate(e, t *Expr) *Expr {
	return &Expr{Kind: AnnotKind, Values: []*Expr{e}, Annot: t}
}

func Builtin(name string) *Expr {
	return &Expr{Kind: BuiltinKind, Name: name}
}

func FromBool(v bool) *Expr {
	return &Expr{Kind: BoolKind, Bool: v}
}

func FromNatural(v uint64) *Expr {
	return &Expr{Kind: NaturalKind, Natural: v}
}

func FromInteger(v int64) *Expr {
	return &Expr{Kind: IntegerKind, Integer: v}
}

func FromDouble(v float64) *Expr {
	return &Expr{Kind: DoubleKind, Double: v}
}

func FromText(v string) *Expr {
	return &Expr{Kind: TextKind, Text: v}
}

func FromChunks(chunks []Chunk, suffix string) *Expr {
	return &Expr{Kind: TextKind, Chunks: chunks, Text: suffix}
}

// FromList builds a list literal. The element type is required when
// items is empty and ignored otherwise.
func FromList(elem *Expr, items ...*Expr) *Expr {
	res := &Expr{Kind: ListKind, Values: items}
	if len(items) == 0 {
		res.Annot = elem
	}
	return res
}

func FromSome(v *Expr) *Expr {
	return &Expr{Kind: SomeKind, Body: v}
}

func ListOf(elem *Expr) *Expr {
	return App(Builtin(ListBuiltin), elem)
}

func OptionalOf(elem *Expr) *Expr {
	return App(Builtin(OptionalBuiltin), elem)
}

func NoneOf(elem *Expr) *Expr {
	return App(Builtin(NoneBuiltin), elem)
}

// FromRecord builds a record literal with labels in sorted order.
func FromRecord(m map[string]*Expr) *Expr {
	return fromMap(RecordKind, m)
}

// RecordType builds a record type with labels in sorted order.
func RecordType(m map[string]*Expr) *Expr {
	return fromMap(RecordTypeKind, m)
}

// UnionType builds a union type with labels in sorted order. A nil value
// is an alternative without payload.
func UnionType(m map[string]*Expr) *Expr {
	return fromMap(UnionTypeKind, m)
}

func fromMap(k Kind, m map[string]*Expr) *Expr {
	res := &Expr{Kind: k}
	res.Fields = slices.Sorted(maps.Keys(m))
	res.Values = make([]*Expr, len(res.Fields))
	for i, f := range res.Fields {
		res.Values[i] = m[f]
	}
	return res
}

// ToMap returns the label -> value mapping of a record or union node.
func ToMap(e *Expr) map[string]*Expr {
	switch e.Kind {
	case RecordKind, RecordTypeKind, UnionTypeKind:
	default:
		return nil
	}
	res := make(map[string]*Expr, len(e.Fields))
	for i, f := range e.Fields {
		res[f] = e.Values[i]
	}
	return res
}

func Select(e *Expr, label string) *Expr {
	return &Expr{Kind: FieldKind, Body: e, Name: label}
}

// ToMapOf is the toMap keyword applied to a record. annot is the optional
// List { mapKey : Text, mapValue : T } annotation.
func ToMapOf(e, annot *Expr) *Expr {
	return &Expr{Kind: ToMapKind, Body: e, Annot: annot}
}

func Operator(op Op, l, r *Expr) *Expr {
	return &Expr{Kind: OpKind, Op: op, Values: []*Expr{l, r}}
}

func IfThenElse(c, t, f *Expr) *Expr {
	return &Expr{Kind: IfKind, Values: []*Expr{c, t, f}}
}

// Get returns the value of label in a record or union node, or nil.
func Get(e *Expr, label string) *Expr {
	i, ok := slices.BinarySearch(e.Fields, label)
	if !ok {
		return nil
	}
	return e.Values[i]
}

// Has reports whether a record or union node carries label.
func Has(e *Expr, label string) bool {
	_, ok := slices.BinarySearch(e.Fields, label)
	return ok
}

// Without returns a copy of a record or union node lacking label.
func Without(e *Expr, label string) *Expr {
	res := &Expr{Kind: e.Kind}
	for i, f := range e.Fields {
		if f == label {
			continue
		}
		res.Fields = append(res.Fields, f)
		res.Values = append(res.Values, e.Values[i])
	}
	return res
}

// IsEmptyRecordType reports whether e is the record type {}.
func IsEmptyRecordType(e *Expr) bool {
	return e != nil && e.Kind == RecordTypeKind && len(e.Fields) == 0
}

// IsEmptyRecord reports whether e is the record literal {=}.
func IsEmptyRecord(e *Expr) bool {
	return e != nil && e.Kind == RecordKind && len(e.Fields) == 0
}

// Spine splits an application into its head and arguments.
func Spine(e *Expr) (*Expr, []*Expr) {
	var args []*Expr
	for e.Kind == AppKind {
		args = append(args, e.Values[1])
		e = e.Values[0]
	}
	slices.Reverse(args)
	return e, args
}

func (e *Expr) String() string {
	return Format(e)
}

// sorted returns a copy of a record or union node with labels sorted,
// later duplicates replacing earlier ones.
func sorted(e *Expr) *Expr {
	if slices.IsSorted(e.Fields) {
		return e
	}
	m := make(map[string]*Expr, len(e.Fields))
	for i, f := range e.Fields {
		m[f] = e.Values[i]
	}
	return fromMap(e.Kind, m)
}
