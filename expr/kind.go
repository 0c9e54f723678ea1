package expr

import "fmt"

type Kind int

const (
	ConstKind Kind = iota
	VarKind
	LambdaKind
	PiKind
	AppKind
	LetKind
	AnnotKind
	BuiltinKind
	BoolKind
	NaturalKind
	IntegerKind
	DoubleKind
	TextKind
	ListKind
	SomeKind
	RecordTypeKind
	RecordKind
	UnionTypeKind
	FieldKind
	ToMapKind
	OpKind
	IfKind
)

var kindNames = map[Kind]string{
	ConstKind:      "Const",
	VarKind:        "Var",
	LambdaKind:     "Lambda",
	PiKind:         "Pi",
	AppKind:        "App",
	LetKind:        "Let",
	AnnotKind:      "Annot",
	BuiltinKind:    "Builtin",
	BoolKind:       "Bool",
	NaturalKind:    "Natural",
	IntegerKind:    "Integer",
	DoubleKind:     "Double",
	TextKind:       "Text",
	ListKind:       "List",
	SomeKind:       "Some",
	RecordTypeKind: "RecordType",
	RecordKind:     "Record",
	UnionTypeKind:  "UnionType",
	FieldKind:      "Field",
	ToMapKind:      "ToMap",
	OpKind:         "Op",
	IfKind:         "If",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, s := range kindNames {
		if s == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := ConstKind; k <= IfKind; k++ {
		res = append(res, k)
	}
	return res
}

// IsLiteral reports whether nodes of this kind are closed scalar values.
func (k Kind) IsLiteral() bool {
	switch k {
	case BoolKind, NaturalKind, IntegerKind, DoubleKind, TextKind:
		return true
	default:
		return false
	}
}

// Op is a binary operator.
type Op int

const (
	BoolOr Op = iota
	BoolAnd
	BoolEQ
	BoolNE
	NaturalPlus
	NaturalTimes
	TextAppend
	ListAppend
)

var opSyntax = map[Op]string{
	BoolOr:       "||",
	BoolAnd:      "&&",
	BoolEQ:       "==",
	BoolNE:       "!=",
	NaturalPlus:  "+",
	NaturalTimes: "*",
	TextAppend:   "++",
	ListAppend:   "#",
}

func (o Op) String() string {
	s, ok := opSyntax[o]
	if ok {
		return s
	}
	return "<unknown op>"
}
