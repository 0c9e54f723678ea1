package expr

import (
	"strconv"
)

const (
	BoolBuiltin     = "Bool"
	NaturalBuiltin  = "Natural"
	IntegerBuiltin  = "Integer"
	DoubleBuiltin   = "Double"
	TextBuiltin     = "Text"
	ListBuiltin     = "List"
	OptionalBuiltin = "Optional"
	NoneBuiltin     = "None"

	NaturalEven      = "Natural/even"
	NaturalOdd       = "Natural/odd"
	NaturalIsZero    = "Natural/isZero"
	NaturalShow      = "Natural/show"
	NaturalToInteger = "Natural/toInteger"
	NaturalSubtract  = "Natural/subtract"
	IntegerShow      = "Integer/show"
	IntegerNegate    = "Integer/negate"
	IntegerClamp     = "Integer/clamp"
	IntegerToDouble  = "Integer/toDouble"
	DoubleShow       = "Double/show"
	ListLength       = "List/length"
)

func BoolType() *Expr    { return Builtin(BoolBuiltin) }
func NaturalType() *Expr { return Builtin(NaturalBuiltin) }
func IntegerType() *Expr { return Builtin(IntegerBuiltin) }
func DoubleType() *Expr  { return Builtin(DoubleBuiltin) }
func TextType() *Expr    { return Builtin(TextBuiltin) }

type builtinFunc struct {
	arity  int
	reduce func(args []*Expr) (*Expr, bool)
}

var builtinFuncs = map[string]builtinFunc{
	NaturalEven: {1, naturalArg(func(n uint64) *Expr { return FromBool(n%2 == 0) })},
	NaturalOdd:  {1, naturalArg(func(n uint64) *Expr { return FromBool(n%2 == 1) })},
	NaturalIsZero: {1, naturalArg(func(n uint64) *Expr {
		return FromBool(n == 0)
	})},
	NaturalShow: {1, naturalArg(func(n uint64) *Expr {
		return FromText(strconv.FormatUint(n, 10))
	})},
	NaturalToInteger: {1, naturalArg(func(n uint64) *Expr {
		return FromInteger(int64(n))
	})},
	NaturalSubtract: {2, naturalSubtract},
	IntegerShow: {1, integerArg(func(i int64) *Expr {
		return FromText(formatInteger(i))
	})},
	IntegerNegate: {1, integerArg(func(i int64) *Expr { return FromInteger(-i) })},
	IntegerClamp: {1, integerArg(func(i int64) *Expr {
		if i < 0 {
			return FromNatural(0)
		}
		return FromNatural(uint64(i))
	})},
	IntegerToDouble: {1, integerArg(func(i int64) *Expr { return FromDouble(float64(i)) })},
	DoubleShow: {1, func(args []*Expr) (*Expr, bool) {
		if args[0].Kind != DoubleKind {
			return nil, false
		}
		return FromText(formatDouble(args[0].Double)), true
	}},
	ListLength: {2, func(args []*Expr) (*Expr, bool) {
		if args[1].Kind != ListKind {
			return nil, false
		}
		return FromNatural(uint64(len(args[1].Values))), true
	}},
}

func naturalArg(f func(uint64) *Expr) func([]*Expr) (*Expr, bool) {
	return func(args []*Expr) (*Expr, bool) {
		if args[0].Kind != NaturalKind {
			return nil, false
		}
		return f(args[0].Natural), true
	}
}

func integerArg(f func(int64) *Expr) func([]*Expr) (*Expr, bool) {
	return func(args []*Expr) (*Expr, bool) {
		if args[0].Kind != IntegerKind {
			return nil, false
		}
		return f(args[0].Integer), true
	}
}

func naturalSubtract(args []*Expr) (*Expr, bool) {
	a, b := args[0], args[1]
	switch {
	case a.Kind == NaturalKind && b.Kind == NaturalKind:
		if b.Natural < a.Natural {
			return FromNatural(0), true
		}
		return FromNatural(b.Natural - a.Natural), true
	case a.Kind == NaturalKind && a.Natural == 0:
		return b, true
	case b.Kind == NaturalKind && b.Natural == 0:
		return FromNatural(0), true
	}
	return nil, false
}

// reduceBuiltin reduces a saturated application of a known builtin whose
// arguments are already normal.
func reduceBuiltin(e *Expr) (*Expr, bool) {
	head, args := Spine(e)
	if head.Kind != BuiltinKind {
		return nil, false
	}
	bf, ok := builtinFuncs[head.Name]
	if !ok || len(args) < bf.arity {
		return nil, false
	}
	res, ok := bf.reduce(args[:bf.arity])
	if !ok {
		return nil, false
	}
	return App(res, args[bf.arity:]...), true
}

func formatInteger(i int64) string {
	if i >= 0 {
		return "+" + strconv.FormatInt(i, 10)
	}
	return strconv.FormatInt(i, 10)
}
