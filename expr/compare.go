package expr

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two expressions structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Binder names take part in the comparison; use AlphaNormalize first to
// compare up to renaming.
func Compare(a, b *Expr) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Kind != b.Kind {
		return cmp.Compare(rank(a.Kind), rank(b.Kind))
	}

	switch a.Kind {
	case BoolKind:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NaturalKind:
		return cmp.Compare(a.Natural, b.Natural)
	case IntegerKind:
		return cmp.Compare(a.Integer, b.Integer)
	case DoubleKind:
		return cmp.Compare(a.Double, b.Double)
	case TextKind:
		return compareText(a, b)
	case ConstKind, BuiltinKind:
		return strings.Compare(a.Name, b.Name)
	case VarKind:
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	case LambdaKind, PiKind, LetKind, FieldKind:
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
	case OpKind:
		if c := cmp.Compare(a.Op, b.Op); c != 0 {
			return c
		}
	case RecordKind, RecordTypeKind, UnionTypeKind:
		return compareFields(a, b)
	}
	if c := compareSlices(a.Values, b.Values); c != 0 {
		return c
	}
	if c := Compare(a.Annot, b.Annot); c != 0 {
		return c
	}
	return Compare(a.Body, b.Body)
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b *Expr) bool {
	return Compare(a, b) == 0
}

// rank orders kinds: literals first, then types, then compound terms.
func rank(k Kind) int {
	switch k {
	case BoolKind:
		return 0
	case NaturalKind:
		return 1
	case IntegerKind:
		return 2
	case DoubleKind:
		return 3
	case TextKind:
		return 4
	case ListKind:
		return 5
	case SomeKind:
		return 6
	case RecordKind:
		return 7
	}
	return 10 + int(k)
}

func compareText(a, b *Expr) int {
	n := min(len(a.Chunks), len(b.Chunks))
	for i := 0; i < n; i++ {
		if c := strings.Compare(a.Chunks[i].Prefix, b.Chunks[i].Prefix); c != 0 {
			return c
		}
		if c := Compare(a.Chunks[i].Expr, b.Chunks[i].Expr); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(len(a.Chunks), len(b.Chunks)); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}

func compareSlices(a, b []*Expr) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareFields(a, b *Expr) int {
	n := min(len(a.Fields), len(b.Fields))
	for i := 0; i < n; i++ {
		if c := strings.Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.Fields), len(b.Fields))
}
