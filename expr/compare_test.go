package expr

import (
	"slices"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Expr
		expected int
	}{
		{"Bool < Natural", FromBool(true), FromNatural(0), -1},
		{"Natural < Integer", FromNatural(9), FromInteger(0), -1},
		{"Integer < Double", FromInteger(9), FromDouble(0), -1},
		{"Double < Text", FromDouble(9), FromText(""), -1},
		{"Text < List", FromText("z"), FromList(nil, FromNatural(0)), -1},

		{"false < true", FromBool(false), FromBool(true), -1},
		{"1 < 2", FromNatural(1), FromNatural(2), -1},
		{"-1 < +1", FromInteger(-1), FromInteger(1), -1},
		{"a < b", FromText("a"), FromText("b"), -1},
		{"text equal", FromText("a"), FromText("a"), 0},

		{"short list < long list", FromList(nil, FromNatural(1)), FromList(nil, FromNatural(1), FromNatural(0)), -1},
		{"list element", FromList(nil, FromNatural(2)), FromList(nil, FromNatural(1)), 1},

		{"record label", FromRecord(map[string]*Expr{"a": FromNatural(1)}), FromRecord(map[string]*Expr{"b": FromNatural(1)}), -1},
		{"record value", FromRecord(map[string]*Expr{"a": FromNatural(1)}), FromRecord(map[string]*Expr{"a": FromNatural(2)}), -1},
		{"record equal", FromRecord(map[string]*Expr{"a": FromNatural(1)}), FromRecord(map[string]*Expr{"a": FromNatural(1)}), 0},

		{"var index", Var("x", 0), Var("x", 1), -1},
		{"binder names differ", Lambda("x", BoolType(), Var("x", 0)), Lambda("y", BoolType(), Var("y", 0)), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b, tt.a, got, -tt.expected)
			}
		})
	}
}

func TestCompareSorts(t *testing.T) {
	xs := []*Expr{FromNatural(3), FromNatural(1), FromNatural(2)}
	slices.SortFunc(xs, Compare)
	for i, x := range xs {
		if x.Natural != uint64(i+1) {
			t.Fatalf("unsorted at %d: %s", i, x)
		}
	}
}
