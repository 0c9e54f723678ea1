package expr

import (
	"encoding/hex"
	"math"
	"strings"
	"testing"
)

func TestEncodeBinary(t *testing.T) {
	tests := []struct {
		name string
		in   *Expr
		hex  string
	}{
		{"true", FromBool(true), "f5"},
		{"natural", FromNatural(1), "820f01"},
		{"integer", FromInteger(-1), "821020"},
		{"anonymous var", Var("_", 0), "00"},
		{"named var", Var("x", 0), "82617800"},
		{"half float", FromDouble(1), "f93c00"},
		{"nan", FromDouble(math.NaN()), "f97e00"},
		{"builtin", NaturalType(), "674e61747572616c"},
		{"record", FromRecord(map[string]*Expr{"a": FromNatural(1)}), "8208a16161820f01"},
		{"labels by name", RecordType(map[string]*Expr{"b": BoolType(), "aa": BoolType()}), "8207a262616164426f6f6c616264426f6f6c"},
		{"bare alternative", UnionType(map[string]*Expr{"A": nil}), "820ba16141f6"},
		{"text", FromText("hi"), "8212626869"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBinary(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if h := hex.EncodeToString(got); h != tt.hex {
				t.Errorf("got %s, want %s", h, tt.hex)
			}
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []*Expr{
		FromBool(false),
		FromNatural(math.MaxUint64),
		FromInteger(math.MinInt64),
		FromDouble(0.1),
		FromDouble(math.Inf(1)),
		FromText("a${b}"),
		FromChunks([]Chunk{{Prefix: "x", Expr: Var("y", 2)}}, "z"),
		Lambda("x", NaturalType(), Var("x", 0)),
		Lambda("_", NaturalType(), Var("_", 0)),
		Pi("result", Type(), Arrow(Arrow(Var("result", 0), Var("result", 0)), Var("result", 0))),
		App(Var("f", 0), FromNatural(1), FromNatural(2)),
		Let("x", NaturalType(), FromNatural(1), Var("x", 0)),
		Let("x", nil, FromNatural(1), Var("x", 0)),
		Annotate(FromNatural(1), NaturalType()),
		FromList(BoolType()),
		FromList(nil, FromBool(true), FromBool(false)),
		FromSome(FromText("s")),
		NoneOf(TextType()),
		UnionType(map[string]*Expr{"A": NaturalType(), "B": nil}),
		App(Select(UnionType(map[string]*Expr{"A": NaturalType()}), "A"), FromNatural(1)),
		ToMapOf(Var("r", 0), nil),
		ToMapOf(FromRecord(nil), ListOf(RecordType(map[string]*Expr{MapKey: TextType(), MapValue: BoolType()}))),
		Operator(ListAppend, Var("a", 0), Var("b", 0)),
		IfThenElse(Var("c", 0), FromNatural(1), FromNatural(2)),
		Const(KindConst),
	}
	for _, in := range tests {
		t.Run(Format(in), func(t *testing.T) {
			data, err := EncodeBinary(in)
			if err != nil {
				t.Fatal(err)
			}
			got, err := DecodeBinary(data)
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(got, in) {
				t.Errorf("got %s, want %s", got, in)
			}
		})
	}
}

func TestDecodeBinaryErrors(t *testing.T) {
	for _, h := range []string{"", "80", "8263", "821061", "83ff0000"} {
		data, _ := hex.DecodeString(h)
		if _, err := DecodeBinary(data); err == nil {
			t.Errorf("%q: expected error", h)
		}
	}
}

func TestSemanticHash(t *testing.T) {
	a, err := SemanticHash(Lambda("x", BoolType(), Var("x", 0)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SemanticHash(App(Lambda("t", Type(), Lambda("y", Var("t", 0), Var("y", 0))), BoolType()))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("hashes differ: %s %s", a, b)
	}
	if !strings.HasPrefix(a, "sha256:") || len(a) != len("sha256:")+64 {
		t.Errorf("malformed hash %q", a)
	}
	c, err := SemanticHash(Lambda("x", NaturalType(), Var("x", 0)))
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Errorf("distinct expressions share hash %s", a)
	}
}
