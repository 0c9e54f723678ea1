package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/signadot/go-dhall/expr"
)

type calc struct {
	Op   string
	Lit  uint64
	L, R *calc
}

func calcLayer(self Codec[*calc]) Codec[*calc] {
	node := func(op string) (UnionDecoder[*calc], UnionEncoder[*calc]) {
		d := Constructor(op, PairDecoder(self.Decoder, self.Decoder), func(p Pair[*calc, *calc]) *calc {
			return &calc{Op: op, L: p.First, R: p.Second}
		})
		e := ConstructorEncoder(op, PairEncoder(self.Encoder, self.Encoder), func(c *calc) (Pair[*calc, *calc], bool) {
			return Pair[*calc, *calc]{First: c.L, Second: c.R}, c.Op == op
		})
		return d, e
	}
	addD, addE := node("Add")
	mulD, mulE := node("Mul")
	litD := Constructor("Lit", NaturalDecoder(), func(n uint64) *calc { return &calc{Op: "Lit", Lit: n} })
	litE := ConstructorEncoder("Lit", NaturalEncoder(), func(c *calc) (uint64, bool) { return c.Lit, c.Op == "Lit" })
	return NewCodec(addD.Or(mulD).Or(litD).Decoder(), addE.Or(mulE).Or(litE).Encoder())
}

// layerType is the one-layer union with recursive positions of type r@0.
func layerType(r string) *expr.Expr {
	pair := expr.RecordType(map[string]*expr.Expr{"_1": expr.Var(r, 0), "_2": expr.Var(r, 0)})
	return expr.UnionType(map[string]*expr.Expr{"Add": pair, "Mul": pair, "Lit": expr.NaturalType()})
}

func TestRecursiveDecodeRenamesBinders(t *testing.T) {
	u := layerType("r")
	mk := func(tag string, payload *expr.Expr) *expr.Expr {
		return expr.App(expr.Var("m", 0), expr.App(expr.Select(u, tag), payload))
	}
	pair := func(a, b *expr.Expr) *expr.Expr {
		return expr.FromRecord(map[string]*expr.Expr{"_1": a, "_2": b})
	}
	term := expr.Lambda("r", expr.Type(),
		expr.Lambda("m", expr.Arrow(u, expr.Var("r", 0)),
			mk("Add", pair(
				mk("Lit", expr.FromNatural(1)),
				mk("Mul", pair(mk("Lit", expr.FromNatural(2)), mk("Lit", expr.FromNatural(3)))),
			))))

	c := Recursive(calcLayer)
	got, err := Input(c.Decoder, term)
	require.NoError(t, err)
	want := &calc{Op: "Add",
		L: &calc{Op: "Lit", Lit: 1},
		R: &calc{Op: "Mul", L: &calc{Op: "Lit", Lit: 2}, R: &calc{Op: "Lit", Lit: 3}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	again := Embed(c.Encoder, got)
	require.True(t, expr.JudgmentallyEqual(term, again), "re-encoded %s", again)

	exp, err := c.Expected()
	require.NoError(t, err)
	require.True(t, expr.JudgmentallyEqual(exp, c.Declared()))
	require.True(t, expr.JudgmentallyEqual(exp,
		expr.Pi("a", expr.Type(), expr.Pi("f", expr.Arrow(layerType("a"), expr.Var("a", 0)), expr.Var("a", 0)))))
}

func TestRecursiveSwappedBinderNames(t *testing.T) {
	// The outer binder is called make and the inner one result.
	u := layerType(MakeBinder)
	term := expr.Lambda(MakeBinder, expr.Type(),
		expr.Lambda(ResultBinder, expr.Arrow(u, expr.Var(MakeBinder, 0)),
			expr.App(expr.Var(ResultBinder, 0), expr.App(expr.Select(u, "Lit"), expr.FromNatural(9)))))
	got, err := Recursive(calcLayer).Extract(term)
	require.NoError(t, err)
	require.Equal(t, &calc{Op: "Lit", Lit: 9}, got)
}

func TestRecursiveRejectsNonFixpoint(t *testing.T) {
	c := Recursive(calcLayer)
	_, err := c.Extract(expr.FromNatural(1))
	var tm *TypeMismatch
	require.ErrorAs(t, err, &tm)

	body := expr.Lambda("r", expr.Type(), expr.Lambda("m", expr.Arrow(layerType("r"), expr.Var("r", 0)), expr.FromNatural(1)))
	_, err = c.Extract(body)
	require.ErrorAs(t, err, &tm)
}
