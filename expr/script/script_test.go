package script

import (
	"testing"

	"github.com/signadot/go-dhall/expr"
)

func TestCompileError(t *testing.T) {
	_, err := Compile(map[string]Def{"bad": {Arity: 1, Result: Natural, Source: "args[0] +"}})
	if err == nil {
		t.Fatal("expected compile error")
	}
	_, err = Compile(map[string]Def{"zero": {Arity: 0, Result: Natural, Source: "1"}})
	if err == nil {
		t.Fatal("expected arity error")
	}
}

func TestReduce(t *testing.T) {
	b, err := Compile(map[string]Def{
		"double": {Arity: 1, Result: Natural, Source: "args[0] * 2"},
		"greet":  {Arity: 1, Result: Text, Source: `"hello " + args[0]`},
		"max":    {Arity: 2, Result: Integer, Source: "args[0] > args[1] ? args[0] : args[1]"},
		"half":   {Arity: 1, Result: Double, Source: "args[0] / 2"},
		"isBig":  {Arity: 1, Result: Bool, Source: "args[0] > 100"},
		"neg":    {Arity: 1, Result: Natural, Source: "-args[0]"},
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		in   *expr.Expr
		want *expr.Expr
	}{
		{"natural", expr.App(expr.Var("double", 0), expr.FromNatural(21)), expr.FromNatural(42)},
		{"text", expr.App(expr.Var("greet", 0), expr.FromText("you")), expr.FromText("hello you")},
		{"two args", expr.App(expr.Var("max", 0), expr.FromInteger(-3), expr.FromInteger(2)), expr.FromInteger(2)},
		{"double", expr.App(expr.Var("half", 0), expr.FromDouble(3)), expr.FromDouble(1.5)},
		{"bool", expr.App(expr.Var("isBig", 0), expr.FromNatural(7)), expr.FromBool(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.Reduce(tt.in)
			if !ok {
				t.Fatalf("%s did not reduce", tt.in)
			}
			if !expr.Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	declined := []struct {
		name string
		in   *expr.Expr
	}{
		{"unknown", expr.App(expr.Var("triple", 0), expr.FromNatural(1))},
		{"shadowed", expr.App(expr.Var("double", 1), expr.FromNatural(1))},
		{"not literal", expr.App(expr.Var("double", 0), expr.Var("n", 0))},
		{"partial", expr.App(expr.Var("max", 0), expr.FromInteger(1))},
		{"bad result", expr.App(expr.Var("neg", 0), expr.FromNatural(1))},
	}
	for _, tt := range declined {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := b.Reduce(tt.in); ok {
				t.Errorf("unexpected reduction to %s", got)
			}
		})
	}
}

func TestReducerInNormalize(t *testing.T) {
	b, err := Compile(map[string]Def{"double": {Arity: 1, Result: Natural, Source: "args[0] * 2"}})
	if err != nil {
		t.Fatal(err)
	}
	in := expr.App(expr.Var("double", 0), expr.Operator(expr.NaturalPlus, expr.FromNatural(1), expr.FromNatural(1)))
	got := expr.Normalize(in, expr.WithReducer(b.Reduce))
	if !expr.Equal(got, expr.FromNatural(4)) {
		t.Errorf("got %s, want 4", got)
	}
	if names := b.Names(); len(names) != 1 || names[0] != "double" {
		t.Errorf("names = %v", names)
	}
}
