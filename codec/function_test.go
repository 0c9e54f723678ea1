package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/go-dhall/expr"
	"github.com/signadot/go-dhall/expr/script"
)

func TestFunctionDecoder(t *testing.T) {
	d := FunctionDecoder(NaturalEncoder(), BoolDecoder())
	exp, err := d.Expected()
	require.NoError(t, err)
	require.True(t, expr.Equal(expr.Arrow(expr.NaturalType(), expr.BoolType()), exp))

	even, err := d.Extract(expr.Builtin(expr.NaturalEven))
	require.NoError(t, err)
	require.True(t, even(4))
	require.False(t, even(3))

	isZero, err := d.Extract(expr.Lambda("n", expr.NaturalType(),
		expr.App(expr.Builtin(expr.NaturalIsZero), expr.Var("n", 0))))
	require.NoError(t, err)
	require.True(t, isZero(0))

	_, err = d.Extract(expr.FromBool(true))
	var tm *TypeMismatch
	require.ErrorAs(t, err, &tm)
}

func TestFunctionDecoderReducer(t *testing.T) {
	b, err := script.Compile(map[string]script.Def{
		"big": {Arity: 1, Result: script.Bool, Source: "args[0] > 10"},
	})
	require.NoError(t, err)
	d := FunctionDecoder(NaturalEncoder(), BoolDecoder(), WithReducer(b.Reduce))
	f, err := d.Extract(expr.Lambda("n", expr.NaturalType(), expr.App(expr.Var("big", 0), expr.Var("n", 0))))
	require.NoError(t, err)
	require.True(t, f(11))
	require.False(t, f(2))
}

func TestFunctionContractViolation(t *testing.T) {
	d := FunctionDecoder(NaturalEncoder(), BoolDecoder())
	// Claims Natural -> Bool but returns its argument.
	f, err := d.Extract(expr.Lambda("n", expr.NaturalType(), expr.Var("n", 0)))
	require.NoError(t, err)
	defer func() {
		r := recover()
		cv, ok := r.(*ContractViolation)
		require.True(t, ok, "recovered %v", r)
		require.True(t, expr.Equal(expr.FromNatural(5), cv.Result))
		var tm *TypeMismatch
		require.ErrorAs(t, cv, &tm)
	}()
	f(5)
	t.Fatal("expected panic")
}
