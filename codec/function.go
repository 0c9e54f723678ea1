package codec

import (
	"github.com/signadot/go-dhall/expr"
)

// FunctionDecoder decodes a function expression into a Go function. The
// Go function embeds its argument with arg, applies the expression,
// normalizes the application using the reducer from opts and decodes the
// result with res.
//
// If res rejects the normalized result the Go function panics with a
// *ContractViolation: a well-typed application cannot produce a value of
// the wrong shape unless arg or res disagree with the declared type.
func FunctionDecoder[A, B any](arg Encoder[A], res Decoder[B], opts ...InputOption) Decoder[func(A) B] {
	s := newInputSettings(opts)
	exp := func() (*expr.Expr, error) {
		t, err := res.Expected()
		if err != nil {
			return nil, err
		}
		return expr.Arrow(arg.Declared(), t), nil
	}
	return NewDecoderFunc(exp, func(e *expr.Expr) (func(A) B, error) {
		switch e.Kind {
		case expr.LambdaKind, expr.BuiltinKind, expr.AppKind, expr.VarKind:
		default:
			return nil, typeMismatch(exp, e)
		}
		return func(a A) B {
			x := arg.Embed(a)
			r := expr.Normalize(expr.App(e, x), s.normalizeOptions()...)
			v, err := res.Extract(r)
			if err != nil {
				panic(&ContractViolation{Function: e, Argument: x, Result: r, Err: err})
			}
			return v
		}, nil
	})
}
