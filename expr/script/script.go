// Package script defines custom builtins for normalization as small
// programs in the expr language.
//
// A builtin named "double" with arity 1 and source "args[0] * 2" reduces
// the application `double 21` to the natural literal 42 once its argument
// is a literal. Builtins plug into normalization through
// expr.WithReducer(b.Reduce).
package script

import (
	"fmt"
	"math"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/go-dhall/debug"
	dexpr "github.com/signadot/go-dhall/expr"
)

// Result is the literal kind a builtin produces.
type Result int

const (
	Bool Result = iota
	Natural
	Integer
	Double
	Text
)

func (r Result) String() string {
	switch r {
	case Bool:
		return dexpr.BoolBuiltin
	case Natural:
		return dexpr.NaturalBuiltin
	case Integer:
		return dexpr.IntegerBuiltin
	case Double:
		return dexpr.DoubleBuiltin
	case Text:
		return dexpr.TextBuiltin
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Def is one builtin. Source sees its literal arguments as args[0],
// args[1], ... with naturals and integers as int, doubles as float64,
// text as string and booleans as bool.
type Def struct {
	Arity  int
	Result Result
	Source string
}

type builtin struct {
	name string
	def  Def
	prg  *vm.Program
}

// Builtins is a set of compiled builtins. It is safe for concurrent use.
type Builtins struct {
	m map[string]*builtin
}

// Compile compiles every definition, reporting the first failure in
// name order.
func Compile(defs map[string]Def) (*Builtins, error) {
	names := make([]string, 0, len(defs))
	for n := range defs {
		names = append(names, n)
	}
	sort.Strings(names)
	res := &Builtins{m: make(map[string]*builtin, len(defs))}
	for _, n := range names {
		def := defs[n]
		if def.Arity < 1 {
			return nil, fmt.Errorf("builtin %q: arity must be positive, got %d", n, def.Arity)
		}
		prg, err := expr.Compile(def.Source, exprOpts()...)
		if err != nil {
			return nil, fmt.Errorf("builtin %q: %w", n, err)
		}
		res.m[n] = &builtin{name: n, def: def, prg: prg}
	}
	return res, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{"args": []any{}}),
		expr.Function("show", func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("show expects 1 argument, got %d", len(params))
			}
			return fmt.Sprint(params[0]), nil
		}),
	}
}

// Names returns the builtin names in order.
func (b *Builtins) Names() []string {
	res := make([]string, 0, len(b.m))
	for n := range b.m {
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}

// Reduce is an expr.Reducer. It fires on an application whose head is a
// free variable naming a builtin and whose arguments are exactly Arity
// literals.
func (b *Builtins) Reduce(e *dexpr.Expr) (*dexpr.Expr, bool) {
	head, args := dexpr.Spine(e)
	if head.Kind != dexpr.VarKind || head.Index != 0 {
		return nil, false
	}
	bi := b.m[head.Name]
	if bi == nil || len(args) != bi.def.Arity {
		return nil, false
	}
	vals := make([]any, len(args))
	for i, a := range args {
		v, ok := toValue(a)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	out, err := vm.Run(bi.prg, map[string]any{"args": vals})
	if err != nil {
		if debug.Script() {
			debug.Logf("script %s: %v", bi.name, err)
		}
		return nil, false
	}
	res, err := fromValue(bi.def.Result, out)
	if err != nil {
		if debug.Script() {
			debug.Logf("script %s: %v", bi.name, err)
		}
		return nil, false
	}
	if debug.Script() {
		debug.Logf("script %s => %s", e, res)
	}
	return res, true
}

func toValue(e *dexpr.Expr) (any, bool) {
	switch e.Kind {
	case dexpr.BoolKind:
		return e.Bool, true
	case dexpr.NaturalKind:
		if e.Natural > math.MaxInt {
			return nil, false
		}
		return int(e.Natural), true
	case dexpr.IntegerKind:
		return int(e.Integer), true
	case dexpr.DoubleKind:
		return e.Double, true
	case dexpr.TextKind:
		if len(e.Chunks) != 0 {
			return nil, false
		}
		return e.Text, true
	}
	return nil, false
}

func fromValue(r Result, v any) (*dexpr.Expr, error) {
	switch r {
	case Bool:
		if b, ok := v.(bool); ok {
			return dexpr.FromBool(b), nil
		}
	case Natural:
		if i, ok := asInt(v); ok && i >= 0 {
			return dexpr.FromNatural(uint64(i)), nil
		}
	case Integer:
		if i, ok := asInt(v); ok {
			return dexpr.FromInteger(i), nil
		}
	case Double:
		switch x := v.(type) {
		case float64:
			return dexpr.FromDouble(x), nil
		case float32:
			return dexpr.FromDouble(float64(x)), nil
		}
		if i, ok := asInt(v); ok {
			return dexpr.FromDouble(float64(i)), nil
		}
	case Text:
		if s, ok := v.(string); ok {
			return dexpr.FromText(s), nil
		}
	}
	return nil, fmt.Errorf("result %v (%T) is not a %s", v, v, r)
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x), true
		}
	}
	return 0, false
}
