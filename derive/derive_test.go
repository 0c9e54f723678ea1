package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/signadot/go-dhall/codec"
	"github.com/signadot/go-dhall/debug"
	"github.com/signadot/go-dhall/expr"
)

type person struct {
	Name string
	Age  uint8
}

func personShape() Sum[person] {
	return Single("Person", Struct(
		Field("Name", codec.Text(), func(p person) string { return p.Name }, func(p *person, v string) { p.Name = v }),
		Field("Age", codec.Word[uint8](), func(p person) uint8 { return p.Age }, func(p *person, v uint8) { p.Age = v }),
	))
}

type geometry interface{ isGeometry() }

type point struct{ X, Y float64 }
type segment struct{ From, To point }
type nothing struct{}

func (point) isGeometry()   {}
func (segment) isGeometry() {}
func (nothing) isGeometry() {}

func pointProduct() Product[point] {
	return Struct(
		PositionalField(codec.Double(), func(p point) float64 { return p.X }, func(p *point, v float64) { p.X = v }),
		PositionalField(codec.Double(), func(p point) float64 { return p.Y }, func(p *point, v float64) { p.Y = v }),
	)
}

func pointCodec(t *testing.T) codec.Codec[point] {
	c, err := Derive(Single("Point", pointProduct()))
	require.NoError(t, err)
	return c
}

func geometryShape(t *testing.T) Sum[geometry] {
	pc := pointCodec(t)
	return Union(
		Constructor("Point", pointProduct(),
			func(p point) geometry { return p },
			func(g geometry) (point, bool) { p, ok := g.(point); return p, ok }),
		Constructor("Segment",
			Join(Positional(pc), Positional(pc),
				func(a, b point) segment { return segment{a, b} },
				func(s segment) (point, point) { return s.From, s.To }),
			func(s segment) geometry { return s },
			func(g geometry) (segment, bool) { s, ok := g.(segment); return s, ok }),
		Constructor("Nothing", Unit(nothing{}),
			func(n nothing) geometry { return n },
			func(g geometry) (nothing, bool) { n, ok := g.(nothing); return n, ok }),
	)
}

func roundTrip[T any](t *testing.T, c codec.Codec[T], v T) *expr.Expr {
	t.Helper()
	e := c.Embed(v)
	got, err := codec.Input(c.Decoder, e)
	require.NoError(t, err, "decoding %s", e)
	require.Equal(t, v, got)
	return e
}

func TestDeriveRecord(t *testing.T) {
	c, err := Derive(personShape())
	require.NoError(t, err)
	require.Equal(t, "{ Age : Natural, Name : Text }", c.Declared().String())
	exp, err := c.Expected()
	require.NoError(t, err)
	require.True(t, expr.Equal(c.Declared(), exp))

	e := roundTrip(t, c, person{Name: "ada", Age: 36})
	require.Equal(t, `{ Age = 36, Name = "ada" }`, e.String())
}

func TestDeriveFieldModifier(t *testing.T) {
	c, err := Derive(personShape(), FieldModifier(SnakeCase))
	require.NoError(t, err)
	require.Equal(t, "{ age : Natural, name : Text }", c.Declared().String())
	roundTrip(t, c, person{Name: "bob", Age: 7})
}

func TestDeriveRecordErrors(t *testing.T) {
	c, err := Derive(personShape())
	require.NoError(t, err)
	_, err = codec.Input(c.Decoder, expr.FromRecord(map[string]*expr.Expr{
		"Name": expr.FromNatural(1),
		"Age":  expr.FromNatural(300),
	}))
	require.Error(t, err)
	require.Len(t, codec.Errors(err), 2)
}

func TestDeriveUnion(t *testing.T) {
	c, err := Derive(geometryShape(t))
	require.NoError(t, err)
	require.Equal(t,
		"< Nothing | Point : { _1 : Double, _2 : Double } | Segment : { _1 : { _1 : Double, _2 : Double }, _2 : { _1 : Double, _2 : Double } } >",
		c.Declared().String())
	for _, g := range []geometry{
		point{1, 2},
		segment{point{0, 0}, point{3, 4.5}},
		nothing{},
	} {
		roundTrip(t, c, g)
	}
}

func TestDeriveUnionBareTag(t *testing.T) {
	c, err := Derive(geometryShape(t))
	require.NoError(t, err)
	e := c.Embed(nothing{})
	require.Equal(t, expr.FieldKind, e.Kind)
	require.Equal(t, "Nothing", e.Name)
}

func TestDeriveConstructorModifier(t *testing.T) {
	c, err := Derive(geometryShape(t), ConstructorModifier(strings.ToLower))
	require.NoError(t, err)
	ut := c.Declared()
	require.Equal(t, []string{"nothing", "point", "segment"}, ut.Fields)
	roundTrip[geometry](t, c, point{5, 6})
}

type wrapper struct{ Value uint64 }

func wrapperShape(named bool) Sum[wrapper] {
	if named {
		return Single("Wrapper", Struct(
			Field("value", codec.Natural(), func(w wrapper) uint64 { return w.Value }, func(w *wrapper, v uint64) { w.Value = v }),
		))
	}
	return Single("Wrapper", Struct(
		PositionalField(codec.Natural(), func(w wrapper) uint64 { return w.Value }, func(w *wrapper, v uint64) { w.Value = v }),
	))
}

func TestDeriveSingletons(t *testing.T) {
	tests := []struct {
		name   string
		policy SingletonPolicy
		named  bool
		typ    string
		value  string
	}{
		{"smart named", Smart, true, "{ value : Natural }", "{ value = 3 }"},
		{"smart positional", Smart, false, "Natural", "3"},
		{"bare named", Bare, true, "Natural", "3"},
		{"bare positional", Bare, false, "Natural", "3"},
		{"wrapped named", Wrapped, true, "{ value : Natural }", "{ value = 3 }"},
		{"wrapped positional", Wrapped, false, "{ _1 : Natural }", "{ _1 = 3 }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Derive(wrapperShape(tt.named), Singletons(tt.policy))
			require.NoError(t, err)
			require.Equal(t, tt.typ, c.Declared().String())
			e := roundTrip(t, c, wrapper{3})
			require.Equal(t, tt.value, e.String())
		})
	}
}

func TestDeriveSingletonJoinUnit(t *testing.T) {
	type tagged struct {
		Tag   string
		Value uint64
	}
	shape := Single("Tagged", Join(Unit("fixed"), Positional(codec.Natural()),
		func(tag string, v uint64) tagged { return tagged{tag, v} },
		func(x tagged) (string, uint64) { return x.Tag, x.Value }))
	c, err := Derive(shape)
	require.NoError(t, err)
	require.Equal(t, "Natural", c.Declared().String())
	roundTrip(t, c, tagged{"fixed", 9})
}

func TestDerivePositionalCounterPerConstructor(t *testing.T) {
	type pair struct{ A, B string }
	text := codec.Text()
	both := func() Product[pair] {
		return Join(Positional(text), Positional(text),
			func(a, b string) pair { return pair{a, b} },
			func(p pair) (string, string) { return p.A, p.B })
	}
	c, err := Derive(Union(
		Constructor("L", both(), func(p pair) pair { return p }, func(p pair) (pair, bool) { return p, p.A <= p.B }),
		Constructor("R", both(), func(p pair) pair { return p }, func(p pair) (pair, bool) { return p, p.A > p.B }),
	))
	require.NoError(t, err)
	require.Equal(t, "< L : { _1 : Text, _2 : Text } | R : { _1 : Text, _2 : Text } >", c.Declared().String())
}

func TestDeriveSelf(t *testing.T) {
	type list struct {
		Head uint64
		Tail *list
	}
	shape := Single("Cons", Join(Named("head", codec.Natural()), Self[*list]("tail"),
		func(h uint64, tl *list) list { return list{h, tl} },
		func(l list) (uint64, *list) { return l.Head, l.Tail }))
	_, err := Derive(shape)
	var ete *codec.ExpectedTypeError
	require.ErrorAs(t, err, &ete)
	require.Equal(t, codec.RecursiveType, ete.Kind)
	require.Contains(t, ete.Message, `"tail"`)
}

func TestDeriveDuplicateField(t *testing.T) {
	type twice struct{ A, B string }
	shape := Single("Twice", Struct(
		Field("userName", codec.Text(), func(v twice) string { return v.A }, func(v *twice, s string) { v.A = s }),
		Field("UserName", codec.Text(), func(v twice) string { return v.B }, func(v *twice, s string) { v.B = s }),
	))
	_, err := Derive(shape)
	require.NoError(t, err)

	_, err = Derive(shape, FieldModifier(SnakeCase))
	var dup *codec.DuplicateLabelError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "field", dup.Kind)
	require.Equal(t, "user_name", dup.Label)
}

func TestDeriveDuplicateConstructor(t *testing.T) {
	_, err := Derive(geometryShape(t), ConstructorModifier(func(string) string { return "Same" }))
	var dup *codec.DuplicateLabelError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "constructor", dup.Kind)
	require.Equal(t, "Same", dup.Label)
}

func TestMustDerivePanics(t *testing.T) {
	require.Panics(t, func() {
		MustDerive(Single("Loop", Self[int]("")))
	})
	require.NotPanics(t, func() {
		MustDerive(personShape())
	})
}

func TestDeriveEmpty(t *testing.T) {
	c, err := Derive(Union[geometry]())
	require.NoError(t, err)
	require.Equal(t, "<>", c.Declared().String())
}

func TestModifiers(t *testing.T) {
	tests := []struct {
		f    func(string) string
		in   string
		want string
	}{
		{SnakeCase, "HTTPServer", "http_server"},
		{CamelCase, "max_retries", "MaxRetries"},
		{LowerCamelCase, "MaxRetries", "maxRetries"},
		{KebabCase, "MaxRetries", "max-retries"},
		{TrimPrefix("Opt"), "OptTimeout", "Timeout"},
		{Compose(TrimPrefix("Opt"), SnakeCase), "OptMaxRetries", "max_retries"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.f(tt.in), tt.in)
	}
}

func TestUnionIsBalanced(t *testing.T) {
	var alts []Sum[int]
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		alts = append(alts, Constructor(n, Unit(0), func(i int) int { return i }, func(i int) (int, bool) { return i, false }))
	}
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, Union(alts...).Constructors())
}

type term struct {
	Op   string
	Lit  uint64
	L, R *term
}

func termLayer(self codec.Codec[*term]) codec.Codec[*term] {
	node := func(op string) Sum[*term] {
		return Constructor(op,
			Join(Positional(self), Positional(self),
				func(l, r *term) *term { return &term{Op: op, L: l, R: r} },
				func(t *term) (*term, *term) { return t.L, t.R }),
			func(t *term) *term { return t },
			func(t *term) (*term, bool) { return t, t.Op == op })
	}
	return MustDerive(Union(
		node("Add"),
		node("Mul"),
		Constructor("Lit", Positional(codec.Natural()),
			func(n uint64) *term { return &term{Op: "Lit", Lit: n} },
			func(t *term) (uint64, bool) { return t.Lit, t.Op == "Lit" }),
	))
}

func TestDeriveRecursiveLayer(t *testing.T) {
	pair := expr.RecordType(map[string]*expr.Expr{"_1": expr.Var("r", 0), "_2": expr.Var("r", 0)})
	u := expr.UnionType(map[string]*expr.Expr{"Add": pair, "Mul": pair, "Lit": expr.NaturalType()})
	mk := func(tag string, payload *expr.Expr) *expr.Expr {
		return expr.App(expr.Var("m", 0), expr.App(expr.Select(u, tag), payload))
	}
	both := func(a, b *expr.Expr) *expr.Expr {
		return expr.FromRecord(map[string]*expr.Expr{"_1": a, "_2": b})
	}
	in := expr.Lambda("r", expr.Type(),
		expr.Lambda("m", expr.Arrow(u, expr.Var("r", 0)),
			mk("Add", both(
				mk("Lit", expr.FromNatural(1)),
				mk("Mul", both(mk("Lit", expr.FromNatural(2)), mk("Lit", expr.FromNatural(3)))),
			))))

	c := codec.Recursive(termLayer)
	got, err := codec.Input(c.Decoder, in)
	require.NoError(t, err)
	require.Equal(t, &term{Op: "Add",
		L: &term{Op: "Lit", Lit: 1},
		R: &term{Op: "Mul", L: &term{Op: "Lit", Lit: 2}, R: &term{Op: "Lit", Lit: 3}},
	}, got)

	again := codec.Embed(c.Encoder, got)
	require.True(t, expr.JudgmentallyEqual(in, again), "re-encoded %s", again)
}

func TestDeriveLogsConstructors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	debug.SetLogger(zap.New(core))
	t.Cleanup(func() { debug.SetLogger(zap.NewNop()) })
	debug.Enable("derive")

	_, err := Derive(personShape())
	require.NoError(t, err)
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "derive constructor Person payload { Age : Natural, Name : Text }", entries[0].Message)
	require.Equal(t, []any{"Name", "Age"}, entries[0].ContextMap()["value"])
}
