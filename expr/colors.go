package expr

import (
	"strings"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	KeywordColor ColorAttr = iota
	LabelColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range Kinds() {
		able := Colorable{Kind: k, Attr: KeywordColor}
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = NaturalKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = IntegerKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = DoubleKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = BoolKind
	colors.Map[able] = color.CyanString
	able.Kind = TextKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	able.Kind = BuiltinKind
	colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
	able.Kind = ConstKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = VarKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Attr = LabelColor
	for _, k := range []Kind{RecordKind, RecordTypeKind, UnionTypeKind, FieldKind} {
		able.Kind = k
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
