package example

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signadot/go-dhall/codec"
	"github.com/signadot/go-dhall/expr"
)

func TestDrawingCodec(t *testing.T) {
	c := DrawingCodec()
	require.Equal(t,
		"{ max_level : Natural, shapes : List < circle : { Label : Optional Text, Radius : Double } | empty | square : Double >, tags : List Text, title : Text }",
		c.Declared().String())

	label := "unit"
	d := Drawing{
		Title:    "sketch",
		Shapes:   []Shape{Circle{Radius: 1, Label: &label}, Square{Side: 2}, Empty{}},
		Tags:     map[string]struct{}{"a": {}, "b": {}},
		MaxLevel: 3,
	}
	data, err := codec.EmbedBinary(c.Encoder, d)
	require.NoError(t, err)
	got, err := codec.InputBinary(c.Decoder, data)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestShapeCodecRejectsUnknownConstructor(t *testing.T) {
	ut := expr.UnionType(map[string]*expr.Expr{
		"circle":   expr.RecordType(map[string]*expr.Expr{"Label": expr.OptionalOf(expr.TextType()), "Radius": expr.DoubleType()}),
		"empty":    nil,
		"square":   expr.DoubleType(),
		"triangle": expr.DoubleType(),
	})
	_, err := codec.Input(ShapeCodec().Decoder, expr.App(expr.Select(ut, "triangle"), expr.FromDouble(1)))
	var tm *codec.TypeMismatch
	require.ErrorAs(t, err, &tm)
}
