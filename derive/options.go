package derive

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// SingletonPolicy decides how a constructor with exactly one field is
// represented.
type SingletonPolicy int

const (
	// Smart wraps a named field in a one-field record and uses a
	// positional field's value directly.
	Smart SingletonPolicy = iota
	// Bare always uses the field's value directly.
	Bare
	// Wrapped always uses a one-field record.
	Wrapped
)

func (p SingletonPolicy) String() string {
	switch p {
	case Smart:
		return "smart"
	case Bare:
		return "bare"
	case Wrapped:
		return "wrapped"
	}
	return "unknown"
}

type Option func(*options)

type options struct {
	fieldModifier       func(string) string
	constructorModifier func(string) string
	singletons          SingletonPolicy
}

func newOptions(opts []Option) *options {
	o := &options{
		fieldModifier:       identity,
		constructorModifier: identity,
		singletons:          Smart,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func identity(s string) string { return s }

// FieldModifier renames every named field. Positional names are not
// modified.
func FieldModifier(f func(string) string) Option {
	return func(o *options) { o.fieldModifier = f }
}

// ConstructorModifier renames every constructor.
func ConstructorModifier(f func(string) string) Option {
	return func(o *options) { o.constructorModifier = f }
}

func Singletons(p SingletonPolicy) Option {
	return func(o *options) { o.singletons = p }
}

// Name modifiers.
var (
	SnakeCase      = strcase.ToSnake
	CamelCase      = strcase.ToCamel
	LowerCamelCase = strcase.ToLowerCamel
	KebabCase      = strcase.ToKebab
)

func TrimPrefix(prefix string) func(string) string {
	return func(s string) string { return strings.TrimPrefix(s, prefix) }
}

// Compose applies fs from left to right.
func Compose(fs ...func(string) string) func(string) string {
	return func(s string) string {
		for _, f := range fs {
			s = f(s)
		}
		return s
	}
}
