package codec

import (
	"fmt"

	"github.com/signadot/go-dhall/debug"
	"github.com/signadot/go-dhall/expr"
)

// EvaluateSettings control normalization.
type EvaluateSettings struct {
	// Reducer, if set, is consulted on every application during
	// normalization before the builtin rules.
	Reducer expr.Reducer
}

// TypeChecker infers the type of an expression. Parsing and type checking
// live outside this module and are plugged in through WithTypeChecker.
type TypeChecker func(*expr.Expr) (*expr.Expr, error)

// InputSettings control Input.
type InputSettings struct {
	EvaluateSettings

	// SourceName names the input in returned errors.
	SourceName string
	// TypeCheck, if set, must infer a type judgmentally equal to the
	// decoder's expected type before anything is extracted.
	TypeCheck TypeChecker
	// Detailed wraps returned errors in *DetailedError.
	Detailed bool
}

// InputOption configures Input and the decoders that normalize.
type InputOption interface {
	applyInput(*InputSettings)
}

type inputOptionFunc func(*InputSettings)

func (f inputOptionFunc) applyInput(s *InputSettings) { f(s) }

func WithReducer(r expr.Reducer) InputOption {
	return inputOptionFunc(func(s *InputSettings) { s.Reducer = r })
}

func WithSourceName(name string) InputOption {
	return inputOptionFunc(func(s *InputSettings) { s.SourceName = name })
}

func WithTypeChecker(tc TypeChecker) InputOption {
	return inputOptionFunc(func(s *InputSettings) { s.TypeCheck = tc })
}

func WithDetailed(detailed bool) InputOption {
	return inputOptionFunc(func(s *InputSettings) { s.Detailed = detailed })
}

// WithSettings applies every field of s.
func WithSettings(s InputSettings) InputOption {
	return inputOptionFunc(func(dst *InputSettings) { *dst = s })
}

func newInputSettings(opts []InputOption) *InputSettings {
	s := &InputSettings{}
	for _, opt := range opts {
		opt.applyInput(s)
	}
	return s
}

func (s *EvaluateSettings) normalizeOptions() []expr.NormalizeOption {
	if s.Reducer == nil {
		return nil
	}
	return []expr.NormalizeOption{expr.WithReducer(s.Reducer)}
}

// Input type checks e against the expected type of d when a checker is
// configured, normalizes it and extracts a value.
func Input[T any](d Decoder[T], e *expr.Expr, opts ...InputOption) (T, error) {
	s := newInputSettings(opts)
	v, err := input(d, e, s)
	if err == nil {
		return v, nil
	}
	if s.SourceName != "" {
		err = &InputError{SourceName: s.SourceName, Err: err}
	}
	if s.Detailed {
		err = &DetailedError{Err: err}
	}
	return v, err
}

func input[T any](d Decoder[T], e *expr.Expr, s *InputSettings) (T, error) {
	var zero T
	want, err := d.Expected()
	if err != nil {
		return zero, err
	}
	if s.TypeCheck != nil {
		got, err := s.TypeCheck(e)
		if err != nil {
			return zero, fmt.Errorf("type check: %w", err)
		}
		if !expr.JudgmentallyEqual(got, want) {
			return zero, &TypeMismatch{Expected: want, Actual: expr.Annotate(e, got)}
		}
	}
	n := expr.Normalize(e, s.normalizeOptions()...)
	if debug.Input() {
		debug.Logf("input %s: expecting %s\n   value %s", s.SourceName, want, n)
	}
	return d.Extract(n)
}

// InputBinary decodes the binary form of an expression and passes it to
// Input.
func InputBinary[T any](d Decoder[T], data []byte, opts ...InputOption) (T, error) {
	e, err := expr.DecodeBinary(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return Input(d, e, opts...)
}

// Embed returns the normal form of v as embedded by enc.
func Embed[T any](enc Encoder[T], v T) *expr.Expr {
	return expr.Normalize(enc.Embed(v))
}

// EmbedBinary returns the binary form of Embed(enc, v).
func EmbedBinary[T any](enc Encoder[T], v T) ([]byte, error) {
	return expr.EncodeBinary(Embed(enc, v))
}
