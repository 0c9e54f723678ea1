package codec

import (
	"fmt"
	"strings"

	"github.com/signadot/go-dhall/expr"
)

// TypeMismatch reports an expression whose shape disagrees with the type
// its decoder expects.
type TypeMismatch struct {
	Path     string // e.g. "person.tags[2]"
	Expected *expr.Expr
	Actual   *expr.Expr
}

func (e *TypeMismatch) Error() string {
	actual := "nothing"
	if e.Actual != nil {
		actual = e.Actual.String()
	}
	msg := fmt.Sprintf("expected a value of type %s, got %s", e.Expected, actual)
	if e.Path != "" {
		return fmt.Sprintf("type mismatch at %s: %s", e.Path, msg)
	}
	return "type mismatch: " + msg
}

// ExtractError is a semantic failure raised by a codec for a value of the
// right type.
type ExtractError struct {
	Path    string
	Message string
	Err     error
}

func (e *ExtractError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("extract error at %s: %s", e.Path, e.Message)
	}
	return "extract error: " + e.Message
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

type ExpectedTypeKind int

const (
	// RecursiveType marks a type that cannot be determined statically,
	// such as a derived shape referring to itself.
	RecursiveType ExpectedTypeKind = iota
)

func (k ExpectedTypeKind) String() string {
	switch k {
	case RecursiveType:
		return "recursive type"
	}
	return fmt.Sprintf("ExpectedTypeKind(%d)", int(k))
}

// ExpectedTypeError reports a failure to compute a decoder's expected type.
type ExpectedTypeError struct {
	Kind    ExpectedTypeKind
	Message string
}

func (e *ExpectedTypeError) Error() string {
	return fmt.Sprintf("cannot determine expected type (%s): %s", e.Kind, e.Message)
}

// DuplicateLabelError reports two fields or constructors sharing a label.
// Combinators panic with it; derivation returns it.
type DuplicateLabelError struct {
	Kind  string // "field" or "constructor"
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate %s label %q", e.Kind, e.Label)
}

// ContractViolation is the panic value raised when a decoded function
// returns an expression its result decoder rejects. It means the
// decoder and encoder given to FunctionDecoder disagree with the
// function's type, and is never returned as an error.
type ContractViolation struct {
	Function *expr.Expr
	Argument *expr.Expr
	Result   *expr.Expr
	Err      error
}

func (c *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation: applying %s to %s gave %s: %v", c.Function, c.Argument, c.Result, c.Err)
}

func (c *ContractViolation) Unwrap() error {
	return c.Err
}

// InputError attaches the name of the input source to a decoding error.
type InputError struct {
	SourceName string
	Err        error
}

func (e *InputError) Error() string {
	return e.SourceName + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func joinPath(prefix, sub string) string {
	switch {
	case sub == "":
		return prefix
	case prefix == "":
		return sub
	case strings.HasPrefix(sub, "["):
		return prefix + sub
	}
	return prefix + "." + sub
}

// atPath prefixes the path of every positioned error in err.
func atPath(prefix string, err error) error {
	if err == nil {
		return nil
	}
	errs := Errors(err)
	res := make([]error, len(errs))
	for i, e := range errs {
		switch x := e.(type) {
		case *TypeMismatch:
			c := *x
			c.Path = joinPath(prefix, x.Path)
			res[i] = &c
		case *ExtractError:
			c := *x
			c.Path = joinPath(prefix, x.Path)
			res[i] = &c
		default:
			res[i] = e
		}
	}
	return Accumulate(res...)
}
