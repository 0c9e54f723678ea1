package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/go-dhall/expr"
)

// DetailedError renders its error with Detailed. It changes presentation
// only: errors.As and errors.Is see through it.
type DetailedError struct {
	Err error
}

func (e *DetailedError) Error() string {
	return Detailed(e.Err)
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

type DetailOption func(*detailConfig)

type detailConfig struct {
	color bool
}

// WithColor colors headings and type diffs.
func WithColor(c bool) DetailOption {
	return func(cfg *detailConfig) { cfg.color = c }
}

// Detailed renders every error accumulated in err with an explanation.
// Type mismatches show a line diff of the expected type against the
// actual expression.
func Detailed(err error, opts ...DetailOption) string {
	if err == nil {
		return ""
	}
	cfg := &detailConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	heading := fmt.Sprint
	if cfg.color {
		c := color.New(color.Bold, color.FgRed)
		c.EnableColor()
		heading = c.Sprint
	}

	var buf strings.Builder
	var ie *InputError
	if errors.As(err, &ie) {
		fmt.Fprintf(&buf, "In %s:\n\n", ie.SourceName)
		err = ie.Err
	}
	errs := Errors(err)
	for i, e := range errs {
		if i > 0 {
			buf.WriteString("\n")
		}
		if len(errs) > 1 {
			buf.WriteString(heading(fmt.Sprintf("Error %d of %d: ", i+1, len(errs))))
		} else {
			buf.WriteString(heading("Error: "))
		}
		buf.WriteString(e.Error())
		buf.WriteString("\n\n")
		buf.WriteString(explain(e, cfg))
	}
	return buf.String()
}

func explain(err error, cfg *detailConfig) string {
	var (
		tm *TypeMismatch
		ee *ExtractError
		et *ExpectedTypeError
		dl *DuplicateLabelError
	)
	switch {
	case errors.As(err, &tm):
		res := "Explanation: the expression does not have the shape of the expected type.\n"
		if tm.Actual == nil {
			return res + "Nothing was found where a value of this type was expected:\n\n" +
				indent(expr.Format(tm.Expected, expr.Multiline()))
		}
		return res + "Expected type (-) against actual expression (+):\n\n" +
			indent(expr.Diff(tm.Expected, tm.Actual, cfg.color))
	case errors.As(err, &ee):
		return "Explanation: the value has the expected type but its decoder rejected it.\n"
	case errors.As(err, &et):
		return "Explanation: the decoder cannot state the type it expects, so no value can be\n" +
			"checked against it. Recursive types need the fixpoint codecs.\n"
	case errors.As(err, &dl):
		return "Explanation: two fields or constructors were given the same label.\n"
	}
	return ""
}

func indent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
