package codec

import (
	"go.uber.org/multierr"
)

// Accumulate combines the non-nil errors of independent operations into
// one. It returns nil if all are nil.
func Accumulate(errs ...error) error {
	return multierr.Combine(errs...)
}

// Errors lists the errors accumulated in err.
func Errors(err error) []error {
	return multierr.Errors(err)
}

// FirstError keeps only the first accumulated error.
func FirstError(err error) error {
	errs := Errors(err)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
