package object

import (
	"github.com/risor-io/quasi/errors"
)

// TypeErrorf returns an error matching errors.ErrType.
func TypeErrorf(format string, args ...any) error {
	return errors.Newf(errors.ErrType, format, args...)
}

// ArgsErrorf returns an error matching errors.ErrArgs.
func ArgsErrorf(format string, args ...any) error {
	return errors.Newf(errors.ErrArgs, format, args...)
}

// NameErrorf returns an error matching errors.ErrName.
func NameErrorf(format string, args ...any) error {
	return errors.Newf(errors.ErrName, format, args...)
}

// MissingArgumentf returns an error matching errors.ErrMissingArgument.
func MissingArgumentf(format string, args ...any) error {
	return errors.Newf(errors.ErrMissingArgument, format, args...)
}

// NewArgsError reports a builtin called with the wrong number of arguments.
func NewArgsError(fn string, takes, given int) error {
	return ArgsErrorf("%s() takes exactly %d arguments (%d given)", fn, takes, given)
}

// NewArgsRangeError reports a builtin called with an argument count outside
// the range it accepts.
func NewArgsRangeError(fn string, takesMin, takesMax, given int) error {
	if takesMax-takesMin == 1 {
		return ArgsErrorf("%s() takes %d or %d arguments (%d given)", fn, takesMin, takesMax, given)
	}
	return ArgsErrorf("%s() takes between %d and %d arguments (%d given)", fn, takesMin, takesMax, given)
}
