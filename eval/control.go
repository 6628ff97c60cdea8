package eval

import (
	"github.com/risor-io/quasi/errors"
)

// controlSignal carries break or next out of a loop body. It is not an
// error the caller ever sees: loops consume it, and anything that escapes
// a loop is reported as an errors.ErrControl.
type controlSignal struct {
	keyword string
}

func (s *controlSignal) Error() string {
	return s.keyword
}

var (
	errBreak = &controlSignal{keyword: "break"}
	errNext  = &controlSignal{keyword: "next"}
)

// topLevel converts a control signal that escaped every loop.
func topLevel(err error) error {
	if s, ok := err.(*controlSignal); ok {
		return errors.Newf(errors.ErrControl, "no loop for %s, jumping to top level", s.keyword)
	}
	return err
}
