package edit

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every rejected operation argument. A
// rejected operation leaves the track and the undo slot untouched.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError names the token that could not be used.
type InvalidArgumentError struct {
	Arg string
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Arg, e.Msg)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

func invalidArg(arg, format string, args ...any) error {
	return &InvalidArgumentError{Arg: arg, Msg: fmt.Sprintf(format, args...)}
}
