package ds

import (
	"fmt"
)

type (
	// ErrUnreachableCode marks a branch that a closed set of cases should
	// never reach, like the default arm of a switch over every variant.
	ErrUnreachableCode struct {
		Caller string
		Value  any
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.Value == nil {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf("%s: unreachable code: unexpected %T", r.Caller, r.Value)
}
