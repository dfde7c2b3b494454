// Package gerror holds the error kinds a GOM export decode can fail with.
package gerror

import (
	"errors"
	"fmt"
)

type (
	Kind string
	// Error is the innermost decode failure. Outer layers wrap it with context
	// (field id, array index) while errors.Is still matches its kind.
	Error struct {
		Kind   Kind
		Caller string
		Detail string
	}
)

const (
	KindShapeMismatch      = Kind("shape mismatch")
	KindNegativeIdentifier = Kind("negative identifier")
	KindIntegerOverflow    = Kind("integer overflow")
	KindMissingKey         = Kind("missing key")
)

var (
	ErrShapeMismatch      = errors.New(string(KindShapeMismatch))
	ErrNegativeIdentifier = errors.New(string(KindNegativeIdentifier))
	ErrIntegerOverflow    = errors.New(string(KindIntegerOverflow))
	ErrMissingKey         = errors.New(string(KindMissingKey))
)

var sentinelByKind = map[Kind]error{
	KindShapeMismatch:      ErrShapeMismatch,
	KindNegativeIdentifier: ErrNegativeIdentifier,
	KindIntegerOverflow:    ErrIntegerOverflow,
	KindMissingKey:         ErrMissingKey,
}

func (r Error) Error() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: %s", r.Caller, r.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", r.Caller, r.Kind, r.Detail)
}

func (r Error) Is(target error) bool {
	sentinel, ok := sentinelByKind[r.Kind]
	return ok && sentinel == target
}

func ShapeMismatch(caller string, expected string, actual string) error {
	return Error{
		Kind:   KindShapeMismatch,
		Caller: caller,
		Detail: fmt.Sprintf(`expected %s; got %s`, expected, actual),
	}
}

func MissingKey(caller string, key string) error {
	return Error{
		Kind:   KindMissingKey,
		Caller: caller,
		Detail: fmt.Sprintf(`key "%s" is absent`, key),
	}
}

func NegativeIdentifier(caller string, detail string) error {
	return Error{
		Kind:   KindNegativeIdentifier,
		Caller: caller,
		Detail: detail,
	}
}

func IntegerOverflow(caller string, detail string) error {
	return Error{
		Kind:   KindIntegerOverflow,
		Caller: caller,
		Detail: detail,
	}
}

// KindOf digs the kind out of a wrapped decode error.
func KindOf(err error) (Kind, bool) {
	var decodeErr Error
	if errors.As(err, &decodeErr) {
		return decodeErr.Kind, true
	}
	return "", false
}
