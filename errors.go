package mdview

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStyle reports a document style name with no built-in style.
	ErrUnknownStyle = errors.New("unknown style")
	// ErrUnknownCodeTheme reports a code theme name chroma does not know.
	ErrUnknownCodeTheme = errors.New("unknown code theme")
	// ErrPagerUnavailable reports a pager command that could not be found.
	ErrPagerUnavailable = errors.New("pager unavailable")
)

// ErrorKind classifies failures for user-facing reporting.
type ErrorKind uint8

const (
	// KindGeneric covers every failure without a more specific kind.
	KindGeneric ErrorKind = iota
	// KindNotFound means the input path does not exist.
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	default:
		return "generic"
	}
}

// Error is a failure tied to an input path.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or
// KindGeneric when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindGeneric
}
