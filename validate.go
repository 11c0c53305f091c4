package mdview

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not UTF-8 text. A NUL byte, or
// a control byte ratio of maxControlPct percent or more over at least
// minBinarySample bytes, is treated as binary.
func ValidateInput(src []byte) error {
	var total, control int
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, i)
		}
		if r == 0 {
			return fmt.Errorf("%w: NUL at byte %d", ErrBinaryInput, i)
		}
		total += size
		if isControlRune(r) {
			control++
		}
		i += size
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return fmt.Errorf("%w: %d control characters in %d bytes", ErrBinaryInput, control, total)
	}
	return nil
}

func isControlRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t', '\f':
		return false
	}
	return r < 0x20 || r == 0x7F
}
