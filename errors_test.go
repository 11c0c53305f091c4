package mdview

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestKindOf(t *testing.T) {
	notFound := &Error{Kind: KindNotFound, Path: "missing.md", Err: fs.ErrNotExist}
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "not found", err: notFound, want: KindNotFound},
		{name: "wrapped not found", err: fmt.Errorf("read: %w", notFound), want: KindNotFound},
		{name: "plain", err: errors.New("boom"), want: KindGeneric},
		{name: "generic error", err: &Error{Kind: KindGeneric, Err: ErrBinaryInput}, want: KindGeneric},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("%s: KindOf=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	err := &Error{Kind: KindNotFound, Path: "docs/a.md", Err: fs.ErrNotExist}
	if got, want := err.Error(), "docs/a.md: file does not exist"; got != want {
		t.Fatalf("Error()=%q want %q", got, want)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected errors.Is to reach fs.ErrNotExist")
	}
	bare := &Error{Err: ErrInvalidUTF8}
	if got := bare.Error(); got != ErrInvalidUTF8.Error() {
		t.Fatalf("Error() without path=%q", got)
	}
}
