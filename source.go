package mdview

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SourceOption configures ReadSource.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	keepFrontMatter bool
}

// WithFrontMatter keeps a leading front matter block instead of dropping it.
func WithFrontMatter(keep bool) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.keepFrontMatter = keep
	}
}

// ReadSource reads the Markdown file at path as UTF-8 text with any
// leading byte order mark removed. The file is closed before ReadSource
// returns. Failures are returned as *Error; a path that does not exist
// has Kind KindNotFound.
func ReadSource(path string, opts ...SourceOption) (string, error) {
	cfg := sourceConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	f, err := os.Open(path)
	if err != nil {
		kind := KindGeneric
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindNotFound
		}
		return "", &Error{Kind: kind, Path: path, Err: unwrapPathError(err)}
	}
	defer f.Close()
	text, err := DecodeSource(f)
	if err != nil {
		return "", &Error{Kind: KindGeneric, Path: path, Err: unwrapPathError(err)}
	}
	if !cfg.keepFrontMatter {
		text = StripFrontMatter(text)
	}
	return text, nil
}

// DecodeSource reads r to EOF, validates it with ValidateInput and decodes
// it as UTF-8, dropping a leading byte order mark.
func DecodeSource(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if err := ValidateInput(raw); err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}
