package mdview

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

const (
	// DefaultStyle is the document style used when none is given.
	DefaultStyle = styles.DarkStyle
	// DefaultCodeTheme is the chroma theme used for fenced code blocks.
	DefaultCodeTheme = "monokai"
	// PlainStyle renders without colors or text attributes.
	PlainStyle = styles.NoTTYStyle
)

// AvailableStyles returns the names of built-in document styles.
func AvailableStyles() []string {
	names := make([]string, 0, len(styles.DefaultStyles))
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StyleByName returns a copy of a built-in document style. An empty name
// selects DefaultStyle.
func StyleByName(name string) (ansi.StyleConfig, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		normalized = DefaultStyle
	}
	cfg, ok := styles.DefaultStyles[normalized]
	if !ok || cfg == nil {
		return ansi.StyleConfig{}, false
	}
	return *cfg, true
}

// LoadStyleFile reads a glamour JSON style file, the format glamour and
// glow accept in $GLAMOUR_STYLE.
func LoadStyleFile(path string) (ansi.StyleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ansi.StyleConfig{}, fmt.Errorf("style %s: %w", path, unwrapPathError(err))
	}
	var cfg ansi.StyleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ansi.StyleConfig{}, fmt.Errorf("style %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveStyle returns the built-in style called name or, failing that,
// the style file at path name. A name that is neither yields an error
// matching ErrUnknownStyle.
func ResolveStyle(name string) (ansi.StyleConfig, error) {
	if cfg, ok := StyleByName(name); ok {
		return cfg, nil
	}
	path := strings.TrimSpace(name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ansi.StyleConfig{}, fmt.Errorf("%w %q", ErrUnknownStyle, name)
		}
		return ansi.StyleConfig{}, fmt.Errorf("style %s: %w", path, unwrapPathError(err))
	}
	if info.IsDir() {
		return ansi.StyleConfig{}, fmt.Errorf("%w %q: is a directory", ErrUnknownStyle, name)
	}
	return LoadStyleFile(path)
}

// AvailableCodeThemes returns the names of chroma themes usable for code blocks.
func AvailableCodeThemes() []string {
	return chromastyles.Names()
}

// CodeThemeByName returns the registered chroma theme name matching name.
// An empty name selects DefaultCodeTheme.
func CodeThemeByName(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = DefaultCodeTheme
	}
	if style, ok := chromastyles.Registry[trimmed]; ok {
		return style.Name, true
	}
	if style, ok := chromastyles.Registry[strings.ToLower(trimmed)]; ok {
		return style.Name, true
	}
	return "", false
}
