package mdview

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"
)

const defaultWidth = 80

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	style     string
	custom    *ansi.StyleConfig
	codeTheme string
	width     int
	profile   termenv.Profile
	emoji     bool
}

func defaultRenderConfig() renderConfig {
	return renderConfig{
		style:     DefaultStyle,
		codeTheme: DefaultCodeTheme,
		width:     defaultWidth,
		profile:   termenv.TrueColor,
	}
}

// WithStyle selects a built-in document style by name.
func WithStyle(name string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.style = name
	}
}

// WithStyleConfig renders with a style that is not built in, such as one
// returned by LoadStyleFile. name is reported in Document.Style.
func WithStyleConfig(name string, style ansi.StyleConfig) RenderOption {
	return func(cfg *renderConfig) {
		cfg.style = name
		cfg.custom = &style
	}
}

// WithCodeTheme selects the chroma theme for fenced code blocks.
func WithCodeTheme(name string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.codeTheme = name
	}
}

// WithWidth sets the word wrap width. Values below 1 select 80.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.width = width
	}
}

// WithColorProfile sets the color profile of the output. termenv.Ascii
// renders with PlainStyle and without code highlighting, since the
// profile drops colors but not bold or italic attributes.
func WithColorProfile(profile termenv.Profile) RenderOption {
	return func(cfg *renderConfig) {
		cfg.profile = profile
	}
}

// WithEmoji replaces :shortcodes: with emoji.
func WithEmoji(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.emoji = enabled
	}
}
