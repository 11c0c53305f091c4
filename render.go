package mdview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	reflowansi "github.com/muesli/reflow/ansi"
	"github.com/muesli/termenv"
)

// Document is rendered Markdown ready for output.
type Document struct {
	Text      string
	Style     string
	CodeTheme string
	Width     int
}

// Render renders Markdown text into a Document. It performs no I/O.
func Render(text string, opts ...RenderOption) (Document, error) {
	cfg := defaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.width < 1 {
		cfg.width = defaultWidth
	}
	styleName := strings.ToLower(strings.TrimSpace(cfg.style))
	if styleName == "" {
		styleName = DefaultStyle
	}
	var style ansi.StyleConfig
	if cfg.custom != nil {
		styleName = cfg.style
		style = *cfg.custom
	} else {
		var ok bool
		if style, ok = StyleByName(styleName); !ok {
			return Document{}, fmt.Errorf("render: %w %q", ErrUnknownStyle, cfg.style)
		}
	}
	if cfg.profile == termenv.Ascii {
		styleName = PlainStyle
		style, _ = StyleByName(PlainStyle)
	}
	codeTheme, ok := CodeThemeByName(cfg.codeTheme)
	if !ok {
		return Document{}, fmt.Errorf("render: %w %q", ErrUnknownCodeTheme, cfg.codeTheme)
	}
	// A style's own chroma palette takes precedence over Theme in glamour.
	style.CodeBlock.Chroma = nil
	style.CodeBlock.Theme = codeTheme
	if cfg.profile == termenv.Ascii {
		style.CodeBlock.Theme = ""
	}

	ropts := []glamour.TermRendererOption{
		glamour.WithStyles(style),
		glamour.WithWordWrap(cfg.width),
		glamour.WithColorProfile(cfg.profile),
	}
	if cfg.emoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	r, err := glamour.NewTermRenderer(ropts...)
	if err != nil {
		return Document{}, fmt.Errorf("render: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return Document{}, fmt.Errorf("render: %w", err)
	}
	return Document{
		Text:      out,
		Style:     styleName,
		CodeTheme: style.CodeBlock.Theme,
		Width:     cfg.width,
	}, nil
}

// WriteTo writes the rendered text to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Text)
	return int64(n), err
}

// Lines returns the number of lines the Document occupies on screen.
func (d Document) Lines() int {
	if d.Text == "" {
		return 0
	}
	n := strings.Count(d.Text, "\n")
	if !strings.HasSuffix(d.Text, "\n") {
		n++
	}
	return n
}

// Fits reports whether the Document fits a screen of width by height
// cells while leaving the last row free for the shell prompt.
func (d Document) Fits(width, height int) bool {
	if width < 1 || height < 1 {
		return false
	}
	if d.Lines() >= height {
		return false
	}
	for _, line := range strings.Split(d.Text, "\n") {
		if reflowansi.PrintableRuneWidth(strings.TrimRight(line, " ")) > width {
			return false
		}
	}
	return true
}
