package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"pkt.systems/mdview"
	"pkt.systems/version"
)

const (
	defaultWidth = 80

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func init() {
	version.SetDefaultModule("pkt.systems/mdview")
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

type config struct {
	style           string
	codeTheme       string
	width           int
	pager           string
	noPager         bool
	boring          bool
	color           string
	emoji           bool
	keepFrontMatter bool
	listStyles      bool
	listCodeThemes  bool
	logLevel        string
	showVersion     bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	var cfg config
	flags := pflag.NewFlagSet("mdview", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&cfg.style, "style", "s", defaultStyle(getenv), "Document style (dark, light, dracula, tokyo-night, pink, ascii, notty, auto)")
	flags.StringVarP(&cfg.codeTheme, "code-theme", "c", mdview.DefaultCodeTheme, "Syntax highlighting theme for code blocks")
	flags.IntVarP(&cfg.width, "width", "w", 0, "Word wrap width (0 uses terminal width if available)")
	flags.StringVarP(&cfg.pager, "pager", "p", "", "Pager command (default $MDVIEW_PAGER, $PAGER or less)")
	flags.BoolVar(&cfg.noPager, "no-pager", false, "Never page output")
	flags.BoolVarP(&cfg.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.StringVar(&cfg.color, "color", "auto", "Colors: auto|always|never")
	flags.BoolVar(&cfg.emoji, "emoji", false, "Replace :shortcodes: with emoji")
	flags.BoolVar(&cfg.keepFrontMatter, "keep-front-matter", false, "Render leading front matter instead of dropping it")
	flags.BoolVar(&cfg.listStyles, "list-styles", false, "List available document styles")
	flags.BoolVar(&cfg.listCodeThemes, "list-code-themes", false, "List available code themes")
	flags.StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdview [flags] FILE_PATH\n")
		fmt.Fprintln(stderr, "\nView a Markdown file in the terminal.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return exitUsage
	}

	switch {
	case cfg.showVersion:
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	case cfg.listStyles:
		printNames(stdout, mdview.AvailableStyles())
		return exitOK
	case cfg.listCodeThemes:
		printNames(stdout, mdview.AvailableCodeThemes())
		return exitOK
	}

	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "mdview: expected exactly one FILE_PATH, got %d\n\n", flags.NArg())
		flags.Usage()
		return exitUsage
	}
	path := flags.Arg(0)

	logger, err := newLogger(cfg.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --log-level %q: %v\n", cfg.logLevel, err)
		return exitUsage
	}
	profile, err := resolveColor(cfg.color, cfg.boring, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --color %q: %v\n", cfg.color, err)
		return exitUsage
	}
	interactive := mdview.IsTerminal(stdout)
	style := resolveStyle(cfg.style, cfg.boring, interactive, stdout)
	styleOpt, err := styleOption(style)
	if err != nil {
		if errors.Is(err, mdview.ErrUnknownStyle) {
			fmt.Fprintf(stderr, "unknown style %q\n\n", cfg.style)
			printNames(stderr, mdview.AvailableStyles())
		} else {
			fmt.Fprintf(stderr, "invalid style: %v\n", err)
		}
		return exitUsage
	}
	if _, ok := mdview.CodeThemeByName(cfg.codeTheme); !ok {
		fmt.Fprintf(stderr, "unknown code theme %q; see --list-code-themes\n", cfg.codeTheme)
		return exitUsage
	}
	var pager mdview.Pager
	if !cfg.noPager {
		command, err := mdview.ParsePagerCommand(mdview.ResolvePagerCommand(cfg.pager, getenv))
		if err != nil {
			fmt.Fprintf(stderr, "invalid pager: %v\n", err)
			return exitUsage
		}
		pager = interruptSafePager{Pager: mdview.NewExecPager(command)}
	}

	screenWidth, screenHeight, _ := mdview.TerminalSize(stdout)
	width := resolveWidth(cfg.width, screenWidth, getenv)
	logger.Debug("resolved settings",
		"path", path, "style", style, "code_theme", cfg.codeTheme, "width", width,
		"profile", profile, "interactive", interactive)

	sourceOpts := []mdview.SourceOption{mdview.WithFrontMatter(cfg.keepFrontMatter)}
	doc, err := readAndRender(path, sourceOpts, []mdview.RenderOption{
		styleOpt,
		mdview.WithCodeTheme(cfg.codeTheme),
		mdview.WithWidth(width),
		mdview.WithColorProfile(profile),
		mdview.WithEmoji(cfg.emoji),
	})
	if err != nil {
		report(stderr, path, err)
		return exitError
	}

	if err := mdview.Display(ctx, mdview.DisplayRequest{
		Document:     doc,
		Writer:       stdout,
		Interactive:  interactive,
		Pager:        pager,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Logger:       logger,
	}); err != nil {
		report(stderr, path, err)
		return exitError
	}
	return exitOK
}

func readAndRender(path string, sourceOpts []mdview.SourceOption, renderOpts []mdview.RenderOption) (mdview.Document, error) {
	text, err := mdview.ReadSource(normalizePath(path), sourceOpts...)
	if err != nil {
		return mdview.Document{}, err
	}
	return mdview.Render(text, renderOpts...)
}

// interruptGuard is replaced in tests.
var interruptGuard = ignoreInterrupts

// ignoreInterrupts keeps Ctrl-C from killing mdview while the pager,
// which handles it itself, is in the foreground.
func ignoreInterrupts() func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	return func() { signal.Stop(ch) }
}

// interruptSafePager ignores interrupts from the moment the pager starts
// until its sink is closed.
type interruptSafePager struct {
	mdview.Pager
}

func (p interruptSafePager) Open(ctx context.Context, w io.Writer) (io.WriteCloser, error) {
	stop := interruptGuard()
	sink, err := p.Pager.Open(ctx, w)
	if err != nil {
		stop()
		return nil, err
	}
	return &guardedSink{WriteCloser: sink, stop: stop}, nil
}

type guardedSink struct {
	io.WriteCloser
	stop func()
}

func (s *guardedSink) Close() error {
	defer s.stop()
	return s.WriteCloser.Close()
}

// styleOption resolves a built-in style name or a glamour JSON style file.
func styleOption(name string) (mdview.RenderOption, error) {
	if _, ok := mdview.StyleByName(name); ok {
		return mdview.WithStyle(name), nil
	}
	cfg, err := mdview.ResolveStyle(normalizePath(strings.TrimSpace(name)))
	if err != nil {
		return nil, err
	}
	return mdview.WithStyleConfig(name, cfg), nil
}

func defaultStyle(getenv func(string) string) string {
	if s := strings.TrimSpace(getenv("GLAMOUR_STYLE")); s != "" {
		return s
	}
	return mdview.DefaultStyle
}

func resolveStyle(name string, boring, interactive bool, w io.Writer) string {
	if boring {
		return mdview.PlainStyle
	}
	if strings.EqualFold(strings.TrimSpace(name), "auto") {
		if interactive && !termenv.NewOutput(w).HasDarkBackground() {
			return "light"
		}
		return "dark"
	}
	return name
}

func resolveColor(mode string, boring bool, w io.Writer) (termenv.Profile, error) {
	var profile termenv.Profile
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		profile = termenv.NewOutput(w).EnvColorProfile()
	case "always", "on", "true", "1", "yes":
		profile = termenv.TrueColor
	case "never", "off", "false", "0", "no":
		profile = termenv.Ascii
	default:
		return termenv.Ascii, fmt.Errorf("expected auto|always|never")
	}
	if boring {
		return termenv.Ascii, nil
	}
	return profile, nil
}

func resolveWidth(width, screenWidth int, getenv func(string) string) int {
	if width > 0 {
		return width
	}
	if screenWidth > 0 {
		return screenWidth
	}
	if value := getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func printNames(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				return home
			}
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "", "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("expected debug|info|warn|error")
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
