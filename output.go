package mdview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// DisplayRequest configures Display.
type DisplayRequest struct {
	Document Document
	Writer   io.Writer
	// Interactive reports whether Writer is an interactive terminal.
	Interactive bool
	// Pager is used for interactive output; nil writes directly.
	Pager Pager
	// ScreenWidth and ScreenHeight, when known, let a Document that fits
	// one screen skip the pager.
	ScreenWidth  int
	ScreenHeight int
	Logger       *slog.Logger
}

// Display writes the Document to the request's Writer, through the pager
// when the output is interactive. The pager sink is always closed before
// Display returns.
func Display(ctx context.Context, req DisplayRequest) (err error) {
	if req.Writer == nil {
		return fmt.Errorf("display: writer is nil")
	}
	logger := req.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if !req.Interactive || req.Pager == nil {
		logger.Debug("writing directly", "interactive", req.Interactive)
		return writeDocument(req.Writer, req.Document)
	}
	if req.Document.Fits(req.ScreenWidth, req.ScreenHeight) {
		logger.Debug("document fits screen, skipping pager",
			"lines", req.Document.Lines(), "width", req.ScreenWidth, "height", req.ScreenHeight)
		return writeDocument(req.Writer, req.Document)
	}
	sink, err := req.Pager.Open(ctx, req.Writer)
	if err != nil {
		if errors.Is(err, ErrPagerUnavailable) {
			logger.Warn("pager unavailable, writing directly", "error", err)
			return writeDocument(req.Writer, req.Document)
		}
		return fmt.Errorf("display: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("display: %w", cerr)
		}
	}()
	logger.Debug("paging document", "lines", req.Document.Lines())
	if _, werr := req.Document.WriteTo(sink); werr != nil && !isBrokenPipe(werr) {
		return fmt.Errorf("display: write to pager: %w", werr)
	}
	return nil
}

func writeDocument(w io.Writer, doc Document) error {
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("display: write: %w", err)
	}
	return nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalSize returns the size of the terminal behind w.
func TerminalSize(w io.Writer) (width, height int, ok bool) {
	f, isFile := w.(*os.File)
	if !isFile {
		return 0, 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}
