package mdview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

type fakeSink struct {
	buf      bytes.Buffer
	writeErr error
	closeErr error
	closed   int
}

func (s *fakeSink) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		n := len(p) / 2
		s.buf.Write(p[:n])
		return n, s.writeErr
	}
	return s.buf.Write(p)
}

func (s *fakeSink) Close() error {
	s.closed++
	return s.closeErr
}

type fakePager struct {
	sink    *fakeSink
	openErr error
	opened  int
}

func (p *fakePager) Open(ctx context.Context, w io.Writer) (io.WriteCloser, error) {
	p.opened++
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p.sink, nil
}

func longDocument() Document {
	return Document{Text: strings.Repeat("line\n", 100)}
}

func TestDisplayNonInteractiveBypassesPager(t *testing.T) {
	pager := &fakePager{openErr: errors.New("pager exploded")}
	var out bytes.Buffer
	err := Display(context.Background(), DisplayRequest{
		Document:     longDocument(),
		Writer:       &out,
		Interactive:  false,
		Pager:        pager,
		ScreenWidth:  80,
		ScreenHeight: 24,
	})
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if pager.opened != 0 {
		t.Fatalf("pager opened for non-interactive output")
	}
	if out.String() != longDocument().Text {
		t.Fatalf("document not written directly")
	}
}

func TestDisplayInteractiveUsesPager(t *testing.T) {
	pager := &fakePager{sink: &fakeSink{}}
	var out bytes.Buffer
	err := Display(context.Background(), DisplayRequest{
		Document:     longDocument(),
		Writer:       &out,
		Interactive:  true,
		Pager:        pager,
		ScreenWidth:  80,
		ScreenHeight: 24,
	})
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if pager.opened != 1 || pager.sink.closed != 1 {
		t.Fatalf("opened=%d closed=%d", pager.opened, pager.sink.closed)
	}
	if out.Len() != 0 {
		t.Fatalf("document written around the pager: %q", out.String())
	}
	if pager.sink.buf.String() != longDocument().Text {
		t.Fatalf("pager did not receive the document")
	}
}

func TestDisplayClosesPagerWhenWriteFails(t *testing.T) {
	pager := &fakePager{sink: &fakeSink{writeErr: errors.New("disk on fire")}}
	err := Display(context.Background(), DisplayRequest{
		Document:    longDocument(),
		Writer:      &bytes.Buffer{},
		Interactive: true,
		Pager:       pager,
	})
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("expected write error, got %v", err)
	}
	if pager.sink.closed != 1 {
		t.Fatalf("pager not closed after write failure: closed=%d", pager.sink.closed)
	}
}

func TestDisplayIgnoresBrokenPipe(t *testing.T) {
	pager := &fakePager{sink: &fakeSink{writeErr: fmt.Errorf("write |1: %w", syscall.EPIPE)}}
	err := Display(context.Background(), DisplayRequest{
		Document:    longDocument(),
		Writer:      &bytes.Buffer{},
		Interactive: true,
		Pager:       pager,
	})
	if err != nil {
		t.Fatalf("expected broken pipe to be ignored, got %v", err)
	}
	if pager.sink.closed != 1 {
		t.Fatalf("pager not closed")
	}
}

func TestDisplayReportsCloseError(t *testing.T) {
	pager := &fakePager{sink: &fakeSink{closeErr: errors.New("exit status 2")}}
	err := Display(context.Background(), DisplayRequest{
		Document:    longDocument(),
		Writer:      &bytes.Buffer{},
		Interactive: true,
		Pager:       pager,
	})
	if err == nil || !strings.Contains(err.Error(), "exit status 2") {
		t.Fatalf("expected close error, got %v", err)
	}
}

func TestDisplayFallsBackWhenPagerUnavailable(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pager := &fakePager{openErr: fmt.Errorf("%w: less not found", ErrPagerUnavailable)}
	var out bytes.Buffer
	err := Display(context.Background(), DisplayRequest{
		Document:    longDocument(),
		Writer:      &out,
		Interactive: true,
		Pager:       pager,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if out.String() != longDocument().Text {
		t.Fatalf("document not written after fallback")
	}
	if !strings.Contains(logs.String(), "pager unavailable") {
		t.Fatalf("expected warning in logs: %q", logs.String())
	}
}

func TestDisplayPropagatesPagerStartFailure(t *testing.T) {
	pager := &fakePager{openErr: errors.New("fork failed")}
	err := Display(context.Background(), DisplayRequest{
		Document:    longDocument(),
		Writer:      &bytes.Buffer{},
		Interactive: true,
		Pager:       pager,
	})
	if err == nil || !strings.Contains(err.Error(), "fork failed") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestDisplaySkipsPagerWhenDocumentFits(t *testing.T) {
	pager := &fakePager{sink: &fakeSink{}}
	var out bytes.Buffer
	doc := Document{Text: "short\n"}
	err := Display(context.Background(), DisplayRequest{
		Document:     doc,
		Writer:       &out,
		Interactive:  true,
		Pager:        pager,
		ScreenWidth:  80,
		ScreenHeight: 24,
	})
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if pager.opened != 0 {
		t.Fatalf("pager opened for a document that fits")
	}
	if out.String() != doc.Text {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestDisplayRequiresWriter(t *testing.T) {
	if err := Display(context.Background(), DisplayRequest{}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestIsTerminalOnNonTerminals(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	for _, w := range []io.Writer{&bytes.Buffer{}, f} {
		if IsTerminal(w) {
			t.Fatalf("%T reported as terminal", w)
		}
		if _, _, ok := TerminalSize(w); ok {
			t.Fatalf("%T reported a terminal size", w)
		}
	}
}
