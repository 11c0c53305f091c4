package mdview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/google/shlex"
)

// DefaultPagerCommand is used when neither a flag nor the environment
// names a pager.
const DefaultPagerCommand = "less"

// pagerSettings are set in the pager's environment only: interpret ANSI
// sequences, keep the screen on exit and quit when output fits one screen.
var pagerSettings = []string{
	"LESS=-R -X -F",
	"LV=-c",
}

// Pager opens a sink that shows everything written to it one screen at a
// time on w. The sink must be closed to flush it and release the pager.
type Pager interface {
	Open(ctx context.Context, w io.Writer) (io.WriteCloser, error)
}

// ExecPager runs an external pager program.
type ExecPager struct {
	// Command is the program and its arguments.
	Command []string
	// Env is the base environment for the pager; nil uses os.Environ.
	Env []string
	// Stderr receives the pager's diagnostics; nil uses os.Stderr.
	Stderr io.Writer
}

// NewExecPager returns an ExecPager running command.
func NewExecPager(command []string) *ExecPager {
	return &ExecPager{Command: command}
}

// ResolvePagerCommand returns the pager command line to use: override if
// set, otherwise $MDVIEW_PAGER, $PAGER and finally DefaultPagerCommand.
func ResolvePagerCommand(override string, getenv func(string) string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	if getenv != nil {
		for _, key := range []string{"MDVIEW_PAGER", "PAGER"} {
			if s := strings.TrimSpace(getenv(key)); s != "" {
				return s
			}
		}
	}
	return DefaultPagerCommand
}

// ParsePagerCommand splits a pager command line into words using shell
// quoting rules.
func ParsePagerCommand(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("pager command %q: %w", line, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("pager command is empty")
	}
	return words, nil
}

// Environ returns the environment the pager process runs with.
func (p *ExecPager) Environ() []string {
	base := p.Env
	if base == nil {
		base = os.Environ()
	}
	return pagerEnvironment(base)
}

func pagerEnvironment(base []string) []string {
	env := make([]string, 0, len(base)+len(pagerSettings))
	for _, kv := range base {
		if overridden(kv) {
			continue
		}
		env = append(env, kv)
	}
	return append(env, pagerSettings...)
}

func overridden(kv string) bool {
	for _, setting := range pagerSettings {
		key := setting[:strings.IndexByte(setting, '=')+1]
		if strings.HasPrefix(kv, key) {
			return true
		}
	}
	return false
}

// Open starts the pager with its output bound to w. A command that cannot
// be found yields an error matching ErrPagerUnavailable.
func (p *ExecPager) Open(ctx context.Context, w io.Writer) (io.WriteCloser, error) {
	if len(p.Command) == 0 {
		return nil, fmt.Errorf("%w: no command", ErrPagerUnavailable)
	}
	path, err := exec.LookPath(p.Command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPagerUnavailable, err)
	}
	cmd := exec.CommandContext(ctx, path, p.Command[1:]...)
	cmd.Env = p.Environ()
	cmd.Stdout = w
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("pager: stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return nil, fmt.Errorf("pager: start %s: %w", p.Command[0], err)
	}
	return &pagerSink{cmd: cmd, stdin: stdin}, nil
}

type pagerSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	closed bool
}

func (s *pagerSink) Write(p []byte) (int, error) {
	return s.stdin.Write(p)
}

// Close ends the pager's input and waits for the user to leave it.
func (s *pagerSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	closeErr := s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("pager: %w", err)
	}
	if closeErr != nil && !isBrokenPipe(closeErr) {
		return fmt.Errorf("pager: %w", closeErr)
	}
	return nil
}

// isBrokenPipe reports whether err comes from writing to a pager that
// has already exited.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
