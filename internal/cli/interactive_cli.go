// Package cli implements the interactive terminal frontends.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
)

var errEnd = errors.New("end")

// Session is one step of an interactive loop. Implementations return
// errEnd (via EndSession) when the loop should stop normally.
type Session interface {
	Session(ctx context.Context) error
}

// EndSession is the sentinel a Session returns to finish the Run loop.
func EndSession() error {
	return errEnd
}

// InteractiveCLI contains the shared terminal plumbing for interactive
// sessions: an input reader, an output writer and the color styles.
type InteractiveCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewInteractiveCLI builds the base CLI over the given streams. Pass nil
// to use os.Stdin and os.Stdout.
func NewInteractiveCLI(input io.Reader, output io.Writer) *InteractiveCLI {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &InteractiveCLI{
		stdinReader:  bufio.NewReader(input),
		stdoutWriter: output,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Run drives the session loop until it ends or the user interrupts.
func (cli *InteractiveCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine reads one trimmed input line.
func (cli *InteractiveCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
