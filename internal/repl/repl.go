// Package repl runs the calculator's read-eval-print loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

const (
	noInput = "No input was provided. Please try again."
	invalid = "Input was invalid: "
)

// Stats counts the lines a session has handled.
type Stats struct {
	// Evaluated is the number of lines that produced a result.
	Evaluated int
	// Invalid is the number of lines that failed to evaluate.
	Invalid int
	// Empty is the number of blank lines.
	Empty int
}

// Session is one interactive calculator session. It is not safe for
// concurrent use.
type Session struct {
	cfg   config.Config
	calc  *calc.Context
	in    *bufio.Reader
	out   io.Writer
	log   zerolog.Logger
	stats Stats
}

// New creates a session reading lines from in and writing prompts and
// results to out.
func New(cfg config.Config, in io.Reader, out io.Writer, logger zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("repl: %w", err)
	}
	b, err := cfg.NewBackend()
	if err != nil {
		return nil, fmt.Errorf("repl: %w", err)
	}
	return &Session{
		cfg:  cfg,
		calc: calc.NewContext(calc.WithBackend(b)),
		in:   bufio.NewReader(in),
		out:  out,
		log:  logger.With().Str("backend", b.Name()).Logger(),
	}, nil
}

// Run prompts for and evaluates lines until the exit command, the end of the
// input, or the cancellation of ctx. Invalid expressions are reported and do
// not end the loop. The result is nil unless reading fails or ctx is
// cancelled.
func (s *Session) Run(ctx context.Context) error {
	defer func() {
		s.log.Debug().
			Int("evaluated", s.stats.Evaluated).
			Int("invalid", s.stats.Invalid).
			Int("empty", s.stats.Empty).
			Msg("session ended")
	}()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.cfg.Prompt)
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			s.log.Error().Err(err).Msg("reading input")
			return fmt.Errorf("repl: read: %w", err)
		}
		if err != nil && line == "" {
			return nil
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if s.handle(line) {
			s.log.Debug().Msg("exit command")
			return nil
		}
		if err != nil {
			// Last line had no terminator.
			return nil
		}
	}
}

// handle processes one line and reports whether it was the exit command.
func (s *Session) handle(line string) bool {
	cmd := strings.TrimSpace(line)
	switch cmd {
	case "":
		s.stats.Empty++
		fmt.Fprintln(s.out, noInput)
		return false
	case s.cfg.Exit:
		return true
	}
	r, err := s.EvalLine(line)
	if err != nil {
		s.stats.Invalid++
		s.log.Info().Err(err).Str("expr", line).Msg("invalid input")
		fmt.Fprintln(s.out, invalid+err.Error())
		return false
	}
	s.stats.Evaluated++
	fmt.Fprintln(s.out, r)
	return false
}

// EvalLine evaluates one expression and formats the result as
// "<line> = <value>" with the configured number of decimal places. With echo
// enabled, the postfix form of the expression comes first.
func (s *Session) EvalLine(line string) (string, error) {
	e, err := calc.CompileString(line)
	if err != nil {
		return "", err
	}
	r, err := s.calc.Eval(e)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("expr", line).Stringer("postfix", e).Str("result", r.String()).Msg("evaluated")
	var b strings.Builder
	if s.cfg.Echo {
		fmt.Fprintf(&b, "%v : ", e)
	}
	b.WriteString(line)
	b.WriteString(" = ")
	b.WriteString(r.Fixed(s.cfg.Places))
	return b.String(), nil
}

// Stats returns the counts of lines handled so far.
func (s *Session) Stats() Stats {
	return s.stats
}
