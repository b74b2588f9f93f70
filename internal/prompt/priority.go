package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
)

// Priority is an incident priority level from MinPriority to MaxPriority.
type Priority int

const (
	MinPriority Priority = 1
	MaxPriority Priority = 4
)

var (
	// ErrNotInteger is returned by ParsePriority for text that is not an integer.
	ErrNotInteger = errors.New("priority must be an integer")
	// ErrOutOfRange is returned by ParsePriority for integers outside 1..4.
	ErrOutOfRange = fmt.Errorf("priority must be between %d and %d", MinPriority, MaxPriority)
)

// String returns the decimal form used when matching record fields.
func (p Priority) String() string {
	return strconv.Itoa(int(p))
}

// ParsePriority validates s as a priority level. Surrounding whitespace is ignored.
func ParsePriority(s string) (Priority, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	p := Priority(n)
	if p < MinPriority || p > MaxPriority {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return p, nil
}

// Prompter asks the user for a priority level.
type Prompter struct {
	console *Console
	label   string
}

// NewPrompter returns a prompter that shows label before each attempt.
func NewPrompter(console *Console, label string) *Prompter {
	return &Prompter{console: console, label: label}
}

// Ask reads lines until one holds a valid priority. Invalid entries produce
// a warning and another attempt; there is no retry limit. An empty line, or
// the end of input, returns ErrCancelled.
func (p *Prompter) Ask(ctx context.Context) (Priority, error) {
	logger := ctxlog.FromContext(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line, err := p.console.ReadLine(p.label)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debug("Input closed while waiting for priority.")
				return 0, ErrCancelled
			}
			return 0, fmt.Errorf("failed to read priority: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return 0, ErrCancelled
		}

		priority, err := ParsePriority(line)
		switch {
		case err == nil:
			logger.Debug("Priority selected.", "priority", int(priority))
			return priority, nil
		case errors.Is(err, ErrNotInteger):
			p.console.Warn("Invalid input. Enter an integer.")
		case errors.Is(err, ErrOutOfRange):
			p.console.Warn(fmt.Sprintf("Please enter a number between %d and %d.", MinPriority, MaxPriority))
		default:
			return 0, err
		}
		logger.Debug("Rejected priority input.", "input", line, "error", err)
	}
}
