package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Gate blocks until the caller may show the next item.
type Gate interface {
	Advance(ctx context.Context, prompt string) error
}

// LineGate waits for one input line per call. The line's content is ignored.
type LineGate struct {
	console *Console
}

// NewLineGate returns a gate that reads from console.
func NewLineGate(console *Console) *LineGate {
	return &LineGate{console: console}
}

// Advance shows prompt and waits for a line. The end of input returns ErrCancelled.
func (g *LineGate) Advance(ctx context.Context, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.console.ReadLine(prompt); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrCancelled
		}
		return fmt.Errorf("failed to read acknowledgment: %w", err)
	}
	return nil
}

// NopGate never blocks.
type NopGate struct{}

// Advance returns immediately unless ctx is done.
func (NopGate) Advance(ctx context.Context, _ string) error {
	return ctx.Err()
}
