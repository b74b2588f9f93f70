package testutil

import "context"

// RecordingGate is an advance gate that never blocks and records the
// prompts it was given. Setting FailAt to n > 0 makes the n-th call return Err.
type RecordingGate struct {
	Prompts []string
	FailAt  int
	Err     error
}

// Advance records prompt and returns immediately unless ctx is done.
func (g *RecordingGate) Advance(ctx context.Context, prompt string) error {
	g.Prompts = append(g.Prompts, prompt)
	if g.FailAt > 0 && len(g.Prompts) == g.FailAt {
		return g.Err
	}
	return ctx.Err()
}
