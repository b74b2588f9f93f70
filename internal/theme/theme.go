// Package theme decides whether console output is colored and holds the
// styles used for each kind of console message.
package theme

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// Color modes accepted by Resolve.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

// Role names a kind of console message.
type Role int

const (
	Rule Role = iota
	Title
	Warning
	SummaryRule
	Count
	Pager
	Heading
	Footer
	Success
	Failure
)

var palette = map[Role]color.Style{
	Rule:        color.New(color.FgCyan),
	Title:       color.New(color.FgMagenta, color.OpBold),
	Warning:     color.New(color.FgYellow),
	SummaryRule: color.New(color.FgRed),
	Count:       color.New(color.FgLightRed),
	Pager:       color.New(color.FgLightGreen),
	Heading:     color.New(color.FgLightYellow),
	Footer:      color.New(color.FgBlue),
	Success:     color.New(color.FgGreen),
	Failure:     color.New(color.FgRed),
}

// Theme renders console text, with or without ANSI colors.
type Theme struct {
	enabled bool
}

// New returns a theme. A disabled theme renders text unchanged.
func New(enabled bool) *Theme {
	if enabled {
		color.ForceOpenColor()
	}
	return &Theme{enabled: enabled}
}

// Plain returns a theme that never emits escape codes.
func Plain() *Theme {
	return &Theme{}
}

// Enabled reports whether the theme emits colors.
func (t *Theme) Enabled() bool {
	return t != nil && t.enabled
}

// Render styles text for role.
func (t *Theme) Render(role Role, text string) string {
	if !t.Enabled() {
		return text
	}
	return palette[role].Sprint(text)
}

// Renderf formats according to format and styles the result for role.
func (t *Theme) Renderf(role Role, format string, args ...any) string {
	return t.Render(role, fmt.Sprintf(format, args...))
}

// Resolve maps a color mode to a decision for output w. In auto mode colors
// are used only when w is a terminal and NO_COLOR is unset.
func Resolve(mode string, w io.Writer) (bool, error) {
	switch mode {
	case ModeAlways:
		return true, nil
	case ModeNever:
		return false, nil
	case ModeAuto, "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid color mode %q: must be '%s', '%s' or '%s'", mode, ModeAuto, ModeAlways, ModeNever)
	}
}
