package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/incidentfilter/internal/theme"
)

// ErrCancelled signals that the user ended the run on purpose.
var ErrCancelled = errors.New("cancelled by user")

// Console reads lines from the user and writes prompts and warnings.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	theme *theme.Theme
}

// NewConsole returns a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, th *theme.Theme) *Console {
	return &Console{in: bufio.NewReader(in), out: out, theme: th}
}

// ReadLine writes prompt and returns the next input line without its line
// terminator. It returns io.EOF only when the input ends before any text.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Warn writes a highlighted warning surrounded by blank lines.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.out, "\n%s\n\n", c.theme.Render(theme.Warning, "⚠️ "+msg))
}
