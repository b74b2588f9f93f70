// Package present writes the run's console output: the banner, the result
// summary, the paced record listing and the closing messages.
package present

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/specialistvlad/incidentfilter/internal/incident"
	"github.com/specialistvlad/incidentfilter/internal/prompt"
	"github.com/specialistvlad/incidentfilter/internal/theme"
)

const (
	bannerWidth  = 50
	summaryWidth = 55
	footerWidth  = 60
)

// Options controls record layout.
type Options struct {
	// RecordTag is left out of the field listing.
	RecordTag string
	// Separator is printed before each field name.
	Separator string
	// FieldWidth is the minimum width of the field name column. Longer names
	// are printed in full.
	FieldWidth int
}

// Presenter writes console output for one run.
type Presenter struct {
	out   io.Writer
	theme *theme.Theme
	opts  Options
}

// New returns a presenter writing to out.
func New(out io.Writer, th *theme.Theme, opts Options) *Presenter {
	return &Presenter{out: out, theme: th, opts: opts}
}

// Banner writes the program header.
func (p *Presenter) Banner() {
	rule := strings.Repeat("-", bannerWidth)
	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Rule, rule))
	fmt.Fprintf(p.out, " %s\n", p.theme.Render(theme.Title, "INCIDENT FILTER BY PRIORITY"))
	fmt.Fprintln(p.out, " Priority: 1 = Low, 4 = Urgent")
	fmt.Fprintf(p.out, "%s\n", p.theme.Render(theme.Rule, rule))
}

// Summary reports how many records matched label, e.g. "priority level 2".
func (p *Presenter) Summary(count int, label string) {
	rule := p.theme.Render(theme.SummaryRule, strings.Repeat("=", summaryWidth))
	fmt.Fprintf(p.out, "\n%s\n", rule)
	if count == 0 {
		fmt.Fprintf(p.out, "🚫 No records found with %s.\n", label)
	} else {
		fmt.Fprintln(p.out, p.theme.Renderf(theme.Count, "Found %d incidents with %s.", count, label))
	}
	fmt.Fprintln(p.out, rule)
}

// Paginate shows records one at a time, calling gate before each one. It
// stops at the first gate error and returns it.
func (p *Presenter) Paginate(ctx context.Context, records []*incident.Node, gate prompt.Gate) error {
	logger := ctxlog.FromContext(ctx)
	if len(records) == 0 {
		return nil
	}

	fmt.Fprint(p.out, "\nShowing incidents one at a time:\n\n")
	for i, record := range records {
		msg := "\nPress Enter to view the next incident"
		if i == 0 {
			msg = "Press Enter to view the first incident"
		}
		if err := gate.Advance(ctx, p.theme.Render(theme.Pager, msg)); err != nil {
			logger.Debug("Pagination stopped.", "shown", i, "total", len(records), "error", err)
			return err
		}
		p.Record(i+1, len(records), record)
	}

	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Footer, strings.Repeat("-", footerWidth)))
	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Count, "End of incident list."))
	return nil
}

// Record writes the header and the fields of one record.
func (p *Presenter) Record(index, total int, record *incident.Node) {
	fmt.Fprintf(p.out, "\n%s\n\n", p.theme.Renderf(theme.Heading, "✅ Incident %d of %d:", index, total))
	for _, f := range incident.Fields(record, p.opts.RecordTag) {
		fmt.Fprintf(p.out, "  %s %-*s: %s\n", p.opts.Separator, p.opts.FieldWidth, f.Name, f.Value)
	}
}

// Notice writes an informational line.
func (p *Presenter) Notice(msg string) {
	fmt.Fprintf(p.out, "\n%s\n", msg)
}

// Success writes a highlighted confirmation.
func (p *Presenter) Success(msg string) {
	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Success, msg))
}

// Warning writes a highlighted, non-fatal warning.
func (p *Presenter) Warning(msg string) {
	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Warning, msg))
}

// Failure writes a highlighted error message.
func (p *Presenter) Failure(msg string) {
	fmt.Fprintf(p.out, "\n%s\n", p.theme.Render(theme.Failure, msg))
}

// MissingSource writes the framed report for a source file that does not exist.
func (p *Presenter) MissingSource(path string) {
	rule := strings.Repeat("=", footerWidth)
	fmt.Fprintln(p.out, p.theme.Render(theme.Failure, rule))
	fmt.Fprintln(p.out, p.theme.Renderf(theme.Failure, "ERROR: file '%s' not found.", path))
	fmt.Fprintln(p.out, p.theme.Render(theme.Failure, rule))
}

// Done writes the closing line of a completed run.
func (p *Presenter) Done() {
	fmt.Fprint(p.out, "\nProgram finished!\n")
}
