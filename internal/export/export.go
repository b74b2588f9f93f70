// Package export writes filtered incidents to a JSON file and, optionally,
// publishes them to a socket.io endpoint.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/specialistvlad/incidentfilter/internal/fsutil"
)

// Indent is the per-level indentation of written files.
const Indent = "    "

// Error reports a failed export. Display output already shown is unaffected.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Write encodes records to w as an indented JSON array. Non-ASCII text and
// HTML characters are written as-is.
func Write(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	return enc.Encode(records)
}

// Exporter saves records to a fixed path, replacing whatever was there.
type Exporter struct {
	path      string
	publisher *Publisher
}

// NewExporter returns an exporter for path. publisher may be nil.
func NewExporter(path string, publisher *Publisher) *Exporter {
	return &Exporter{path: path, publisher: publisher}
}

// Path returns the output path.
func (e *Exporter) Path() string {
	return e.path
}

// Save writes records to the output file. The file is closed before Save
// returns on every path.
func (e *Exporter) Save(ctx context.Context, records []Record) (err error) {
	logger := ctxlog.FromContext(ctx).With("output", e.path)

	w, err := fsutil.CreateOutput(e.path)
	if err != nil {
		return &Error{Path: e.path, Err: err}
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = &Error{Path: e.path, Err: cerr}
		}
	}()

	if err := Write(w, records); err != nil {
		return &Error{Path: e.path, Err: err}
	}
	logger.Info("Export written.", "records", len(records))
	return nil
}

// Publish sends records through the configured publisher. It is a no-op
// when none is configured.
func (e *Exporter) Publish(ctx context.Context, records []Record) error {
	if e.publisher == nil {
		return nil
	}
	return e.publisher.Publish(ctx, records)
}

// Publishes reports whether a publisher is configured.
func (e *Exporter) Publishes() bool {
	return e.publisher != nil
}
