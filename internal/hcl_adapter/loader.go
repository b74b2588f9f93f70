// Package hcl_adapter loads configuration files written in HCL.
package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/incidentfilter/internal/config"
	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader. Expressions in the file
// may refer to process environment variables as env.NAME.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// fileRoot is the schema of a configuration file.
type fileRoot struct {
	Source      *string       `hcl:"source,optional"`
	Output      *string       `hcl:"output,optional"`
	RecordTag   *string       `hcl:"record_tag,optional"`
	PriorityTag *string       `hcl:"priority_tag,optional"`
	Separator   *string       `hcl:"separator,optional"`
	FieldWidth  *int          `hcl:"field_width,optional"`
	Export      *bool         `hcl:"export,optional"`
	NoPause     *bool         `hcl:"no_pause,optional"`
	ShowAll     *bool         `hcl:"all,optional"`
	Priority    *int          `hcl:"priority,optional"`
	Color       *string       `hcl:"color,optional"`
	LogLevel    *string       `hcl:"log_level,optional"`
	LogFormat   *string       `hcl:"log_format,optional"`
	Publish     *publishBlock `hcl:"publish,block"`
}

type publishBlock struct {
	URL                string `hcl:"url"`
	Event              string `hcl:"event"`
	Namespace          string `hcl:"namespace,optional"`
	Timeout            string `hcl:"timeout,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Load parses and decodes the HCL file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("config", path)
	logger.Debug("HCL loader started.")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	logger.Debug("HCL loading complete.", "publish", root.Publish != nil)
	return root.translate(), nil
}

// evalContext exposes the process environment as the `env` object.
func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func (r *fileRoot) translate() *config.Model {
	m := &config.Model{
		Source:      r.Source,
		Output:      r.Output,
		RecordTag:   r.RecordTag,
		PriorityTag: r.PriorityTag,
		Separator:   r.Separator,
		FieldWidth:  r.FieldWidth,
		Export:      r.Export,
		NoPause:     r.NoPause,
		ShowAll:     r.ShowAll,
		Priority:    r.Priority,
		Color:       r.Color,
		LogLevel:    r.LogLevel,
		LogFormat:   r.LogFormat,
	}
	if r.Publish != nil {
		m.Publish = &config.Publish{
			URL:                r.Publish.URL,
			Namespace:          r.Publish.Namespace,
			Event:              r.Publish.Event,
			Timeout:            r.Publish.Timeout,
			InsecureSkipVerify: r.Publish.InsecureSkipVerify,
		}
	}
	return m
}
