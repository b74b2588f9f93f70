// Package yaml_adapter loads configuration files written in YAML.
package yaml_adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/incidentfilter/internal/config"
	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Source      *string       `yaml:"source"`
	Output      *string       `yaml:"output"`
	RecordTag   *string       `yaml:"record_tag"`
	PriorityTag *string       `yaml:"priority_tag"`
	Separator   *string       `yaml:"separator"`
	FieldWidth  *int          `yaml:"field_width"`
	Export      *bool         `yaml:"export"`
	NoPause     *bool         `yaml:"no_pause"`
	ShowAll     *bool         `yaml:"all"`
	Priority    *int          `yaml:"priority"`
	Color       *string       `yaml:"color"`
	LogLevel    *string       `yaml:"log_level"`
	LogFormat   *string       `yaml:"log_format"`
	Publish     *publishBlock `yaml:"publish"`
}

type publishBlock struct {
	URL                string `yaml:"url"`
	Event              string `yaml:"event"`
	Namespace          string `yaml:"namespace"`
	Timeout            string `yaml:"timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// Load decodes the YAML file at path. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("config", path)
	logger.Debug("YAML loader started.")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer f.Close()

	var root fileRoot
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	if root.Publish != nil {
		if root.Publish.URL == "" || root.Publish.Event == "" {
			return nil, fmt.Errorf("invalid YAML file %s: publish requires url and event", path)
		}
	}

	logger.Debug("YAML loading complete.", "publish", root.Publish != nil)
	return root.translate(), nil
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
