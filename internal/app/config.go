package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/incidentfilter/internal/export"
	"github.com/specialistvlad/incidentfilter/internal/prompt"
	"github.com/specialistvlad/incidentfilter/internal/theme"
)

// Defaults used when neither a config file nor a flag sets a value.
const (
	DefaultSourcePath  = "incidencies.xml"
	DefaultOutputPath  = "incidencies.json"
	DefaultRecordTag   = "Incidencia"
	DefaultPriorityTag = "Prioritat_de_lincidncia"
	DefaultSeparator   = "-"
	DefaultFieldWidth  = 30
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SourcePath  string
	OutputPath  string
	RecordTag   string
	PriorityTag string
	Separator   string
	FieldWidth  int

	// Export enables writing the filtered records to OutputPath.
	Export bool
	// NoPause shows every record without waiting for the user.
	NoPause bool
	// ShowAll skips the priority prompt and shows every record.
	ShowAll bool
	// Priority, when non-zero, is used instead of asking the user.
	Priority int

	Color     string
	LogLevel  string
	LogFormat string

	// Publish, when set, receives the exported records.
	Publish *export.PublishConfig
}

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() Config {
	return Config{
		SourcePath:  DefaultSourcePath,
		OutputPath:  DefaultOutputPath,
		RecordTag:   DefaultRecordTag,
		PriorityTag: DefaultPriorityTag,
		Separator:   DefaultSeparator,
		FieldWidth:  DefaultFieldWidth,
		Color:       theme.ModeAuto,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	if strings.TrimSpace(cfg.SourcePath) == "" {
		errs = append(errs, errors.New("source path is required"))
	}
	if cfg.Export && strings.TrimSpace(cfg.OutputPath) == "" {
		errs = append(errs, errors.New("output path is required when export is enabled"))
	}
	if strings.TrimSpace(cfg.RecordTag) == "" {
		errs = append(errs, errors.New("record tag is required"))
	}
	if strings.TrimSpace(cfg.PriorityTag) == "" {
		errs = append(errs, errors.New("priority tag is required"))
	}
	if cfg.FieldWidth < 0 {
		errs = append(errs, fmt.Errorf("field width must not be negative, got %d", cfg.FieldWidth))
	}
	if p := prompt.Priority(cfg.Priority); p != 0 && (p < prompt.MinPriority || p > prompt.MaxPriority) {
		errs = append(errs, fmt.Errorf("%w: %d", prompt.ErrOutOfRange, cfg.Priority))
	}
	if cfg.ShowAll && cfg.Priority != 0 {
		errs = append(errs, errors.New("priority cannot be combined with showing all records"))
	}

	switch cfg.Color {
	case theme.ModeAuto, theme.ModeAlways, theme.ModeNever:
	default:
		errs = append(errs, fmt.Errorf("invalid color mode %q: must be 'auto', 'always' or 'never'", cfg.Color))
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat))
	}

	if cfg.Publish != nil {
		if !cfg.Export {
			errs = append(errs, errors.New("publish requires export to be enabled"))
		}
		if _, err := export.NewPublisher(*cfg.Publish); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
