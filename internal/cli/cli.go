package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/incidentfilter/internal/app"
	"github.com/specialistvlad/incidentfilter/internal/config"
	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/specialistvlad/incidentfilter/internal/export"
	"github.com/specialistvlad/incidentfilter/internal/hcl_adapter"
	"github.com/specialistvlad/incidentfilter/internal/yaml_adapter"
	"github.com/spf13/pflag"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// configLoaders maps config file extensions to their loaders.
var configLoaders = config.Registry{
	".hcl":  hcl_adapter.NewLoader(),
	".yaml": yaml_adapter.NewLoader(),
	".yml":  yaml_adapter.NewLoader(),
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Values are layered: defaults, then the config file, then flags that were
// set explicitly.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := pflag.NewFlagSet("incidentfilter", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(output, `
incidentfilter - Browse incidents of an XML file by priority, one at a time.

Usage:
  incidentfilter [options] [SOURCE]

Arguments:
  SOURCE
    Path to the XML incident file (same as --source).

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	sourceFlag := flagSet.StringP("source", "s", defaults.SourcePath, "Path to the XML incident file.")
	outputFlag := flagSet.StringP("output", "o", defaults.OutputPath, "Path of the JSON export. A .gz suffix compresses it.")
	recordTagFlag := flagSet.String("record-tag", defaults.RecordTag, "Element name of one incident record.")
	priorityTagFlag := flagSet.String("priority-tag", defaults.PriorityTag, "Element name of the priority field.")
	separatorFlag := flagSet.String("separator", defaults.Separator, "Glyph printed before each field.")
	fieldWidthFlag := flagSet.Int("field-width", defaults.FieldWidth, "Minimum width of the field name column.")
	exportFlag := flagSet.Bool("export", false, "Save the matching incidents as JSON.")
	noPauseFlag := flagSet.Bool("no-pause", false, "Show every incident without waiting for Enter.")
	allFlag := flagSet.Bool("all", false, "Skip the priority prompt and show every incident.")
	priorityFlag := flagSet.IntP("priority", "p", 0, "Priority to search for (1-4). Asked interactively when unset.")
	colorFlag := flagSet.String("color", defaults.Color, "Colored output. Options: 'auto', 'always', 'never'.")
	configFlag := flagSet.StringP("config", "c", "", "Path to an .hcl, .yaml or .yml config file.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one SOURCE argument, got %d", flagSet.NArg())}
	}

	cfg := defaults
	if *configFlag != "" {
		ctx := ctxlog.WithLogger(context.Background(), slog.Default())
		model, err := configLoaders.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if err := applyModel(&cfg, model); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Config file applied.", "path", *configFlag)
	}

	changed := flagSet.Changed
	if changed("source") {
		cfg.SourcePath = *sourceFlag
	}
	if flagSet.NArg() == 1 {
		cfg.SourcePath = flagSet.Arg(0)
	}
	if changed("output") {
		cfg.OutputPath = *outputFlag
	}
	if changed("record-tag") {
		cfg.RecordTag = *recordTagFlag
	}
	if changed("priority-tag") {
		cfg.PriorityTag = *priorityTagFlag
	}
	if changed("separator") {
		cfg.Separator = *separatorFlag
	}
	if changed("field-width") {
		cfg.FieldWidth = *fieldWidthFlag
	}
	if changed("export") {
		cfg.Export = *exportFlag
	}
	if changed("no-pause") {
		cfg.NoPause = *noPauseFlag
	}
	if changed("all") {
		cfg.ShowAll = *allFlag
	}
	if changed("priority") {
		cfg.Priority = *priorityFlag
	}
	if changed("color") {
		cfg.Color = strings.ToLower(*colorFlag)
	}
	if changed("log-level") {
		cfg.LogLevel = strings.ToLower(*logLevelFlag)
	}
	if changed("log-format") {
		cfg.LogFormat = strings.ToLower(*logFormatFlag)
	}
	slog.Debug("Configuration layers merged.")

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

// applyModel copies every value set in the config file into cfg.
func applyModel(cfg *app.Config, m *config.Model) error {
	setString(&cfg.SourcePath, m.Source)
	setString(&cfg.OutputPath, m.Output)
	setString(&cfg.RecordTag, m.RecordTag)
	setString(&cfg.PriorityTag, m.PriorityTag)
	setString(&cfg.Separator, m.Separator)
	setString(&cfg.Color, m.Color)
	setString(&cfg.LogLevel, m.LogLevel)
	setString(&cfg.LogFormat, m.LogFormat)
	if m.FieldWidth != nil {
		cfg.FieldWidth = *m.FieldWidth
	}
	if m.Priority != nil {
		cfg.Priority = *m.Priority
	}
	if m.Export != nil {
		cfg.Export = *m.Export
	}
	if m.NoPause != nil {
		cfg.NoPause = *m.NoPause
	}
	if m.ShowAll != nil {
		cfg.ShowAll = *m.ShowAll
	}

	if m.Publish != nil {
		publish := &export.PublishConfig{
			URL:                m.Publish.URL,
			Namespace:          m.Publish.Namespace,
			Event:              m.Publish.Event,
			InsecureSkipVerify: m.Publish.InsecureSkipVerify,
		}
		if m.Publish.Timeout != "" {
			timeout, err := time.ParseDuration(m.Publish.Timeout)
			if err != nil {
				return fmt.Errorf("failed to parse publish timeout: %w", err)
			}
			publish.Timeout = timeout
		}
		cfg.Publish = publish
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
