package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/incidentfilter/internal/export"
	"github.com/specialistvlad/incidentfilter/internal/present"
	"github.com/specialistvlad/incidentfilter/internal/prompt"
	"github.com/specialistvlad/incidentfilter/internal/theme"
)

// PriorityPrompt is shown each time the user is asked for a priority.
const PriorityPrompt = "Enter the numeric priority from 1 to 4: "

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config    *Config
	logger    *slog.Logger
	console   *prompt.Console
	presenter *present.Presenter
	gate      prompt.Gate
	exporter  *export.Exporter
}

// NewApp is the constructor for the main application. User input is read
// from in, console output goes to outW and diagnostic logs to logW. It
// panics on a configuration that NewConfig would have rejected.
func NewApp(in io.Reader, outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", uuid.NewString())
	logger.Debug("Logger configured successfully.")

	colored, err := theme.Resolve(cfg.Color, outW)
	if err != nil {
		panic(err)
	}
	th := theme.Plain()
	if colored {
		th = theme.New(true)
	}
	logger.Debug("Console theme resolved.", "mode", cfg.Color, "colored", colored)

	console := prompt.NewConsole(in, outW, th)

	var gate prompt.Gate = prompt.NewLineGate(console)
	if cfg.NoPause {
		gate = prompt.NopGate{}
	}

	var exporter *export.Exporter
	if cfg.Export {
		var publisher *export.Publisher
		if cfg.Publish != nil {
			publisher, err = export.NewPublisher(*cfg.Publish)
			if err != nil {
				panic(fmt.Errorf("invalid publish configuration: %w", err))
			}
		}
		exporter = export.NewExporter(cfg.OutputPath, publisher)
		logger.Debug("Export enabled.", "output", cfg.OutputPath, "publish", publisher != nil)
	}

	return &App{
		config:  cfg,
		logger:  logger,
		console: console,
		presenter: present.New(outW, th, present.Options{
			RecordTag:  cfg.RecordTag,
			Separator:  cfg.Separator,
			FieldWidth: cfg.FieldWidth,
		}),
		gate:     gate,
		exporter: exporter,
	}
}

// WithGate replaces the gate used to pace record display.
func (a *App) WithGate(gate prompt.Gate) *App {
	a.gate = gate
	return a
}
