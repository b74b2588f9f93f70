package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/specialistvlad/incidentfilter/internal/export"
	"github.com/specialistvlad/incidentfilter/internal/incident"
	"github.com/specialistvlad/incidentfilter/internal/prompt"
)

// Outcome describes how a run ended. Every outcome has already been reported
// to the user when Run returns.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
	OutcomeSourceMissing
	OutcomeSourceMalformed
	OutcomeExportFailed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSourceMissing:
		return "source_missing"
	case OutcomeSourceMalformed:
		return "source_malformed"
	case OutcomeExportFailed:
		return "export_failed"
	default:
		return "failed"
	}
}

// Run executes one load, select, filter, present and export cycle. No error
// escapes: each failure is reported on the console and mapped to an Outcome.
func (a *App) Run(ctx context.Context) (outcome Outcome) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "source", a.config.SourcePath)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Recovered from unexpected failure.", "panic", r)
			a.presenter.Failure(fmt.Sprintf("Unexpected error: %v", r))
			outcome = OutcomeFailed
		}
		a.logger.Info("Run finished.", "outcome", outcome.String())
	}()

	if err := a.run(ctx); err != nil {
		return a.report(err)
	}
	return OutcomeCompleted
}

func (a *App) run(ctx context.Context) error {
	root, err := incident.Load(ctx, a.config.SourcePath)
	if err != nil {
		return err
	}
	a.presenter.Banner()

	records, label, err := a.selectRecords(ctx, root)
	if err != nil {
		return err
	}
	a.presenter.Summary(len(records), label)

	if len(records) > 0 {
		if err := a.presenter.Paginate(ctx, records, a.gate); err != nil {
			return err
		}
	}

	var exportErr error
	if a.exporter != nil {
		exportErr = a.save(ctx, records)
	}

	a.presenter.Done()
	return exportErr
}

// selectRecords returns the records to show and a label describing the selection.
func (a *App) selectRecords(ctx context.Context, root *incident.Node) ([]*incident.Node, string, error) {
	logger := ctxlog.FromContext(ctx)

	if a.config.ShowAll {
		records := incident.Records(root, a.config.RecordTag)
		logger.Info("Listing all records.", "count", len(records))
		return records, "any priority", nil
	}

	priority := prompt.Priority(a.config.Priority)
	if priority == 0 {
		var err error
		priority, err = prompt.NewPrompter(a.console, PriorityPrompt).Ask(ctx)
		if err != nil {
			return nil, "", err
		}
	}

	records := incident.Filter(root, a.config.RecordTag, a.config.PriorityTag, int(priority))
	logger.Info("Records filtered.", "priority", int(priority), "count", len(records))
	return records, "priority level " + priority.String(), nil
}

// save writes records to the export file and reports the result. Display
// output already shown is never affected by a failure here.
func (a *App) save(ctx context.Context, records []*incident.Node) error {
	if len(records) == 0 {
		a.presenter.Warning("[JSON] There are no incidents to save.")
		return nil
	}

	flat := export.Build(records, a.config.RecordTag)
	if err := a.exporter.Save(ctx, flat); err != nil {
		a.presenter.Failure(fmt.Sprintf("[JSON ERROR] Could not save the file: %v", err))
		return err
	}
	a.presenter.Success(fmt.Sprintf("[JSON] Data saved to '%s' (file overwritten).", a.exporter.Path()))

	if a.exporter.Publishes() {
		if err := a.exporter.Publish(ctx, flat); err != nil {
			a.presenter.Failure(fmt.Sprintf("[PUBLISH ERROR] Could not publish incidents: %v", err))
			return err
		}
		a.presenter.Success(fmt.Sprintf("[PUBLISH] Sent %d incidents.", len(flat)))
	}
	return nil
}

// report writes the message for a failed run and classifies it.
func (a *App) report(err error) Outcome {
	var (
		parseErr  *incident.ParseError
		exportErr *export.Error
	)

	switch {
	case errors.Is(err, prompt.ErrCancelled):
		a.presenter.Notice("The program has ended. Run it again to use it.")
		return OutcomeCancelled
	case errors.Is(err, incident.ErrSourceNotFound):
		a.presenter.MissingSource(a.config.SourcePath)
		return OutcomeSourceMissing
	case errors.As(err, &parseErr):
		a.presenter.Failure(fmt.Sprintf("ERROR reading the XML: the file is malformed. Detail: %v", parseErr.Err))
		return OutcomeSourceMalformed
	case errors.As(err, &exportErr):
		// Already reported by save.
		return OutcomeExportFailed
	default:
		a.logger.Error("Run failed.", "error", err)
		a.presenter.Failure(fmt.Sprintf("Unexpected error: %v", err))
		return OutcomeFailed
	}
}
