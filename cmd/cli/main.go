package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/incidentfilter/internal/app"
	"github.com/specialistvlad/incidentfilter/internal/cli"
)

// main is the entrypoint for the incidentfilter application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Every run outcome, including a missing or malformed source, is
// reported on outW and ends with a nil error.
func run(in io.Reader, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// NewApp panics on configuration it cannot use; turn that into an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	incidentApp := app.NewApp(in, outW, errW, appConfig)
	incidentApp.Run(context.Background())
	return nil
}
