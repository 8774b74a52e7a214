package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"susc/internal/buildpipeline"
	"susc/internal/driver"
	"susc/internal/ui"
)

type compileOutcome struct {
	results []driver.Result
	err     error
}

// compileWithUI runs driver.Compile while a progress view follows its events.
func compileWithUI(ctx context.Context, title string, roots []string, opts driver.CompileOptions) ([]driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Compile(ctx, roots, opts)
		outcomeCh <- compileOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, roots, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
