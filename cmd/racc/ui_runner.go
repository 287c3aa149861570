package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"racc/internal/driver"
	"racc/internal/ui"
)

type tablesOutcome struct {
	result *driver.TablesResult
	err    error
}

func runTablesWithUI(ctx context.Context, title string, req *driver.TablesRequest) (*driver.TablesResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing tables request")
	}
	events := make(chan driver.Event, 64)
	outcomeCh := make(chan tablesOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.EmitTables(ctx, &reqCopy)
		outcomeCh <- tablesOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Stages(), events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
