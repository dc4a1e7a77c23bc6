package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/jivebars/internal/scene"
)

// Task is the work shown behind the progress UI. It must return once ctx
// is cancelled.
type Task func(ctx context.Context, r scene.Reporter) (*Summary, error)

// Run shows the progress UI while task runs in its own goroutine. Quitting
// the UI early, or cancelling ctx, cancels the task's context. Run returns
// only after the task has returned.
func Run(ctx context.Context, model *Model, task Task, opts ...tea.ProgramOption) (*Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)

	var summary *Summary
	var taskErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		summary, taskErr = task(ctx, NewReporter(p.Send))
		if taskErr != nil {
			p.Send(FailedMsg{Err: taskErr})
			return
		}
		p.Send(CompleteMsg{Summary: *summary})
	}()

	_, uiErr := p.Run()
	cancel()
	<-done

	if uiErr != nil {
		return nil, fmt.Errorf("running UI: %w", uiErr)
	}
	if taskErr != nil {
		return nil, taskErr
	}
	return summary, nil
}
