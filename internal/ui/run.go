package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lwfront/internal/driver"
)

// RunProgress shows the progress view while work runs. work gets a sink
// that feeds the view; the view exits once work returns.
func RunProgress(ctx context.Context, out io.Writer, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 64)
	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))

	workErr := make(chan error, 1)
	go func() {
		defer close(events)
		workErr <- work(driver.ChannelSink{Ch: events})
	}()

	_, uiErr := program.Run()
	if uiErr != nil {
		// вид упал: дочитываем события, чтобы воркеры не встали на канале
		for range events {
		}
	}
	if err := <-workErr; err != nil {
		return err
	}
	return uiErr
}
