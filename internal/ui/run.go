package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ffstudio/internal/model"
	"ffstudio/internal/probe"
	"ffstudio/internal/supervisor"
)

// Run launches the interactive session and blocks until the user quits.
// The supervisor's tracker is wired to repaint the program whenever a
// job updates its log or progress from a background goroutine.
func Run(ctx context.Context, sup *supervisor.Supervisor, prober *probe.Prober, cfg model.EncodingConfig) error {
	m := NewModel(ctx, sup, prober, cfg)
	prog := tea.NewProgram(m, tea.WithContext(ctx))

	sup.Tracker().SetNotifier(func() {
		prog.Send(repaintMsg{})
	})
	defer sup.Tracker().SetNotifier(nil)

	_, err := prog.Run()
	return err
}
