package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/dren-arifi/isrcfind/internal/shared"
	"github.com/dren-arifi/isrcfind/internal/ui"
)

// TUI launches the interactive terminal UI for video lookups.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	s, err := r.openStores()
	if err != nil {
		return err
	}
	defer s.Close()

	inputs, err := r.resolveInputs(cmd, s.kv)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/isrcfind-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	s.engine.WithLogger(fileLogger)

	model := ui.NewModel(ctx, s.engine, inputs)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
