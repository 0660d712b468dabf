package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/corkboard/pkg/core"
)

// Run starts the interactive board view and blocks until the user quits.
func Run(ctx context.Context, board *core.Board, logger *slog.Logger) error {
	model, err := NewModel(ctx, board, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}
