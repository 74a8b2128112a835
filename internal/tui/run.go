package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikolayk812/legostore/internal/shop"
)

// Run shows the storefront until the user quits or ctx is done.
func Run(ctx context.Context, store *shop.Store, opts Options, progOpts ...tea.ProgramOption) error {
	m, err := New(ctx, store, opts)
	if err != nil {
		return fmt.Errorf("tui.New: %w", err)
	}

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)

	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("program.Run: %w", err)
	}

	return nil
}
