package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikolayk812/legostore/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCategory string

var (
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E3000B"))
	priceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A7A7A"))
)

func runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	catalog, err := repository.LoadCatalogFile(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("repository.LoadCatalogFile: %w", err)
	}

	products, err := catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("catalog.ListProducts: %w", err)
	}

	categories, err := catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("catalog.Categories: %w", err)
	}

	var b strings.Builder
	for _, category := range categories {
		if catalogCategory != "" && !strings.EqualFold(category, catalogCategory) {
			continue
		}

		b.WriteString(categoryStyle.Render(category))
		b.WriteString("\n")

		for _, p := range products {
			if p.Category != category {
				continue
			}
			fmt.Fprintf(&b, "  %3d  %-20s %s  %s\n", p.ID, p.Title, priceStyle.Render(p.Price.Display()), p.ImagePath())
		}
	}

	logger.Debug("catalog listed", zap.Int("products", len(products)))

	_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
	return err
}
