package main

import (
	"context"
	"fmt"

	"github.com/nikolayk812/legostore/internal/config"
	"github.com/nikolayk812/legostore/internal/repository"
	"github.com/nikolayk812/legostore/internal/shop"
	"github.com/nikolayk812/legostore/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runShop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("storefront opened",
		zap.Stringer("session_id", store.SessionID()),
		zap.Stringer("currency", store.State().TotalPrice.Currency))

	unsubscribe := store.Subscribe(func(st shop.State) {
		logger.Info("cart changed",
			zap.Int("total_quantity", st.TotalQuantity),
			zap.Int("entries", len(st.Items)))
	})
	defer unsubscribe()

	runErr := tui.Run(ctx, store, tui.Options{
		Nav:            cfg.UI.Nav,
		Category:       cfg.UI.Category,
		ShowTotalPrice: cfg.ShowTotalPrice,
	})

	// the cart does not outlive the session
	if _, err := store.Clear(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("clear cart on exit", zap.Error(err))
	}

	return runErr
}

func newStore(ctx context.Context, c config.Config, logger *zap.Logger) (*shop.Store, error) {
	catalog, err := repository.LoadCatalogFile(c.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("repository.LoadCatalogFile: %w", err)
	}

	want, err := c.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	if c.Currency != "" && want != catalog.Currency() {
		return nil, fmt.Errorf("config currency[%s] does not match catalog currency[%s]", want, catalog.Currency())
	}

	store, err := shop.New(ctx, shop.Config{
		Catalog: catalog,
		Carts:   repository.NewCart(repository.WithLogger(logger)),
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("shop.New: %w", err)
	}

	return store, nil
}
