package port

import (
	"context"

	"github.com/nikolayk812/legostore/internal/domain"
	"golang.org/x/text/currency"
)

type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error)
	Categories(ctx context.Context) ([]string, error)

	// Currency is the currency all catalog prices are in.
	Currency() currency.Unit
}
