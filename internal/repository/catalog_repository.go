package repository

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/nikolayk812/legostore/internal/domain"
	"github.com/nikolayk812/legostore/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Currency string       `yaml:"currency"`
	Products []catalogRow `yaml:"products"`
}

type catalogRow struct {
	ProdID    int    `yaml:"prodid"`
	Title     string `yaml:"title"`
	Category  string `yaml:"category"`
	Price     string `yaml:"price"`
	ImageFile string `yaml:"imagefile"`
}

type catalogRepository struct {
	currency currency.Unit
	products []domain.Product
}

// NewCatalog returns a read-only catalog over products, kept in the given order.
func NewCatalog(cur currency.Unit, products []domain.Product) port.CatalogRepository {
	return &catalogRepository{
		currency: cur,
		products: slices.Clone(products),
	}
}

// LoadCatalog parses a YAML catalog. Rows are mapped as-is, ids are not
// checked for uniqueness.
func LoadCatalog(r io.Reader) (port.CatalogRepository, error) {
	var file catalogFile

	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	return newCatalogFromFile(file)
}

func LoadCatalogFile(path string) (port.CatalogRepository, error) {
	if path == "" {
		return DefaultCatalog()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() (port.CatalogRepository, error) {
	var file catalogFile

	if err := yaml.Unmarshal(defaultCatalog, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	return newCatalogFromFile(file)
}

func newCatalogFromFile(file catalogFile) (port.CatalogRepository, error) {
	parsedCurrency, err := currency.ParseISO(file.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", file.Currency, err)
	}

	products, err := mapCatalogRowsToDomain(parsedCurrency, file.Products)
	if err != nil {
		return nil, fmt.Errorf("mapCatalogRowsToDomain: %w", err)
	}

	return NewCatalog(parsedCurrency, products), nil
}

func (r *catalogRepository) Currency() currency.Unit {
	return r.currency
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx.Err: %w", err)
	}

	return slices.Clone(r.products), nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("ctx.Err: %w", err)
	}

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrProductNotFound)
}

func (r *catalogRepository) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx.Err: %w", err)
	}

	var categories []string
	for _, p := range r.products {
		if !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}

	return categories, nil
}

func mapCatalogRowToDomain(cur currency.Unit, row catalogRow) (domain.Product, error) {
	amount, err := decimal.NewFromString(row.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", row.Price, err)
	}

	return domain.Product{
		ID:        domain.ProductID(row.ProdID),
		Title:     row.Title,
		Category:  row.Category,
		Price:     domain.NewMoney(amount, cur),
		ImageFile: row.ImageFile,
	}, nil
}

func mapCatalogRowsToDomain(cur currency.Unit, rows []catalogRow) ([]domain.Product, error) {
	var products []domain.Product

	for _, row := range rows {
		product, err := mapCatalogRowToDomain(cur, row)
		if err != nil {
			return nil, fmt.Errorf("product[%d]: %w", row.ProdID, err)
		}

		products = append(products, product)
	}

	return products, nil
}
