package domain_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nikolayk812/legostore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestAddItem(t *testing.T) {
	now := time.Now()
	a := product(1, "A", 10)
	b := product(2, "B", 20)

	tests := []struct {
		name    string
		items   []domain.CartItem
		product domain.Product
		want    []domain.CartItem
	}{
		{
			name:    "add to empty cart: new entry",
			items:   nil,
			product: a,
			want:    []domain.CartItem{{Product: a, Quantity: 1}},
		},
		{
			name:    "add existing product: quantity incremented",
			items:   []domain.CartItem{{Product: a, Quantity: 1}},
			product: a,
			want:    []domain.CartItem{{Product: a, Quantity: 2}},
		},
		{
			name:    "add second product: appended in order",
			items:   []domain.CartItem{{Product: a, Quantity: 3}},
			product: b,
			want:    []domain.CartItem{{Product: a, Quantity: 3}, {Product: b, Quantity: 1}},
		},
		{
			name:    "add first product again: order kept",
			items:   []domain.CartItem{{Product: a, Quantity: 1}, {Product: b, Quantity: 1}},
			product: a,
			want:    []domain.CartItem{{Product: a, Quantity: 2}, {Product: b, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.AddItem(tt.items, tt.product, now)
			assertItems(t, tt.want, got)
		})
	}
}

func TestAddItem_DoesNotMutateInput(t *testing.T) {
	a := product(1, "A", 10)
	items := []domain.CartItem{{Product: a, Quantity: 1}}

	next := domain.AddItem(items, a, time.Now())

	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, next[0].Quantity)
}

func TestAddItem_UnknownProductAccepted(t *testing.T) {
	stray := domain.Product{ID: 999, Title: "not in catalog"}

	got := domain.AddItem(nil, stray, time.Now())

	require.Len(t, got, 1)
	assert.Equal(t, stray, got[0].Product)
	assert.Equal(t, 1, got[0].Quantity)
	assert.False(t, got[0].AddedAt.IsZero())
}

func TestRemoveItem(t *testing.T) {
	a := product(1, "A", 10)
	b := product(2, "B", 20)

	tests := []struct {
		name  string
		items []domain.CartItem
		id    domain.ProductID
		want  []domain.CartItem
	}{
		{
			name:  "remove from quantity 2: decremented",
			items: []domain.CartItem{{Product: a, Quantity: 2}},
			id:    a.ID,
			want:  []domain.CartItem{{Product: a, Quantity: 1}},
		},
		{
			name:  "remove last unit: entry dropped",
			items: []domain.CartItem{{Product: a, Quantity: 1}},
			id:    a.ID,
			want:  []domain.CartItem{},
		},
		{
			name:  "remove unknown id: unchanged",
			items: []domain.CartItem{{Product: a, Quantity: 1}},
			id:    b.ID,
			want:  []domain.CartItem{{Product: a, Quantity: 1}},
		},
		{
			name:  "remove from empty cart: unchanged",
			items: nil,
			id:    a.ID,
			want:  []domain.CartItem{},
		},
		{
			name:  "remove middle entry: others keep order",
			items: []domain.CartItem{{Product: b, Quantity: 1}, {Product: a, Quantity: 1}, {Product: product(3, "C", 5), Quantity: 4}},
			id:    a.ID,
			want:  []domain.CartItem{{Product: b, Quantity: 1}, {Product: product(3, "C", 5), Quantity: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.RemoveItem(tt.items, tt.id)
			assertItems(t, tt.want, got)
		})
	}
}

func TestRemoveItem_DoesNotMutateInput(t *testing.T) {
	a := product(1, "A", 10)
	items := []domain.CartItem{{Product: a, Quantity: 1}}

	next := domain.RemoveItem(items, a.ID)

	assert.Empty(t, next)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartScenario(t *testing.T) {
	a := product(1, "A", 10)
	now := time.Now()

	var items []domain.CartItem

	items = domain.AddItem(items, a, now)
	assertItems(t, []domain.CartItem{{Product: a, Quantity: 1}}, items)
	assert.Equal(t, 1, domain.TotalQuantity(items))

	items = domain.AddItem(items, a, now)
	assertItems(t, []domain.CartItem{{Product: a, Quantity: 2}}, items)
	assert.Equal(t, 2, domain.TotalQuantity(items))

	items = domain.RemoveItem(items, a.ID)
	assertItems(t, []domain.CartItem{{Product: a, Quantity: 1}}, items)
	assert.Equal(t, 1, domain.TotalQuantity(items))

	items = domain.RemoveItem(items, a.ID)
	assert.Empty(t, items)
	assert.Equal(t, 0, domain.TotalQuantity(items))

	// a further remove on the same id is a no-op
	items = domain.RemoveItem(items, a.ID)
	assert.Empty(t, items)
	assert.Equal(t, 0, domain.TotalQuantity(items))
}

func TestRandomActions_CounterMatchesEntries(t *testing.T) {
	catalog := make([]domain.Product, 5)
	for i := range catalog {
		catalog[i] = randomProduct(domain.ProductID(i + 1))
	}

	rng := rand.New(rand.NewPCG(1, 2))
	var items []domain.CartItem

	for range 500 {
		p := catalog[rng.IntN(len(catalog))]
		if rng.IntN(2) == 0 {
			items = domain.AddItem(items, p, time.Now())
		} else {
			items = domain.RemoveItem(items, p.ID)
		}

		seen := make(map[domain.ProductID]bool)
		sum := 0
		for _, item := range items {
			require.False(t, seen[item.ID], "duplicate entry for %d", item.ID)
			require.Positive(t, item.Quantity)
			seen[item.ID] = true
			sum += item.Quantity
		}
		require.Equal(t, sum, domain.TotalQuantity(items))
	}
}

func TestCartFind(t *testing.T) {
	a := product(1, "A", 10)
	cart := domain.Cart{Items: []domain.CartItem{{Product: a, Quantity: 3}}}

	item, ok := cart.Find(a.ID)
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 3, cart.TotalQuantity())

	_, ok = cart.Find(42)
	assert.False(t, ok)
}

func TestSubtotal(t *testing.T) {
	items := []domain.CartItem{
		{Product: product(1, "A", 10), Quantity: 2},
		{Product: product(2, "B", 129.5), Quantity: 1},
	}

	got, err := domain.Subtotal(items, currency.NOK)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("149.5").Equal(got.Amount), got.Amount.String())
	assert.Equal(t, currency.NOK, got.Currency)

	empty, err := domain.Subtotal(nil, currency.NOK)
	require.NoError(t, err)
	assert.True(t, empty.Amount.IsZero())
}

func TestSubtotal_MixedCurrencies(t *testing.T) {
	foreign := product(2, "B", 5)
	foreign.Price.Currency = currency.EUR

	items := []domain.CartItem{
		{Product: product(1, "A", 10), Quantity: 1},
		{Product: foreign, Quantity: 1},
	}

	_, err := domain.Subtotal(items, currency.NOK)
	require.EqualError(t, err, "currency mismatch: NOK and EUR")
}

func TestMoneyDisplay(t *testing.T) {
	tests := []struct {
		name  string
		money domain.Money
		want  string
	}{
		{
			name:  "kroner",
			money: domain.NewMoney(decimal.NewFromInt(129), currency.NOK),
			want:  "Kr. 129,-",
		},
		{
			name:  "euro",
			money: domain.NewMoney(decimal.RequireFromString("12.5"), currency.EUR),
			want:  "EUR 12.5",
		},
		{
			name:  "swedish kronor are not kroner",
			money: domain.NewMoney(decimal.NewFromInt(40), currency.SEK),
			want:  "SEK 40",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.money.Display())
		})
	}
}

func TestProductImagePath(t *testing.T) {
	p := domain.Product{ImageFile: "kai.webp"}
	assert.Equal(t, "website_images/PROD_kai.webp", p.ImagePath())
}

func product(id domain.ProductID, title string, price float64) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    title,
		Category: "Ninjago",
		Price:    domain.NewMoney(decimal.NewFromFloat(price), currency.NOK),
	}
}

func randomProduct(id domain.ProductID) domain.Product {
	return domain.Product{
		ID:        id,
		Title:     gofakeit.ProductName(),
		Category:  gofakeit.ProductCategory(),
		Price:     domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)), currency.NOK),
		ImageFile: gofakeit.Word() + ".webp",
	}
}

func assertItems(t *testing.T, expected, actual []domain.CartItem) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.CartItem{}, "AddedAt"),
		cmpopts.EquateEmpty(),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}
