package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type Cart struct {
	SessionID uuid.UUID
	Items     []CartItem
}

type CartItem struct {
	Product
	Quantity int

	AddedAt time.Time
}

func (c Cart) Find(id ProductID) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}

	return CartItem{}, false
}

func (c Cart) TotalQuantity() int {
	return TotalQuantity(c.Items)
}

// AddItem returns a new item list where the entry for p has one more unit,
// appending {p, 1} at the end when p is not in the cart yet.
// p is taken as given, it is not checked against any catalog.
func AddItem(items []CartItem, p Product, now time.Time) []CartItem {
	next := make([]CartItem, 0, len(items)+1)
	found := false

	for _, item := range items {
		if item.ID == p.ID {
			item.Quantity++
			found = true
		}
		next = append(next, item)
	}

	if !found {
		next = append(next, CartItem{Product: p, Quantity: 1, AddedAt: now})
	}

	return next
}

// RemoveItem returns a new item list with one unit of id taken away.
// Entries that end up with a non-positive quantity are dropped.
func RemoveItem(items []CartItem, id ProductID) []CartItem {
	next := make([]CartItem, 0, len(items))

	for _, item := range items {
		if item.ID == id {
			item.Quantity--
		}
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}

	return next
}

func TotalQuantity(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}

	return total
}

// Subtotal sums price times quantity over items. All prices must be in cur.
func Subtotal(items []CartItem, cur currency.Unit) (Money, error) {
	total := Money{Currency: cur}

	for _, item := range items {
		var err error
		total, err = total.Add(item.Price.Mul(item.Quantity))
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}
