// Package shop owns the cart state of one storefront session.
//
// All mutations go through Store, which applies them to the cart repository,
// re-derives the item counter and publishes the committed State to observers
// before returning. Observers only ever see committed state.
package shop

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/legostore/internal/domain"
	"github.com/nikolayk812/legostore/internal/port"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// State is a read-only view of the cart after a committed change.
type State struct {
	SessionID     uuid.UUID
	Items         []domain.CartItem
	TotalQuantity int
	TotalPrice    domain.Money
}

type Observer func(State)

type Store struct {
	// dispatchMu serializes events end to end, mu guards state and observers.
	dispatchMu sync.Mutex
	mu         sync.Mutex

	sessionID uuid.UUID
	catalog   port.CatalogRepository
	carts     port.CartRepository
	currency  currency.Unit
	logger    *zap.Logger

	state     State
	observers map[int]Observer
	nextObsID int
}

// Config wires a Store. Prices are totalled in the catalog's currency.
type Config struct {
	Catalog port.CatalogRepository
	Carts   port.CartRepository
	Logger  *zap.Logger
}

// New starts a session with an empty cart.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if cfg.Carts == nil {
		return nil, fmt.Errorf("carts is nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{
		sessionID: uuid.New(),
		catalog:   cfg.Catalog,
		carts:     cfg.Carts,
		currency:  cfg.Catalog.Currency(),
		logger:    logger,
		observers: make(map[int]Observer),
	}

	cart, err := s.carts.GetCart(ctx, s.sessionID)
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	s.commit(cart)

	s.logger.Info("session started", zap.Stringer("session_id", s.sessionID))

	return s, nil
}

func (s *Store) SessionID() uuid.UUID {
	return s.sessionID
}

func (s *Store) Catalog() port.CatalogRepository {
	return s.catalog
}

// State returns the last committed state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneState(s.state)
}

// Subscribe registers o to be called after every committed change, in
// registration order. Observers must not call back into mutating methods.
// The returned function removes o again.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = o

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.observers, id)
	}
}

// Add puts one unit of product into the cart. The product does not have to
// be part of the catalog.
func (s *Store) Add(ctx context.Context, product domain.Product) (State, error) {
	return s.dispatch(func() (domain.Cart, error) {
		cart, err := s.carts.AddItem(ctx, s.sessionID, product)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("carts.AddItem: %w", err)
		}

		s.logger.Debug("add to cart",
			zap.Int("product_id", int(product.ID)),
			zap.String("title", product.Title))

		return cart, nil
	})
}

// AddByID looks product id up in the catalog and adds it.
func (s *Store) AddByID(ctx context.Context, id domain.ProductID) (State, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}

	return s.Add(ctx, product)
}

// Remove takes one unit of id out of the cart. Unknown ids leave the cart as is.
func (s *Store) Remove(ctx context.Context, id domain.ProductID) (State, error) {
	return s.dispatch(func() (domain.Cart, error) {
		cart, changed, err := s.carts.RemoveItem(ctx, s.sessionID, id)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("carts.RemoveItem: %w", err)
		}

		s.logger.Debug("remove from cart",
			zap.Int("product_id", int(id)),
			zap.Bool("changed", changed))

		return cart, nil
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) (State, error) {
	return s.dispatch(func() (domain.Cart, error) {
		if err := s.carts.DeleteCart(ctx, s.sessionID); err != nil {
			return domain.Cart{}, fmt.Errorf("carts.DeleteCart: %w", err)
		}

		s.logger.Debug("cart cleared")

		return domain.Cart{SessionID: s.sessionID}, nil
	})
}

func (s *Store) dispatch(apply func() (domain.Cart, error)) (State, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	cart, err := apply()
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	s.commit(cart)
	state := cloneState(s.state)
	observers := make([]Observer, 0, len(s.observers))
	for _, id := range slices.Sorted(maps.Keys(s.observers)) {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(cloneState(state))
	}

	return state, nil
}

// commit re-derives the counter and total price from cart. Must be called with mu held.
func (s *Store) commit(cart domain.Cart) {
	total, err := domain.Subtotal(cart.Items, s.currency)
	if err != nil {
		s.logger.Warn("total price not available", zap.Error(err))
		total = domain.Money{Currency: s.currency}
	}

	s.state = State{
		SessionID:     s.sessionID,
		Items:         cart.Items,
		TotalQuantity: cart.TotalQuantity(),
		TotalPrice:    total,
	}
}

func cloneState(st State) State {
	st.Items = slices.Clone(st.Items)
	return st
}
