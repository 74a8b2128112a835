package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/legostore/internal/domain"
	"github.com/nikolayk812/legostore/internal/port"
	"go.uber.org/zap"
)

type cartRepository struct {
	mu     sync.RWMutex
	carts  map[uuid.UUID][]domain.CartItem
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*cartRepository)

func WithClock(now func() time.Time) Option {
	return func(r *cartRepository) {
		r.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *cartRepository) {
		r.logger = logger
	}
}

// NewCart returns a cart repository that keeps carts in process memory.
// Carts are gone when the process exits.
func NewCart(opts ...Option) port.CartRepository {
	r := &cartRepository{
		carts:  make(map[uuid.UUID][]domain.CartItem),
		now:    time.Now,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *cartRepository) GetCart(ctx context.Context, sessionID uuid.UUID) (domain.Cart, error) {
	if sessionID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("sessionID is empty")
	}

	if err := ctx.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("ctx.Err: %w", err)
	}

	r.mu.RLock()
	items := slices.Clone(r.carts[sessionID])
	r.mu.RUnlock()

	return domain.Cart{
		SessionID: sessionID,
		Items:     items,
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, sessionID uuid.UUID, product domain.Product) (domain.Cart, error) {
	if sessionID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("sessionID is empty")
	}

	items, err := withTx(ctx, r, sessionID, func(items []domain.CartItem) ([]domain.CartItem, []domain.CartItem, error) {
		next := domain.AddItem(items, product, r.now())
		return next, slices.Clone(next), nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("withTx: %w", err)
	}

	r.logger.Debug("cart item added",
		zap.Stringer("session_id", sessionID),
		zap.Int("product_id", int(product.ID)))

	return domain.Cart{SessionID: sessionID, Items: items}, nil
}

type removeResult struct {
	items   []domain.CartItem
	changed bool
}

func (r *cartRepository) RemoveItem(ctx context.Context, sessionID uuid.UUID, productID domain.ProductID) (domain.Cart, bool, error) {
	if sessionID == uuid.Nil {
		return domain.Cart{}, false, fmt.Errorf("sessionID is empty")
	}

	res, err := withTx(ctx, r, sessionID, func(items []domain.CartItem) ([]domain.CartItem, removeResult, error) {
		_, found := domain.Cart{Items: items}.Find(productID)
		next := domain.RemoveItem(items, productID)
		return next, removeResult{items: slices.Clone(next), changed: found}, nil
	})
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("withTx: %w", err)
	}

	if res.changed {
		r.logger.Debug("cart item removed",
			zap.Stringer("session_id", sessionID),
			zap.Int("product_id", int(productID)))
	}

	return domain.Cart{SessionID: sessionID, Items: res.items}, res.changed, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return fmt.Errorf("sessionID is empty")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ctx.Err: %w", err)
	}

	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()

	return nil
}
