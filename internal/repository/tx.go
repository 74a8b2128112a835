package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/legostore/internal/domain"
)

// withTx runs fn against a private copy of the session's items and commits
// the returned items only when fn succeeds. Readers never observe a partially
// applied change.
func withTx[T any](ctx context.Context, r *cartRepository, sessionID uuid.UUID, fn func(items []domain.CartItem) ([]domain.CartItem, T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := slices.Clone(r.carts[sessionID])

	next, result, err := fn(snapshot)
	if err != nil {
		// nothing to roll back, the snapshot is simply dropped
		return zero, err
	}

	r.carts[sessionID] = next

	return result, nil
}
