package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/legostore/internal/domain"
)

type CartRepository interface {
	GetCart(ctx context.Context, sessionID uuid.UUID) (domain.Cart, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, product domain.Product) (domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, productID domain.ProductID) (domain.Cart, bool, error)
	DeleteCart(ctx context.Context, sessionID uuid.UUID) error
}
