package service

import (
	"context"
	"log/slog"

	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/state"
)

// BasketGateway is the slice of the gateway the basket service needs.
type BasketGateway interface {
	Basket(ctx context.Context) (models.Basket, error)
	AddToBasket(ctx context.Context, p models.Product) error
	RemoveFromBasket(ctx context.Context, productID string) error
}

// BasketService keeps the local basket snapshot in sync with the remote
// basket. The remote basket is the single source of truth: the snapshot is
// only ever replaced by a fetch result, never adjusted by local arithmetic.
type BasketService struct {
	gw    BasketGateway
	state *state.AppState
	log   *slog.Logger
}

// NewBasketService creates a basket service.
func NewBasketService(gw BasketGateway, st *state.AppState, log *slog.Logger) *BasketService {
	return &BasketService{gw: gw, state: st, log: log}
}

// Refresh fetches the remote basket and replaces the local snapshot. On any
// failure the snapshot is reset to empty rather than retaining stale data.
// Refresh is the explicit entry point the presentation layer calls when the
// basket becomes visible.
func (s *BasketService) Refresh(ctx context.Context) {
	basket, err := s.gw.Basket(ctx)
	if err != nil {
		s.log.Error("failed to fetch basket", "error", err)
		s.state.SetBasket(models.Basket{})
		return
	}
	s.state.SetBasket(basket)
}

// Add sends a single-unit add for the product. The quantity is always 1; the
// server increments it on duplicate adds. The local snapshot is considered
// stale until the next Refresh — Add does not re-fetch.
func (s *BasketService) Add(ctx context.Context, p models.Product) error {
	if err := s.gw.AddToBasket(ctx, p); err != nil {
		s.log.Error("failed to add product to basket", "product_id", p.ID, "error", err)
		return err
	}
	return nil
}

// Remove deletes a product from the remote basket and, once the delete is
// acknowledged, re-fetches so the snapshot strictly reflects the remote
// state. Never optimistic.
func (s *BasketService) Remove(ctx context.Context, productID string) error {
	if err := s.gw.RemoveFromBasket(ctx, productID); err != nil {
		s.log.Error("failed to remove product from basket", "product_id", productID, "error", err)
		return err
	}
	s.Refresh(ctx)
	return nil
}
