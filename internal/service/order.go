package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/state"
)

// ErrNoBuyer means checkout was attempted without a stored buyer profile.
// No network call is made in that case.
var ErrNoBuyer = errors.New("buyer profile missing")

// Every order is created in this state with this description; status
// transitions happen server-side afterwards.
const (
	orderStatusProcessing = "processing"
	orderDescription      = "new order"
)

// OrderGateway is the slice of the gateway the order service needs. It
// includes basket removal because a confirmed order is followed by clearing
// the submitted items from the remote basket.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	RemoveFromBasket(ctx context.Context, productID string) error
	FilterOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

// OrderService composes orders from the basket snapshot and lists order
// history.
type OrderService struct {
	gw    OrderGateway
	state *state.AppState
	log   *slog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(gw OrderGateway, st *state.AppState, log *slog.Logger) *OrderService {
	return &OrderService{gw: gw, state: st, log: log}
}

// Checkout turns the current basket snapshot into an order.
//
// The buyer profile is required up front. Items are frozen into value
// snapshots and the total is computed from the coerced price and quantity.
// Only after the gateway confirms the order does the service clear the
// remote basket, one delete per submitted item, so no window exists where
// the basket is emptied before an order exists. The per-item clear is best
// effort: failures are collected and reported, not silently swallowed, and
// the local snapshot is emptied regardless.
func (s *OrderService) Checkout(ctx context.Context, buyer *models.BuyerProfile) (*models.Order, error) {
	if buyer == nil {
		return nil, ErrNoBuyer
	}

	items := s.state.Basket().Products
	req := models.OrderRequest{
		Status:      orderStatusProcessing,
		Description: orderDescription,
		Price:       models.Number(state.OrderTotal(items)),
		Buyer:       *buyer,
		Items:       state.OrderItems(items),
	}

	order, err := s.gw.CreateOrder(ctx, req)
	if err != nil {
		// Local basket stays untouched; the user can retry.
		s.log.Error("failed to create order", "error", err)
		return nil, err
	}
	s.log.Info("order created", "order_id", order.ID, "items", len(req.Items), "total", req.Price.Float64())

	if err := s.clearRemoteBasket(ctx, items); err != nil {
		s.log.Warn("basket not fully cleared after order", "order_id", order.ID, "error", err)
	}
	s.state.ClearBasket()

	return order, nil
}

// clearRemoteBasket removes every submitted item from the remote basket,
// continuing past individual failures and reporting them together.
func (s *OrderService) clearRemoteBasket(ctx context.Context, items []models.BasketItem) error {
	var errs []error
	for _, item := range items {
		if err := s.gw.RemoveFromBasket(ctx, item.ID); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", item.ID, err))
		}
	}
	return errors.Join(errs...)
}

// Orders lists the buyer's past orders, most recently created first. A
// failed fetch degrades to an empty list.
func (s *OrderService) Orders(ctx context.Context, buyer models.BuyerProfile) []models.Order {
	orders, err := s.gw.FilterOrders(ctx, models.OrderFilter{
		BuyerFullName:           buyer.FullName(),
		SortCreatedAtDescending: true,
	})
	if err != nil {
		s.log.Error("failed to fetch orders", "error", err)
		return nil
	}
	return orders
}
