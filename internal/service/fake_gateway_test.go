package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/wims/storefront/internal/models"
)

// fakeGateway scripts gateway responses and records the calls the services
// make, so workflow behavior can be tested without any HTTP.
type fakeGateway struct {
	categories    []models.Category
	categoriesErr error

	products   []models.Product
	filterErr  error
	lastFilter models.ProductFilter

	basket     models.Basket
	basketErr  error
	fetchCalls int

	addErr    error
	added     []models.Product
	removeErr map[string]error
	removed   []string

	order           *models.Order
	createErr       error
	createCalls     int
	lastOrderReq    models.OrderRequest
	orders          []models.Order
	ordersErr       error
	lastOrderFilter models.OrderFilter
}

func (f *fakeGateway) Categories(ctx context.Context) ([]models.Category, error) {
	return f.categories, f.categoriesErr
}

func (f *fakeGateway) FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	f.lastFilter = filter
	return f.products, f.filterErr
}

func (f *fakeGateway) Basket(ctx context.Context) (models.Basket, error) {
	f.fetchCalls++
	if f.basketErr != nil {
		return models.Basket{}, f.basketErr
	}
	return f.basket, nil
}

func (f *fakeGateway) AddToBasket(ctx context.Context, p models.Product) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, p)
	return nil
}

func (f *fakeGateway) RemoveFromBasket(ctx context.Context, productID string) error {
	if err := f.removeErr[productID]; err != nil {
		return err
	}
	f.removed = append(f.removed, productID)
	return nil
}

func (f *fakeGateway) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	f.createCalls++
	f.lastOrderReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.order, nil
}

func (f *fakeGateway) FilterOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	f.lastOrderFilter = filter
	return f.orders, f.ordersErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
