package service

import (
	"context"
	"log/slog"

	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/state"
)

// CatalogGateway is the slice of the gateway the catalog service needs.
type CatalogGateway interface {
	Categories(ctx context.Context) ([]models.Category, error)
	FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
}

// CatalogService loads categories and applies the product filter. Read
// failures degrade to empty data and a log line; they are never surfaced as
// blocking errors.
type CatalogService struct {
	gw      CatalogGateway
	state   *state.AppState
	log     *slog.Logger
	loading bool
}

// NewCatalogService creates a catalog service.
func NewCatalogService(gw CatalogGateway, st *state.AppState, log *slog.Logger) *CatalogService {
	return &CatalogService{gw: gw, state: st, log: log}
}

// Loading reports whether a filter request is in flight, for spinner display.
func (s *CatalogService) Loading() bool {
	return s.loading
}

// LoadCategories fetches the category list once per session. On failure the
// list stays empty.
func (s *CatalogService) LoadCategories(ctx context.Context) {
	categories, err := s.gw.Categories(ctx)
	if err != nil {
		s.log.Error("failed to fetch categories", "error", err)
		s.state.Categories = nil
		return
	}
	s.state.Categories = categories
}

// ApplyFilter builds a filter request from the current selection and price
// filter and fully replaces the displayed product list with the result. On
// failure the displayed list becomes empty. The loading flag is cleared on
// every exit path.
func (s *CatalogService) ApplyFilter(ctx context.Context) {
	s.loading = true
	defer func() { s.loading = false }()

	filter := models.ProductFilter{
		WarehouseID: []string{},
		CategoryID:  s.state.SelectedCategories(),
		Price:       s.state.Filter.Predicate(),
		Quantity:    "",
	}

	products, err := s.gw.FilterProducts(ctx, filter)
	if err != nil {
		s.log.Error("failed to fetch filtered products", "error", err)
		s.state.SetProducts(nil)
		return
	}
	s.state.SetProducts(products)
}
