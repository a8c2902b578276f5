package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/state"
)

func TestCatalogService_ApplyFilter(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(*state.AppState)
		gw           *fakeGateway
		wantFilter   models.ProductFilter
		wantProducts []models.Product
	}{
		{
			name:  "default filter, no categories",
			setup: func(s *state.AppState) {},
			gw: &fakeGateway{products: []models.Product{
				{ID: "p-1", Name: "Scanner", Price: 89.9},
			}},
			wantFilter: models.ProductFilter{
				WarehouseID: []string{},
				CategoryID:  []string{},
				Price:       "<=100",
				Quantity:    "",
			},
			wantProducts: []models.Product{{ID: "p-1", Name: "Scanner", Price: 89.9}},
		},
		{
			name: "selected categories and at-least bound",
			setup: func(s *state.AppState) {
				s.ToggleCategory("c-2")
				s.ToggleCategory("c-1")
				s.Filter = state.PriceFilter{Mode: state.PriceAtLeast, Amount: 50}
			},
			gw: &fakeGateway{products: []models.Product{}},
			wantFilter: models.ProductFilter{
				WarehouseID: []string{},
				CategoryID:  []string{"c-1", "c-2"},
				Price:       ">=50",
				Quantity:    "",
			},
			wantProducts: []models.Product{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := state.New()
			tt.setup(st)
			svc := NewCatalogService(tt.gw, st, discardLogger())

			svc.ApplyFilter(context.Background())

			if !reflect.DeepEqual(tt.gw.lastFilter, tt.wantFilter) {
				t.Errorf("filter request = %+v, want %+v", tt.gw.lastFilter, tt.wantFilter)
			}
			if !reflect.DeepEqual(st.Products(), tt.wantProducts) {
				t.Errorf("products = %+v, want %+v", st.Products(), tt.wantProducts)
			}
			if svc.Loading() {
				t.Error("loading flag still set after ApplyFilter returned")
			}
		})
	}
}

func TestCatalogService_ApplyFilterReplacesList(t *testing.T) {
	st := state.New()
	st.SetProducts([]models.Product{{ID: "old-1"}, {ID: "old-2"}})
	gw := &fakeGateway{products: []models.Product{{ID: "new-1"}}}
	svc := NewCatalogService(gw, st, discardLogger())

	svc.ApplyFilter(context.Background())

	if len(st.Products()) != 1 || st.Products()[0].ID != "new-1" {
		t.Errorf("expected full replacement, got %+v", st.Products())
	}
}

func TestCatalogService_ApplyFilterFailure(t *testing.T) {
	st := state.New()
	st.SetProducts([]models.Product{{ID: "old"}})
	gw := &fakeGateway{filterErr: errors.New("gateway down")}
	svc := NewCatalogService(gw, st, discardLogger())

	svc.ApplyFilter(context.Background())

	if len(st.Products()) != 0 {
		t.Errorf("expected empty product list on failure, got %+v", st.Products())
	}
	if svc.Loading() {
		t.Error("loading flag still set after failed ApplyFilter")
	}
}

func TestCatalogService_LoadCategories(t *testing.T) {
	st := state.New()
	gw := &fakeGateway{categories: []models.Category{
		{ID: "1", CategoryID: "c-1", CategoryName: "Electronics"},
	}}
	svc := NewCatalogService(gw, st, discardLogger())

	svc.LoadCategories(context.Background())

	if len(st.Categories) != 1 || st.Categories[0].CategoryName != "Electronics" {
		t.Errorf("categories = %+v", st.Categories)
	}
}

func TestCatalogService_LoadCategoriesFailure(t *testing.T) {
	st := state.New()
	st.Categories = []models.Category{{ID: "stale"}}
	gw := &fakeGateway{categoriesErr: errors.New("gateway down")}
	svc := NewCatalogService(gw, st, discardLogger())

	svc.LoadCategories(context.Background())

	if st.Categories != nil {
		t.Errorf("expected empty categories on failure, got %+v", st.Categories)
	}
}
