package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/wims/storefront/internal/models"
	"github.com/wims/storefront/internal/state"
)

func TestBasketService_RefreshMirrorsRemote(t *testing.T) {
	remote := models.Basket{Products: []models.BasketItem{
		{ID: "p-1", Name: "Scanner", Price: 89.9, Quantity: 2},
		{ID: "p-5", Name: "Stretch Wrap", Price: 12.99, Quantity: 1},
	}}
	st := state.New()
	gw := &fakeGateway{basket: remote}
	svc := NewBasketService(gw, st, discardLogger())

	svc.Refresh(context.Background())

	// The displayed basket is exactly what the fetch returned, no local
	// merge logic applied.
	if !reflect.DeepEqual(st.Basket(), remote) {
		t.Errorf("basket = %+v, want %+v", st.Basket(), remote)
	}
}

func TestBasketService_RefreshFailSafeEmpty(t *testing.T) {
	st := state.New()
	st.SetBasket(models.Basket{Products: []models.BasketItem{{ID: "stale"}}})
	gw := &fakeGateway{basketErr: errors.New("503")}
	svc := NewBasketService(gw, st, discardLogger())

	svc.Refresh(context.Background())

	if len(st.Basket().Products) != 0 {
		t.Errorf("expected empty basket on fetch failure, got %+v", st.Basket().Products)
	}
}

func TestBasketService_AddDoesNotRefetch(t *testing.T) {
	st := state.New()
	gw := &fakeGateway{}
	svc := NewBasketService(gw, st, discardLogger())

	product := models.Product{ID: "p-1", Name: "Scanner", Price: 89.9}
	if err := svc.Add(context.Background(), product); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	if len(gw.added) != 1 || gw.added[0].ID != "p-1" {
		t.Errorf("added = %+v", gw.added)
	}
	// The snapshot is stale until the next Refresh; Add must not fetch.
	if gw.fetchCalls != 0 {
		t.Errorf("fetchCalls = %d, want 0", gw.fetchCalls)
	}
}

func TestBasketService_AddFailureSurfaced(t *testing.T) {
	st := state.New()
	gw := &fakeGateway{addErr: errors.New("500")}
	svc := NewBasketService(gw, st, discardLogger())

	if err := svc.Add(context.Background(), models.Product{ID: "p-1"}); err == nil {
		t.Error("Add() expected error")
	}
}

func TestBasketService_RemoveTriggersRefetch(t *testing.T) {
	remote := models.Basket{Products: []models.BasketItem{{ID: "p-2", Quantity: 1}}}
	st := state.New()
	gw := &fakeGateway{basket: remote}
	svc := NewBasketService(gw, st, discardLogger())

	if err := svc.Remove(context.Background(), "p-1"); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	if len(gw.removed) != 1 || gw.removed[0] != "p-1" {
		t.Errorf("removed = %+v", gw.removed)
	}
	if gw.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, want 1 (refetch after acknowledged delete)", gw.fetchCalls)
	}
	if !reflect.DeepEqual(st.Basket(), remote) {
		t.Errorf("basket = %+v, want %+v", st.Basket(), remote)
	}
}

func TestBasketService_RemoveFailureNoRefetch(t *testing.T) {
	st := state.New()
	st.SetBasket(models.Basket{Products: []models.BasketItem{{ID: "p-1"}}})
	gw := &fakeGateway{removeErr: map[string]error{"p-1": errors.New("404")}}
	svc := NewBasketService(gw, st, discardLogger())

	if err := svc.Remove(context.Background(), "p-1"); err == nil {
		t.Error("Remove() expected error")
	}
	if gw.fetchCalls != 0 {
		t.Errorf("fetchCalls = %d, want 0 (no optimistic refetch on failure)", gw.fetchCalls)
	}
	// Local snapshot untouched on a failed remove.
	if len(st.Basket().Products) != 1 {
		t.Errorf("basket = %+v", st.Basket().Products)
	}
}
