package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wims/storefront/internal/models"
)

func TestPricePredicate(t *testing.T) {
	tests := []struct {
		name   string
		filter PriceFilter
		want   string
	}{
		{name: "at most", filter: PriceFilter{Mode: PriceAtMost, Amount: 100}, want: "<=100"},
		{name: "at least", filter: PriceFilter{Mode: PriceAtLeast, Amount: 50}, want: ">=50"},
		{name: "fractional amount", filter: PriceFilter{Mode: PriceAtMost, Amount: 19.5}, want: "<=19.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Predicate())
		})
	}
}

func TestToggleCategoryIdempotent(t *testing.T) {
	s := New()

	s.ToggleCategory("c-1")
	assert.True(t, s.Selected("c-1"))
	assert.Equal(t, []string{"c-1"}, s.SelectedCategories())

	// Selecting then deselecting restores the prior selection set.
	s.ToggleCategory("c-1")
	assert.False(t, s.Selected("c-1"))
	assert.Empty(t, s.SelectedCategories())
}

func TestSelectedCategoriesStableOrder(t *testing.T) {
	s := New()
	s.ToggleCategory("c-3")
	s.ToggleCategory("c-1")
	s.ToggleCategory("c-2")
	assert.Equal(t, []string{"c-1", "c-2", "c-3"}, s.SelectedCategories())
}

func TestOrderTotalCoercesOperands(t *testing.T) {
	// Prices and quantities may arrive as JSON strings; the total must still
	// come out right: 10.50*2 + 5*1 = 26.00.
	payload := `[{"id":"a","productName":"A","price":"10.50","quantity":2},{"id":"b","productName":"B","price":5,"quantity":"1"}]`

	var items []models.BasketItem
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	assert.InDelta(t, 26.00, OrderTotal(items), 1e-9)
}

func TestOrderTotalEmptyBasket(t *testing.T) {
	assert.Zero(t, OrderTotal(nil))
}

func TestOrderItemsAreValueSnapshots(t *testing.T) {
	items := []models.BasketItem{
		{ID: "p-1", Name: "Scanner", Price: 89.9, Quantity: 2, CategoryID: "c-1"},
	}

	frozen := OrderItems(items)
	require.Len(t, frozen, 1)
	assert.Equal(t, "p-1", frozen[0].ID)
	assert.Equal(t, 2.0, frozen[0].Quantity.Float64())

	// Mutating the basket afterwards must not leak into the order items.
	items[0].Quantity = 99
	assert.Equal(t, 2.0, frozen[0].Quantity.Float64())
}

func TestDefaultFilter(t *testing.T) {
	s := New()
	assert.Equal(t, PriceFilter{Mode: PriceAtMost, Amount: 100}, s.Filter)
}

func TestSetProductsReplaces(t *testing.T) {
	s := New()
	s.SetProducts([]models.Product{{ID: "p-1"}, {ID: "p-2"}})
	s.SetProducts([]models.Product{{ID: "p-3"}})
	require.Len(t, s.Products(), 1)
	assert.Equal(t, "p-3", s.Products()[0].ID)
}

func TestClearBasket(t *testing.T) {
	s := New()
	s.SetBasket(models.Basket{Products: []models.BasketItem{{ID: "p-1"}}})
	s.ClearBasket()
	assert.Empty(t, s.Basket().Products)
}
