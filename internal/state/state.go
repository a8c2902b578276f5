// Package state holds the storefront's screen-spanning state: category
// selection, price filter, the displayed product list and the basket
// snapshot. It is an explicit, injectable container; derived values (price
// predicate, order total, frozen order items) are pure functions so they can
// be tested without any network or rendering environment.
package state

import (
	"sort"
	"strconv"

	"github.com/wims/storefront/internal/models"
)

// PriceMode selects the side of the one-sided price bound. The filter never
// expresses a range; that restriction comes from the gateway contract.
type PriceMode string

const (
	PriceAtMost  PriceMode = "at-most"
	PriceAtLeast PriceMode = "at-least"
)

// PriceFilter is the local-only price constraint.
type PriceFilter struct {
	Mode   PriceMode
	Amount float64
}

// Predicate renders the filter as the gateway's predicate string, e.g.
// "<=100" or ">=50".
func (f PriceFilter) Predicate() string {
	op := "<="
	if f.Mode == PriceAtLeast {
		op = ">="
	}
	return op + strconv.FormatFloat(f.Amount, 'f', -1, 64)
}

// AppState is the single mutable container behind all screens. It is only
// ever mutated by the caller that initiated the corresponding request, never
// from background callbacks, which is what keeps stale responses from
// clobbering newer state.
type AppState struct {
	Categories []models.Category
	Filter     PriceFilter

	selected map[string]bool
	products []models.Product
	basket   models.Basket
}

// New returns a state container with the client's default filter: at most
// 100, no categories selected.
func New() *AppState {
	return &AppState{
		Filter:   PriceFilter{Mode: PriceAtMost, Amount: 100},
		selected: make(map[string]bool),
	}
}

// ToggleCategory flips the selection flag for a category id. Toggling twice
// restores the prior selection set.
func (s *AppState) ToggleCategory(categoryID string) {
	if s.selected[categoryID] {
		delete(s.selected, categoryID)
		return
	}
	s.selected[categoryID] = true
}

// Selected reports whether a category id is currently selected.
func (s *AppState) Selected(categoryID string) bool {
	return s.selected[categoryID]
}

// SelectedCategories returns the selected category ids in a stable order.
func (s *AppState) SelectedCategories() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetProducts fully replaces the displayed product list.
func (s *AppState) SetProducts(products []models.Product) {
	s.products = products
}

// Products returns the currently displayed product list.
func (s *AppState) Products() []models.Product {
	return s.products
}

// SetBasket replaces the basket snapshot with the result of a fetch. The
// displayed basket is always a direct copy of the last successful fetch,
// never derived by local arithmetic.
func (s *AppState) SetBasket(b models.Basket) {
	s.basket = b
}

// Basket returns the current basket snapshot.
func (s *AppState) Basket() models.Basket {
	return s.basket
}

// ClearBasket resets the local basket to empty.
func (s *AppState) ClearBasket() {
	s.basket = models.Basket{}
}

// OrderTotal sums price×quantity over the basket. Both operands have already
// been coerced to numbers at decode time (models.Number), so text-encoded
// prices and quantities from the gateway still sum correctly.
func OrderTotal(items []models.BasketItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price.Float64() * item.Quantity.Float64()
	}
	return total
}

// OrderItems freezes basket items into order items. The copies share nothing
// with the basket; the order is a value snapshot.
func OrderItems(items []models.BasketItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ID:         item.ID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price,
			CategoryID: item.CategoryID,
		})
	}
	return out
}
