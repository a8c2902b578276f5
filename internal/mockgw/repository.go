package mockgw

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wims/storefront/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrNotInBasket      = errors.New("product not in basket")
	ErrInvalidPredicate = errors.New("invalid price predicate")
)

// Repository is the in-memory backing store of the mock gateway: the
// catalog, one basket per issued token, and the created orders.
type Repository struct {
	mu         sync.RWMutex
	categories []models.Category
	products   map[string]models.Product
	tokens     map[string]bool
	baskets    map[string][]models.BasketItem
	orders     []models.Order
}

// NewRepository creates a repository seeded with a small warehouse catalog.
func NewRepository() *Repository {
	categories := []models.Category{
		{ID: "1", CategoryID: "c-1", CategoryName: "Electronics"},
		{ID: "2", CategoryID: "c-2", CategoryName: "Tools"},
		{ID: "3", CategoryID: "c-3", CategoryName: "Packaging"},
		{ID: "4", CategoryID: "c-4", CategoryName: "Office"},
	}

	products := map[string]models.Product{
		"p-1": {ID: "p-1", Name: "Barcode Scanner", Description: "Handheld 2D barcode scanner", Price: 89.90, CategoryID: "c-1"},
		"p-2": {ID: "p-2", Name: "Label Printer", Description: "Thermal label printer", Price: 149.00, CategoryID: "c-1"},
		"p-3": {ID: "p-3", Name: "Pallet Jack", Description: "Manual pallet jack, 2500 kg", Price: 310.50, CategoryID: "c-2"},
		"p-4": {ID: "p-4", Name: "Utility Knife", Description: "Retractable box cutter", Price: 6.40, CategoryID: "c-2"},
		"p-5": {ID: "p-5", Name: "Stretch Wrap", Description: "500 mm stretch film roll", Price: 12.99, CategoryID: "c-3"},
		"p-6": {ID: "p-6", Name: "Cardboard Boxes", Description: "Pack of 25 medium boxes", Price: 34.00, CategoryID: "c-3"},
		"p-7": {ID: "p-7", Name: "Clipboard", Description: "A4 clipboard with clip", Price: 4.75, CategoryID: "c-4"},
		"p-8": {ID: "p-8", Name: "Desk Lamp", Description: "LED desk lamp", Price: 22.00, CategoryID: "c-4"},
	}

	return &Repository{
		categories: categories,
		products:   products,
		tokens:     make(map[string]bool),
		baskets:    make(map[string][]models.BasketItem),
	}
}

// IssueToken records a freshly issued bearer token.
func (r *Repository) IssueToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = true
}

// ValidToken reports whether the token was issued by this gateway.
func (r *Repository) ValidToken(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[token]
}

// Categories returns all catalog categories.
func (r *Repository) Categories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// FilterProducts returns products matching the category set (empty set
// matches everything) and the one-sided price predicate.
func (r *Repository) FilterProducts(filter models.ProductFilter) ([]models.Product, error) {
	op, amount, err := parsePredicate(filter.Price)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(filter.CategoryID))
	for _, id := range filter.CategoryID {
		wanted[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range r.products {
		if len(wanted) > 0 && !wanted[p.CategoryID] {
			continue
		}
		price := p.Price.Float64()
		if op == "<=" && price > amount {
			continue
		}
		if op == ">=" && price < amount {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// parsePredicate splits "<=100" / ">=50" into operator and threshold.
func parsePredicate(s string) (string, float64, error) {
	for _, op := range []string{"<=", ">="} {
		if strings.HasPrefix(s, op) {
			amount, err := strconv.ParseFloat(strings.TrimPrefix(s, op), 64)
			if err != nil {
				return "", 0, ErrInvalidPredicate
			}
			return op, amount, nil
		}
	}
	return "", 0, ErrInvalidPredicate
}

// Basket returns the basket bound to the token. Always non-nil Products.
func (r *Repository) Basket(token string) models.Basket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.baskets[token]
	out := make([]models.BasketItem, len(items))
	copy(out, items)
	return models.Basket{Products: out}
}

// AddToBasket merges the items into the token's basket. A duplicate add
// increments the stored quantity; the client never does this arithmetic.
func (r *Repository) AddToBasket(token string, items []models.BasketItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	basket := r.baskets[token]
	for _, item := range items {
		if item.CategoryID == "" {
			if p, ok := r.products[item.ID]; ok {
				item.CategoryID = p.CategoryID
			}
		}
		merged := false
		for i := range basket {
			if basket[i].ID == item.ID {
				basket[i].Quantity += item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			basket = append(basket, item)
		}
	}
	r.baskets[token] = basket
}

// RemoveFromBasket removes a product from the token's basket.
func (r *Repository) RemoveFromBasket(token, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	basket := r.baskets[token]
	for i := range basket {
		if basket[i].ID == productID {
			r.baskets[token] = append(basket[:i], basket[i+1:]...)
			return nil
		}
	}
	return ErrNotInBasket
}

// AddOrder records a created order.
func (r *Repository) AddOrder(order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
}

// FilterOrders returns the orders whose buyer full name matches, sorted by
// creation time descending when requested.
func (r *Repository) FilterOrders(filter models.OrderFilter) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0)
	for _, o := range r.orders {
		if o.Buyer != nil && o.Buyer.FullName() == filter.BuyerFullName {
			out = append(out, o)
		}
	}
	if filter.SortCreatedAtDescending {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// now is a hook for tests that need deterministic order timestamps.
var now = func() time.Time { return time.Now().UTC() }
