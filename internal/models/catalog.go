package models

// Category is a catalog category as returned by GET /im/getAllCategories.
// Whether a category is selected for filtering is local state and lives in
// the state container, not here.
type Category struct {
	ID           string `json:"id"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// Product is an immutable catalog snapshot returned by the warehouse filter.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"productName"`
	Description string `json:"productDescription"`
	Price       Number `json:"price"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// ProductFilter is the request body of POST /im/Warehouse/filter. The
// warehouse and quantity constraints are always sent empty; Price carries a
// one-sided predicate such as "<=100" or ">=50".
type ProductFilter struct {
	WarehouseID []string `json:"warehouseId"`
	CategoryID  []string `json:"categoryId"`
	Price       string   `json:"price"`
	Quantity    string   `json:"quantity"`
}
