package models

import "time"

// OrderItem is a frozen copy of a basket item taken at order-creation time.
// It does not reference the basket item afterwards.
type OrderItem struct {
	ID          string `json:"id"`
	Name        string `json:"productName"`
	Description string `json:"productDescription,omitempty"`
	Quantity    Number `json:"quantity"`
	Price       Number `json:"price"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// OrderRequest is the body of POST /om/createOrder.
type OrderRequest struct {
	Status      string       `json:"orderStatus"`
	Description string       `json:"orderDescription"`
	Price       Number       `json:"orderPrice"`
	Buyer       BuyerProfile `json:"buyer"`
	Items       []OrderItem  `json:"orderItems"`
}

// Order is an immutable order record as returned by the gateway. Status
// transitions happen server-side and are observed only by re-fetching.
type Order struct {
	ID          string        `json:"id"`
	OrderID     string        `json:"orderId"`
	Status      string        `json:"orderStatus"`
	Description string        `json:"orderDescription,omitempty"`
	Price       Number        `json:"orderPrice"`
	CreatedAt   time.Time     `json:"createdAt"`
	Buyer       *BuyerProfile `json:"buyer,omitempty"`
	Items       []OrderItem   `json:"orderItems"`
}

// OrderFilter is the body of POST /om/filter.
type OrderFilter struct {
	BuyerFullName           string `json:"buyerFullName"`
	SortCreatedAtDescending bool   `json:"sortCreatedAtDescending"`
}
