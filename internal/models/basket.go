package models

// BasketItem is a line item owned by the remote basket resource. Quantity is
// never computed client-side; it is whatever the last fetch returned.
type BasketItem struct {
	ID          string `json:"id"`
	Name        string `json:"productName"`
	Description string `json:"productDescription,omitempty"`
	Price       Number `json:"price"`
	Quantity    Number `json:"quantity"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// Basket is the response of GET /bm/getBasket.
type Basket struct {
	Products []BasketItem `json:"products"`
}

// AddToBasketRequest is the body of POST /bm/addToBasket. The client always
// sends a single product with quantity 1; the server increments the quantity
// on duplicate adds.
type AddToBasketRequest struct {
	Products []BasketItem `json:"products"`
}
