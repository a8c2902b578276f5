package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/wims/storefront/internal/models"
)

// TokenSource supplies the bearer token attached to every authenticated
// request. The session store implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks JSON over HTTP to the warehouse/order gateway. One method per
// consumed endpoint; no retries, no caching — every failure is terminal for
// that single call.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *slog.Logger
}

// New creates a gateway client. A zero timeout leaves the transport default
// in place.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwtToken"`
}

// Login exchanges credentials for a bearer token. A non-success status maps
// to ErrInvalidCredentials; transport failures are returned wrapped so the
// caller can distinguish the two.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/um/User/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("login rejected", "status", resp.StatusCode)
		return "", ErrInvalidCredentials
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	return out.JWTToken, nil
}

// Categories lists all catalog categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/im/getAllCategories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterProducts lists products matching the category set and price
// predicate. The returned list fully replaces whatever was displayed before.
func (c *Client) FilterProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodPost, "/im/Warehouse/filter", filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Basket fetches the current remote basket.
func (c *Client) Basket(ctx context.Context) (models.Basket, error) {
	var out models.Basket
	if err := c.do(ctx, http.MethodGet, "/bm/getBasket", nil, &out); err != nil {
		return models.Basket{}, err
	}
	return out, nil
}

// AddToBasket adds one unit of a product. Quantity is always 1; the server
// increments it on duplicate adds.
func (c *Client) AddToBasket(ctx context.Context, p models.Product) error {
	req := models.AddToBasketRequest{
		Products: []models.BasketItem{{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    1,
		}},
	}
	return c.do(ctx, http.MethodPost, "/bm/addToBasket", req, nil)
}

// RemoveFromBasket removes a product from the basket by id.
func (c *Client) RemoveFromBasket(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/bm/removefromBasket/"+url.PathEscape(productID), nil, nil)
}

// CreateOrder submits an order-creation request and returns the created
// order as the gateway reports it.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/om/createOrder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FilterOrders lists a buyer's orders.
func (c *Client) FilterOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodPost, "/om/filter", filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs an authenticated JSON round trip. A non-success status is
// returned as *APIError with the server message when the body carries one.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return ErrNoToken
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// serverMessage extracts the "message" (or "error") field from an error
// body, if the body is JSON at all.
func serverMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
